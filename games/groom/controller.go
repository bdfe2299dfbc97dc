/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package groom

import (
	"fmt"
)

type CommandKind string

const (
	CmdCreateHost     CommandKind = "create"
	CmdJoin           CommandKind = "join"
	CmdStart          CommandKind = "start"
	CmdAdvance        CommandKind = "advance"
	CmdSubmit         CommandKind = "submit"
	CmdReset          CommandKind = "reset"
	CmdVideoPending   CommandKind = "video_pending"
	CmdCollect        CommandKind = "collect"
	CmdManualBegin    CommandKind = "manual_begin"
	CmdManualAdd      CommandKind = "manual_add"
	CmdManualFinalize CommandKind = "manual_finalize"
	CmdManualDiscard  CommandKind = "manual_discard"
)

// Command is one user action. Only the fields its Kind reads are set.
type Command struct {
	Kind      CommandKind
	Code      string
	Name      string
	IsGroom   bool
	Answer    string
	Question  string
	StartTime int
	Questions []QuestionRecord
	Video     VideoRef
}

// Result carries what a command produced beyond the state change.
type Result struct {
	Correct *bool
	Entry   *QuestionRecord
}

// Controller owns one operator's session together with the manual entry
// editor and the video awaiting questions, and applies commands to them.
type Controller struct {
	session *Session
	editor  *Editor
	pending *VideoRef
}

func NewController(session *Session) *Controller {
	if session == nil {
		session = NewSession()
	}

	return &Controller{session: session}
}

func (c *Controller) Session() *Session {
	return c.session
}

// Editor returns the open manual entry editor, or nil.
func (c *Controller) Editor() *Editor {
	return c.editor
}

// Pending returns the uploaded video still waiting for questions, if any.
func (c *Controller) Pending() (VideoRef, bool) {
	if c.pending == nil {
		return VideoRef{}, false
	}

	return *c.pending, true
}

// Dispatch validates cmd against the current stage and role, then applies it.
// A rejected command leaves all state unchanged.
func (c *Controller) Dispatch(cmd Command) (Result, error) {
	switch cmd.Kind {
	case CmdCreateHost:
		return Result{}, c.createHost(cmd.Questions)
	case CmdJoin:
		if c.editor != nil {
			return Result{}, fmt.Errorf("%w: finish or discard manual entry first", ErrStage)
		}
		return Result{}, c.session.JoinAsPlayer(cmd.Code, cmd.Name, cmd.IsGroom)
	case CmdStart:
		return Result{}, c.session.StartGame()
	case CmdAdvance:
		return Result{}, c.session.Advance()
	case CmdSubmit:
		return c.submit(cmd.Answer)
	case CmdReset:
		c.reset()
		return Result{}, nil
	case CmdVideoPending:
		return Result{}, c.setPending(cmd.Video)
	case CmdCollect:
		return Result{}, c.collect(cmd.Video, cmd.Questions)
	case CmdManualBegin:
		return Result{}, c.beginManual(cmd.Video)
	case CmdManualAdd:
		return c.addEntry(cmd.Question, cmd.Answer, cmd.StartTime)
	case CmdManualFinalize:
		return Result{}, c.finalize()
	case CmdManualDiscard:
		c.discard()
		return Result{}, nil
	default:
		return Result{}, fmt.Errorf("%w: unknown command %q", ErrValidation, cmd.Kind)
	}
}

func (c *Controller) createHost(questions []QuestionRecord) error {
	if c.editor != nil {
		return fmt.Errorf("%w: manual entry is open", ErrStage)
	}

	if err := c.session.CreateAsHost(questions); err != nil {
		return err
	}

	c.pending = nil

	return nil
}

func (c *Controller) submit(answer string) (Result, error) {
	self, ok := c.session.Self()
	if !ok {
		return Result{}, fmt.Errorf("%w: join a game first", ErrStage)
	}

	correct, err := c.session.SubmitAnswer(self.ID, answer)
	if err != nil {
		return Result{}, err
	}

	return Result{Correct: &correct}, nil
}

func (c *Controller) setPending(video VideoRef) error {
	if c.session.Stage() != StageSetup {
		return fmt.Errorf("%w: a game is already in progress", ErrStage)
	}

	if video.ID == "" {
		return fmt.Errorf("%w: video id is required", ErrValidation)
	}

	c.pending = &video

	return nil
}

// beginManual opens the editor for video, or the pending video when none is
// given. With the editor already open the video becomes its current one.
func (c *Controller) beginManual(video VideoRef) error {
	if video.ID == "" && c.pending != nil {
		video = *c.pending
	}

	if c.editor != nil {
		if video.ID == "" {
			return nil
		}
		if err := c.editor.AddVideo(video); err != nil {
			return err
		}
		c.pending = nil
		return nil
	}

	if c.session.Stage() != StageSetup {
		return fmt.Errorf("%w: a game is already in progress", ErrStage)
	}

	if video.ID == "" {
		return fmt.Errorf("%w: upload a video first", ErrValidation)
	}

	c.pending = nil
	c.editor = NewEditor(video)

	return nil
}

// collect adds extracted questions to the question set being assembled,
// opening the editor if needed, instead of starting a game with them.
func (c *Controller) collect(video VideoRef, questions []QuestionRecord) error {
	if c.session.Stage() != StageSetup {
		return fmt.Errorf("%w: a game is already in progress", ErrStage)
	}

	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions to add", ErrEmpty)
	}

	editor := c.editor
	if editor == nil {
		editor = NewEditor(VideoRef{})
	}

	if err := editor.AddRecords(video, questions); err != nil {
		return err
	}

	c.editor = editor

	return nil
}

func (c *Controller) addEntry(question, answer string, start int) (Result, error) {
	if c.editor == nil {
		return Result{}, ErrNoEditor
	}

	record, err := c.editor.AddEntry(question, answer, start)
	if err != nil {
		return Result{}, err
	}

	return Result{Entry: &record}, nil
}

func (c *Controller) finalize() error {
	if c.editor == nil {
		return ErrNoEditor
	}

	questions, err := c.editor.Finalize()
	if err != nil {
		return err
	}

	c.editor = nil

	return c.createHost(questions)
}

func (c *Controller) discard() {
	if c.editor != nil {
		c.editor.Discard()
		c.editor = nil
	}

	c.pending = nil
}

func (c *Controller) reset() {
	c.discard()
	c.session.ResetAll()
}
