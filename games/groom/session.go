/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package groom

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type Stage string

const (
	StageSetup   Stage = "setup"
	StageLobby   Stage = "lobby"
	StagePlaying Stage = "playing"
	StageSummary Stage = "summary"
)

const hostName = "Host"

// Participant is a member of a session's roster. Score and DrinkCount are
// carried for display only; no flow updates them.
type Participant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsGroom    bool   `json:"is_groom"`
	Score      int    `json:"score"`
	DrinkCount int    `json:"drink_count"`
}

// State is a copy of every field of a Session.
type State struct {
	Code         string            `json:"code"`
	IsHost       bool              `json:"is_host"`
	Stage        Stage             `json:"stage"`
	Questions    []QuestionRecord  `json:"questions"`
	CurrentIndex int               `json:"current_index"`
	Participants []Participant     `json:"participants"`
	Submissions  map[string]string `json:"submissions"`
}

// Session is one party's lifecycle: setup, lobby, playing, summary.
//
// Sessions are not safe for concurrent use; callers serialize actions.
type Session struct {
	code         string
	isHost       bool
	stage        Stage
	questions    []QuestionRecord
	currentIndex int
	participants []Participant
	submissions  map[string]string

	newCode CodeFunc
	newID   func() string
}

type Option func(*Session)

func WithCodeFunc(f CodeFunc) Option {
	return func(s *Session) {
		s.newCode = f
	}
}

func WithIDFunc(f func() string) Option {
	return func(s *Session) {
		s.newID = f
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		newCode: GenerateCode,
		newID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.clear()

	return s
}

func (s *Session) clear() {
	s.code = ""
	s.isHost = false
	s.stage = StageSetup
	s.questions = nil
	s.currentIndex = 0
	s.participants = nil
	s.submissions = make(map[string]string)
}

// CreateAsHost opens a lobby for the given questions under a fresh code.
func (s *Session) CreateAsHost(questions []QuestionRecord) error {
	if s.stage != StageSetup {
		return fmt.Errorf("%w: a game is already in progress", ErrStage)
	}

	if len(questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrValidation)
	}

	s.code = s.newCode()
	s.isHost = true
	s.questions = slices.Clone(questions)
	s.currentIndex = 0
	s.participants = []Participant{{ID: s.newID(), Name: hostName}}
	s.stage = StageLobby

	return nil
}

// JoinAsPlayer enters the lobby of the game with the given code. The code is
// not checked against running games.
func (s *Session) JoinAsPlayer(code, name string, isGroom bool) error {
	if s.stage != StageSetup {
		return fmt.Errorf("%w: a game is already in progress", ErrStage)
	}

	code = NormalizeCode(code)
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case !validCode(code):
		return fmt.Errorf("%w: game code must be %d letters or digits", ErrValidation, CodeLength)
	}

	s.code = code
	s.isHost = false
	s.participants = []Participant{{ID: s.newID(), Name: name, IsGroom: isGroom}}
	s.stage = StageLobby

	return nil
}

func (s *Session) StartGame() error {
	if !s.isHost {
		return ErrUnauthorized
	}

	if s.stage != StageLobby {
		return fmt.Errorf("%w: game can only start from the lobby", ErrStage)
	}

	if len(s.questions) == 0 {
		return fmt.Errorf("%w: no questions loaded", ErrValidation)
	}

	s.stage = StagePlaying
	s.currentIndex = 0
	clear(s.submissions)

	return nil
}

// settle moves a finished game on to the summary. It runs on every
// observation so that the advance past the last question shows up there.
func (s *Session) settle() {
	if s.stage == StagePlaying && s.currentIndex >= len(s.questions) {
		s.stage = StageSummary
	}
}

func (s *Session) Stage() Stage {
	s.settle()

	return s.stage
}

// CurrentQuestion returns the question being played.
func (s *Session) CurrentQuestion() (QuestionRecord, error) {
	s.settle()

	if s.stage != StagePlaying {
		return QuestionRecord{}, fmt.Errorf("%w: no question is being played", ErrStage)
	}

	return s.questions[s.currentIndex], nil
}

// Advance moves to the next question and drops the previous round's answers.
func (s *Session) Advance() error {
	if !s.isHost {
		return ErrUnauthorized
	}

	s.settle()

	if s.stage != StagePlaying {
		return fmt.Errorf("%w: no question is being played", ErrStage)
	}

	s.currentIndex++
	clear(s.submissions)

	return nil
}

// SubmitAnswer records a participant's guess for the current question,
// replacing any earlier guess this round, and reports whether it matches the
// stored answer ignoring case and surrounding whitespace. The match is
// advisory and does not touch scores.
func (s *Session) SubmitAnswer(participantID, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, fmt.Errorf("%w: answer is required", ErrValidation)
	}

	if !s.hasParticipant(participantID) {
		return false, fmt.Errorf("%w: unknown participant %q", ErrValidation, participantID)
	}

	current, err := s.CurrentQuestion()
	if err != nil {
		return false, err
	}

	s.submissions[participantID] = text

	return AnswersMatch(text, current.Answer), nil
}

// AnswersMatch compares two answers ignoring case and surrounding whitespace.
func AnswersMatch(guess, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(answer))
}

// ResetAll returns the session to the setup defaults.
func (s *Session) ResetAll() {
	s.clear()
}

func (s *Session) hasParticipant(id string) bool {
	return slices.ContainsFunc(s.participants, func(p Participant) bool {
		return p.ID == id
	})
}

// Self returns the participant representing this session's owner.
func (s *Session) Self() (Participant, bool) {
	if len(s.participants) == 0 {
		return Participant{}, false
	}

	return s.participants[0], true
}

func (s *Session) Code() string {
	return s.code
}

func (s *Session) IsHost() bool {
	return s.isHost
}

// Submission returns the text submitted by a participant this round.
func (s *Session) Submission(participantID string) (string, bool) {
	text, ok := s.submissions[participantID]

	return text, ok
}

// Snapshot copies the session's fields after settling the stage.
func (s *Session) Snapshot() State {
	s.settle()

	return State{
		Code:         s.code,
		IsHost:       s.isHost,
		Stage:        s.stage,
		Questions:    slices.Clone(s.questions),
		CurrentIndex: s.currentIndex,
		Participants: slices.Clone(s.participants),
		Submissions:  maps.Clone(s.submissions),
	}
}
