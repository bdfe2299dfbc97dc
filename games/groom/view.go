package groom

// QuestionView is the current question as shown to one participant.
type QuestionView struct {
	ID               string `json:"id"`
	Question         string `json:"question"`
	Answer           string `json:"answer,omitempty"`
	DisplayTimestamp string `json:"display_timestamp"`
	QuestionWindow   Window `json:"question_window"`
	AnswerWindow     Window `json:"answer_window"`
}

type EditorView struct {
	Video   VideoRef         `json:"video"`
	Videos  []VideoRef       `json:"videos"`
	Entries []QuestionRecord `json:"entries"`
}

// View is what a client renders.
type View struct {
	Stage         Stage         `json:"stage"`
	Code          string        `json:"code,omitempty"`
	IsHost        bool          `json:"is_host"`
	Self          *Participant  `json:"self,omitempty"`
	Participants  []Participant `json:"participants"`
	QuestionCount int           `json:"question_count"`
	CurrentIndex  int           `json:"current_index"`
	Current       *QuestionView `json:"current,omitempty"`
	Submitted     string        `json:"submitted,omitempty"`
	Submissions   int           `json:"submissions"`
	Editor        *EditorView   `json:"editor,omitempty"`
	Pending       *VideoRef     `json:"pending,omitempty"`
}

// View renders the controller's state. Players only see the current answer
// once they have submitted a guess for it.
func (c *Controller) View() View {
	state := c.session.Snapshot()

	v := View{
		Stage:         state.Stage,
		Code:          state.Code,
		IsHost:        state.IsHost,
		Participants:  state.Participants,
		QuestionCount: len(state.Questions),
		CurrentIndex:  state.CurrentIndex,
		Submissions:   len(state.Submissions),
	}

	if v.Participants == nil {
		v.Participants = []Participant{}
	}

	self, ok := c.session.Self()
	if ok {
		v.Self = &self
	}

	if q, err := c.session.CurrentQuestion(); err == nil {
		qv := &QuestionView{
			ID:               q.ID,
			Question:         q.Question,
			DisplayTimestamp: q.DisplayTimestamp,
			QuestionWindow:   q.QuestionWindow,
			AnswerWindow:     q.AnswerWindow,
		}

		submitted := ""
		if ok {
			submitted, _ = c.session.Submission(self.ID)
		}

		if state.IsHost || submitted != "" {
			qv.Answer = q.Answer
		}

		v.Current = qv
		v.Submitted = submitted
	}

	if c.editor != nil {
		v.Editor = &EditorView{
			Video:   c.editor.Video(),
			Videos:  c.editor.Videos(),
			Entries: c.editor.Entries(),
		}
		if v.Editor.Videos == nil {
			v.Editor.Videos = []VideoRef{}
		}
		if v.Editor.Entries == nil {
			v.Editor.Entries = []QuestionRecord{}
		}
	}

	if video, ok := c.Pending(); ok {
		v.Pending = &video
	}

	return v
}
