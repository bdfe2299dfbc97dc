package groom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}

func testQuestions(n int) []QuestionRecord {
	qs := make([]QuestionRecord, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, NewQuestionRecord("vid", i, fmt.Sprintf("Q%d", i), fmt.Sprintf("A%d", i), i*30))
	}
	return qs
}

func hostedSession(t *testing.T, n int) *Session {
	t.Helper()

	s := NewSession(WithIDFunc(sequentialIDs()))
	require.NoError(t, s.CreateAsHost(testQuestions(n)))

	return s
}

func TestCreateAsHost(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		t.Run(fmt.Sprintf("%d questions", n), func(t *testing.T) {
			s := hostedSession(t, n)

			state := s.Snapshot()
			assert.Equal(t, StageLobby, state.Stage)
			assert.Equal(t, 0, state.CurrentIndex)
			assert.True(t, state.IsHost)
			assert.Len(t, state.Code, CodeLength)
			require.Len(t, state.Participants, 1)
			assert.Equal(t, hostName, state.Participants[0].Name)
			assert.Len(t, state.Questions, n)
		})
	}
}

func TestCreateAsHostRejectsEmpty(t *testing.T) {
	s := NewSession()

	err := s.CreateAsHost(nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StageSetup, s.Stage())
}

func TestCreateAsHostOnlyFromSetup(t *testing.T) {
	s := hostedSession(t, 1)
	code := s.Code()

	assert.ErrorIs(t, s.CreateAsHost(testQuestions(2)), ErrStage)
	assert.Equal(t, code, s.Code())
}

func TestCreateAsHostCopiesQuestions(t *testing.T) {
	qs := testQuestions(2)
	s := NewSession()
	require.NoError(t, s.CreateAsHost(qs))

	qs[0].Answer = "changed"
	assert.Equal(t, "A0", s.Snapshot().Questions[0].Answer)
}

func TestJoinAsPlayer(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		player  string
		groom   bool
		wantErr error
		want    string
	}{
		{name: "normalizes code", code: " ab12 ", player: "Dan", want: "AB12"},
		{name: "groom", code: "ZZ99", player: "Avi", groom: true, want: "ZZ99"},
		{name: "empty name", code: "AB12", player: "  ", wantErr: ErrValidation},
		{name: "short code", code: "AB1", player: "Dan", wantErr: ErrValidation},
		{name: "symbols", code: "AB-1", player: "Dan", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(WithIDFunc(sequentialIDs()))

			err := s.JoinAsPlayer(tt.code, tt.player, tt.groom)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, NewSession().Snapshot(), s.Snapshot())
				return
			}

			require.NoError(t, err)
			state := s.Snapshot()
			assert.Equal(t, StageLobby, state.Stage)
			assert.Equal(t, tt.want, state.Code)
			assert.False(t, state.IsHost)
			assert.Equal(t, []Participant{{ID: "p1", Name: tt.player, IsGroom: tt.groom}}, state.Participants)
		})
	}
}

func TestHostOnlyActions(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.JoinAsPlayer("AB12", "Dan", false))
	before := s.Snapshot()

	assert.ErrorIs(t, s.StartGame(), ErrUnauthorized)
	assert.ErrorIs(t, s.Advance(), ErrUnauthorized)
	assert.Equal(t, before, s.Snapshot())
}

func TestStartGame(t *testing.T) {
	s := hostedSession(t, 3)

	require.NoError(t, s.StartGame())
	assert.Equal(t, StagePlaying, s.Stage())

	q, err := s.CurrentQuestion()
	require.NoError(t, err)
	assert.Equal(t, "Q0", q.Question)

	assert.ErrorIs(t, s.StartGame(), ErrStage)
}

func TestAdvanceReachesSummary(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		t.Run(fmt.Sprintf("%d questions", n), func(t *testing.T) {
			s := hostedSession(t, n)
			require.NoError(t, s.StartGame())
			self, _ := s.Self()

			for i := 0; i < n; i++ {
				_, err := s.SubmitAnswer(self.ID, "guess")
				require.NoError(t, err)

				require.NoError(t, s.Advance())
				assert.Empty(t, s.Snapshot().Submissions)
			}

			assert.Equal(t, StageSummary, s.Stage())
			assert.Equal(t, n, s.Snapshot().CurrentIndex)

			_, err := s.CurrentQuestion()
			assert.ErrorIs(t, err, ErrStage)
			assert.ErrorIs(t, s.Advance(), ErrStage)
		})
	}
}

func TestSubmitAnswer(t *testing.T) {
	s := hostedSession(t, 2)
	require.NoError(t, s.StartGame())
	self, ok := s.Self()
	require.True(t, ok)

	correct, err := s.SubmitAnswer(self.ID, "  a0 ")
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = s.SubmitAnswer(self.ID, "something else")
	require.NoError(t, err)
	assert.False(t, correct)

	state := s.Snapshot()
	assert.Equal(t, map[string]string{self.ID: "something else"}, state.Submissions)
	assert.Equal(t, 0, state.Participants[0].Score)
}

func TestSubmitAnswerRejects(t *testing.T) {
	s := hostedSession(t, 1)
	self, _ := s.Self()

	_, err := s.SubmitAnswer(self.ID, "A0")
	assert.ErrorIs(t, err, ErrStage)

	require.NoError(t, s.StartGame())

	_, err = s.SubmitAnswer(self.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.SubmitAnswer("stranger", "A0")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, s.Snapshot().Submissions)
}

func TestResetAll(t *testing.T) {
	s := hostedSession(t, 2)
	require.NoError(t, s.StartGame())
	self, _ := s.Self()
	_, err := s.SubmitAnswer(self.ID, "A0")
	require.NoError(t, err)
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	require.Equal(t, StageSummary, s.Stage())

	s.ResetAll()

	assert.Equal(t, NewSession().Snapshot(), s.Snapshot())
	_, ok := s.Self()
	assert.False(t, ok)

	require.NoError(t, s.CreateAsHost(testQuestions(1)))
	assert.Equal(t, StageLobby, s.Stage())
}

func TestAnswersMatch(t *testing.T) {
	assert.True(t, AnswersMatch("Brown", " brown\n"))
	assert.True(t, AnswersMatch("חום", "חום "))
	assert.False(t, AnswersMatch("blue", "brown"))
}
