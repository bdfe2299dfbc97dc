package groom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() *Controller {
	return NewController(NewSession(
		WithIDFunc(sequentialIDs()),
		WithCodeFunc(func() string { return "C0DE" }),
	))
}

func dispatch(t *testing.T, c *Controller, cmd Command) Result {
	t.Helper()

	res, err := c.Dispatch(cmd)
	require.NoError(t, err, cmd.Kind)

	return res
}

func TestControllerManualFlow(t *testing.T) {
	c := newTestController()
	video := VideoRef{ID: "vid12345", Name: "bride.mp4"}

	dispatch(t, c, Command{Kind: CmdVideoPending, Video: video})
	dispatch(t, c, Command{Kind: CmdManualBegin})
	require.NotNil(t, c.Editor())
	assert.Equal(t, video, c.Editor().Video())

	_, err := c.Dispatch(Command{Kind: CmdManualFinalize})
	assert.ErrorIs(t, err, ErrEmpty)
	assert.NotNil(t, c.Editor())

	res := dispatch(t, c, Command{Kind: CmdManualAdd, Question: "Eye colour?", Answer: "Brown", StartTime: 42})
	require.NotNil(t, res.Entry)
	assert.Equal(t, "00:42", res.Entry.DisplayTimestamp)

	dispatch(t, c, Command{Kind: CmdManualFinalize})
	assert.Nil(t, c.Editor())
	_, pending := c.Pending()
	assert.False(t, pending)

	v := c.View()
	assert.Equal(t, StageLobby, v.Stage)
	assert.Equal(t, "C0DE", v.Code)
	assert.True(t, v.IsHost)
	assert.Equal(t, 1, v.QuestionCount)
}

func TestControllerManualBeginNeedsVideo(t *testing.T) {
	c := newTestController()

	_, err := c.Dispatch(Command{Kind: CmdManualBegin})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.Dispatch(Command{Kind: CmdManualAdd, Question: "Q", Answer: "A"})
	assert.ErrorIs(t, err, ErrNoEditor)
}

func TestControllerDiscard(t *testing.T) {
	c := newTestController()

	dispatch(t, c, Command{Kind: CmdManualBegin, Video: VideoRef{ID: "v"}})
	dispatch(t, c, Command{Kind: CmdManualAdd, Question: "Q", Answer: "A"})
	dispatch(t, c, Command{Kind: CmdManualDiscard})
	dispatch(t, c, Command{Kind: CmdManualDiscard})

	assert.Nil(t, c.Editor())
	v := c.View()
	assert.Nil(t, v.Pending)
	assert.Equal(t, StageSetup, v.Stage)
}

func TestControllerJoinBlockedDuringManualEntry(t *testing.T) {
	c := newTestController()
	dispatch(t, c, Command{Kind: CmdManualBegin, Video: VideoRef{ID: "v"}})

	_, err := c.Dispatch(Command{Kind: CmdJoin, Code: "AB12", Name: "Dan"})
	assert.ErrorIs(t, err, ErrStage)

	_, err = c.Dispatch(Command{Kind: CmdCreateHost, Questions: testQuestions(1)})
	assert.ErrorIs(t, err, ErrStage)
}

func TestControllerHostGame(t *testing.T) {
	c := newTestController()

	dispatch(t, c, Command{Kind: CmdCreateHost, Questions: testQuestions(2)})
	dispatch(t, c, Command{Kind: CmdStart})

	v := c.View()
	require.NotNil(t, v.Current)
	assert.Equal(t, "A0", v.Current.Answer)

	res := dispatch(t, c, Command{Kind: CmdSubmit, Answer: "a0"})
	require.NotNil(t, res.Correct)
	assert.True(t, *res.Correct)
	assert.Equal(t, 1, c.View().Submissions)

	dispatch(t, c, Command{Kind: CmdAdvance})
	assert.Equal(t, 0, c.View().Submissions)
	dispatch(t, c, Command{Kind: CmdAdvance})

	v = c.View()
	assert.Equal(t, StageSummary, v.Stage)
	assert.Nil(t, v.Current)

	dispatch(t, c, Command{Kind: CmdReset})
	assert.Equal(t, NewSession().Snapshot(), c.Session().Snapshot())
}

func TestControllerPlayerView(t *testing.T) {
	c := newTestController()

	dispatch(t, c, Command{Kind: CmdJoin, Code: "ab12", Name: "Avi", IsGroom: true})

	v := c.View()
	assert.Equal(t, StageLobby, v.Stage)
	assert.Equal(t, "AB12", v.Code)
	assert.False(t, v.IsHost)
	require.NotNil(t, v.Self)
	assert.True(t, v.Self.IsGroom)

	_, err := c.Dispatch(Command{Kind: CmdStart})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, StageLobby, c.View().Stage)

	_, err = c.Dispatch(Command{Kind: CmdSubmit, Answer: "x"})
	assert.ErrorIs(t, err, ErrStage)
}

func TestControllerUnknownCommand(t *testing.T) {
	c := newTestController()

	_, err := c.Dispatch(Command{Kind: "dance"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation", Kind(err))
}

func TestControllerCollectsSeveralVideos(t *testing.T) {
	c := newTestController()
	first := VideoRef{ID: "first"}
	second := VideoRef{ID: "second"}
	failed := VideoRef{ID: "failed"}

	dispatch(t, c, Command{Kind: CmdCollect, Video: first, Questions: testQuestions(2)})
	require.NotNil(t, c.Editor())
	assert.Equal(t, StageSetup, c.View().Stage)

	// A failed extraction leaves its video pending; entering its pairs by
	// hand adds it to the open set.
	dispatch(t, c, Command{Kind: CmdVideoPending, Video: failed})
	dispatch(t, c, Command{Kind: CmdManualBegin})
	_, pending := c.Pending()
	assert.False(t, pending)
	assert.Equal(t, failed, c.Editor().Video())
	dispatch(t, c, Command{Kind: CmdManualAdd, Question: "Typed?", Answer: "Yes", StartTime: 3})

	dispatch(t, c, Command{Kind: CmdCollect, Video: second, Questions: testQuestions(1)})

	v := c.View()
	require.NotNil(t, v.Editor)
	assert.Equal(t, []VideoRef{first, failed, second}, v.Editor.Videos)
	assert.Len(t, v.Editor.Entries, 4)

	dispatch(t, c, Command{Kind: CmdManualFinalize})

	state := c.Session().Snapshot()
	assert.Equal(t, StageLobby, state.Stage)
	require.Len(t, state.Questions, 4)

	seen := map[string]bool{}
	for _, q := range state.Questions {
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
	}
	assert.Equal(t, []string{"first", "first", "failed", "second"}, []string{
		state.Questions[0].SourceVideoID,
		state.Questions[1].SourceVideoID,
		state.Questions[2].SourceVideoID,
		state.Questions[3].SourceVideoID,
	})
}

func TestControllerCollectRejects(t *testing.T) {
	c := newTestController()

	_, err := c.Dispatch(Command{Kind: CmdCollect, Video: VideoRef{ID: "v"}})
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Nil(t, c.Editor())

	_, err = c.Dispatch(Command{Kind: CmdCollect, Questions: testQuestions(1)})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, c.Editor())

	dispatch(t, c, Command{Kind: CmdCreateHost, Questions: testQuestions(1)})
	_, err = c.Dispatch(Command{Kind: CmdCollect, Video: VideoRef{ID: "v"}, Questions: testQuestions(1)})
	assert.ErrorIs(t, err, ErrStage)
}
