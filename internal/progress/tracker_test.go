package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-n-ai/codelearn/internal/content"
	"github.com/p-n-ai/codelearn/internal/progress"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTracker(t *testing.T, clk *clock) (*progress.Tracker, *progress.MemoryEventLogger, *progress.Hub) {
	t.Helper()
	catalog, err := content.LoadEmbedded()
	require.NoError(t, err)

	events := progress.NewMemoryEventLogger()
	hub := progress.NewHub(nil)
	return progress.NewTracker(progress.TrackerConfig{
		Catalog: catalog,
		Store:   progress.NewMemoryStore(),
		Events:  events,
		Hub:     hub,
		Now:     clk.now,
	}), events, hub
}

func TestTracker_CompleteLesson(t *testing.T) {
	clk := &clock{t: day(1, 9)}
	tr, events, hub := newTracker(t, clk)
	sub := hub.Subscribe("u1")
	defer hub.Unsubscribe(sub)

	res, err := tr.CompleteLesson(context.Background(), "u1", "js-variables")
	require.NoError(t, err)
	assert.Equal(t, 10, res.Awarded)
	assert.False(t, res.AlreadyCompleted)
	assert.Equal(t, []string{"js-variables"}, res.Progress.CompletedLessons)
	assert.Equal(t, 1, res.Progress.Streak)

	logged := events.Events()
	require.Len(t, logged, 1)
	assert.Equal(t, progress.EventLessonCompleted, logged[0].Type)
	assert.Equal(t, "javascript", logged[0].Data["topicId"])
	assert.Equal(t, 10, logged[0].Data["totalPoints"])

	select {
	case e := <-sub.Events():
		assert.Equal(t, logged[0].ID, e.ID)
	default:
		t.Fatal("subscriber did not receive the event")
	}
}

func TestTracker_RepeatCompletionIsIdempotent(t *testing.T) {
	clk := &clock{t: day(1, 9)}
	tr, events, _ := newTracker(t, clk)
	ctx := context.Background()

	_, err := tr.CompleteLesson(ctx, "u1", "js-variables")
	require.NoError(t, err)

	clk.t = day(2, 9)
	res, err := tr.CompleteLesson(ctx, "u1", "js-variables")
	require.NoError(t, err)
	assert.True(t, res.AlreadyCompleted)
	assert.Zero(t, res.Awarded)
	assert.Equal(t, 10, res.Progress.Points)
	assert.Equal(t, 1, res.Progress.Streak)
	assert.Len(t, events.Events(), 1)
}

func TestTracker_CompleteExerciseScoresByDifficulty(t *testing.T) {
	clk := &clock{t: day(1, 9)}
	tr, _, _ := newTracker(t, clk)
	ctx := context.Background()

	res, err := tr.CompleteExercise(ctx, "u1", "js-var-exercise")
	require.NoError(t, err)
	assert.Equal(t, 10, res.Awarded)

	clk.t = day(2, 8)
	res, err = tr.CompleteExercise(ctx, "u1", "dsa-array-exercise")
	require.NoError(t, err)
	assert.Equal(t, 20, res.Awarded)
	assert.Equal(t, 30, res.Progress.Points)
	assert.Equal(t, 2, res.Progress.Streak)
}

func TestTracker_UnknownItems(t *testing.T) {
	tr, events, _ := newTracker(t, &clock{t: day(1, 9)})
	ctx := context.Background()

	_, err := tr.CompleteLesson(ctx, "u1", "no-such-lesson")
	assert.True(t, errors.Is(err, progress.ErrUnknownItem))

	_, err = tr.CompleteExercise(ctx, "u1", "js-variables")
	assert.ErrorIs(t, err, progress.ErrUnknownItem, "a lesson id is not an exercise id")

	p, err := tr.Progress(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, p.Points)
	assert.Empty(t, events.Events())
}

type failingEvents struct{}

func (failingEvents) LogEvent(context.Context, progress.Event) error {
	return errors.New("events table unavailable")
}

func TestTracker_EventFailureDoesNotFailCompletion(t *testing.T) {
	catalog, err := content.LoadEmbedded()
	require.NoError(t, err)

	tr := progress.NewTracker(progress.TrackerConfig{
		Catalog: catalog,
		Events:  failingEvents{},
	})
	res, err := tr.CompleteLesson(context.Background(), "u1", "python-variables")
	require.NoError(t, err)
	assert.Equal(t, 10, res.Progress.Points)
}
