package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-n-ai/codelearn/internal/platform/logger"
	"github.com/p-n-ai/codelearn/internal/progress"
)

func TestHub_PublishReachesOnlyThatUser(t *testing.T) {
	hub := progress.NewHub(logger.Nop())

	a := hub.Subscribe("alice")
	b := hub.Subscribe("bob")
	defer hub.Unsubscribe(a)
	defer hub.Unsubscribe(b)

	hub.Publish(progress.Event{UserID: "alice", Type: progress.EventLessonCompleted})

	select {
	case e := <-a.Events():
		assert.Equal(t, progress.EventLessonCompleted, e.Type)
	case <-time.After(time.Second):
		t.Fatal("alice did not receive the event")
	}

	select {
	case e := <-b.Events():
		t.Fatalf("bob received %+v", e)
	default:
	}
}

func TestHub_MultipleSubscribersSameUser(t *testing.T) {
	hub := progress.NewHub(nil)

	s1 := hub.Subscribe("alice")
	s2 := hub.Subscribe("alice")
	assert.Equal(t, 2, hub.Subscribers("alice"))

	hub.Publish(progress.Event{UserID: "alice", Type: progress.EventExerciseCompleted})
	require.Len(t, s1.Events(), 1)
	require.Len(t, s2.Events(), 1)

	hub.Unsubscribe(s1)
	hub.Unsubscribe(s2)
	assert.Equal(t, 0, hub.Subscribers("alice"))
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := progress.NewHub(nil)
	sub := hub.Subscribe("alice")

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub) // second call is a no-op

	_, open := <-sub.Events()
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	hub.Publish(progress.Event{UserID: "alice", Type: progress.EventLessonCompleted})
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	hub := progress.NewHub(nil)
	sub := hub.Subscribe("alice")
	defer hub.Unsubscribe(sub)

	for i := 0; i < 100; i++ {
		hub.Publish(progress.Event{UserID: "alice", Type: progress.EventLessonCompleted})
	}
	assert.Equal(t, cap(sub.Events()), len(sub.Events()))
}
