package progress_test

import (
	"context"
	"testing"

	"github.com/p-n-ai/codelearn/internal/progress"
)

func TestMemoryEventLogger_LogEvent(t *testing.T) {
	logger := progress.NewMemoryEventLogger()

	err := logger.LogEvent(context.Background(), progress.Event{
		UserID: "user-1",
		Type:   progress.EventLessonCompleted,
		Data: map[string]any{
			"lessonId": "js-variables",
		},
	})
	if err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}

	events := logger.Events()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Type != progress.EventLessonCompleted {
		t.Errorf("Type = %q, want %s", events[0].Type, progress.EventLessonCompleted)
	}
	if events[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if events[0].ID == "" {
		t.Error("ID should be set")
	}
}

func TestMemoryEventLogger_RequiresType(t *testing.T) {
	logger := progress.NewMemoryEventLogger()
	if err := logger.LogEvent(context.Background(), progress.Event{UserID: "u"}); err == nil {
		t.Fatal("expected error for missing type")
	}
	if n := len(logger.Events()); n != 0 {
		t.Errorf("len(events) = %d, want 0", n)
	}
}

func TestNopEventLogger(t *testing.T) {
	var l progress.EventLogger = progress.NopEventLogger{}
	if err := l.LogEvent(context.Background(), progress.Event{}); err != nil {
		t.Errorf("LogEvent() error = %v", err)
	}
}

func TestPostgresEventLogger_LogEvent_NilPool(t *testing.T) {
	logger := progress.NewPostgresEventLogger(nil)

	err := logger.LogEvent(context.Background(), progress.Event{
		UserID: "user-1",
		Type:   progress.EventExerciseCompleted,
	})
	if err == nil {
		t.Fatal("expected error for nil pool")
	}
}
