package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/p-n-ai/codelearn/internal/content"
	"github.com/p-n-ai/codelearn/internal/platform/logger"
)

// TrackerConfig holds dependencies for the tracker.
type TrackerConfig struct {
	Catalog *content.Catalog
	Store   Store
	Events  EventLogger
	Hub     *Hub             // optional
	Now     func() time.Time // defaults to time.Now
}

// Tracker validates completions against the catalog, scores them,
// persists them and announces them.
type Tracker struct {
	catalog *content.Catalog
	store   Store
	events  EventLogger
	hub     *Hub
	now     func() time.Time
}

// Result is the outcome of a completion request.
type Result struct {
	Progress         Progress `json:"progress"`
	Awarded          int      `json:"awarded"`
	AlreadyCompleted bool     `json:"alreadyCompleted"`
}

// NewTracker creates a tracker. Catalog is required.
func NewTracker(cfg TrackerConfig) *Tracker {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	events := cfg.Events
	if events == nil {
		events = NopEventLogger{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		catalog: cfg.Catalog,
		store:   store,
		events:  events,
		hub:     cfg.Hub,
		now:     now,
	}
}

// Progress returns the user's current progress.
func (t *Tracker) Progress(ctx context.Context, userID string) (Progress, error) {
	return t.store.Get(ctx, userID)
}

// Now returns the tracker's clock reading.
func (t *Tracker) Now() time.Time { return t.now() }

// CompleteLesson marks a lesson completed for userID.
func (t *Tracker) CompleteLesson(ctx context.Context, userID, lessonID string) (Result, error) {
	lesson, ok := t.catalog.Lesson(lessonID)
	if !ok {
		return Result{}, fmt.Errorf("lesson %q: %w", lessonID, ErrUnknownItem)
	}
	return t.complete(ctx, userID, Completion{
		Kind:   KindLesson,
		ItemID: lesson.ID,
		Points: LessonPoints,
	}, EventLessonCompleted, map[string]any{
		"lessonId": lesson.ID,
		"topicId":  lesson.TopicID,
	})
}

// CompleteExercise marks an exercise completed for userID.
func (t *Tracker) CompleteExercise(ctx context.Context, userID, exerciseID string) (Result, error) {
	ex, ok := t.catalog.Exercise(exerciseID)
	if !ok {
		return Result{}, fmt.Errorf("exercise %q: %w", exerciseID, ErrUnknownItem)
	}
	return t.complete(ctx, userID, Completion{
		Kind:   KindExercise,
		ItemID: ex.ID,
		Points: ExercisePoints(ex.Difficulty),
	}, EventExerciseCompleted, map[string]any{
		"exerciseId": ex.ID,
		"topicId":    ex.TopicID,
		"difficulty": string(ex.Difficulty),
	})
}

func (t *Tracker) complete(ctx context.Context, userID string, c Completion, eventType string, data map[string]any) (Result, error) {
	c.At = t.now()

	p, changed, err := t.store.Record(ctx, userID, c)
	if err != nil {
		return Result{}, fmt.Errorf("record %s %q: %w", c.Kind, c.ItemID, err)
	}
	if !changed {
		return Result{Progress: p, AlreadyCompleted: true}, nil
	}

	data["points"] = c.Points
	data["totalPoints"] = p.Points
	data["streak"] = p.Streak
	event := stamp(Event{
		UserID:    userID,
		Type:      eventType,
		Data:      data,
		CreatedAt: c.At,
	})
	// The completion is already stored; a lost event is only logged.
	if err := t.events.LogEvent(ctx, event); err != nil {
		logger.Error("failed to log progress event", "type", eventType, "user_id", userID, "error", err)
	}
	if t.hub != nil {
		t.hub.Publish(event)
	}

	logger.Info("progress recorded",
		"user_id", userID,
		"kind", string(c.Kind),
		"item_id", c.ItemID,
		"points", c.Points,
		"streak", p.Streak,
	)
	return Result{Progress: p, Awarded: c.Points}, nil
}
