// Package progress tracks per-user lesson and exercise completions,
// points and daily streaks. Content records are never touched; a
// completion lives only here, keyed by user id and item id.
package progress

import (
	"errors"
	"slices"
	"time"

	"github.com/p-n-ai/codelearn/internal/content"
)

// ErrUnknownItem is returned when a completion names a lesson or
// exercise that is not in the catalog.
var ErrUnknownItem = errors.New("unknown item")

// Kind distinguishes what a completion refers to.
type Kind string

const (
	KindLesson   Kind = "lesson"
	KindExercise Kind = "exercise"
)

// Point awards.
const (
	LessonPoints = 10
)

// ExercisePoints returns the award for finishing an exercise of the
// given difficulty.
func ExercisePoints(d content.Difficulty) int {
	switch d {
	case content.Easy:
		return 10
	case content.Medium:
		return 20
	case content.Hard:
		return 30
	default:
		return 0
	}
}

// Progress is one learner's accumulated state.
type Progress struct {
	UserID             string    `json:"userId"`
	CompletedLessons   []string  `json:"completedLessons"`
	CompletedExercises []string  `json:"completedExercises"`
	Points             int       `json:"points"`
	Streak             int       `json:"streak"`
	LastActive         time.Time `json:"lastActive,omitzero"`
}

// Completion is a single "mark as completed" action.
type Completion struct {
	Kind   Kind
	ItemID string
	Points int
	At     time.Time
}

// New returns empty progress for userID.
func New(userID string) Progress {
	return Progress{
		UserID:             userID,
		CompletedLessons:   []string{},
		CompletedExercises: []string{},
	}
}

// HasLesson reports whether the lesson was completed.
func (p Progress) HasLesson(id string) bool { return slices.Contains(p.CompletedLessons, id) }

// HasExercise reports whether the exercise was completed.
func (p Progress) HasExercise(id string) bool { return slices.Contains(p.CompletedExercises, id) }

// Has reports whether the item of the given kind was completed.
func (p Progress) Has(kind Kind, id string) bool {
	if kind == KindLesson {
		return p.HasLesson(id)
	}
	return p.HasExercise(id)
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	p.CompletedLessons = cloneIDs(p.CompletedLessons)
	p.CompletedExercises = cloneIDs(p.CompletedExercises)
	return p
}

// Apply records c on p and returns the result. Completing an item twice
// is a no-op and reports false.
//
// Streaks count UTC calendar days: another completion on the same day
// keeps the streak, one on the following day extends it, and any gap
// restarts it at 1. Completions stamped before LastActive never move
// the streak backwards.
func Apply(p Progress, c Completion) (Progress, bool) {
	p = p.Clone()
	if p.Has(c.Kind, c.ItemID) {
		return p, false
	}

	switch c.Kind {
	case KindLesson:
		p.CompletedLessons = append(p.CompletedLessons, c.ItemID)
	case KindExercise:
		p.CompletedExercises = append(p.CompletedExercises, c.ItemID)
	default:
		return p, false
	}
	p.Points += c.Points

	if c.At.IsZero() {
		c.At = time.Now()
	}
	at := c.At.UTC()
	if p.LastActive.IsZero() {
		p.Streak = 1
		p.LastActive = at
		return p, true
	}

	switch days := dayNumber(at) - dayNumber(p.LastActive); {
	case days < 0:
		return p, true
	case days == 0:
		if p.Streak == 0 {
			p.Streak = 1
		}
	case days == 1:
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActive = at
	return p, true
}

// CurrentStreak is the streak as seen at now: it drops to zero once a
// full day has passed without a completion.
func (p Progress) CurrentStreak(now time.Time) int {
	if p.LastActive.IsZero() {
		return 0
	}
	if dayNumber(now.UTC())-dayNumber(p.LastActive.UTC()) > 1 {
		return 0
	}
	return p.Streak
}

func dayNumber(t time.Time) int64 {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}
