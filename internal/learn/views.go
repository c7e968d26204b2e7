package learn

import (
	"fmt"

	"github.com/p-n-ai/codelearn/internal/content"
)

// NoHint is the OpenHint value when every hint is collapsed.
const NoHint = -1

// LessonView is the state of one lesson detail screen. It is built per
// request and never written back to the catalog; persisting a
// completion goes through Service.CompleteLesson.
type LessonView struct {
	Lesson     content.Lesson `json:"lesson"`
	Topic      *TopicCard     `json:"topic,omitempty"`
	Next       *LessonItem    `json:"next,omitempty"`
	Completed  bool           `json:"completed"`
	Bookmarked bool           `json:"bookmarked"`
}

// MarkCompleted sets the completed flag. It only moves false to true and
// reports whether it did.
func (v *LessonView) MarkCompleted() bool {
	if v.Completed {
		return false
	}
	v.Completed = true
	return true
}

// ToggleBookmark flips the bookmark flag and returns the new value.
func (v *LessonView) ToggleBookmark() bool {
	v.Bookmarked = !v.Bookmarked
	return v.Bookmarked
}

// ExerciseView is the state of one exercise detail screen.
type ExerciseView struct {
	Exercise        content.Exercise `json:"exercise"`
	DifficultyColor string           `json:"difficultyColor"`
	Completed       bool             `json:"completed"`
	SolutionVisible bool             `json:"solutionVisible"`
	OpenHint        int              `json:"openHint"`
}

// MarkCompleted sets the completed flag. It only moves false to true and
// reports whether it did.
func (v *ExerciseView) MarkCompleted() bool {
	if v.Completed {
		return false
	}
	v.Completed = true
	return true
}

// ToggleSolution shows or hides the solution and returns the new state.
// Exercises without a solution stay hidden.
func (v *ExerciseView) ToggleSolution() bool {
	if v.Exercise.Solution == "" {
		v.SolutionVisible = false
		return false
	}
	v.SolutionVisible = !v.SolutionVisible
	return v.SolutionVisible
}

// ToggleHint opens hint i, closing any other. Toggling the open hint
// closes it. It returns the index now open, or NoHint.
func (v *ExerciseView) ToggleHint(i int) (int, error) {
	if i < 0 || i >= len(v.Exercise.Hints) {
		return v.OpenHint, fmt.Errorf("hint %d out of range [0,%d)", i, len(v.Exercise.Hints))
	}
	if v.OpenHint == i {
		v.OpenHint = NoHint
	} else {
		v.OpenHint = i
	}
	return v.OpenHint, nil
}
