package learn

import (
	"github.com/p-n-ai/codelearn/internal/content"
	"github.com/p-n-ai/codelearn/internal/progress"
)

// Icons the client knows how to draw. Topic icon keys outside this set
// render as IconFallback.
const (
	IconCode         = "code"
	IconAtom         = "atom"
	IconFolderTree   = "folder-tree"
	IconBrainCircuit = "brain-circuit"
	IconTerminal     = "terminal"
	IconGlobe        = "globe"
	IconFallback     = "alert-circle"
)

var knownIcons = map[string]struct{}{
	IconCode:         {},
	IconAtom:         {},
	IconFolderTree:   {},
	IconBrainCircuit: {},
	IconTerminal:     {},
	IconGlobe:        {},
}

// IconFor resolves a topic's icon key.
func IconFor(key string) string {
	if _, ok := knownIcons[key]; ok {
		return key
	}
	return IconFallback
}

// Difficulty badge colors, from easy to hard. ColorTertiary marks an
// unknown grade.
const (
	ColorSuccess  = "#22C55E"
	ColorWarning  = "#F59E0B"
	ColorError    = "#EF4444"
	ColorTertiary = "#9CA3AF"
)

// DifficultyColor is the badge color for a difficulty.
func DifficultyColor(d content.Difficulty) string {
	switch d {
	case content.Easy:
		return ColorSuccess
	case content.Medium:
		return ColorWarning
	case content.Hard:
		return ColorError
	default:
		return ColorTertiary
	}
}

// TopicCard is a topic with the counts and progress shown on its card.
type TopicCard struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Icon             string  `json:"icon"`
	Color            string  `json:"color"`
	LessonCount      int     `json:"lessonCount"`
	ExerciseCount    int     `json:"exerciseCount"`
	CompletedLessons int     `json:"completedLessons"`
	Progress         float64 `json:"progress"` // 0 to 1
}

// LessonItem is a row in a lesson list.
type LessonItem struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	TopicID     string `json:"topicId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Completed   bool   `json:"completed"`
}

// ExerciseItem is a row in an exercise list.
type ExerciseItem struct {
	Index           int    `json:"index"`
	ID              string `json:"id"`
	TopicID         string `json:"topicId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Difficulty      string `json:"difficulty"`
	DifficultyColor string `json:"difficultyColor"`
	HasCodeTemplate bool   `json:"hasCodeTemplate"`
	Completed       bool   `json:"completed"`
}

func topicCard(c *content.Catalog, t content.Topic, p progress.Progress) TopicCard {
	lessons := c.LessonsForTopic(t.ID)
	done := 0
	for _, l := range lessons {
		if p.HasLesson(l.ID) {
			done++
		}
	}
	return TopicCard{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Icon:             IconFor(t.Icon),
		Color:            t.Color,
		LessonCount:      len(lessons),
		ExerciseCount:    len(c.ExercisesForTopic(t.ID)),
		CompletedLessons: done,
		Progress:         ratio(done, len(lessons)),
	}
}

func lessonItems(lessons []content.Lesson, p progress.Progress) []LessonItem {
	out := make([]LessonItem, len(lessons))
	for i, l := range lessons {
		out[i] = lessonItem(i, l, p)
	}
	return out
}

func lessonItem(i int, l content.Lesson, p progress.Progress) LessonItem {
	return LessonItem{
		Index:       i,
		ID:          l.ID,
		TopicID:     l.TopicID,
		Title:       l.Title,
		Description: l.Description,
		Duration:    l.Duration,
		Completed:   p.HasLesson(l.ID),
	}
}

func exerciseItems(exercises []content.Exercise, p progress.Progress) []ExerciseItem {
	out := make([]ExerciseItem, len(exercises))
	for i, e := range exercises {
		out[i] = ExerciseItem{
			Index:           i,
			ID:              e.ID,
			TopicID:         e.TopicID,
			Title:           e.Title,
			Description:     e.Description,
			Difficulty:      e.Difficulty.Label(),
			DifficultyColor: DifficultyColor(e.Difficulty),
			HasCodeTemplate: e.CodeTemplate != "",
			Completed:       p.HasExercise(e.ID),
		}
	}
	return out
}

func ratio(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total)
}
