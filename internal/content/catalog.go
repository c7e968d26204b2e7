// Package content holds the read-only catalog of topics, lessons and
// exercises and the lookup and filter operations over it.
package content

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/crypto/blake2b"
)

// Catalog is the validated, immutable content store. It is safe for
// concurrent use; accessors hand out copies.
type Catalog struct {
	topics    []Topic
	lessons   []Lesson
	exercises []Exercise

	topicIdx    map[string]int
	lessonIdx   map[string]int
	exerciseIdx map[string]int

	digest string
}

// NewCatalog validates b and indexes it. Exercise difficulties are
// normalized to their lower-case form.
func NewCatalog(b Bundle) (*Catalog, error) {
	if err := Validate(b); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}

	c := &Catalog{
		topics:      slices.Clone(b.Topics),
		lessons:     slices.Clone(b.Lessons),
		exercises:   make([]Exercise, len(b.Exercises)),
		topicIdx:    make(map[string]int, len(b.Topics)),
		lessonIdx:   make(map[string]int, len(b.Lessons)),
		exerciseIdx: make(map[string]int, len(b.Exercises)),
	}
	for i, e := range b.Exercises {
		d, _ := ParseDifficulty(string(e.Difficulty)) // checked by Validate
		e.Difficulty = d
		e.Hints = slices.Clone(e.Hints)
		if e.Hints == nil {
			e.Hints = []string{}
		}
		c.exercises[i] = e
	}
	for i, t := range c.topics {
		c.topicIdx[t.ID] = i
	}
	for i, l := range c.lessons {
		c.lessonIdx[l.ID] = i
	}
	for i, e := range c.exercises {
		c.exerciseIdx[e.ID] = i
	}

	digest, err := bundleDigest(Bundle{Topics: c.topics, Lessons: c.lessons, Exercises: c.exercises})
	if err != nil {
		return nil, err
	}
	c.digest = digest
	return c, nil
}

// Topics returns all topics in bundle order.
func (c *Catalog) Topics() []Topic { return slices.Clone(c.topics) }

// Lessons returns all lessons in bundle order.
func (c *Catalog) Lessons() []Lesson { return slices.Clone(c.lessons) }

// Exercises returns all exercises in bundle order.
func (c *Catalog) Exercises() []Exercise {
	out := make([]Exercise, len(c.exercises))
	for i, e := range c.exercises {
		out[i] = cloneExercise(e)
	}
	return out
}

// Topic looks up a topic by id. Validate rejects duplicate ids, so the
// indexed entry is the only match.
func (c *Catalog) Topic(id string) (Topic, bool) {
	i, ok := c.topicIdx[id]
	if !ok {
		return Topic{}, false
	}
	return c.topics[i], true
}

// Lesson looks up a lesson by id.
func (c *Catalog) Lesson(id string) (Lesson, bool) {
	i, ok := c.lessonIdx[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// Exercise looks up an exercise by id.
func (c *Catalog) Exercise(id string) (Exercise, bool) {
	i, ok := c.exerciseIdx[id]
	if !ok {
		return Exercise{}, false
	}
	return cloneExercise(c.exercises[i]), true
}

// LessonsForTopic returns the lessons of a topic in bundle order.
func (c *Catalog) LessonsForTopic(topicID string) []Lesson {
	return FilterLessonsByTopic(c.lessons, topicID)
}

// ExercisesForTopic returns the exercises of a topic in bundle order.
func (c *Catalog) ExercisesForTopic(topicID string) []Exercise {
	return FilterExercisesByTopic(c.Exercises(), topicID)
}

// ExercisesByDifficulty applies FilterExercisesByDifficulty to the catalog.
func (c *Catalog) ExercisesByDifficulty(label string) []Exercise {
	return FilterExercisesByDifficulty(c.Exercises(), label)
}

// NextLesson returns the lesson that follows id within the same topic.
func (c *Catalog) NextLesson(id string) (Lesson, bool) {
	i, ok := c.lessonIdx[id]
	if !ok {
		return Lesson{}, false
	}
	topicID := c.lessons[i].TopicID
	for _, l := range c.lessons[i+1:] {
		if l.TopicID == topicID {
			return l, true
		}
	}
	return Lesson{}, false
}

// Digest identifies the catalog contents. Two catalogs built from equal
// bundles share a digest.
func (c *Catalog) Digest() string { return c.digest }

func cloneExercise(e Exercise) Exercise {
	e.Hints = slices.Clone(e.Hints)
	return e
}

func bundleDigest(b Bundle) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encoding bundle for digest: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}
