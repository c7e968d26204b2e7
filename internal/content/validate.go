package content

import (
	"errors"
	"fmt"
)

// Validate checks the invariants a content bundle must hold before it is
// served: unique ids per collection, every topic_id naming a known topic,
// positive lesson durations and known exercise difficulties. All problems
// are reported together.
func Validate(b Bundle) error {
	var errs []error

	topicIDs := make(map[string]struct{}, len(b.Topics))
	for i, t := range b.Topics {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("topic #%d: empty id", i))
			continue
		}
		if _, dup := topicIDs[t.ID]; dup {
			errs = append(errs, fmt.Errorf("topic %q: duplicate id", t.ID))
		}
		topicIDs[t.ID] = struct{}{}
	}

	checkTopicRef := func(kind, id, topicID string) {
		if _, ok := topicIDs[topicID]; !ok {
			errs = append(errs, fmt.Errorf("%s %q: unknown topic %q", kind, id, topicID))
		}
	}

	lessonIDs := make(map[string]struct{}, len(b.Lessons))
	for i, l := range b.Lessons {
		if l.ID == "" {
			errs = append(errs, fmt.Errorf("lesson #%d: empty id", i))
			continue
		}
		if _, dup := lessonIDs[l.ID]; dup {
			errs = append(errs, fmt.Errorf("lesson %q: duplicate id", l.ID))
		}
		lessonIDs[l.ID] = struct{}{}
		checkTopicRef("lesson", l.ID, l.TopicID)
		if l.Duration <= 0 {
			errs = append(errs, fmt.Errorf("lesson %q: duration must be positive, got %d", l.ID, l.Duration))
		}
	}

	exerciseIDs := make(map[string]struct{}, len(b.Exercises))
	for i, e := range b.Exercises {
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("exercise #%d: empty id", i))
			continue
		}
		if _, dup := exerciseIDs[e.ID]; dup {
			errs = append(errs, fmt.Errorf("exercise %q: duplicate id", e.ID))
		}
		exerciseIDs[e.ID] = struct{}{}
		checkTopicRef("exercise", e.ID, e.TopicID)
		if _, err := ParseDifficulty(string(e.Difficulty)); err != nil {
			errs = append(errs, fmt.Errorf("exercise %q: %w", e.ID, err))
		}
	}

	return errors.Join(errs...)
}
