package content

// FilterLessonsByTopic returns the lessons of topicID in their original
// order. The result never aliases the input and is empty, not nil, when
// nothing matches.
func FilterLessonsByTopic(lessons []Lesson, topicID string) []Lesson {
	return filter(lessons, func(l Lesson) bool { return l.TopicID == topicID })
}

// FilterExercisesByTopic is FilterLessonsByTopic for exercises.
func FilterExercisesByTopic(exercises []Exercise, topicID string) []Exercise {
	return filter(exercises, func(e Exercise) bool { return e.TopicID == topicID })
}

// FilterExercisesByDifficulty returns exercises whose difficulty matches
// label under case folding. DifficultyAll (any case) returns every
// exercise; an unknown label matches nothing.
func FilterExercisesByDifficulty(exercises []Exercise, label string) []Exercise {
	if isAll(label) {
		return filter(exercises, func(Exercise) bool { return true })
	}
	want := fold(label)
	return filter(exercises, func(e Exercise) bool { return fold(string(e.Difficulty)) == want })
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
