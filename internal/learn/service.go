// Package learn builds the per-screen views of the learning app (home,
// learn, practice, lesson and exercise detail) from the content catalog
// and the caller's progress.
package learn

import (
	"context"
	"fmt"

	"github.com/p-n-ai/codelearn/internal/content"
	"github.com/p-n-ai/codelearn/internal/progress"
)

// Service assembles screen views. An empty userID is an anonymous
// caller: every completed flag is false.
type Service struct {
	catalog *content.Catalog
	tracker *progress.Tracker
}

// NewService creates a view service.
func NewService(catalog *content.Catalog, tracker *progress.Tracker) *Service {
	return &Service{catalog: catalog, tracker: tracker}
}

// Catalog returns the content the service reads from.
func (s *Service) Catalog() *content.Catalog { return s.catalog }

// HomeView is the home screen.
type HomeView struct {
	UserID           string         `json:"userId"`
	OverallProgress  float64        `json:"overallProgress"` // 0 to 1
	CompletedLessons int            `json:"completedLessons"`
	TotalLessons     int            `json:"totalLessons"`
	Streak           int            `json:"streak"`
	Points           int            `json:"points"`
	ContinueLearning []ContinueItem `json:"continueLearning"`
	Topics           []TopicCard    `json:"topics"`
}

// ContinueItem is a started topic and the lesson to resume with.
type ContinueItem struct {
	Topic      TopicCard  `json:"topic"`
	NextLesson LessonItem `json:"nextLesson"`
}

// LearnView is the learn screen: either the topic list or one topic's
// lessons.
type LearnView struct {
	ShowAllTopics bool           `json:"showAllTopics"`
	Topics        []TopicCard    `json:"topics,omitempty"`
	Topic         *TopicCard     `json:"topic,omitempty"`
	Lessons       []LessonItem   `json:"lessons,omitempty"`
	Exercises     []ExerciseItem `json:"exercises,omitempty"`
}

// PracticeView is the practice screen.
type PracticeView struct {
	Filter    string         `json:"filter"`
	Filters   []string       `json:"filters"`
	Exercises []ExerciseItem `json:"exercises"`
}

// TopicDetail is a topic with all its lessons and exercises.
type TopicDetail struct {
	Topic     TopicCard      `json:"topic"`
	Lessons   []LessonItem   `json:"lessons"`
	Exercises []ExerciseItem `json:"exercises"`
}

func (s *Service) progressFor(ctx context.Context, userID string) (progress.Progress, error) {
	if userID == "" {
		return progress.New(""), nil
	}
	p, err := s.tracker.Progress(ctx, userID)
	if err != nil {
		return progress.Progress{}, fmt.Errorf("loading progress: %w", err)
	}
	return p, nil
}

// Topics returns every topic card in catalog order.
func (s *Service) Topics(ctx context.Context, userID string) ([]TopicCard, error) {
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.topicCards(p), nil
}

func (s *Service) topicCards(p progress.Progress) []TopicCard {
	topics := s.catalog.Topics()
	out := make([]TopicCard, len(topics))
	for i, t := range topics {
		out[i] = topicCard(s.catalog, t, p)
	}
	return out
}

// Topic returns one topic with its lessons and exercises. The bool is
// false when no topic has that id.
func (s *Service) Topic(ctx context.Context, userID, topicID string) (TopicDetail, bool, error) {
	t, ok := s.catalog.Topic(topicID)
	if !ok {
		return TopicDetail{}, false, nil
	}
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return TopicDetail{}, false, err
	}
	return TopicDetail{
		Topic:     topicCard(s.catalog, t, p),
		Lessons:   lessonItems(s.catalog.LessonsForTopic(t.ID), p),
		Exercises: exerciseItems(s.catalog.ExercisesForTopic(t.ID), p),
	}, true, nil
}

// Home builds the home screen. Overall progress is completed lessons
// over all lessons in the catalog.
func (s *Service) Home(ctx context.Context, userID string) (HomeView, error) {
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return HomeView{}, err
	}

	total := len(s.catalog.Lessons())
	done := 0
	for _, id := range p.CompletedLessons {
		if _, ok := s.catalog.Lesson(id); ok {
			done++
		}
	}

	cards := s.topicCards(p)
	resume := []ContinueItem{}
	for _, card := range cards {
		if card.CompletedLessons == 0 || card.CompletedLessons == card.LessonCount {
			continue
		}
		lessons := s.catalog.LessonsForTopic(card.ID)
		for i, l := range lessons {
			if !p.HasLesson(l.ID) {
				resume = append(resume, ContinueItem{Topic: card, NextLesson: lessonItem(i, l, p)})
				break
			}
		}
	}

	return HomeView{
		UserID:           userID,
		OverallProgress:  ratio(done, total),
		CompletedLessons: done,
		TotalLessons:     total,
		Streak:           p.CurrentStreak(s.tracker.Now()),
		Points:           p.Points,
		ContinueLearning: resume,
		Topics:           cards,
	}, nil
}

// Learn builds the learn screen. A known topicID selects that topic;
// otherwise a known lessonID selects the lesson's topic; otherwise the
// screen lists all topics.
func (s *Service) Learn(ctx context.Context, userID, topicID, lessonID string) (LearnView, error) {
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return LearnView{}, err
	}

	var (
		topic content.Topic
		found bool
	)
	switch {
	case topicID != "":
		topic, found = s.catalog.Topic(topicID)
	case lessonID != "":
		if l, ok := s.catalog.Lesson(lessonID); ok {
			topic, found = s.catalog.Topic(l.TopicID)
		}
	}
	if !found {
		return LearnView{ShowAllTopics: true, Topics: s.topicCards(p)}, nil
	}

	card := topicCard(s.catalog, topic, p)
	return LearnView{
		Topic:     &card,
		Lessons:   lessonItems(s.catalog.LessonsForTopic(topic.ID), p),
		Exercises: exerciseItems(s.catalog.ExercisesForTopic(topic.ID), p),
	}, nil
}

// Practice builds the practice screen for a difficulty filter label.
// Unknown labels fail with content.ErrUnknownDifficulty.
func (s *Service) Practice(ctx context.Context, userID, filter string) (PracticeView, error) {
	label, err := content.ParseDifficultyFilter(filter)
	if err != nil {
		return PracticeView{}, err
	}
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return PracticeView{}, err
	}
	return PracticeView{
		Filter:    label,
		Filters:   append([]string(nil), content.DifficultyFilters...),
		Exercises: exerciseItems(s.catalog.ExercisesByDifficulty(label), p),
	}, nil
}

// LessonDetail builds a fresh lesson view. The bool is false when no
// lesson has that id.
func (s *Service) LessonDetail(ctx context.Context, userID, lessonID string) (*LessonView, bool, error) {
	l, ok := s.catalog.Lesson(lessonID)
	if !ok {
		return nil, false, nil
	}
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return s.lessonView(l, p), true, nil
}

func (s *Service) lessonView(l content.Lesson, p progress.Progress) *LessonView {
	v := &LessonView{Lesson: l, Completed: p.HasLesson(l.ID)}
	if t, ok := s.catalog.Topic(l.TopicID); ok {
		card := topicCard(s.catalog, t, p)
		v.Topic = &card
	}
	if next, ok := s.catalog.NextLesson(l.ID); ok {
		item := lessonItem(s.indexInTopic(next), next, p)
		v.Next = &item
	}
	return v
}

// ExerciseDetail builds a fresh exercise view with every hint closed and
// the solution hidden.
func (s *Service) ExerciseDetail(ctx context.Context, userID, exerciseID string) (*ExerciseView, bool, error) {
	e, ok := s.catalog.Exercise(exerciseID)
	if !ok {
		return nil, false, nil
	}
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return exerciseView(e, p), true, nil
}

func exerciseView(e content.Exercise, p progress.Progress) *ExerciseView {
	return &ExerciseView{
		Exercise:        e,
		DifficultyColor: DifficultyColor(e.Difficulty),
		Completed:       p.HasExercise(e.ID),
		OpenHint:        NoHint,
	}
}

// CompleteLesson marks the lesson completed on a fresh view and persists
// the completion when the flag flipped. A repeat completion reads back the
// stored progress without writing.
func (s *Service) CompleteLesson(ctx context.Context, userID, lessonID string) (progress.Result, error) {
	l, ok := s.catalog.Lesson(lessonID)
	if !ok {
		return progress.Result{}, fmt.Errorf("lesson %q: %w", lessonID, progress.ErrUnknownItem)
	}
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return progress.Result{}, err
	}
	if !s.lessonView(l, p).MarkCompleted() {
		return progress.Result{Progress: p, AlreadyCompleted: true}, nil
	}
	return s.tracker.CompleteLesson(ctx, userID, lessonID)
}

// CompleteExercise is CompleteLesson for exercises.
func (s *Service) CompleteExercise(ctx context.Context, userID, exerciseID string) (progress.Result, error) {
	e, ok := s.catalog.Exercise(exerciseID)
	if !ok {
		return progress.Result{}, fmt.Errorf("exercise %q: %w", exerciseID, progress.ErrUnknownItem)
	}
	p, err := s.progressFor(ctx, userID)
	if err != nil {
		return progress.Result{}, err
	}
	if !exerciseView(e, p).MarkCompleted() {
		return progress.Result{Progress: p, AlreadyCompleted: true}, nil
	}
	return s.tracker.CompleteExercise(ctx, userID, exerciseID)
}

// Progress returns the caller's raw progress record.
func (s *Service) Progress(ctx context.Context, userID string) (progress.Progress, error) {
	return s.tracker.Progress(ctx, userID)
}

func (s *Service) indexInTopic(l content.Lesson) int {
	for i, other := range s.catalog.LessonsForTopic(l.TopicID) {
		if other.ID == l.ID {
			return i
		}
	}
	return 0
}
