package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLessons() []Lesson {
	return []Lesson{
		{ID: "a", TopicID: "js", Duration: 5},
		{ID: "b", TopicID: "py", Duration: 5},
		{ID: "c", TopicID: "js", Duration: 5},
		{ID: "a", TopicID: "py", Duration: 9},
	}
}

func TestFilterLessonsByTopic(t *testing.T) {
	src := sampleLessons()
	before := append([]Lesson(nil), src...)

	got := FilterLessonsByTopic(src, "js")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	got[0].ID = "mutated"
	assert.Equal(t, before, src, "source must not change")

	none := FilterLessonsByTopic(src, "react")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFilterExercisesByDifficulty(t *testing.T) {
	src := []Exercise{
		{ID: "1", Difficulty: Easy},
		{ID: "2", Difficulty: Medium},
		{ID: "3", Difficulty: "Easy"},
		{ID: "4", Difficulty: Hard},
	}

	tests := []struct {
		label string
		want  []string
	}{
		{"All", []string{"1", "2", "3", "4"}},
		{"all", []string{"1", "2", "3", "4"}},
		{"easy", []string{"1", "3"}},
		{"EASY", []string{"1", "3"}},
		{"Medium", []string{"2"}},
		{"hard", []string{"4"}},
		{"extreme", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := FilterExercisesByDifficulty(src, tt.label)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", Easy, false},
		{"Medium", Medium, false},
		{" HARD ", Hard, false},
		{"All", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDifficultyFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "All", false},
		{"ALL", "All", false},
		{"easy", "Easy", false},
		{"hard", "Hard", false},
		{"expert", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficultyFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficultyFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficultyFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDifficultyLabel(t *testing.T) {
	assert.Equal(t, "Easy", Easy.Label())
	assert.Equal(t, "Medium", Medium.Label())
	assert.Equal(t, "", Difficulty("").Label())
	assert.True(t, Hard.Valid())
	assert.False(t, Difficulty("Hard").Valid())
}
