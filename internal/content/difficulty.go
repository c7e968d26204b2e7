package content

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Difficulty grades an exercise.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DifficultyAll is the filter label that disables difficulty filtering.
const DifficultyAll = "All"

// ErrUnknownDifficulty is returned for labels that name no grade.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulties lists the valid grades from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// DifficultyFilters are the labels offered by the practice screen.
var DifficultyFilters = []string{DifficultyAll, "Easy", "Medium", "Hard"}

// Valid reports whether d is one of the known grades.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Label returns the capitalized display label ("Easy").
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// ParseDifficulty maps a label to its grade, ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	folded := fold(strings.TrimSpace(s))
	for _, d := range Difficulties {
		if folded == fold(string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownDifficulty, s)
}

// ParseDifficultyFilter validates a practice-screen filter label. An empty
// label is treated as DifficultyAll.
func ParseDifficultyFilter(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || isAll(s) {
		return DifficultyAll, nil
	}
	d, err := ParseDifficulty(s)
	if err != nil {
		return "", err
	}
	return d.Label(), nil
}

func isAll(label string) bool {
	return fold(label) == fold(DifficultyAll)
}

// fold applies Unicode case folding. A Caser keeps state, so one is built
// per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
