package quizgen

import (
	"fmt"
	"strings"
)

// Difficulty is the quiz difficulty label interpolated into the prompt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the selectable difficulty levels in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty resolves a user-supplied difficulty label,
// case-insensitively. Empty input defaults to Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	if s == "" {
		return DifficultyMedium, nil
	}
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Option is a single answer choice with its assigned letter.
type Option struct {
	Letter string
	Text   string
}

// String renders the option in the wire format "A: text".
func (o Option) String() string {
	return fmt.Sprintf("%s: %s", o.Letter, o.Text)
}

// Question is a normalized multiple-choice question. Letters are re-derived
// after shuffling; Answer always indexes into Options and the text at that
// letter is the originally-correct text.
type Question struct {
	Text        string
	Options     []Option
	Answer      string // correct letter after relabeling, one of A-D
	CorrectFull string // "<letter>: <text>" of the correct option
	Difficulty  Difficulty
}

// OptionStrings returns the options in wire format, in letter order.
func (q *Question) OptionStrings() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.String()
	}
	return out
}
