package quizgen

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ParseError reports a failed extraction or validation of the generated
// JSON. Raw preserves the original completion text so the UI can show it.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse question: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// letters are the canonical option labels, reassigned after shuffling.
var letters = []string{"A", "B", "C", "D"}

// rawQuestion is the JSON shape the LLM is prompted to produce.
type rawQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Normalize extracts the JSON object from a raw completion, validates it,
// shuffles the four options uniformly, and reassigns letters A-D. The
// correct answer's text is preserved; only its letter changes.
func Normalize(rawText string, difficulty Difficulty) (*Question, error) {
	captured, err := extractJSON(rawText)
	if err != nil {
		return nil, &ParseError{Raw: rawText, Err: err}
	}

	if err := validatePayload([]byte(captured)); err != nil {
		return nil, &ParseError{Raw: rawText, Err: err}
	}

	var rq rawQuestion
	if err := json.Unmarshal([]byte(captured), &rq); err != nil {
		return nil, &ParseError{Raw: rawText, Err: err}
	}

	// Map original letter → option text.
	byLetter := make(map[string]string, len(rq.Options))
	texts := make([]string, 0, len(rq.Options))
	for _, opt := range rq.Options {
		letter, text, ok := splitOption(opt)
		if !ok {
			return nil, &ParseError{Raw: rawText, Err: fmt.Errorf("malformed option %q", opt)}
		}
		byLetter[letter] = text
		texts = append(texts, text)
	}

	correctLetter := strings.ToUpper(strings.TrimSpace(rq.Answer))
	correctText, ok := byLetter[correctLetter]
	if !ok {
		return nil, &ParseError{
			Raw: rawText,
			Err: fmt.Errorf("answer letter %q not among options", correctLetter),
		}
	}

	options, newAnswer := shuffleAndRelabel(texts, correctText)

	return &Question{
		Text:        strings.TrimSpace(rq.Question),
		Options:     options,
		Answer:      newAnswer,
		CorrectFull: fmt.Sprintf("%s: %s", newAnswer, correctText),
		Difficulty:  difficulty,
	}, nil
}

// shuffleAndRelabel produces a uniformly random permutation of the option
// texts and reassigns letters in order. The returned answer letter is the
// position now holding correctText.
func shuffleAndRelabel(texts []string, correctText string) ([]Option, string) {
	shuffled := make([]string, len(texts))
	copy(shuffled, texts)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	options := make([]Option, len(shuffled))
	answer := ""
	for i, text := range shuffled {
		options[i] = Option{Letter: letters[i], Text: text}
		if text == correctText && answer == "" {
			answer = letters[i]
		}
	}
	return options, answer
}

// splitOption splits "A: Roman Reigns" into ("A", "Roman Reigns").
func splitOption(opt string) (letter, text string, ok bool) {
	before, after, found := strings.Cut(opt, ":")
	if !found {
		return "", "", false
	}
	letter = strings.ToUpper(strings.TrimSpace(before))
	text = strings.TrimSpace(after)
	if len(letter) != 1 || text == "" {
		return "", "", false
	}
	return letter, text, true
}
