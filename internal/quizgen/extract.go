package quizgen

import (
	"fmt"
	"strings"
)

// extractJSON pulls the brace-delimited substring out of a free-form LLM
// completion: everything from the first '{' to the last '}'. This greedy
// span is deliberately not a balanced-brace scanner — a completion with
// stray braces before or after the object, or with multiple JSON objects,
// will over- or under-capture. The prompt asks for exactly one object, so
// this matches the expected shape; anything else fails downstream parsing.
func extractJSON(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	start := strings.Index(raw, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in response")
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", fmt.Errorf("no closing brace found in response")
	}

	return raw[start : end+1], nil
}
