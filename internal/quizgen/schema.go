package quizgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionSchemaDef is the JSON Schema the extracted object must satisfy
// before normalization: a question string, exactly four "<letter>: <text>"
// options, and a single-letter answer (case-insensitive).
var questionSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"question", "options", "answer"},
	"properties": map[string]any{
		"question": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type":     "array",
			"minItems": 4,
			"maxItems": 4,
			"items": map[string]any{
				"type":    "string",
				"pattern": `^[A-Da-d]\s*:`,
			},
		},
		"answer": map[string]any{
			"type":    "string",
			"pattern": `^\s*[A-Da-d]\s*$`,
		},
	},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// validatePayload checks the extracted JSON against the question schema.
func validatePayload(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := questionSchema()
	if err != nil {
		return fmt.Errorf("compile question schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// questionSchema compiles the schema once and caches it.
func questionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not
		// raw bytes. Marshal then unmarshal to get a clean representation.
		defBytes, err := json.Marshal(questionSchemaDef)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://mcq-question.json", defParsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://mcq-question.json")
	})
	return compiledSchema, schemaErr
}
