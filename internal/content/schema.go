package content

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// bundleSchema describes a single content file. Cross-file rules (unique
// ids, topic references) are checked by Validate.
const bundleSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "topics":    {"type": "array", "items": {"$ref": "#/definitions/topic"}},
    "lessons":   {"type": "array", "items": {"$ref": "#/definitions/lesson"}},
    "exercises": {"type": "array", "items": {"$ref": "#/definitions/exercise"}}
  },
  "definitions": {
    "id": {"type": "string", "pattern": "^[a-z0-9][a-z0-9_-]*$"},
    "topic": {
      "type": "object",
      "additionalProperties": false,
      "required": ["id", "title"],
      "properties": {
        "id":          {"$ref": "#/definitions/id"},
        "title":       {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "icon":        {"type": "string"},
        "color":       {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
      }
    },
    "lesson": {
      "type": "object",
      "additionalProperties": false,
      "required": ["id", "topic_id", "title", "duration", "content"],
      "properties": {
        "id":           {"$ref": "#/definitions/id"},
        "topic_id":     {"$ref": "#/definitions/id"},
        "title":        {"type": "string", "minLength": 1},
        "description":  {"type": "string"},
        "duration":     {"type": "integer", "minimum": 1},
        "content":      {"type": "string", "minLength": 1},
        "code_example": {"type": "string"}
      }
    },
    "exercise": {
      "type": "object",
      "additionalProperties": false,
      "required": ["id", "topic_id", "title", "difficulty", "instructions"],
      "properties": {
        "id":            {"$ref": "#/definitions/id"},
        "topic_id":      {"$ref": "#/definitions/id"},
        "title":         {"type": "string", "minLength": 1},
        "description":   {"type": "string"},
        "difficulty":    {"type": "string", "pattern": "(?i)^(easy|medium|hard)$"},
        "instructions":  {"type": "string", "minLength": 1},
        "code_template": {"type": "string"},
        "solution":      {"type": "string"},
        "hints":         {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var (
	compiledSchema     *gojsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func schema() (*gojsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiledSchema, compiledSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(bundleSchema))
	})
	return compiledSchema, compiledSchemaErr
}

// checkSchema validates a decoded YAML document against the bundle schema.
func checkSchema(doc any) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compiling content schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating against content schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
}
