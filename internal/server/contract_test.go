package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
)

var formSchema = map[string]any{
	"type":                 "object",
	"required":             []string{"id", "name", "email", "extractedText", "createdAt"},
	"additionalProperties": false,
	"properties": map[string]any{
		"id":            map[string]any{"type": "string", "format": "uuid"},
		"name":          map[string]any{"type": "string", "minLength": 1},
		"email":         map[string]any{"type": "string", "minLength": 1},
		"extractedText": map[string]any{"type": "string", "minLength": 1},
		"createdAt":     map[string]any{"type": "string", "format": "date-time"},
	},
}

var uploadOKSchema = map[string]any{
	"type":                 "object",
	"required":             []string{"message", "form"},
	"additionalProperties": false,
	"properties": map[string]any{
		"message": map[string]any{"const": "File uploaded and data saved"},
		"form":    formSchema,
	},
}

var formListSchema = map[string]any{
	"type":  "array",
	"items": formSchema,
}

var errorSchema = map[string]any{
	"type":                 "object",
	"required":             []string{"message"},
	"additionalProperties": false,
	"properties": map[string]any{
		"message": map[string]any{"type": "string", "minLength": 1},
		"error":   map[string]any{"type": "string"},
	},
}

// validateJSONAgainstSchema validates data against schemaMap.
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

func requireSchema(t *testing.T, schemaMap map[string]any, body []byte) {
	t.Helper()
	require.NoError(t, validateJSONAgainstSchema(schemaMap, body), string(body))
}
