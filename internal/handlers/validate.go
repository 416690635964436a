package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const rankRequestSchema = `{
	"type": "object",
	"required": ["job_description", "resumes"],
	"properties": {
		"job_description": {"type": "string"},
		"resumes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "text"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"text": {"type": "string"}
				}
			}
		}
	}
}`

func compileSchema(name, src string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// validateJSON checks a request body against schema before it is bound.
func validateJSON(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("request does not match schema: %w", err)
	}
	return nil
}
