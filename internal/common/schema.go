package common

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CompileSchema compiles a JSON Schema document registered under name.
func CompileSchema(name string, schema []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
}

// MustCompileSchema is CompileSchema for package-level schemas.
func MustCompileSchema(name string, schema []byte) *jsonschema.Schema {
	s, err := CompileSchema(name, schema)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateJSON validates raw JSON bytes against a compiled schema.
// Failures wrap ErrValidation.
func ValidateJSON(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return NewAppError("INVALID_JSON", "malformed JSON body", fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	if err := schema.Validate(v); err != nil {
		return NewAppError("SCHEMA_MISMATCH", err.Error(), ErrValidation)
	}
	return nil
}
