// Package schema checks parsed briefs against the published wire shape.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dgallion1/briefgest/internal/brief"
)

//go:embed brief.schema.json
var briefSchema []byte

const schemaURL = "brief.schema.json"

// Validator holds the compiled ParsedBrief schema. It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(briefSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Raw returns the schema document.
func Raw() []byte {
	return briefSchema
}

// Validate marshals b and checks it against the schema. It returns the JSON
// so callers can store exactly what was validated.
func (v *Validator) Validate(b *brief.ParsedBrief) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal brief: %w", err)
	}
	if err := v.ValidateJSON(data); err != nil {
		return nil, err
	}
	return data, nil
}

// ValidateJSON checks raw JSON against the schema.
func (v *Validator) ValidateJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("brief does not match schema: %w", err)
	}
	return nil
}
