package llm

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/fallback.json
var fallbackSchemaJSON []byte

const fallbackSchemaURL = "fallback.json"

func compileFallbackSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(fallbackSchemaURL, bytes.NewReader(fallbackSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add fallback schema: %w", err)
	}
	schema, err := compiler.Compile(fallbackSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile fallback schema: %w", err)
	}
	return schema, nil
}
