package validate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateAgainstSchema validates JSON data against the given schema document.
// name registers the schema resource, ref optionally points at a subschema
// (e.g. "#/$defs/logging"); an empty ref validates against the whole schema.
func ValidateAgainstSchema(name string, schema []byte, data []byte, ref string) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(schema)); err != nil {
		return fmt.Errorf("adding schema resource %s: %w", name, err)
	}

	target := name
	if ref != "" {
		target = name + ref
	}
	sch, err := compiler.Compile(target)
	if err != nil {
		return fmt.Errorf("compiling schema %s: %w", target, err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
