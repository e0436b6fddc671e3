// Package jsonschema validates rendered documents against the embedded
// reference-page schemas.
package jsonschema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/fwojciec/wcdoc"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/*.json
var schemaFS embed.FS

// baseURL identifies the embedded schemas; nothing is fetched from it.
const baseURL = "https://github.com/fwojciec/wcdoc/schema/"

// Ensure Validator implements wcdoc.Validator at compile time.
var _ wcdoc.Validator = (*Validator)(nil)

// Validator checks documents against compiled JSON Schemas.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator compiles every embedded schema.
func NewValidator() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	var names []string
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schema", e.Name()))
		if err != nil {
			return nil, err
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("internal error: failed to parse schema %s: %w", e.Name(), err)
		}
		if err := c.AddResource(baseURL+e.Name(), doc); err != nil {
			return nil, fmt.Errorf("internal error: failed to add schema %s: %w", e.Name(), err)
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		sch, err := c.Compile(baseURL + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("internal error: failed to compile schema %s: %w", name, err)
		}
		v.schemas[name] = sch
	}
	return v, nil
}

// SchemaName normalizes a schema reference: "/element", "element" and
// "element.json" all name the element schema.
func SchemaName(ref string) string {
	return strings.TrimSuffix(strings.TrimPrefix(ref, "/"), ".json")
}

// Validate returns EINVALID describing why doc does not match the schema,
// or ENOTFOUND if the schema is unknown.
func (v *Validator) Validate(doc *wcdoc.Document, schema string) error {
	name := SchemaName(schema)
	sch, ok := v.schemas[name]
	if !ok {
		return wcdoc.Errorf(wcdoc.ENOTFOUND, "schema %q not found", schema)
	}

	// Round-trip through JSON so the instance holds the value types the
	// validator expects.
	data, err := json.Marshal(doc.Content)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}

	err = sch.Validate(inst)
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return wcdoc.Errorf(wcdoc.EINVALID, "%s %q does not match schema %s: %s", doc.Kind, doc.Name, name, ve)
	}
	return err
}
