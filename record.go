package wcdoc

import (
	"context"
	"encoding/json"
	"maps"
)

// Kind is the category of a documentation record.
type Kind string

// Kind constants. Element and object are declaration kinds; the rest are
// members attached to a declaration by sharing its source file.
const (
	KindElement   Kind = "element"
	KindObject    Kind = "object"
	KindAttribute Kind = "attribute"
	KindMethod    Kind = "method"
	KindEvent     Kind = "event"
	KindProperty  Kind = "property"
	KindInput     Kind = "input"
	KindOutput    Kind = "output"
)

var kinds = []Kind{
	KindElement,
	KindObject,
	KindAttribute,
	KindMethod,
	KindEvent,
	KindProperty,
	KindInput,
	KindOutput,
}

// Kinds returns every kind in canonical order. All iteration over a
// PathGrouping goes through this order so results are deterministic.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsDeclaration reports whether k declares an entity.
func (k Kind) IsDeclaration() bool {
	return k == KindElement || k == KindObject
}

// Plural returns the key under which records of kind k are listed in a
// rendered document, e.g. "properties" for KindProperty.
func (k Kind) Plural() string {
	if k == KindProperty {
		return "properties"
	}
	return string(k) + "s"
}

// Record is one documentation-comment fact parsed from a source file.
//
// Only Kind, SourcePath and Name are read by the indexing core. Fields
// carries the full parsed payload and is passed through untouched.
type Record struct {
	Kind       Kind
	SourcePath string
	Name       string

	// ExtensionFamily names the binding layer a declaration belongs to.
	// Empty means a base declaration. Set by the file index, not the parser.
	ExtensionFamily string

	Fields map[string]any
}

// UnmarshalJSON decodes a record from the parser's dump format. The whole
// object is kept in Fields; docType, file.relativePath and name populate
// the typed fields. ExtensionFamily is left for classification to assign.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = Record{Fields: fields}
	if v, ok := fields["docType"].(string); ok {
		r.Kind = Kind(v)
	}
	if file, ok := fields["file"].(map[string]any); ok {
		if v, ok := file["relativePath"].(string); ok {
			r.SourcePath = v
		}
	}
	if v, ok := fields["name"].(string); ok {
		r.Name = v
	}
	return nil
}

// MarshalJSON encodes the payload with the typed fields written back.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+4)
	maps.Copy(out, r.Fields)

	out["docType"] = string(r.Kind)
	if r.Name != "" {
		out["name"] = r.Name
	}
	if _, ok := out["file"]; !ok && r.SourcePath != "" {
		out["file"] = map[string]any{"relativePath": r.SourcePath}
	}
	if r.ExtensionFamily != "" {
		out["extensionOf"] = r.ExtensionFamily
	}
	return json.Marshal(out)
}

// Validate returns an error if the record breaks the indexing preconditions.
// The core never calls it; record sources may.
func (r *Record) Validate() error {
	if !r.Kind.Valid() {
		return Errorf(EINVALID, "record kind %q unknown", r.Kind)
	}
	if r.SourcePath == "" {
		return Errorf(EINVALID, "record source path required")
	}
	if r.Kind.IsDeclaration() && r.Name == "" {
		return Errorf(EINVALID, "%s declaration in %s has no name", r.Kind, r.SourcePath)
	}
	return nil
}

// RecordSource provides the parsed records for one build.
type RecordSource interface {
	// LoadRecords returns every record in parser emission order.
	LoadRecords(ctx context.Context) ([]Record, error)
}
