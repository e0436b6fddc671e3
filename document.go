package wcdoc

import (
	"bytes"
	"context"
	"encoding/json"
)

// Document is the displayable form of one entity, produced by a Renderer.
type Document struct {
	Kind Kind
	Name string

	// Content is the JSON object written to disk. It carries "name".
	Content map[string]any
}

// MarshalJSON encodes the document content.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Content)
}

// Validate returns an error if the document cannot be persisted.
func (d *Document) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "document name required")
	}
	if d.Content == nil {
		return Errorf(EINVALID, "document %q has no content", d.Name)
	}
	return nil
}

// EncodeDocument returns the on-disk form of doc: its content as JSON
// indented with two spaces. HTML in rendered descriptions is not escaped.
func EncodeDocument(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc.Content); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Index holds the rendered documents of one declaration kind, keyed by
// entity name in discovery order.
type Index struct {
	Kind Kind

	names []string
	docs  map[string]*Document
}

// NewIndex returns an empty index for kind.
func NewIndex(kind Kind) *Index {
	return &Index{Kind: kind, docs: make(map[string]*Document)}
}

func (idx *Index) add(name string, doc *Document) {
	if _, ok := idx.docs[name]; !ok {
		idx.names = append(idx.names, name)
	}
	idx.docs[name] = doc
}

// Names returns entity names in discovery order.
func (idx *Index) Names() []string {
	return append([]string(nil), idx.names...)
}

// Get returns the document of the named entity, or nil.
func (idx *Index) Get(name string) *Document {
	return idx.docs[name]
}

// Len returns the number of entities.
func (idx *Index) Len() int {
	return len(idx.names)
}

// Renderer turns a merged entity bundle into a displayable document.
type Renderer interface {
	Render(ctx context.Context, b *Bundle) (*Document, error)
}

// Validator checks a rendered document against a named schema.
type Validator interface {
	// Validate returns EINVALID describing the first violation.
	// Schema is a reference such as "element" or "/object".
	Validate(doc *Document, schema string) error
}

// IndexStore persists rendered documents with atomic semantics.
// Stage declares an index directory, which Commit replaces even when no
// document was saved into it. Save stages a document under dir. Commit
// makes every staged directory visible at once; Abort discards them.
type IndexStore interface {
	Stage(dir string) error
	Save(ctx context.Context, dir string, doc *Document) error
	Commit() error
	Abort() error
}
