// Package goldmark renders entity bundles into documents, converting
// markdown doc-comment text to HTML with goldmark.
package goldmark

import (
	"bytes"
	"context"
	"maps"
	"strings"

	"github.com/fwojciec/wcdoc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Renderer implements wcdoc.Renderer at compile time.
var _ wcdoc.Renderer = (*Renderer)(nil)

// Renderer converts bundles into documents shaped like the Onsen UI
// reference pages: the main declaration's fields at the top level, the
// other declarations under "elements" or "objects", and one list per
// member kind.
type Renderer struct {
	md     goldmark.Markdown
	fields []string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMarkdownFields sets the record fields rendered from markdown to HTML.
// Defaults to "description".
func WithMarkdownFields(fields ...string) Option {
	return func(r *Renderer) {
		r.fields = fields
	}
}

// NewRenderer creates a new Renderer using GitHub-flavored markdown.
// Raw HTML inside doc comments is passed through.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		fields: []string{"description"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the document of one bundle.
func (r *Renderer) Render(ctx context.Context, b *wcdoc.Bundle) (*wcdoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := r.record(b.Main)
	if err != nil {
		return nil, err
	}
	content["name"] = b.Name
	content["kind"] = string(b.Kind)

	extras, err := r.records(b.Extras)
	if err != nil {
		return nil, err
	}
	content[b.Kind.Plural()] = extras

	for kind, recs := range b.Members {
		rendered, err := r.records(recs)
		if err != nil {
			return nil, err
		}
		content[kind.Plural()] = rendered
	}

	return &wcdoc.Document{Kind: b.Kind, Name: b.Name, Content: content}, nil
}

func (r *Renderer) records(recs []wcdoc.Record) ([]any, error) {
	out := make([]any, 0, len(recs))
	for _, rec := range recs {
		m, err := r.record(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// record returns a copy of the record payload with markdown fields
// converted, the parser's file object replaced by "source" and the
// assigned extension family under "extensionOf".
func (r *Renderer) record(rec wcdoc.Record) (map[string]any, error) {
	m := maps.Clone(rec.Fields)
	if m == nil {
		m = make(map[string]any)
	}
	delete(m, "file")
	delete(m, "docType")
	delete(m, "extensionOf")

	if rec.Name != "" {
		m["name"] = rec.Name
	}
	if rec.SourcePath != "" {
		m["source"] = rec.SourcePath
	}
	if rec.ExtensionFamily != "" {
		m["extensionOf"] = rec.ExtensionFamily
	}

	for _, field := range r.fields {
		text, ok := m[field].(string)
		if !ok {
			continue
		}
		rendered, err := r.Convert(text)
		if err != nil {
			return nil, err
		}
		m[field] = rendered
	}
	return m, nil
}

// Convert transforms markdown into HTML. Blank input yields "".
func (r *Renderer) Convert(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
