package mock

import (
	"context"

	"github.com/fwojciec/wcdoc"
)

// Compile-time interface verification.
var (
	_ wcdoc.Renderer     = (*Renderer)(nil)
	_ wcdoc.Validator    = (*Validator)(nil)
	_ wcdoc.RecordSource = (*RecordSource)(nil)
)

// Renderer is a mock implementation of wcdoc.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, b *wcdoc.Bundle) (*wcdoc.Document, error)
}

func (r *Renderer) Render(ctx context.Context, b *wcdoc.Bundle) (*wcdoc.Document, error) {
	return r.RenderFn(ctx, b)
}

// Validator is a mock implementation of wcdoc.Validator.
type Validator struct {
	ValidateFn func(doc *wcdoc.Document, schema string) error
}

func (v *Validator) Validate(doc *wcdoc.Document, schema string) error {
	return v.ValidateFn(doc, schema)
}

// RecordSource is a mock implementation of wcdoc.RecordSource.
type RecordSource struct {
	LoadRecordsFn func(ctx context.Context) ([]wcdoc.Record, error)
}

func (s *RecordSource) LoadRecords(ctx context.Context) ([]wcdoc.Record, error) {
	return s.LoadRecordsFn(ctx)
}
