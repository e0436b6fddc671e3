// Package slog provides logging decorators for wcdoc collaborators.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wcdoc"
)

// Ensure LoggingRenderer implements wcdoc.Renderer.
var _ wcdoc.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   wcdoc.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next wcdoc.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the bundle shape.
func (r *LoggingRenderer) Render(ctx context.Context, b *wcdoc.Bundle) (doc *wcdoc.Document, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("render",
			"kind", string(b.Kind),
			"name", b.Name,
			"main", b.Main.SourcePath,
			"extras", len(b.Extras),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, b)
}
