package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wcdoc"
)

// Ensure LoggingIndexStore implements wcdoc.IndexStore.
var _ wcdoc.IndexStore = (*LoggingIndexStore)(nil)

// LoggingIndexStore wraps an IndexStore with logging. Saves are logged at
// debug level; commit and abort at info level.
type LoggingIndexStore struct {
	next   wcdoc.IndexStore
	logger *slog.Logger
}

// NewLoggingIndexStore creates a new LoggingIndexStore.
func NewLoggingIndexStore(next wcdoc.IndexStore, logger *slog.Logger) *LoggingIndexStore {
	return &LoggingIndexStore{next: next, logger: logger}
}

// Stage delegates to the wrapped store and logs the directory.
func (s *LoggingIndexStore) Stage(dir string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("stage index",
			"dir", dir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Stage(dir)
}

// Save delegates to the wrapped store and logs the document.
func (s *LoggingIndexStore) Save(ctx context.Context, dir string, doc *wcdoc.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save document",
			"dir", dir,
			"name", doc.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, dir, doc)
}

// Commit delegates to the wrapped store and logs the outcome.
func (s *LoggingIndexStore) Commit() (err error) {
	defer func(begin time.Time) {
		s.logger.Info("commit index",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Commit()
}

// Abort delegates to the wrapped store and logs the outcome.
func (s *LoggingIndexStore) Abort() (err error) {
	defer func(begin time.Time) {
		s.logger.Info("abort index",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Abort()
}
