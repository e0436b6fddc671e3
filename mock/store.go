package mock

import (
	"context"

	"github.com/fwojciec/wcdoc"
)

var _ wcdoc.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of wcdoc.IndexStore.
type IndexStore struct {
	StageFn  func(dir string) error
	SaveFn   func(ctx context.Context, dir string, doc *wcdoc.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *IndexStore) Stage(dir string) error {
	return s.StageFn(dir)
}

func (s *IndexStore) Save(ctx context.Context, dir string, doc *wcdoc.Document) error {
	return s.SaveFn(ctx, dir, doc)
}

func (s *IndexStore) Commit() error {
	return s.CommitFn()
}

func (s *IndexStore) Abort() error {
	return s.AbortFn()
}
