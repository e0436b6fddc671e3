package build_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/wcdoc"
	"github.com/fwojciec/wcdoc/build"
	"github.com/fwojciec/wcdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(kind wcdoc.Kind, path, name string) wcdoc.Record {
	return wcdoc.Record{Kind: kind, SourcePath: path, Name: name}
}

func sampleRecords() []wcdoc.Record {
	return []wcdoc.Record{
		rec(wcdoc.KindElement, "core/src/elements/ons-button.js", "ons-button"),
		rec(wcdoc.KindAttribute, "core/src/elements/ons-button.js", "modifier"),
		rec(wcdoc.KindElement, "bindings/angular1/directives/button.js", "ons-button"),
		rec(wcdoc.KindObject, "core/src/ons/notification.js", "ons.notification"),
		rec(wcdoc.KindMethod, "core/src/ons/notification.js", "alert"),
		rec(wcdoc.KindElement, "core/src/elements/ons-page.js", "ons-page"),
	}
}

// renderer returns a renderer producing a document named after the bundle.
func renderer() *mock.Renderer {
	return &mock.Renderer{
		RenderFn: func(_ context.Context, b *wcdoc.Bundle) (*wcdoc.Document, error) {
			return &wcdoc.Document{
				Kind:    b.Kind,
				Name:    b.Name,
				Content: map[string]any{"name": b.Name, "extras": len(b.Extras)},
			}, nil
		},
	}
}

func acceptAll() *mock.Validator {
	return &mock.Validator{
		ValidateFn: func(_ *wcdoc.Document, _ string) error { return nil },
	}
}

type savedDoc struct {
	dir  string
	name string
}

// recordingStore collects saved documents and the terminal call.
type recordingStore struct {
	mu        sync.Mutex
	staged    []string
	saved     []savedDoc
	committed bool
	aborted   bool
	saveErr   error
}

func (s *recordingStore) mock() *mock.IndexStore {
	return &mock.IndexStore{
		StageFn: func(dir string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.staged = append(s.staged, dir)
			return nil
		},
		SaveFn: func(_ context.Context, dir string, doc *wcdoc.Document) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.saveErr != nil && doc.Name == "ons-page" {
				return s.saveErr
			}
			s.saved = append(s.saved, savedDoc{dir: dir, name: doc.Name})
			return nil
		},
		CommitFn: func() error {
			s.committed = true
			return nil
		},
		AbortFn: func() error {
			s.aborted = true
			return nil
		},
	}
}

func newBuilder(store *recordingStore) *build.Builder {
	return &build.Builder{
		Source: &mock.RecordSource{
			LoadRecordsFn: func(_ context.Context) ([]wcdoc.Record, error) {
				return sampleRecords(), nil
			},
		},
		Classifier:  wcdoc.NewClassifier(wcdoc.DefaultExtensionRules()...),
		Renderer:    renderer(),
		Validator:   acceptAll(),
		Store:       store.mock(),
		OutputDir:   "/tmp/docs",
		Concurrency: 2,
	}
}

func TestBuilder_Collect(t *testing.T) {
	t.Parallel()

	t.Run("builds element and object indices", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(&recordingStore{})

		c, err := b.Collect(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"ons-button", "ons-page"}, c.Elements.Names())
		assert.Equal(t, []string{"ons.notification"}, c.Objects.Names())
		assert.Equal(t, 1, c.Elements.Get("ons-button").Content["extras"])
	})

	t.Run("validates elements against element schema before objects", func(t *testing.T) {
		t.Parallel()

		var schemas []string
		b := newBuilder(&recordingStore{})
		b.Validator = &mock.Validator{
			ValidateFn: func(_ *wcdoc.Document, schema string) error {
				schemas = append(schemas, schema)
				return nil
			},
		}

		_, err := b.Collect(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"element", "element", "object"}, schemas)
	})

	t.Run("stops at first validation failure", func(t *testing.T) {
		t.Parallel()

		calls := 0
		b := newBuilder(&recordingStore{})
		b.Validator = &mock.Validator{
			ValidateFn: func(doc *wcdoc.Document, _ string) error {
				calls++
				return wcdoc.Errorf(wcdoc.EINVALID, "%q: missing outputs", doc.Name)
			},
		}

		_, err := b.Collect(context.Background())

		assert.Equal(t, wcdoc.EINVALID, wcdoc.ErrorCode(err))
		assert.Contains(t, err.Error(), `validate element "ons-button"`)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns render error", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(&recordingStore{})
		b.Renderer = &mock.Renderer{
			RenderFn: func(_ context.Context, _ *wcdoc.Bundle) (*wcdoc.Document, error) {
				return nil, errors.New("bad markdown")
			},
		}

		_, err := b.Collect(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad markdown")
	})

	t.Run("returns load error", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(&recordingStore{})
		b.Source = &mock.RecordSource{
			LoadRecordsFn: func(_ context.Context) ([]wcdoc.Record, error) {
				return nil, wcdoc.Errorf(wcdoc.ENOTFOUND, "records file not found")
			},
		}

		_, err := b.Collect(context.Background())

		assert.Equal(t, wcdoc.ENOTFOUND, wcdoc.ErrorCode(err))
	})
}

func TestBuilder_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves objects before elements and commits", func(t *testing.T) {
		t.Parallel()

		store := &recordingStore{}
		b := newBuilder(store)

		result, err := b.Run(context.Background())

		require.NoError(t, err)
		assert.True(t, store.committed)
		assert.False(t, store.aborted)
		require.Len(t, store.saved, 3)
		assert.Equal(t, savedDoc{dir: "object", name: "ons.notification"}, store.saved[0])
		assert.Equal(t, "element", store.saved[1].dir)
		assert.Equal(t, "element", store.saved[2].dir)
		assert.Equal(t, 2, result.Elements.Len())
		assert.Equal(t, 1, result.Objects.Len())
		assert.Len(t, result.Digest, 16)
		assert.Nil(t, result.Build)
	})

	t.Run("stages both index directories before saving", func(t *testing.T) {
		t.Parallel()

		store := &recordingStore{}
		b := newBuilder(store)

		_, err := b.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"object", "element"}, store.staged)
	})

	t.Run("stages the object directory when there are no objects", func(t *testing.T) {
		t.Parallel()

		store := &recordingStore{}
		b := newBuilder(store)
		b.Source = &mock.RecordSource{
			LoadRecordsFn: func(_ context.Context) ([]wcdoc.Record, error) {
				return []wcdoc.Record{rec(wcdoc.KindElement, "core/src/elements/ons-page.js", "ons-page")}, nil
			},
		}

		result, err := b.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, result.Objects.Len())
		assert.Contains(t, store.staged, "object")
		assert.Equal(t, []savedDoc{{dir: "element", name: "ons-page"}}, store.saved)
		assert.True(t, store.committed)
	})

	t.Run("aborts when staging fails", func(t *testing.T) {
		t.Parallel()

		store := &recordingStore{}
		b := newBuilder(store)
		indexStore := store.mock()
		indexStore.StageFn = func(string) error { return errors.New("read-only file system") }
		b.Store = indexStore

		_, err := b.Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stage object index")
		assert.True(t, store.aborted)
		assert.False(t, store.committed)
		assert.Empty(t, store.saved)
	})

	t.Run("aborts and skips commit when a save fails", func(t *testing.T) {
		t.Parallel()

		store := &recordingStore{saveErr: errors.New("disk full")}
		b := newBuilder(store)

		_, err := b.Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.True(t, store.aborted)
		assert.False(t, store.committed)
	})

	t.Run("writes nothing when validation fails", func(t *testing.T) {
		t.Parallel()

		store := &recordingStore{}
		b := newBuilder(store)
		b.Validator = &mock.Validator{
			ValidateFn: func(_ *wcdoc.Document, _ string) error {
				return wcdoc.Errorf(wcdoc.EINVALID, "invalid")
			},
		}

		_, err := b.Run(context.Background())

		require.Error(t, err)
		assert.Empty(t, store.saved)
		assert.False(t, store.committed)
	})

	t.Run("records build history", func(t *testing.T) {
		t.Parallel()

		var recorded *wcdoc.Build
		b := newBuilder(&recordingStore{})
		b.Builds = &mock.BuildService{
			CreateBuildFn: func(_ context.Context, build *wcdoc.Build) error {
				build.ID = "build-1"
				recorded = build
				return nil
			},
		}

		result, err := b.Run(context.Background())

		require.NoError(t, err)
		require.NotNil(t, recorded)
		assert.Same(t, recorded, result.Build)
		assert.Equal(t, "/tmp/docs", recorded.OutputDir)
		assert.Equal(t, 2, recorded.Elements)
		assert.Equal(t, 1, recorded.Objects)
		assert.Equal(t, result.Digest, recorded.Digest)
		require.Len(t, recorded.Entities, 3)
		assert.Equal(t, wcdoc.KindObject, recorded.Entities[0].Kind)
	})

	t.Run("produces the same digest for unchanged input", func(t *testing.T) {
		t.Parallel()

		first, err := newBuilder(&recordingStore{}).Run(context.Background())
		require.NoError(t, err)
		second, err := newBuilder(&recordingStore{}).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, first.Digest, second.Digest)
	})
}

func TestDigest(t *testing.T) {
	t.Parallel()

	index := func(t *testing.T, names ...string) *wcdoc.Index {
		t.Helper()
		var records []wcdoc.Record
		for _, name := range names {
			records = append(records, rec(wcdoc.KindElement, "core/src/elements/"+name+".js", name))
		}
		idx, err := wcdoc.ElementIndexer.Build(context.Background(), wcdoc.NewFileIndex(records, nil), renderer())
		require.NoError(t, err)
		return idx
	}

	t.Run("does not depend on discovery order", func(t *testing.T) {
		t.Parallel()

		_, a, err := build.Digest(index(t, "ons-button", "ons-page"))
		require.NoError(t, err)
		_, b, err := build.Digest(index(t, "ons-page", "ons-button"))
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("lists entities sorted by name", func(t *testing.T) {
		t.Parallel()

		entities, _, err := build.Digest(index(t, "ons-page", "ons-button"))

		require.NoError(t, err)
		require.Len(t, entities, 2)
		assert.Equal(t, "ons-button", entities[0].Name)
		assert.Equal(t, "ons-page", entities[1].Name)
		assert.Len(t, entities[0].Hash, 16)
	})

	t.Run("changes when content changes", func(t *testing.T) {
		t.Parallel()

		_, a, err := build.Digest(index(t, "ons-button"))
		require.NoError(t, err)
		_, b, err := build.Digest(index(t, "ons-toolbar"))
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})
}
