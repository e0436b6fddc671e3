// Package build runs the full documentation build: load records, index
// them, render and validate every entity, then persist the indices.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/wcdoc"
	"golang.org/x/sync/errgroup"
)

// Builder orchestrates one build. Stages run in sequence; only writing
// documents runs concurrently.
type Builder struct {
	Source     wcdoc.RecordSource
	Classifier *wcdoc.Classifier
	Renderer   wcdoc.Renderer
	Validator  wcdoc.Validator
	Store      wcdoc.IndexStore

	// Builds records committed builds when set.
	Builds wcdoc.BuildService

	// OutputDir is recorded in build history.
	OutputDir string

	Concurrency int
	Logger      *slog.Logger
}

// Collection holds the validated indices of one build.
type Collection struct {
	Elements *wcdoc.Index
	Objects  *wcdoc.Index
}

// Result holds the outcome of a build.
type Result struct {
	Elements *wcdoc.Index
	Objects  *wcdoc.Index

	// Digest identifies the written content; unchanged input yields the
	// same digest.
	Digest string

	// Build is the history record, or nil when no BuildService is set.
	Build *wcdoc.Build
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// Index loads the records and groups them by source file.
func (b *Builder) Index(ctx context.Context) (*wcdoc.FileIndex, error) {
	begin := time.Now()
	records, err := b.Source.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	fi := wcdoc.NewFileIndex(records, b.Classifier)
	b.logger().Info("records loaded",
		"records", len(records),
		"files", fi.Len(),
		"duration", time.Since(begin),
	)
	return fi, nil
}

// Collect indexes, renders and validates every element and object.
// The first render or validation failure aborts the build.
func (b *Builder) Collect(ctx context.Context) (*Collection, error) {
	fi, err := b.Index(ctx)
	if err != nil {
		return nil, err
	}

	elements, err := wcdoc.ElementIndexer.Build(ctx, fi, b.Renderer)
	if err != nil {
		return nil, err
	}
	objects, err := wcdoc.ObjectIndexer.Build(ctx, fi, b.Renderer)
	if err != nil {
		return nil, err
	}

	if err := b.validate(elements, wcdoc.ElementIndexer.Schema); err != nil {
		return nil, err
	}
	if err := b.validate(objects, wcdoc.ObjectIndexer.Schema); err != nil {
		return nil, err
	}

	b.logger().Info("index built",
		"elements", elements.Len(),
		"objects", objects.Len(),
	)
	return &Collection{Elements: elements, Objects: objects}, nil
}

func (b *Builder) validate(idx *wcdoc.Index, schema string) error {
	for _, name := range idx.Names() {
		if err := b.Validator.Validate(idx.Get(name), schema); err != nil {
			return fmt.Errorf("validate %s %q: %w", idx.Kind, name, err)
		}
	}
	return nil
}

// Run collects both indices and writes them, objects first. Nothing is
// published unless every document is written; on failure the staged
// output is discarded.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	c, err := b.Collect(ctx)
	if err != nil {
		return nil, err
	}

	if err := b.persist(ctx, c.Objects, c.Elements); err != nil {
		if abortErr := b.Store.Abort(); abortErr != nil {
			err = errors.Join(err, fmt.Errorf("abort: %w", abortErr))
		}
		return nil, err
	}
	if err := b.Store.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	entities, digest, err := Digest(c.Objects, c.Elements)
	if err != nil {
		return nil, err
	}

	result := &Result{Elements: c.Elements, Objects: c.Objects, Digest: digest}
	if b.Builds != nil {
		build := &wcdoc.Build{
			OutputDir: b.OutputDir,
			Elements:  c.Elements.Len(),
			Objects:   c.Objects.Len(),
			Digest:    digest,
			Entities:  entities,
		}
		if err := b.Builds.CreateBuild(ctx, build); err != nil {
			return nil, fmt.Errorf("record build: %w", err)
		}
		result.Build = build
	}

	b.logger().Info("build committed",
		"elements", c.Elements.Len(),
		"objects", c.Objects.Len(),
		"digest", digest,
	)
	return result, nil
}

// persist saves each index into the directory named after its kind.
// Every directory is staged first, so an empty index still replaces the
// previous build's documents. Indices are written one after the other;
// documents within an index are written concurrently.
func (b *Builder) persist(ctx context.Context, indices ...*wcdoc.Index) error {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	for _, idx := range indices {
		if err := b.Store.Stage(string(idx.Kind)); err != nil {
			return fmt.Errorf("stage %s index: %w", idx.Kind, err)
		}
	}

	for _, idx := range indices {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		dir := string(idx.Kind)
		for _, name := range idx.Names() {
			doc := idx.Get(name)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := b.Store.Save(gctx, dir, doc); err != nil {
					return fmt.Errorf("save %s %q: %w", idx.Kind, name, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}
