package wcdoc

import (
	"context"
	"fmt"
)

// Bundle is the merged documentation of one entity, ready for rendering.
type Bundle struct {
	Kind Kind
	Name string

	// Main is the canonical declaration. Extras are the remaining
	// declarations of the entity in merge order.
	Main   Record
	Extras []Record

	// Members holds the merged records of every member kind of the
	// indexer. Kinds with no records map to an empty slice.
	Members map[Kind][]Record
}

// Records returns the member records of kind k, never nil.
func (b *Bundle) Records(k Kind) []Record {
	if recs := b.Members[k]; recs != nil {
		return recs
	}
	return []Record{}
}

// SelectMain returns the position of the canonical declaration: the first
// declaration without an extension family, or the first declaration when
// all of them extend another layer. Returns -1 for an empty list.
func SelectMain(decls []Record) int {
	if len(decls) == 0 {
		return -1
	}
	for i, d := range decls {
		if d.ExtensionFamily == "" {
			return i
		}
	}
	return 0
}

// EntityIndexer builds the index of one declaration kind.
type EntityIndexer struct {
	// Declaration is the kind whose records name entities.
	Declaration Kind

	// Members lists the kinds carried into each bundle.
	Members []Kind

	// Schema names the schema rendered documents are validated against.
	Schema string
}

// ElementIndexer indexes UI elements.
var ElementIndexer = EntityIndexer{
	Declaration: KindElement,
	Members: []Kind{
		KindAttribute,
		KindMethod,
		KindEvent,
		KindProperty,
		KindInput,
		KindOutput,
	},
	Schema: "element",
}

// ObjectIndexer indexes plain objects.
var ObjectIndexer = EntityIndexer{
	Declaration: KindObject,
	Members: []Kind{
		KindMethod,
		KindEvent,
		KindProperty,
	},
	Schema: "object",
}

// Bundles groups the file index by entity name, merges each entity's
// groupings and selects its main declaration. Bundles are returned in the
// order their names were first seen.
//
// A path contributes only if it declares an entity of the indexer's kind;
// its first declaration names the contribution. Further declarations of
// the same kind in that file travel along and end up among the extras.
func (ix EntityIndexer) Bundles(fi *FileIndex) []*Bundle {
	var names []string
	byName := make(map[string][]PathGrouping)

	for _, path := range fi.paths {
		g := fi.groups[path]
		decls := g[ix.Declaration]
		if len(decls) == 0 {
			continue
		}

		name := decls[0].Name
		if _, ok := byName[name]; !ok {
			names = append(names, name)
		}
		byName[name] = append(byName[name], g)
	}

	bundles := make([]*Bundle, 0, len(names))
	for _, name := range names {
		bundles = append(bundles, ix.bundle(name, MergeGroupings(byName[name]...)))
	}
	return bundles
}

func (ix EntityIndexer) bundle(name string, merged PathGrouping) *Bundle {
	decls := merged[ix.Declaration]
	main := SelectMain(decls)

	b := &Bundle{
		Kind:    ix.Declaration,
		Name:    name,
		Main:    decls[main],
		Extras:  make([]Record, 0, len(decls)-1),
		Members: make(map[Kind][]Record, len(ix.Members)),
	}
	for i, d := range decls {
		if i != main {
			b.Extras = append(b.Extras, d)
		}
	}
	for _, kind := range ix.Members {
		recs := merged[kind]
		if recs == nil {
			recs = []Record{}
		}
		b.Members[kind] = recs
	}
	return b
}

// Build renders every bundle of the file index. The first render failure
// aborts the build.
func (ix EntityIndexer) Build(ctx context.Context, fi *FileIndex, r Renderer) (*Index, error) {
	idx := NewIndex(ix.Declaration)
	for _, b := range ix.Bundles(fi) {
		doc, err := r.Render(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("render %s %q: %w", ix.Declaration, b.Name, err)
		}
		idx.add(b.Name, doc)
	}
	return idx, nil
}
