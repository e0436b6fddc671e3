package wcdoc

import "slices"

// PathGrouping holds records of one source file (or, once merged, of one
// entity) keyed by kind. Each sequence keeps input order.
type PathGrouping map[Kind][]Record

// Len returns the total number of records in the grouping.
func (g PathGrouping) Len() int {
	n := 0
	for _, recs := range g {
		n += len(recs)
	}
	return n
}

// Kinds returns the kinds present in g: known kinds in canonical order,
// followed by any unknown kinds sorted by name.
func (g PathGrouping) Kinds() []Kind {
	present := make([]Kind, 0, len(g))
	for _, kind := range kinds {
		if _, ok := g[kind]; ok {
			present = append(present, kind)
		}
	}
	var unknown []Kind
	for kind := range g {
		if !kind.Valid() {
			unknown = append(unknown, kind)
		}
	}
	slices.Sort(unknown)
	return append(present, unknown...)
}

// FileIndex groups records by source path, then by kind. Paths keep the
// order in which they were first seen.
type FileIndex struct {
	paths  []string
	groups map[string]PathGrouping
}

// NewFileIndex groups records by source path and kind.
//
// Declarations are classified before they are stored: their extension
// family is whatever the classifier assigns, empty when no rule matches.
// Records are copied, so the caller's slice is
// left unchanged. Every record must carry a kind and a source path.
func NewFileIndex(records []Record, c *Classifier) *FileIndex {
	fi := &FileIndex{groups: make(map[string]PathGrouping)}

	for _, rec := range records {
		g, ok := fi.groups[rec.SourcePath]
		if !ok {
			g = make(PathGrouping)
			fi.groups[rec.SourcePath] = g
			fi.paths = append(fi.paths, rec.SourcePath)
		}

		if rec.Kind.IsDeclaration() {
			rec.ExtensionFamily = c.Classify(rec.SourcePath)
		}

		g[rec.Kind] = append(g[rec.Kind], rec)
	}

	return fi
}

// Paths returns source paths in discovery order.
func (fi *FileIndex) Paths() []string {
	return append([]string(nil), fi.paths...)
}

// Grouping returns the grouping for path, or nil if the path is unknown.
func (fi *FileIndex) Grouping(path string) PathGrouping {
	return fi.groups[path]
}

// Len returns the number of distinct source paths.
func (fi *FileIndex) Len() int {
	return len(fi.paths)
}

// MergeGroupings concatenates same-kind sequences of the given groupings
// in input order. Nothing is reordered or deduplicated, and an empty
// grouping contributes nothing. The result owns its slices: appending to
// it never writes into an input's backing array.
func MergeGroupings(groupings ...PathGrouping) PathGrouping {
	result := make(PathGrouping)
	for _, g := range groupings {
		for _, kind := range g.Kinds() {
			recs := g[kind]
			if existing, ok := result[kind]; ok {
				result[kind] = append(existing, recs...)
			} else {
				result[kind] = append([]Record(nil), recs...)
			}
		}
	}
	return result
}
