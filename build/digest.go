package build

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wcdoc"
)

// computeHash computes a hash of the content using xxhash.
func computeHash(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// Digest hashes the encoded form of every document. Entities are listed
// per index in the given order and by name within an index, so the digest
// does not depend on discovery order.
func Digest(indices ...*wcdoc.Index) ([]*wcdoc.BuildEntity, string, error) {
	var entities []*wcdoc.BuildEntity
	h := xxhash.New()

	for _, idx := range indices {
		names := idx.Names()
		slices.Sort(names)

		for _, name := range names {
			data, err := wcdoc.EncodeDocument(idx.Get(name))
			if err != nil {
				return nil, "", fmt.Errorf("encode %s %q: %w", idx.Kind, name, err)
			}

			e := &wcdoc.BuildEntity{Kind: idx.Kind, Name: name, Hash: computeHash(data)}
			entities = append(entities, e)
			fmt.Fprintf(h, "%s\x00%s\x00%s\n", e.Kind, e.Name, e.Hash)
		}
	}

	return entities, fmt.Sprintf("%016x", h.Sum64()), nil
}
