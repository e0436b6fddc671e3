package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/wcdoc"
)

// Ensure IndexStore implements wcdoc.IndexStore at compile time.
var _ wcdoc.IndexStore = (*IndexStore)(nil)

// IndexStore implements wcdoc.IndexStore with atomic update semantics.
// Documents are saved under outDir.tmp, then each staged directory
// replaces its counterpart in outDir on Commit. Directories of outDir that
// were not staged are left alone.
type IndexStore struct {
	outDir string

	mu     sync.Mutex
	staged []string
}

// NewIndexStore creates a new IndexStore writing into outDir.
func NewIndexStore(outDir string) *IndexStore {
	return &IndexStore{outDir: outDir}
}

func (s *IndexStore) tempDir() string {
	return filepath.Clean(s.outDir) + ".tmp"
}

// DocumentPath returns the path of a document relative to the output
// directory: dir/name.json.
func DocumentPath(dir, name string) (string, error) {
	if !validSegment(dir) {
		return "", wcdoc.Errorf(wcdoc.EINVALID, "invalid index directory %q", dir)
	}
	if !validSegment(name) {
		return "", wcdoc.Errorf(wcdoc.EINVALID, "invalid document name %q", name)
	}
	return filepath.Join(dir, name+".json"), nil
}

// validSegment reports whether s names exactly one path element.
func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// Save writes doc to the staging directory. Safe for concurrent use.
func (s *IndexStore) Save(ctx context.Context, dir string, doc *wcdoc.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := DocumentPath(dir, doc.Name)
	if err != nil {
		return err
	}

	if err := s.Stage(dir); err != nil {
		return err
	}

	data, err := wcdoc.EncodeDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), relPath), data, 0644)
}

// Stage prepares an empty staging directory the first time dir is used,
// dropping leftovers of an earlier run that was never committed. A staged
// directory replaces its counterpart on Commit, empty or not.
func (s *IndexStore) Stage(dir string) error {
	if !validSegment(dir) {
		return wcdoc.Errorf(wcdoc.EINVALID, "invalid index directory %q", dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.staged {
		if d == dir {
			return nil
		}
	}

	path := filepath.Join(s.tempDir(), dir)
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}
	s.staged = append(s.staged, dir)
	return nil
}

// Commit moves every staged directory into the output directory,
// replacing existing ones, and removes the staging directory.
func (s *IndexStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.outDir, 0755); err != nil {
		return err
	}

	for _, dir := range s.staged {
		final := filepath.Join(s.outDir, dir)

		// Remove existing final directory if present
		if err := os.RemoveAll(final); err != nil {
			return err
		}
		if err := os.Rename(filepath.Join(s.tempDir(), dir), final); err != nil {
			return err
		}
	}
	s.staged = nil

	return os.RemoveAll(s.tempDir())
}

// Abort discards every staged document.
func (s *IndexStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.staged = nil
	return os.RemoveAll(s.tempDir())
}
