// Package fs provides file-based record sources and index storage.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/fwojciec/wcdoc"
)

// Ensure RecordFile implements wcdoc.RecordSource at compile time.
var _ wcdoc.RecordSource = (*RecordFile)(nil)

// RecordFile reads records from a JSON array dumped by the doc-comment parser.
type RecordFile struct {
	path string
}

// NewRecordFile creates a new RecordFile reading from path.
func NewRecordFile(path string) *RecordFile {
	return &RecordFile{path: path}
}

// LoadRecords decodes every record of the file in order.
// Returns ENOTFOUND if the file does not exist.
func (f *RecordFile) LoadRecords(ctx context.Context) ([]wcdoc.Record, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, wcdoc.Errorf(wcdoc.ENOTFOUND, "record file %q not found", f.path)
	}
	if err != nil {
		return nil, err
	}

	var records []wcdoc.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, wcdoc.Errorf(wcdoc.EINVALID, "decode %s: %s", f.path, err)
	}
	return records, nil
}
