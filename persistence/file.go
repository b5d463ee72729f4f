package persistence

import (
	"os"

	"github.com/pkg/errors"
)

const (
	fileMode   = 0644
	tempSuffix = ".tmp"
)

// readDocument returns the raw bytes of the document at path.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(&IOError{Op: "read", Path: path, Err: err}, "readDocument")
	}
	return data, nil
}

// writeDocument replaces the document at path. The bytes go to a sibling
// temp file first so the previous document survives a failed write.
func writeDocument(path string, data []byte) error {
	tmp := path + tempSuffix
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return errors.Wrap(&IOError{Op: "write", Path: tmp, Err: err}, "writeDocument")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(&IOError{Op: "rename", Path: path, Err: err}, "writeDocument")
	}
	return nil
}
