package persistence

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// JSON stores records as a single JSON array.
type JSON[T any] struct {
	// Indent is used per nesting level when writing. Empty writes compact JSON.
	Indent string
}

// NewJSON returns a JSON codec that writes two-space indented documents.
func NewJSON[T any]() *JSON[T] {
	return &JSON[T]{Indent: "  "}
}

// Read decodes the document at path. A null document decodes to no records.
func (c *JSON[T]) Read(path string) ([]T, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, errors.Wrap(err, "JSON.Read")
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(&DecodeError{Path: path, Err: err}, "JSON.Read")
	}
	if records == nil {
		records = make([]T, 0)
	}
	return records, nil
}

// Write encodes records as a JSON array and replaces the document at path.
func (c *JSON[T]) Write(path string, records []T) error {
	if records == nil {
		records = make([]T, 0)
	}

	var (
		data []byte
		err  error
	)
	if c.Indent == "" {
		data, err = json.Marshal(records)
	} else {
		data, err = json.MarshalIndent(records, "", c.Indent)
	}
	if err != nil {
		return errors.Wrap(err, "JSON.Write json.Marshal")
	}

	if err := writeDocument(path, data); err != nil {
		return errors.Wrap(err, "JSON.Write")
	}
	return nil
}
