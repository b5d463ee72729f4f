package persistence

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAML stores records as a single top level YAML sequence.
type YAML[T any] struct{}

// NewYAML returns a YAML codec.
func NewYAML[T any]() *YAML[T] {
	return &YAML[T]{}
}

// Read decodes the document at path. An empty document decodes to no records.
func (c *YAML[T]) Read(path string) ([]T, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, errors.Wrap(err, "YAML.Read")
	}

	var records []T
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(&DecodeError{Path: path, Err: err}, "YAML.Read")
	}
	if records == nil {
		records = make([]T, 0)
	}
	return records, nil
}

// Write encodes records as a YAML sequence and replaces the document at path.
// An empty slice is written as "[]".
func (c *YAML[T]) Write(path string, records []T) error {
	if records == nil {
		records = make([]T, 0)
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "YAML.Write yaml.Marshal")
	}

	if err := writeDocument(path, data); err != nil {
		return errors.Wrap(err, "YAML.Write")
	}
	return nil
}
