package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataDir = "testdata"

type appointment struct {
	Patient string `json:"patient" yaml:"patient"`
	Slot    int    `json:"slot" yaml:"slot"`
}

func TestMain(m *testing.M) {
	if err := os.MkdirAll(testDataDir, 0755); err != nil {
		panic(err)
	}

	code := m.Run()

	if err := os.RemoveAll(testDataDir); err != nil {
		panic(err)
	}

	os.Exit(code)
}

func TestJSON_WriteRead(t *testing.T) {
	path := filepath.Join(testDataDir, "json_write_read.json")
	defer os.Remove(path)

	c := NewJSON[appointment]()
	records := []appointment{{Patient: "p1", Slot: 9}, {Patient: "p2", Slot: 10}, {Patient: "p1", Slot: 11}}
	require.NoError(t, c.Write(path, records))

	read, err := c.Read(path)
	require.NoError(t, err)
	assert.Equal(t, records, read)

	_, err = os.Stat(path + tempSuffix)
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestJSON_EmptyIsList(t *testing.T) {
	path := filepath.Join(testDataDir, "json_empty.json")
	defer os.Remove(path)

	c := &JSON[appointment]{}
	require.NoError(t, c.Write(path, nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	read, err := c.Read(path)
	require.NoError(t, err)
	assert.NotNil(t, read)
	assert.Empty(t, read)
}

func TestJSON_NullDocument(t *testing.T) {
	path := filepath.Join(testDataDir, "json_null.json")
	defer os.Remove(path)
	require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

	read, err := NewJSON[appointment]().Read(path)
	require.NoError(t, err)
	assert.NotNil(t, read)
	assert.Empty(t, read)
}

func TestJSON_DecodeError(t *testing.T) {
	path := filepath.Join(testDataDir, "json_decode.json")
	defer os.Remove(path)
	require.NoError(t, os.WriteFile(path, []byte(`{"patient":"p1"}`), 0644))

	_, err := NewJSON[appointment]().Read(path)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, path, decodeErr.Path)
}

func TestJSON_ReadMissingFile(t *testing.T) {
	path := filepath.Join(testDataDir, "json_missing.json")

	_, err := NewJSON[appointment]().Read(path)
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.True(t, os.IsNotExist(errors.Unwrap(ioErr)))
}

func TestJSON_WriteFailureKeepsDocument(t *testing.T) {
	dir := filepath.Join(testDataDir, "json_write_failure")
	require.NoError(t, os.MkdirAll(dir, 0755))
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "doc.json")

	c := NewJSON[appointment]()
	require.NoError(t, c.Write(path, []appointment{{Patient: "p1"}}))

	// a directory in place of the temp file makes the write fail
	require.NoError(t, os.MkdirAll(path+tempSuffix, 0755))
	err := c.Write(path, []appointment{{Patient: "p2"}})
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))

	read, err := c.Read(path)
	require.NoError(t, err)
	assert.Equal(t, []appointment{{Patient: "p1"}}, read)
}

func TestYAML_WriteRead(t *testing.T) {
	path := filepath.Join(testDataDir, "yaml_write_read.yaml")
	defer os.Remove(path)

	c := NewYAML[appointment]()
	records := []appointment{{Patient: "p1", Slot: 9}, {Patient: "p2", Slot: 10}}
	require.NoError(t, c.Write(path, records))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "- patient: p1")

	read, err := c.Read(path)
	require.NoError(t, err)
	assert.Equal(t, records, read)
}

func TestYAML_EmptyIsList(t *testing.T) {
	path := filepath.Join(testDataDir, "yaml_empty.yaml")
	defer os.Remove(path)

	c := NewYAML[appointment]()
	require.NoError(t, c.Write(path, []appointment{}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))

	read, err := c.Read(path)
	require.NoError(t, err)
	assert.Empty(t, read)
}

func TestYAML_DecodeError(t *testing.T) {
	path := filepath.Join(testDataDir, "yaml_decode.yaml")
	defer os.Remove(path)
	require.NoError(t, os.WriteFile(path, []byte("patient: p1\nslot: 3\n"), 0644))

	_, err := NewYAML[appointment]().Read(path)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
}
