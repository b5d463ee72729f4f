package recordstore

// DocumentCodec reads and writes the whole document at a path.
//
// Read: decodes the full document into an ordered slice of records.
// An empty document decodes to an empty slice.
//
// Write: serialises the full slice, replacing any prior contents.
// An empty slice must be written as an empty list, never as null.
type DocumentCodec[T any] interface {

	// Read returns every record in document order.
	Read(path string) ([]T, error)

	// Write replaces the document with records.
	Write(path string, records []T) error
}
