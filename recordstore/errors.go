package recordstore

import (
	"errors"

	"github.com/jrsteele09/go-recordstore/persistence"
)

// Error definitions for common error cases.
var (
	// ErrNotFound returned when no record's key matches during Query, QueryMany or Delete.
	ErrNotFound = errors.New("record not found")

	// ErrLocked returned when WithFileLock is set and the lock could not be acquired in time.
	ErrLocked = errors.New("document is locked by another writer")
)

// IsIOFailure reports whether err was caused by the document file being unreadable or unwritable.
func IsIOFailure(err error) bool {
	var ioErr *persistence.IOError
	return errors.As(err, &ioErr)
}

// IsDecodeFailure reports whether err was caused by a document that is not a list of records.
func IsDecodeFailure(err error) bool {
	var decodeErr *persistence.DecodeError
	return errors.As(err, &decodeErr)
}
