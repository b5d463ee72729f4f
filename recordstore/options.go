package recordstore

import "time"

// StoreOption is a type for functions that configure a Store.
// These functions are intended to be used with Open and MustOpen.
type StoreOption[T KeyedRecord] func(s *Store[T])

// WithCodec returns a StoreOption that sets the codec used to read and write
// the document. The default is a JSON array codec.
//
// Example:
//
//	recordstore.Open("patients.yaml", recordstore.WithCodec[Patient](persistence.NewYAML[Patient]()))
func WithCodec[T KeyedRecord](codec DocumentCodec[T]) StoreOption[T] {
	return func(s *Store[T]) {
		s.codec = codec
	}
}

// WithFileLock returns a StoreOption that holds an exclusive lock on
// "<path>.lock" for the duration of every read-modify-write cycle, so that
// goroutines sharing the Store, and Stores in other processes sharing the
// document, serialise instead of silently losing writes. Operations fail
// with ErrLocked when the lock is not acquired within timeout.
//
// Without this option no locking is done and concurrent writers race: the
// last full write wins.
func WithFileLock[T KeyedRecord](timeout time.Duration) StoreOption[T] {
	return func(s *Store[T]) {
		s.lockTimeout = timeout
		s.locking = true
	}
}
