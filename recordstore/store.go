// Package recordstore keeps an ordered list of typed records in a single
// document file and offers keyed insert, query, update and delete over it.
//
// Every call reads the whole document, works on the decoded slice and, when
// it mutates, writes the whole slice back. Nothing is cached between calls so
// the file is always the authoritative state. A Store assumes a single owner:
// without WithFileLock, overlapping read-modify-write cycles from different
// goroutines or processes race and the last write wins. WithFileLock
// serialises cycles both between goroutines sharing a Store and between
// Stores or processes sharing a document.
package recordstore

import (
	"os"
	"time"

	"github.com/jrsteele09/go-recordstore/persistence"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Store is a file-backed list of records of type T, looked up by RecordKey.
type Store[T KeyedRecord] struct {
	path        string
	codec       DocumentCodec[T]
	locking     bool
	lockTimeout time.Duration
	lock        *documentLock
}

// Open returns a Store for the document at path, creating the document as an
// empty list if no file exists there.
func Open[T KeyedRecord](path string, options ...StoreOption[T]) (*Store[T], error) {
	store := &Store[T]{
		path:  path,
		codec: persistence.NewJSON[T](),
	}

	for _, opt := range options {
		opt(store)
	}

	if store.locking {
		store.lock = newDocumentLock(path, store.lockTimeout)
	}

	if err := store.withLock(store.initDocument); err != nil {
		return nil, errors.Wrap(err, "recordstore.Open")
	}
	return store, nil
}

// MustOpen is like Open but panics if the document cannot be created.
// A store that cannot create its document is a startup failure, not a
// condition callers are expected to handle.
func MustOpen[T KeyedRecord](path string, options ...StoreOption[T]) *Store[T] {
	store, err := Open(path, options...)
	if err != nil {
		log.Error().Str("path", path).Err(err).Msg("recordstore: cannot open document")
		panic(err)
	}
	return store
}

// Path returns the document path.
func (s *Store[T]) Path() string {
	return s.path
}

// Insert appends value to the end of the document.
func (s *Store[T]) Insert(value T) error {
	return s.withLock(func() error {
		records, err := s.read()
		if err != nil {
			return errors.Wrap(err, "Store.Insert")
		}
		records = append(records, value)
		if err := s.write(records); err != nil {
			return errors.Wrap(err, "Store.Insert")
		}
		log.Debug().Str("path", s.path).Str("key", value.RecordKey()).Int("records", len(records)).Msg("recordstore: inserted")
		return nil
	})
}

// Query returns the first record, in document order, whose key equals key.
func (s *Store[T]) Query(key string) (T, error) {
	var found T
	err := s.withLock(func() error {
		records, err := s.read()
		if err != nil {
			return errors.Wrap(err, "Store.Query")
		}
		idx := indexOf(records, key)
		if idx < 0 {
			return ErrNotFound
		}
		found = records[idx]
		return nil
	})
	return found, err
}

// QueryMany returns every record whose key equals key, in document order.
// ErrNotFound is returned rather than an empty slice.
func (s *Store[T]) QueryMany(key string) ([]T, error) {
	var matches []T
	err := s.withLock(func() error {
		records, err := s.read()
		if err != nil {
			return errors.Wrap(err, "Store.QueryMany")
		}
		for _, r := range records {
			if r.RecordKey() == key {
				matches = append(matches, r)
			}
		}
		if len(matches) == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// List returns every record in document order.
func (s *Store[T]) List() ([]T, error) {
	var records []T
	err := s.withLock(func() error {
		var err error
		records, err = s.read()
		return errors.Wrap(err, "Store.List")
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Update replaces the first record whose key equals key with value, keeping
// its position. value's own key may differ from key.
//
// Update does not return ErrNotFound: when nothing matches it succeeds
// without writing the document. Query and Delete do report a miss.
func (s *Store[T]) Update(key string, value T) error {
	return s.withLock(func() error {
		records, err := s.read()
		if err != nil {
			return errors.Wrap(err, "Store.Update")
		}
		idx := indexOf(records, key)
		if idx < 0 {
			log.Debug().Str("path", s.path).Str("key", key).Msg("recordstore: update matched nothing")
			return nil
		}
		records[idx] = value
		if err := s.write(records); err != nil {
			return errors.Wrap(err, "Store.Update")
		}
		log.Debug().Str("path", s.path).Str("key", key).Int("index", idx).Msg("recordstore: updated")
		return nil
	})
}

// Delete removes and returns the first record whose key equals key.
// The last record is moved into the freed slot, so the order of the
// remaining records is not preserved.
func (s *Store[T]) Delete(key string) (T, error) {
	var removed T
	err := s.withLock(func() error {
		records, err := s.read()
		if err != nil {
			return errors.Wrap(err, "Store.Delete")
		}
		idx := indexOf(records, key)
		if idx < 0 {
			return ErrNotFound
		}

		removed = records[idx]
		last := len(records) - 1
		records[idx] = records[last]
		records = records[:last]

		if err := s.write(records); err != nil {
			return errors.Wrap(err, "Store.Delete")
		}
		log.Debug().Str("path", s.path).Str("key", key).Int("records", len(records)).Msg("recordstore: deleted")
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return removed, nil
}

func (s *Store[T]) initDocument() error {
	fi, err := os.Stat(s.path)
	if err == nil {
		if fi.IsDir() {
			return errors.Wrap(&persistence.IOError{Op: "stat", Path: s.path, Err: errors.New("is a directory")}, "Store.initDocument")
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrap(&persistence.IOError{Op: "stat", Path: s.path, Err: err}, "Store.initDocument")
	}

	if err := s.codec.Write(s.path, make([]T, 0)); err != nil {
		return errors.Wrap(err, "Store.initDocument")
	}
	log.Info().Str("path", s.path).Msg("recordstore: created empty document")
	return nil
}

func (s *Store[T]) withLock(fn func() error) error {
	if s.lock == nil {
		return fn()
	}
	release, err := s.lock.acquire()
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func (s *Store[T]) read() ([]T, error) {
	return s.codec.Read(s.path)
}

func (s *Store[T]) write(records []T) error {
	return s.codec.Write(s.path, records)
}

func indexOf[T KeyedRecord](records []T, key string) int {
	for i, r := range records {
		if r.RecordKey() == key {
			return i
		}
	}
	return -1
}
