package recordstore

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/jrsteele09/go-recordstore/persistence"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	lockSuffix        = ".lock"
	lockRetryInterval = 25 * time.Millisecond
)

// documentLock is an advisory lock beside the document. The flock handle
// is reentrant for its owner, so mu serialises goroutines sharing one Store
// while the flock serialises separate Stores and processes.
type documentLock struct {
	mu      sync.Mutex
	path    string
	flock   *flock.Flock
	timeout time.Duration
}

func newDocumentLock(documentPath string, timeout time.Duration) *documentLock {
	path := documentPath + lockSuffix
	return &documentLock{
		path:    path,
		flock:   flock.New(path),
		timeout: timeout,
	}
}

// acquire blocks until the lock is held or the timeout expires.
// The returned func releases the lock.
func (l *documentLock) acquire() (func(), error) {
	l.mu.Lock()

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	locked, err := l.flock.TryLockContext(ctx, lockRetryInterval)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		l.mu.Unlock()
		return nil, errors.Wrap(&persistence.IOError{Op: "lock", Path: l.path, Err: err}, "documentLock.acquire")
	}
	if !locked {
		l.mu.Unlock()
		log.Error().Str("lock", l.path).Dur("timeout", l.timeout).Msg("recordstore: lock not acquired")
		return nil, ErrLocked
	}

	return func() {
		if err := l.flock.Unlock(); err != nil {
			log.Error().Str("lock", l.path).Err(err).Msg("recordstore: failed to release lock")
		}
		l.mu.Unlock()
	}, nil
}
