package initdb

import (
	"fmt"

	"github.com/gofrs/flock"
)

// lockPath takes an exclusive lock on dbPath+".init.lock", blocking until it
// is available. The returned function releases the lock. The lock file itself
// is left in place: removing it would let a waiter hold a lock on an unlinked
// inode while a newcomer locks a fresh file at the same path.
func lockPath(dbPath string) (unlock func(), err error) {
	l := flock.New(dbPath + ".init.lock")
	if err := l.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire init lock: %w", err)
	}
	return func() { l.Unlock() }, nil
}
