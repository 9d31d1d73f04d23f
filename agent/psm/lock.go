package psm

import (
	"sync"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Locker serializes the transitions of a thread. The machines aren't
// re-entrant: two messages of the same thread must not be stepped at the
// same time. Different threads don't block each other.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	users int
}

// Lock locks the key and returns the function to unlock it.
func (l *Locker) Lock(key StateKey) (unlock func()) {
	k := key.String()

	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*keyLock)
	}
	kl, ok := l.locks[k]
	if !ok {
		kl = &keyLock{}
		l.locks[k] = kl
	}
	kl.users++
	l.mu.Unlock()

	kl.Lock()
	return func() {
		kl.Unlock()

		l.mu.Lock()
		kl.users--
		if kl.users == 0 {
			delete(l.locks, k)
		}
		l.mu.Unlock()
	}
}

// Update loads the machine of the key to m, steps it and stores the result
// under the key's lock. The record is not touched if step fails.
func Update[M Machine](
	s *Store,
	key StateKey,
	m M,
	step func(M) (M, error),
) (
	next M,
	err error,
) {
	defer err2.Handle(&err, "psm update %s", key)

	unlock := s.Lock(key)
	defer unlock()

	r := try.To1(s.Load(key, m))
	next = try.To1(step(m))
	try.To(s.Add(key, r.Role, next))
	return next, nil
}
