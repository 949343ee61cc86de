package transfer

import (
	"fmt"
	"sort"
	"sync"
)

// Locker serialises the balance check-and-update of a transfer.
type Locker interface {
	// Lock blocks until the given accounts may be mutated and returns the
	// matching unlock function.
	Lock(ids ...string) (unlock func())
	Mode() string
}

// NewLocker returns the locker for mode ("global" or "account").
func NewLocker(mode string) (Locker, error) {
	switch mode {
	case "", ModeGlobal:
		return NewGlobalLocker(), nil
	case ModeAccount:
		return NewAccountLocker(), nil
	default:
		return nil, fmt.Errorf("unknown lock mode %q", mode)
	}
}

const (
	ModeGlobal  = "global"
	ModeAccount = "account"
)

// GlobalLocker uses one process-wide mutex for every transfer.
type GlobalLocker struct {
	mu sync.Mutex
}

func NewGlobalLocker() *GlobalLocker { return &GlobalLocker{} }

func (l *GlobalLocker) Lock(...string) func() {
	l.mu.Lock()
	return l.mu.Unlock
}

func (l *GlobalLocker) Mode() string { return ModeGlobal }

// AccountLocker holds one mutex per account and always acquires them in
// sorted id order, so transfers on disjoint accounts run in parallel and
// overlapping ones cannot deadlock.
type AccountLocker struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func NewAccountLocker() *AccountLocker {
	return &AccountLocker{locks: make(map[string]*accountLock)}
}

func (l *AccountLocker) Mode() string { return ModeAccount }

func (l *AccountLocker) Lock(ids ...string) func() {
	ordered := canonicalOrder(ids)

	held := make([]*accountLock, 0, len(ordered))
	for _, id := range ordered {
		lock := l.acquire(id)
		lock.mu.Lock()
		held = append(held, lock)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(ordered[i])
		}
	}
}

// Size reports how many account mutexes are currently referenced.
func (l *AccountLocker) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *AccountLocker) acquire(id string) *accountLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[id]
	if !ok {
		lock = &accountLock{}
		l.locks[id] = lock
	}
	lock.refs++
	return lock
}

func (l *AccountLocker) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock := l.locks[id]
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, id)
	}
}

// canonicalOrder sorts ids and drops duplicates.
func canonicalOrder(ids []string) []string {
	ordered := append([]string(nil), ids...)
	sort.Strings(ordered)

	out := ordered[:0]
	for _, id := range ordered {
		if len(out) > 0 && out[len(out)-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out
}
