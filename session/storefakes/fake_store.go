package storefakes

import (
	"sync"

	"github.com/schooltrack/go-console-auth/session"
)

// FakeStore is an in-memory session.Store for tests.
type FakeStore struct {
	mu      sync.Mutex
	current session.Session
	present bool

	SaveCalls  int
	ClearCalls int
	SaveErr    error // returned from Save when set
}

// NewFakeStore creates an empty fake store.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Seed installs a session directly, bypassing Save bookkeeping.
func (f *FakeStore) Seed(s session.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = s
	f.present = true
}

func (f *FakeStore) Save(s session.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if !s.Complete() {
		return session.IncompleteSessionErr
	}
	f.current = s
	f.present = true
	return nil
}

func (f *FakeStore) Load() (session.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.present {
		return session.Session{}, false
	}
	return f.current, true
}

func (f *FakeStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	f.current = session.Session{}
	f.present = false
	return nil
}
