package l10n

import "sync/atomic"

// Snapshot publishes an immutable Store to concurrent readers. A reload
// builds a complete new Store and swaps it in; a published Store is never
// modified.
type Snapshot struct {
	current atomic.Pointer[Store]
}

func NewSnapshot(store *Store) *Snapshot {
	s := &Snapshot{}
	if store == nil {
		store = New()
	}
	s.current.Store(store)

	return s
}

// Load returns the current store.
func (s *Snapshot) Load() *Store {
	return s.current.Load()
}

// Swap publishes next and returns the store it replaced.
func (s *Snapshot) Swap(next *Store) *Store {
	if next == nil {
		next = New()
	}

	return s.current.Swap(next)
}

// Reload loads and merges paths into a fresh store and publishes it. On any
// error the current store stays in place.
func (s *Snapshot) Reload(paths ...string) error {
	next, err := LoadFiles(paths...)
	if err != nil {
		return err
	}
	s.Swap(next)

	return nil
}
