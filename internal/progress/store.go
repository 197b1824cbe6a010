package progress

import (
	"sort"
	"sync"
	"time"

	apperrors "github.com/agbru/progressrace/internal/errors"
)

// Store is the concurrent name -> progress mapping for one run.
type Store struct {
	total int

	mu      sync.RWMutex
	records map[string]*record
}

// NewStore creates an empty store for workers of totalSteps steps each.
func NewStore(totalSteps int) *Store {
	return &Store{
		total:   totalSteps,
		records: make(map[string]*record),
	}
}

// TotalSteps returns N, the number of steps of every worker.
func (s *Store) TotalSteps() int {
	return s.total
}

// Register inserts a new entry at step zero.
// It fails with apperrors.ErrAlreadyRegistered if name is already present.
func (s *Store) Register(name string, start time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[name]; ok {
		return apperrors.EntryError{Op: "register", Name: name, Err: apperrors.ErrAlreadyRegistered}
	}
	s.records[name] = &record{name: name, start: start}
	return nil
}

// Advance increments the step of name by one and returns the new value.
// Advancing a completed entry is a no-op that returns TotalSteps.
func (s *Store) Advance(name string) (int, error) {
	r, err := s.lookup("advance", name)
	if err != nil {
		return 0, err
	}
	for {
		cur := r.step.Load()
		if cur >= int64(s.total) {
			return s.total, nil
		}
		if r.step.CompareAndSwap(cur, cur+1) {
			return int(cur + 1), nil
		}
	}
}

// MarkFinished records the final duration of name if it is not set yet.
// Subsequent calls leave the first value in place.
//
// The call is a no-op while the entry is below TotalSteps, so an entry is
// only ever finished with a full bar.
//
// Parameters:
//   - name: The registered worker name.
//   - d: The elapsed time since the entry was registered.
//
// Returns:
//   - error: An EntryError wrapping apperrors.ErrNotFound for unknown names.
func (s *Store) MarkFinished(name string, d time.Duration) error {
	r, err := s.lookup("finish", name)
	if err != nil {
		return err
	}
	if r.step.Load() < int64(s.total) {
		return nil
	}
	r.final.CompareAndSwap(0, int64(d)+1)
	return nil
}

// Get returns a copy of a single entry.
func (s *Store) Get(name string) (Entry, bool) {
	s.mu.RLock()
	r, ok := s.records[name]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}
	return r.load(), true
}

// Len returns the number of registered entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot returns a copy of all entries sorted by the numeric suffix of
// their names. The order does not depend on registration order.
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.records))
	for _, r := range s.records {
		entries = append(entries, r.load())
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return Less(entries[i].Name, entries[j].Name)
	})
	return entries
}

func (s *Store) lookup(op, name string) (*record, error) {
	s.mu.RLock()
	r, ok := s.records[name]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.EntryError{Op: op, Name: name, Err: apperrors.ErrNotFound}
	}
	return r, nil
}
