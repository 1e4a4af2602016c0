// Package favorites holds the favorited-record slice: a set of record
// ids, persisted across restarts independently of the session slice.
package favorites

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/calebwray/portal/internal/storage"
)

// StorageKey is the slice's key in the persistence store.
const StorageKey = "favorite-characters"

// Store is the favorites slice. Membership is a set; insertion order is
// preserved for display. Every toggle persists the full set synchronously.
type Store struct {
	storage *storage.Store

	mu  sync.Mutex
	ids []int
}

// New builds the slice, rehydrating from st. An absent or unreadable
// snapshot yields an empty set.
func New(st *storage.Store) *Store {
	s := &Store{storage: st}
	raw, err := st.Get(StorageKey)
	if err != nil {
		return s
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return s
	}
	s.ids = ids
	return s
}

// Toggle adds id when absent and removes it when present, then persists.
// It reports whether id is a favorite afterwards.
func (s *Store) Toggle(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.ids {
		if existing == id {
			idx = i
			break
		}
	}
	member := idx < 0
	if member {
		s.ids = append(s.ids, id)
	} else {
		s.ids = append(s.ids[:idx], s.ids[idx+1:]...)
	}
	if err := s.persistLocked(); err != nil {
		return member, err
	}
	return member, nil
}

// Contains reports whether id is favorited.
func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns the favorited ids in insertion order.
func (s *Store) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Store) persistLocked() error {
	ids := s.ids
	if ids == nil {
		ids = []int{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := s.storage.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}
