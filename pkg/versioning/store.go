// Package versioning keeps the append-only history of framework states.
// Entries hold serialized deep copies, so later edits to the live catalog
// can never reach a stored version.
package versioning

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/dd0wney/cluso-archmodel/pkg/model"
)

// ErrVersionNotFound is returned when a restore references an unknown id.
var ErrVersionNotFound = errors.New("version not found")

// Entry is one immutable version record. The state payload is stored as
// snappy-compressed JSON and only decoded on restore.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`

	compressed []byte
}

// Store is the append-only version history. History grows for the process
// lifetime; Reset is the only way to discard it.
type Store struct {
	mu      sync.RWMutex
	entries []*Entry
	byID    map[string]*Entry
}

// NewStore creates an empty version store.
func NewStore() *Store {
	return &Store{
		entries: make([]*Entry, 0),
		byID:    make(map[string]*Entry),
	}
}

// Snapshot appends a version entry holding a deep copy of state and returns
// the new entry's id. The copy is taken before serialization, so the caller
// may keep mutating the live state.
func (s *Store) Snapshot(state *model.FrameworkState, author string) (string, error) {
	data, err := json.Marshal(state.Clone())
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	entry := &Entry{
		ID:         uuid.New().String(),
		Timestamp:  time.Now(),
		Author:     author,
		NodeCount:  state.NodeCount(),
		EdgeCount:  state.EdgeCount(),
		compressed: snappy.Encode(nil, data),
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.byID[entry.ID] = entry
	s.mu.Unlock()

	return entry.ID, nil
}

// List returns entry metadata in creation order, oldest first.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = Entry{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Author:    e.Author,
			NodeCount: e.NodeCount,
			EdgeCount: e.EdgeCount,
		}
	}
	return out
}

// Restore decodes the entry with the given id into a fresh state. The stored
// entry is never modified; restoring twice yields two independent copies.
func (s *Store) Restore(id string) (*model.FrameworkState, error) {
	s.mu.RLock()
	entry, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("restore %q: %w", id, ErrVersionNotFound)
	}

	data, err := snappy.Decode(nil, entry.compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress version %q: %w", id, err)
	}

	state := model.NewFrameworkState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("unmarshal version %q: %w", id, err)
	}
	return state, nil
}

// Len returns the number of stored versions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Reset discards the whole history.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
	s.byID = make(map[string]*Entry)
}
