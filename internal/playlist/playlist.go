// Package playlist holds the ordered, deduplicated collection of track paths
// and its current-index bookkeeping.
package playlist

import (
	"errors"
	"iter"
	"path/filepath"
	"strings"
)

// ErrOutOfRange reports a removal index that does not address an entry.
// Indices come from the UI selection, so hitting this is a programming
// defect, not a user condition.
var ErrOutOfRange = errors.New("playlist: index out of range")

// Store is an ordered list of track paths with no duplicates. It also owns
// the current index: -1 when nothing is selected, otherwise always a valid
// index into the list (mutations renormalize it).
type Store struct {
	paths   []string
	known   map[string]struct{}
	current int
}

// NewStore creates an empty store with no current index.
func NewStore() *Store {
	return &Store{
		known:   make(map[string]struct{}),
		current: -1,
	}
}

// Add appends each path not already present, in input order. If the store
// was empty with no current index, the first added entry becomes current.
// Reports whether anything was added.
func (s *Store) Add(paths ...string) bool {
	wasEmpty := len(s.paths) == 0
	added := false

	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, dup := s.known[p]; dup {
			continue
		}
		s.paths = append(s.paths, p)
		s.known[p] = struct{}{}
		added = true
	}

	if added && wasEmpty && s.current < 0 {
		s.current = 0
	}
	return added
}

// Remove deletes the entry at index. When the removed entry is the current
// one, the current index becomes unset and removedCurrent is true (the
// caller stops playback). An entry below the current index shifts it down
// by one so it keeps pointing at the same track.
func (s *Store) Remove(index int) (removedCurrent bool, err error) {
	if index < 0 || index >= len(s.paths) {
		return false, ErrOutOfRange
	}

	delete(s.known, s.paths[index])
	s.paths = append(s.paths[:index], s.paths[index+1:]...)

	switch {
	case s.current == index:
		s.current = -1
		removedCurrent = true
	case s.current > index:
		s.current--
	}

	return removedCurrent, nil
}

// Clear empties the store and unsets the current index.
func (s *Store) Clear() {
	s.paths = s.paths[:0]
	clear(s.known)
	s.current = -1
}

// Filtered returns a lazy, restartable sequence of (original index, display
// name) pairs whose display name contains query case-insensitively. An empty
// query matches everything. The underlying store is not touched.
func (s *Store) Filtered(query string) iter.Seq2[int, string] {
	query = strings.ToLower(strings.TrimSpace(query))
	return func(yield func(int, string) bool) {
		for i, p := range s.paths {
			name := filepath.Base(p)
			if query != "" && !strings.Contains(strings.ToLower(name), query) {
				continue
			}
			if !yield(i, name) {
				return
			}
		}
	}
}

// CurrentIndex returns the current index, or -1 when unset.
func (s *Store) CurrentIndex() int { return s.current }

// SetCurrentIndex moves the current index. Out-of-range values are ignored.
func (s *Store) SetCurrentIndex(index int) {
	if index < 0 || index >= len(s.paths) {
		return
	}
	s.current = index
}

// Current returns the path of the current entry, or "" when unset.
func (s *Store) Current() string {
	if s.current < 0 || s.current >= len(s.paths) {
		return ""
	}
	return s.paths[s.current]
}

// Path returns the entry at index, or "" when out of range.
func (s *Store) Path(index int) string {
	if index < 0 || index >= len(s.paths) {
		return ""
	}
	return s.paths[index]
}

// DisplayName returns the name shown for the entry at index.
func (s *Store) DisplayName(index int) string {
	p := s.Path(index)
	if p == "" {
		return ""
	}
	return filepath.Base(p)
}

// Paths returns a copy of all entries in order.
func (s *Store) Paths() []string {
	result := make([]string, len(s.paths))
	copy(result, s.paths)
	return result
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.paths) }

// IsEmpty returns true when the store has no entries.
func (s *Store) IsEmpty() bool { return len(s.paths) == 0 }
