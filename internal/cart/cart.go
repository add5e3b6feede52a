package cart

import (
	"sync"
	"time"
)

// LineKey identifies a cart line: one design at one selected page.
type LineKey struct {
	DesignID string
	Page     int
}

type Line struct {
	DesignID  string    `json:"design_id"`
	Page      int       `json:"page"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"` // paise, frozen at add time
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image_url,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

func (l Line) Key() LineKey {
	return LineKey{DesignID: l.DesignID, Page: l.Page}
}

func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Store holds the cart lines for a single client session. Insertion order is
// preserved for display. The store has no I/O; all methods only mutate state.
type Store struct {
	mu    sync.RWMutex
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// Add merges into an existing line with the same key (quantities are summed,
// the original unit price is kept) or appends a new line at the end.
func (s *Store) Add(line Line) {
	if line.Quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := line.Key()
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity += line.Quantity
			return
		}
	}
	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now()
	}
	s.lines = append(s.lines, line)
}

// UpdateQuantity sets the quantity of an existing line. A quantity below 1 is
// a no-op: the floor of 1 is enforced at the presentation boundary, and going
// to zero is expressed as Remove, never as a zero-quantity line.
func (s *Store) UpdateQuantity(key LineKey, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line with the given key. Removing a missing key is a no-op.
func (s *Store) Remove(key LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Key() == key {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Total is recomputed on every call, never cached.
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, line := range s.lines {
		total += line.Subtotal()
	}
	return total
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}
