// Package setutil provides small set types for ID collections.
package setutil

// UintSet is a set of uint values backed by a map.
type UintSet struct {
	items map[uint]struct{}
}

// NewUintSet creates an empty UintSet.
func NewUintSet() *UintSet {
	return &UintSet{
		items: make(map[uint]struct{}),
	}
}

// NewUintSetWithCap creates a UintSet with initial capacity.
func NewUintSetWithCap(cap int) *UintSet {
	return &UintSet{
		items: make(map[uint]struct{}, cap),
	}
}

// Add adds an id to the set.
func (s *UintSet) Add(id uint) {
	s.items[id] = struct{}{}
}

// Has reports whether the id is in the set.
func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

// Len returns the number of elements in the set.
func (s *UintSet) Len() int {
	return len(s.items)
}
