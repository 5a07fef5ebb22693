package client

import "encoding/json"

// EntityStore is a normalized in-memory collection: entities by id plus
// an ordered id list, the same shape the web client keeps per slice.
type EntityStore[T any] struct {
	idOf   func(T) uint
	byID   map[uint]T
	allIDs []uint
}

// storeState is the JSON form an EntityStore persists as
type storeState[T any] struct {
	ByID   map[uint]T `json:"byId"`
	AllIDs []uint     `json:"allIds"`
}

// NewEntityStore builds an empty store; idOf extracts an entity's id
func NewEntityStore[T any](idOf func(T) uint) *EntityStore[T] {
	return &EntityStore[T]{
		idOf: idOf,
		byID: make(map[uint]T),
	}
}

// Put inserts or replaces an entity, preserving insertion order for new
// ids
func (s *EntityStore[T]) Put(v T) {
	id := s.idOf(v)
	if _, exists := s.byID[id]; !exists {
		s.allIDs = append(s.allIDs, id)
	}
	s.byID[id] = v
}

// Get returns the entity with the given id
func (s *EntityStore[T]) Get(id uint) (T, bool) {
	v, ok := s.byID[id]
	return v, ok
}

// Delete removes the entity with the given id
func (s *EntityStore[T]) Delete(id uint) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, existing := range s.allIDs {
		if existing == id {
			s.allIDs = append(s.allIDs[:i], s.allIDs[i+1:]...)
			break
		}
	}
}

// List returns all entities in insertion order
func (s *EntityStore[T]) List() []T {
	out := make([]T, 0, len(s.allIDs))
	for _, id := range s.allIDs {
		out = append(out, s.byID[id])
	}
	return out
}

// Replace swaps the whole collection for vs, e.g. after a list fetch
func (s *EntityStore[T]) Replace(vs []T) {
	s.byID = make(map[uint]T, len(vs))
	s.allIDs = s.allIDs[:0]
	for _, v := range vs {
		s.Put(v)
	}
}

// Clear empties the store
func (s *EntityStore[T]) Clear() {
	s.byID = make(map[uint]T)
	s.allIDs = nil
}

// Len reports the number of stored entities
func (s *EntityStore[T]) Len() int {
	return len(s.allIDs)
}

// MarshalJSON serializes the normalized shape
func (s *EntityStore[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(storeState[T]{ByID: s.byID, AllIDs: s.allIDs})
}

// UnmarshalJSON restores the normalized shape
func (s *EntityStore[T]) UnmarshalJSON(data []byte) error {
	var state storeState[T]
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	s.byID = state.ByID
	if s.byID == nil {
		s.byID = make(map[uint]T)
	}
	s.allIDs = state.AllIDs
	return nil
}
