package ecs

// sparseSet stores one component kind keyed by entity slot. Values are kept
// as `any` holding a *T; the typed helpers in generics.go do the casting.
type sparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func newSparseSet() *sparseSet {
	return &sparseSet{}
}

func (s *sparseSet) index(e Entity) (int, bool) {
	id := int(e.id())
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet) get(e Entity) (any, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

// set inserts or replaces the value for e and returns the value it
// replaced, if any. A value left behind by an older generation of the same
// slot is overwritten.
func (s *sparseSet) set(e Entity, v any) (any, bool) {
	id := int(e.id())
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.dense) && s.dense[idx].id() == e.id() {
		prev := s.values[idx]
		s.dense[idx] = e
		s.values[idx] = v
		return prev, true
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
	return nil, false
}

// remove swaps the last element into the hole. It returns the removed value.
func (s *sparseSet) remove(e Entity) (any, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	removed := s.values[idx]
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return removed, true
}

func (s *sparseSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
