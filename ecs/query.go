package ecs

import "github.com/milk9111/stamina/ecs/component"

// Query returns the live entities carrying every listed component, in the
// storage order of the smallest store. A kind with no store yields nil.
func Query(w *World, ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	stores := make([]*sparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s.len() == 0 {
			return nil
		}
		stores = append(stores, s)
	}
	// iterate smallest set
	smallest := 0
	for i, s := range stores {
		if s.len() < stores[smallest].len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, stores[smallest].len())
	for _, e := range stores[smallest].dense {
		if !w.entities.isAlive(e) {
			continue
		}
		all := true
		for i, s := range stores {
			if i != smallest && !s.has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}
