package ecs

import "github.com/milk9111/stamina/ecs/component"

// Add attaches value to e, replacing any previous value of the same kind.
// A replaced value other than value itself is released.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	if prev, ok := w.store(kind.ID(), true).set(e, value); ok {
		if old, same := prev.(*T); !same || old != value {
			release(prev)
		}
	}
	return nil
}

// Remove detaches the component of the given kind, releasing it if it
// holds resources. It reports whether e had one.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	v, ok := w.store(kind.ID(), false).remove(e)
	if ok {
		release(v)
	}
	return ok
}

// Has reports whether e carries a component of the given kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).has(e)
}

// Get returns e's component of the given kind.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).get(e)
	if !ok {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok && cast != nil
}

// ForEach calls fn for every live entity carrying the kind. fn may add,
// remove or destroy freely; entities dropped mid-iteration are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	store := w.store(kind.ID(), false)
	if store.len() == 0 {
		return
	}
	snapshot := append([]Entity(nil), store.dense...)
	for _, e := range snapshot {
		v, ok := Get(w, e, kind)
		if !ok || !w.entities.isAlive(e) {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 calls fn for every entity carrying both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range Query(w, ka.ID(), kb.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

// First returns the first entity carrying the kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	store := w.store(kind.ID(), false)
	if store == nil {
		return 0, false
	}
	for _, e := range store.dense {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}
