package ecs

import (
	"time"

	"github.com/milk9111/stamina/ecs/component"
)

// Releaser is implemented by component values that hold resources beyond
// the world, such as timers on a shared clock. The world calls Release
// when the component is removed or its entity destroyed.
type Releaser interface {
	Release()
}

// World owns entities, their components and the per-step frame state.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	events   EventQueue

	delta time.Duration
	tick  uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*sparseSet{}}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e, releasing those that hold
// resources, and frees the slot. It reports whether e was alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		if v, ok := store.remove(e); ok {
			release(v)
		}
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns the live entities in creation-slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// Delta returns the duration of the step being run.
func (w *World) Delta() time.Duration {
	if w == nil {
		return 0
	}
	return w.delta
}

// Tick returns the number of steps started so far.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	s := w.stores[id]
	if s == nil && create {
		if w.stores == nil {
			w.stores = map[component.ComponentID]*sparseSet{}
		}
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

func release(v any) {
	if r, ok := v.(Releaser); ok && r != nil {
		r.Release()
	}
}
