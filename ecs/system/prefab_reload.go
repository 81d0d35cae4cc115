package system

import (
	"time"

	"github.com/milk9111/stamina/ecs"
	"github.com/milk9111/stamina/ecs/component"
	"github.com/milk9111/stamina/logger"
	"github.com/milk9111/stamina/prefabs"
	"github.com/milk9111/stamina/stamina"
)

// PrefabReloadSystem applies edited actor specs and scripts to live actors.
// Spec changes re-tune every actor of the matching archetype through
// Controller.SetConfig; script changes drop the compiled script so it is
// rebuilt on the next step. A spec that fails to load or validate is
// logged and the running tuning is kept.
type PrefabReloadSystem struct {
	events  <-chan string
	errors  <-chan error
	scripts *ActorScriptSystem
	log     logger.Logger
	applied map[string]time.Time

	loadSpec func(name string) (*prefabs.ActorSpec, error)
	modTime  func(name string) (time.Time, bool)
}

// NewPrefabReloadSystem reads file names from events, typically a
// prefabs.Watcher's Events channel. scripts may be nil.
func NewPrefabReloadSystem(events <-chan string, errs <-chan error, scripts *ActorScriptSystem, log logger.Logger) *PrefabReloadSystem {
	if log == nil {
		log = logger.Nop()
	}
	return &PrefabReloadSystem{
		events:   events,
		errors:   errs,
		scripts:  scripts,
		log:      log,
		applied:  map[string]time.Time{},
		loadSpec: prefabs.LoadActorSpec,
		modTime:  prefabs.ModTime,
	}
}

// NewPrefabReloadSystemFromWatcher wires the system to a watcher.
func NewPrefabReloadSystemFromWatcher(w *prefabs.Watcher, scripts *ActorScriptSystem, log logger.Logger) *PrefabReloadSystem {
	if w == nil {
		return NewPrefabReloadSystem(nil, nil, scripts, log)
	}
	return NewPrefabReloadSystem(w.Events, w.Errors, scripts, log)
}

func (s *PrefabReloadSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for {
		select {
		case err, ok := <-s.errors:
			if !ok {
				s.errors = nil
				continue
			}
			s.log.Warn("prefab watcher error", logger.Field{Key: "error", Value: err})
		case name, ok := <-s.events:
			if !ok {
				s.events = nil
				continue
			}
			s.handle(w, name)
		default:
			return
		}
	}
}

func (s *PrefabReloadSystem) handle(w *ecs.World, path string) {
	switch {
	case isScriptPath(path):
		if s.scripts != nil {
			n := s.scripts.Invalidate(path)
			s.log.Info("script reloaded", logger.Field{Key: "script", Value: path}, logger.Field{Key: "actors", Value: n})
		}
	case isSpecPath(path):
		s.reloadSpec(w, path)
	}
}

func (s *PrefabReloadSystem) reloadSpec(w *ecs.World, path string) {
	archetype := prefabs.ArchetypeOf(path)
	name := archetype + ".yaml"
	mod, hasMod := s.modTime(name)
	if hasMod {
		if prev, seen := s.applied[archetype]; seen && !mod.After(prev) {
			return
		}
	}

	spec, err := s.loadSpec(name)
	if err != nil {
		s.log.Warn("prefab reload failed, keeping current tuning",
			logger.Field{Key: "archetype", Value: archetype},
			logger.Field{Key: "error", Value: err},
		)
		return
	}
	// Only a spec that loaded counts as applied; a rewrite within the same
	// mtime tick must still get through after a failed parse.
	if hasMod {
		s.applied[archetype] = mod
	}

	updated := 0
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.StaminaComponent.Kind(), func(e ecs.Entity, actor *component.Actor, c *stamina.Controller) {
		if actor.Archetype != archetype {
			return
		}
		if err := c.SetConfig(spec.Stamina); err != nil {
			s.log.Warn("stamina reconfigure failed", logger.Field{Key: "actor_id", Value: actor.ID.String()}, logger.Field{Key: "error", Value: err})
			return
		}
		s.syncScript(w, e, spec.Script)
		updated++
	})
	s.log.Info("prefab reloaded",
		logger.Field{Key: "archetype", Value: archetype},
		logger.Field{Key: "actors", Value: updated},
		logger.Field{Key: "max", Value: spec.Stamina.Max},
	)
}

// syncScript makes the actor's script component follow the spec.
func (s *PrefabReloadSystem) syncScript(w *ecs.World, e ecs.Entity, path string) {
	kind := component.ActorScriptComponent.Kind()
	current, has := ecs.Get(w, e, kind)
	switch {
	case path == "" && has:
		ecs.Remove(w, e, kind)
	case path != "" && (!has || current.Path != path):
		_ = ecs.Add(w, e, kind, &component.ActorScript{Path: path})
	}
}

func isSpecPath(path string) bool {
	switch ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func isScriptPath(path string) bool {
	return ext(path) == ".tengo"
}
