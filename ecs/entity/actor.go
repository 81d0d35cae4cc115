package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/stamina/ecs"
	"github.com/milk9111/stamina/ecs/component"
	"github.com/milk9111/stamina/logger"
	"github.com/milk9111/stamina/prefabs"
	"github.com/milk9111/stamina/stamina"
)

// NewActor builds an actor from the named prefab spec.
func NewActor(w *ecs.World, clk stamina.Clock, archetype string, log logger.Logger) (ecs.Entity, error) {
	spec, err := prefabs.LoadActorSpec(archetype)
	if err != nil {
		return 0, err
	}
	return BuildActor(w, clk, spec, log)
}

// BuildActor creates an entity carrying an Actor, a stamina controller
// wired to the world (fatigue tag, insufficient and full events) and, if
// the spec names one, an ActorScript. clk may be nil, in which case the
// controller keeps its own clock.
func BuildActor(w *ecs.World, clk stamina.Clock, spec *prefabs.ActorSpec, log logger.Logger) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("actor: nil world")
	}
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("actor: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	e := ecs.CreateEntity(w)
	actor := &component.Actor{
		ID:        uuid.New(),
		Name:      spec.Name,
		Archetype: spec.Archetype,
	}
	if actor.Archetype == "" {
		actor.Archetype = spec.Name
	}
	log = log.With(
		logger.Field{Key: "actor", Value: actor.Name},
		logger.Field{Key: "actor_id", Value: actor.ID.String()},
	)

	opts := []stamina.Option{
		stamina.WithSignal(NewFatigueSignal(w, e)),
		stamina.WithLogger(log),
	}
	if clk != nil {
		opts = append(opts, stamina.WithClock(clk))
	}
	ctrl, err := stamina.New(spec.Stamina, opts...)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("actor %s: %w", spec.Name, err)
	}
	ctrl.OnInsufficient = func(_ *stamina.Controller, cost int) {
		w.Events().Push(ecs.Event{Type: ecs.EventStaminaInsufficient, Entity: e, Data: cost})
	}
	ctrl.OnFull = func(*stamina.Controller) {
		w.Events().Push(ecs.Event{Type: ecs.EventStaminaFull, Entity: e})
	}

	if err := ecs.Add(w, e, component.ActorComponent.Kind(), actor); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("actor %s: add actor: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.StaminaComponent.Kind(), ctrl); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("actor %s: add stamina: %w", spec.Name, err)
	}
	if spec.Script != "" {
		if err := ecs.Add(w, e, component.ActorScriptComponent.Kind(), &component.ActorScript{Path: spec.Script}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("actor %s: add script: %w", spec.Name, err)
		}
	}

	log.Debug("actor built", logger.Field{Key: "archetype", Value: actor.Archetype}, logger.Field{Key: "max", Value: ctrl.Max()})
	return e, nil
}
