package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/milk9111/stamina/clock"
	"github.com/milk9111/stamina/ecs"
	"github.com/milk9111/stamina/ecs/component"
	"github.com/milk9111/stamina/ecs/entity"
	"github.com/milk9111/stamina/ecs/system"
	"github.com/milk9111/stamina/logger"
	"github.com/milk9111/stamina/prefabs"
	"github.com/milk9111/stamina/stamina"
)

type Options struct {
	Actors      []string
	TPS         int
	Debug       bool
	Watch       bool
	Consume     int
	Restore     int
	At          uint64
	ReportEvery uint64
}

// Simulation is a headless world of stamina actors stepped at a fixed rate.
type Simulation struct {
	opts    Options
	world   *ecs.World
	sched   *ecs.Scheduler
	watcher *prefabs.Watcher
	log     logger.Logger
	step    time.Duration
	actors  []ecs.Entity
	events  map[string]int
}

// ActorStatus is a point-in-time view of one actor.
type ActorStatus struct {
	Name      string
	Current   int
	Max       int
	State     stamina.State
	Fatigued  bool
	Scripted  bool
	Archetype string
}

func NewSimulation(opts Options, log logger.Logger) (*Simulation, error) {
	if log == nil {
		log = logger.Nop()
	}
	if len(opts.Actors) == 0 {
		opts.Actors = prefabs.Archetypes()
	}
	if len(opts.Actors) == 0 {
		return nil, fmt.Errorf("staminasim: no actors to simulate")
	}

	s := &Simulation{
		opts:   opts,
		world:  ecs.NewWorld(),
		log:    log,
		step:   clock.StepFor(opts.TPS),
		events: map[string]int{},
	}

	staminaSys := system.NewStaminaSystem(clock.NewScheduler(), log)
	scripts := system.NewActorScriptSystem(log)
	s.sched = ecs.NewScheduler()

	if opts.Watch {
		if err := s.startWatcher(scripts); err != nil {
			log.Warn("prefab watch disabled", logger.Field{Key: "error", Value: err})
		}
	}
	s.sched.Add(&requestSystem{consume: opts.Consume, restore: opts.Restore, at: opts.At})
	s.sched.Add(staminaSys)
	s.sched.Add(scripts)

	for _, name := range opts.Actors {
		spec, err := prefabs.LoadActorSpec(name)
		if err != nil {
			s.Close()
			return nil, err
		}
		spec.Stamina.Debug = opts.Debug
		e, err := entity.BuildActor(s.world, staminaSys.Clock(), spec, log)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.actors = append(s.actors, e)
	}

	log.Info("simulation ready",
		logger.Field{Key: "actors", Value: len(s.actors)},
		logger.Field{Key: "step", Value: s.step},
		logger.Field{Key: "watch", Value: s.watcher != nil},
	)
	return s, nil
}

func (s *Simulation) startWatcher(scripts *system.ActorScriptSystem) error {
	dirs := []string{}
	for _, dir := range []string{prefabs.DiskDir, filepath.Join(prefabs.DiskDir, "scripts")} {
		if isDir(dir) {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no prefab directory at %s", prefabs.DiskDir)
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	s.watcher = w
	s.sched.Add(system.NewPrefabReloadSystemFromWatcher(w, scripts, s.log))
	s.log.Info("watching prefabs", logger.Field{Key: "dirs", Value: strings.Join(dirs, ",")})
	return nil
}

// Run advances the simulation by ticks fixed steps.
func (s *Simulation) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step(s.step)
	}
}

// RunRealtime steps on a wall-clock ticker, feeding each step the clamped
// real elapsed time. ticks <= 0 runs until ctx is done.
func (s *Simulation) RunRealtime(ctx context.Context, ticks int) {
	ticker := time.NewTicker(s.step)
	defer ticker.Stop()
	frames := clock.NewFrameTimer(clock.DefaultMaxDelta, nil)

	for n := 0; ticks <= 0 || n < ticks; n++ {
		select {
		case <-ctx.Done():
			s.log.Info("simulation interrupted", logger.Field{Key: "tick", Value: s.world.Tick()})
			return
		case <-ticker.C:
			s.Step(frames.Delta())
		}
	}
}

// Step runs one step of duration dt and logs what happened.
func (s *Simulation) Step(dt time.Duration) {
	for _, evt := range s.sched.Step(s.world, dt) {
		s.events[evt.Type]++
		fields := []logger.Field{
			{Key: "event", Value: evt.Type},
			{Key: "tick", Value: s.world.Tick()},
		}
		if actor, ok := ecs.Get(s.world, evt.Entity, component.ActorComponent.Kind()); ok {
			fields = append(fields, logger.Field{Key: "actor", Value: actor.Name})
		}
		if evt.Data != nil {
			fields = append(fields, logger.Field{Key: "data", Value: evt.Data})
		}
		s.log.Info("stamina event", fields...)
	}
	if every := s.opts.ReportEvery; every > 0 && s.world.Tick()%every == 0 {
		s.Report()
	}
}

// Report logs one status line per actor.
func (s *Simulation) Report() {
	for _, st := range s.Status() {
		s.log.Info("actor status",
			logger.Field{Key: "tick", Value: s.world.Tick()},
			logger.Field{Key: "actor", Value: st.Name},
			logger.Field{Key: "current", Value: st.Current},
			logger.Field{Key: "max", Value: st.Max},
			logger.Field{Key: "state", Value: st.State},
			logger.Field{Key: "fatigued", Value: st.Fatigued},
		)
	}
}

// Status returns the actors in creation order.
func (s *Simulation) Status() []ActorStatus {
	out := make([]ActorStatus, 0, len(s.actors))
	for _, e := range s.actors {
		actor, ok := ecs.Get(s.world, e, component.ActorComponent.Kind())
		if !ok {
			continue
		}
		c, _ := ecs.Get(s.world, e, component.StaminaComponent.Kind())
		out = append(out, ActorStatus{
			Name:      actor.Name,
			Archetype: actor.Archetype,
			Current:   c.Current(),
			Max:       c.Max(),
			State:     c.State(),
			Fatigued:  ecs.Has(s.world, e, component.FatiguedComponent.Kind()),
			Scripted:  ecs.Has(s.world, e, component.ActorScriptComponent.Kind()),
		})
	}
	return out
}

// EventCount returns how many events of the given type were seen.
func (s *Simulation) EventCount(typ string) int {
	return s.events[typ]
}

func (s *Simulation) Close() {
	if s == nil || s.watcher == nil {
		return
	}
	if err := s.watcher.Close(); err != nil {
		s.log.Warn("closing prefab watcher", logger.Field{Key: "error", Value: err})
	}
	s.watcher = nil
}

func parseActors(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return prefabs.Archetypes()
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
