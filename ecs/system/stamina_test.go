package system

import (
	"testing"
	"time"

	"github.com/milk9111/stamina/ecs"
	"github.com/milk9111/stamina/ecs/component"
	"github.com/milk9111/stamina/ecs/entity"
	"github.com/milk9111/stamina/prefabs"
	"github.com/milk9111/stamina/stamina"
)

func newActorWorld(t *testing.T, cfg stamina.Config) (*ecs.World, *ecs.Scheduler, *StaminaSystem, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	sys := NewStaminaSystem(nil, nil)
	e, err := entity.BuildActor(w, sys.Clock(), &prefabs.ActorSpec{Name: "tester", Stamina: cfg}, nil)
	if err != nil {
		t.Fatalf("BuildActor: %v", err)
	}
	return w, ecs.NewScheduler(sys), sys, e
}

func controllerOf(t *testing.T, w *ecs.World, e ecs.Entity) *stamina.Controller {
	t.Helper()
	c, ok := ecs.Get(w, e, component.StaminaComponent.Kind())
	if !ok {
		t.Fatalf("entity has no stamina")
	}
	return c
}

func countEvents(events []ecs.Event, typ string) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestStaminaSystemConsumeCooldownRegenerate(t *testing.T) {
	w, sched, _, e := newActorWorld(t, stamina.DefaultConfig())
	c := controllerOf(t, w, e)
	step := 100 * time.Millisecond

	_ = ecs.Add(w, e, component.StaminaConsumeRequestComponent.Kind(), &component.StaminaConsumeRequest{Cost: 20})
	sched.Step(w, step)
	if c.Current() != 80 || !c.CoolingDown() {
		t.Fatalf("after request: current=%d state=%v", c.Current(), c.State())
	}
	if ecs.Has(w, e, component.StaminaConsumeRequestComponent.Kind()) {
		t.Fatalf("request should be removed once processed")
	}

	for i := 0; i < 19; i++ {
		sched.Step(w, step)
	}
	if c.Regenerating() {
		t.Fatalf("regeneration started before the cooldown elapsed")
	}
	sched.Step(w, step)
	if !c.Regenerating() || c.Current() != 80 {
		t.Fatalf("expected regeneration to start at 80, state=%v current=%d", c.State(), c.Current())
	}

	var events []ecs.Event
	for i := 0; i < 20; i++ {
		events = append(events, sched.Step(w, step)...)
	}
	if c.Current() != 100 || c.State() != stamina.Full {
		t.Fatalf("current=%d state=%v, want full", c.Current(), c.State())
	}
	if countEvents(events, ecs.EventStaminaFull) != 1 {
		t.Fatalf("expected one stamina_full event, got %v", events)
	}
}

func TestStaminaSystemRequests(t *testing.T) {
	t.Run("insufficient", func(t *testing.T) {
		w, sched, _, e := newActorWorld(t, stamina.DefaultConfig())
		_ = ecs.Add(w, e, component.StaminaConsumeRequestComponent.Kind(), &component.StaminaConsumeRequest{Cost: 150})
		events := sched.Step(w, 16*time.Millisecond)
		if countEvents(events, ecs.EventStaminaInsufficient) != 1 {
			t.Fatalf("expected stamina_insufficient, got %v", events)
		}
		if c := controllerOf(t, w, e); c.Current() != 100 || c.CoolingDown() {
			t.Fatalf("failed request changed state")
		}
	})

	t.Run("restore", func(t *testing.T) {
		w, sched, _, e := newActorWorld(t, stamina.DefaultConfig())
		c := controllerOf(t, w, e)
		c.Consume(50)
		_ = ecs.Add(w, e, component.StaminaRestoreRequestComponent.Kind(), &component.StaminaRestoreRequest{Amount: 20})
		sched.Step(w, 16*time.Millisecond)
		if c.Current() != 70 {
			t.Fatalf("current=%d, want 70", c.Current())
		}
		if ecs.Has(w, e, component.StaminaRestoreRequestComponent.Kind()) {
			t.Fatalf("restore request should be removed")
		}
	})

	t.Run("without_stamina", func(t *testing.T) {
		w := ecs.NewWorld()
		sched := ecs.NewScheduler(NewStaminaSystem(nil, nil))
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.StaminaConsumeRequestComponent.Kind(), &component.StaminaConsumeRequest{Cost: 5})
		_ = ecs.Add(w, e, component.StaminaRestoreRequestComponent.Kind(), &component.StaminaRestoreRequest{Amount: 5})
		sched.Step(w, 16*time.Millisecond)
		if ecs.Has(w, e, component.StaminaConsumeRequestComponent.Kind()) || ecs.Has(w, e, component.StaminaRestoreRequestComponent.Kind()) {
			t.Fatalf("orphan requests should be dropped")
		}
	})
}

func TestStaminaSystemFatigueTag(t *testing.T) {
	w, sched, _, e := newActorWorld(t, stamina.DefaultConfig())
	_ = ecs.Add(w, e, component.StaminaConsumeRequestComponent.Kind(), &component.StaminaConsumeRequest{Cost: 90})
	sched.Step(w, 16*time.Millisecond)
	events := sched.Step(w, 16*time.Millisecond)
	if !ecs.Has(w, e, component.FatiguedComponent.Kind()) || countEvents(events, ecs.EventFatigueOn) != 1 {
		t.Fatalf("expected fatigue tag and event, got %v", events)
	}
}

func TestStaminaSystemDrivesControllersWithOwnClock(t *testing.T) {
	w := ecs.NewWorld()
	sched := ecs.NewScheduler(NewStaminaSystem(nil, nil))
	c, err := stamina.New(stamina.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.StaminaComponent.Kind(), c)

	c.Consume(10)
	sched.Step(w, 2*time.Second)
	sched.Step(w, time.Second)
	if c.Current() != 100 {
		t.Fatalf("current=%d, want 100", c.Current())
	}
}
