package system

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/stamina/ecs"
	"github.com/milk9111/stamina/ecs/component"
	"github.com/milk9111/stamina/logger"
	"github.com/milk9111/stamina/prefabs"
	"github.com/milk9111/stamina/stamina"
)

// ScriptLoader resolves a script path to its source.
type ScriptLoader func(path string) ([]byte, error)

// ActorScriptSystem runs each scripted actor's `update(engine, state)`
// once per step. state is a map that persists between steps; engine
// exposes the actor's stamina.
type ActorScriptSystem struct {
	load     ScriptLoader
	log      logger.Logger
	runtimes map[ecs.Entity]*actorScriptRuntime
}

type actorScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	failed     bool
}

const actorDispatchScript = `
if __phase == "update" {
	update(__engine, __state)
}
`

func NewActorScriptSystem(log logger.Logger) *ActorScriptSystem {
	if log == nil {
		log = logger.Nop()
	}
	return &ActorScriptSystem{
		load:     prefabs.LoadScript,
		log:      log,
		runtimes: map[ecs.Entity]*actorScriptRuntime{},
	}
}

// SetLoader replaces the script source, mainly for tests.
func (s *ActorScriptSystem) SetLoader(load ScriptLoader) {
	if s == nil || load == nil {
		return
	}
	s.load = load
	s.runtimes = map[ecs.Entity]*actorScriptRuntime{}
}

// Invalidate drops compiled runtimes for the named script so the next
// update recompiles it. Script state is reset as well.
func (s *ActorScriptSystem) Invalidate(path string) int {
	if s == nil {
		return 0
	}
	base := filepath.Base(filepath.ToSlash(path))
	dropped := 0
	for e, rt := range s.runtimes {
		if rt == nil || filepath.Base(rt.scriptPath) == base {
			delete(s.runtimes, e)
			dropped++
		}
	}
	return dropped
}

func (s *ActorScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach2(w, component.ActorScriptComponent.Kind(), component.StaminaComponent.Kind(), func(e ecs.Entity, script *component.ActorScript, c *stamina.Controller) {
		rt := s.runtime(e, script.Path)
		if rt == nil || rt.failed {
			return
		}
		log := s.log.With(logger.Field{Key: "entity", Value: e.String()}, logger.Field{Key: "script", Value: rt.scriptPath})
		engine := buildActorScriptEngine(w, c, log)
		if err := rt.run("update", engine); err != nil {
			rt.failed = true
			log.Error("actor script update error", logger.Field{Key: "error", Value: err})
		}
	})
}

// runtime returns the cached runtime for e, compiling the script on first
// use or when the path changed. Compile failures are cached so the error
// is reported once.
func (s *ActorScriptSystem) runtime(e ecs.Entity, path string) *actorScriptRuntime {
	if rt, ok := s.runtimes[e]; ok && rt != nil && rt.scriptPath == path {
		return rt
	}
	rt, err := s.compile(path)
	if err != nil {
		s.log.Error("actor script load error",
			logger.Field{Key: "entity", Value: e.String()},
			logger.Field{Key: "script", Value: path},
			logger.Field{Key: "error", Value: err},
		)
		rt = &actorScriptRuntime{scriptPath: path, failed: true}
	}
	s.runtimes[e] = rt
	return rt
}

func (s *ActorScriptSystem) compile(path string) (*actorScriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + actorDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	rt := &actorScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}

	// Globals are only populated after a run.
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := rt.run("noop", noop); err != nil {
		return nil, err
	}
	if !compiled.IsDefined("update") {
		return nil, fmt.Errorf("%s: no update function", path)
	}
	return rt, nil
}

func (rt *actorScriptRuntime) run(phase string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildActorScriptEngine(w *ecs.World, c *stamina.Controller, log logger.Logger) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["stamina"] = &tengo.UserFunction{Name: "stamina", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(c.Current())}, nil
	}}

	values["max_stamina"] = &tengo.UserFunction{Name: "max_stamina", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(c.Max())}, nil
	}}

	values["fatigued"] = &tengo.UserFunction{Name: "fatigued", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(c.IsFatigued()), nil
	}}

	values["state"] = &tengo.UserFunction{Name: "state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: c.State().String()}, nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(w.Tick())}, nil
	}}

	values["consume"] = &tengo.UserFunction{Name: "consume", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		cost, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(c.Consume(cost)), nil
	}}

	values["regenerate"] = &tengo.UserFunction{Name: "regenerate", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		amount, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(c.Regenerate(amount)), nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			if s, ok := tengo.ToString(arg); ok {
				parts = append(parts, s)
			}
		}
		log.Info(strings.Join(parts, " "), logger.Field{Key: "stamina", Value: c.Current()})
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
