package logger

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Levels(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	logs := recorded.All()
	if len(logs) != 4 {
		t.Fatalf("expected 4 logs, got %d", len(logs))
	}
	want := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, entry := range logs {
		if entry.Level != want[i] {
			t.Errorf("log %d: level %v, want %v", i, entry.Level, want[i])
		}
	}
}

func TestZapLogger_StructuredFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core))

	l.Info("consumed",
		Field{Key: "cost", Value: 20},
		Field{Key: "current", Value: int64(80)},
		Field{Key: "tick", Value: uint64(3)},
		Field{Key: "threshold", Value: 0.3},
		Field{Key: "fatigued", Value: false},
		Field{Key: "cooldown", Value: 2 * time.Second},
		Field{Key: "err", Value: errors.New("boom")},
	)

	logs := recorded.All()
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	ctx := logs[0].ContextMap()
	if ctx["cost"] != int64(20) {
		t.Errorf("cost = %v", ctx["cost"])
	}
	if ctx["current"] != int64(80) {
		t.Errorf("current = %v", ctx["current"])
	}
	if ctx["fatigued"] != false {
		t.Errorf("fatigued = %v", ctx["fatigued"])
	}
	if ctx["cooldown"] != 2*time.Second {
		t.Errorf("cooldown = %v", ctx["cooldown"])
	}
	if ctx["err"] != "boom" {
		t.Errorf("err = %v", ctx["err"])
	}
}

func TestZapLogger_With(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core)).With(Field{Key: "actor", Value: "player"})

	l.Debug("tick")

	logs := recorded.FilterMessage("tick").All()
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].ContextMap()["actor"] != "player" {
		t.Fatalf("context field missing: %v", logs[0].ContextMap())
	}
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core))

	l.Debug("hidden")
	l.Info("shown")

	if recorded.Len() != 1 {
		t.Fatalf("expected debug to be filtered, got %d entries", recorded.Len())
	}
}

func TestNewZapLogger_Configs(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"default", DefaultConfig()},
		{"development", DevelopmentConfig()},
		{"bad_level", Config{Level: "loud", Format: "json"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, err := NewZapLogger(c.cfg)
			if err != nil {
				t.Fatalf("NewZapLogger: %v", err)
			}
			l.Info("ok")
		})
	}
}

type phase string

func (p phase) String() string { return "phase:" + string(p) }

func TestZapLogger_StringerAndEmptyWith(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core))
	if l.With() != Logger(l) {
		t.Fatalf("With without fields should return the same logger")
	}

	l.Info("state", Field{Key: "state", Value: phase("cooldown")}, Field{Key: "actors", Value: []string{"player", "scout"}})
	ctx := recorded.All()[0].ContextMap()
	if ctx["state"] != "phase:cooldown" {
		t.Errorf("state = %v", ctx["state"])
	}
	if got, ok := ctx["actors"].([]interface{}); !ok || len(got) != 2 {
		t.Errorf("actors = %#v", ctx["actors"])
	}
}

func TestZapConfig(t *testing.T) {
	prod := zapConfig(Config{Level: "warn", Format: "json", EnableSampling: true})
	if prod.Encoding != "json" || prod.Level.Level() != zapcore.WarnLevel {
		t.Fatalf("prod config = %s/%v", prod.Encoding, prod.Level.Level())
	}
	if prod.Sampling == nil || prod.Sampling.Initial != 100 || prod.Sampling.Thereafter != 1000 {
		t.Fatalf("sampling defaults not applied: %+v", prod.Sampling)
	}

	dev := zapConfig(DevelopmentConfig())
	if dev.Encoding != "console" || !dev.Development || dev.Sampling != nil {
		t.Fatalf("dev config = %s dev=%v sampling=%v", dev.Encoding, dev.Development, dev.Sampling)
	}
	if dev.Level.Level() != zapcore.DebugLevel {
		t.Fatalf("dev level = %v", dev.Level.Level())
	}

	if bad := zapConfig(Config{Level: "loud"}); bad.Level.Level() != zapcore.InfoLevel {
		t.Fatalf("unknown level should fall back to info, got %v", bad.Level.Level())
	}
}

func TestConfigFromLookup(t *testing.T) {
	env := map[string]string{
		"STAMINA_ENV":       "production",
		"STAMINA_LOG_LEVEL": "debug",
	}
	cfg := configFromLookup(func(k string) string { return env[k] })
	if cfg.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Level)
	}
	if cfg.Format != "json" || cfg.Development {
		t.Errorf("production base not applied: %+v", cfg)
	}

	cfg = configFromLookup(func(string) string { return "" })
	if !cfg.Development || cfg.Format != "console" {
		t.Errorf("development default not applied: %+v", cfg)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Debug("x")
	if l.With(Field{Key: "k", Value: 1}) == nil {
		t.Fatalf("With on nop should return a logger")
	}
	if err := l.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
}

func TestNewWithComponent(t *testing.T) {
	t.Setenv("STAMINA_ENV", "production")
	t.Setenv("STAMINA_LOG_LEVEL", "warn")
	l, err := NewWithComponent("staminasim")
	if err != nil {
		t.Fatalf("NewWithComponent: %v", err)
	}
	l.Info("filtered")
	l.Warn("shown")
}
