package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/milk9111/stamina/logger"
	"github.com/milk9111/stamina/prefabs"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	actors := flag.String("actors", "all", "comma separated archetypes from prefabs/ (or \"all\")")
	ticks := flag.Int("ticks", 600, "number of simulation steps to run (0 = until interrupted, realtime only)")
	tps := flag.Int("tps", 60, "simulation steps per second")
	realtime := flag.Bool("realtime", false, "pace steps against the wall clock instead of running flat out")
	watch := flag.Bool("watch", false, "hot reload actor specs and scripts from the prefabs directory")
	debug := flag.Bool("debug", false, "enable stamina diagnostics and debug logging")
	consume := flag.Int("consume", 0, "stamina every actor tries to spend at -at")
	restore := flag.Int("restore", 0, "stamina restored to every actor at -at")
	at := flag.Uint64("at", 1, "step at which -consume and -restore apply")
	report := flag.Uint64("report", 60, "log a status line per actor every N steps (0 = only at the end)")
	dir := flag.String("prefabs", prefabs.DiskDir, "directory checked for spec and script overrides")
	flag.Parse()

	if *debug {
		_ = os.Setenv("STAMINA_LOG_LEVEL", "debug")
	}
	log, err := logger.NewWithComponent("staminasim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "staminasim: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	prefabs.DiskDir = *dir

	sim, err := NewSimulation(Options{
		Actors:      parseActors(*actors),
		TPS:         *tps,
		Debug:       *debug,
		Watch:       *watch,
		Consume:     *consume,
		Restore:     *restore,
		At:          *at,
		ReportEvery: *report,
	}, log)
	if err != nil {
		log.Error("simulation setup failed", logger.Field{Key: "error", Value: err})
		os.Exit(1)
	}
	defer sim.Close()

	if *realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		sim.RunRealtime(ctx, *ticks)
	} else {
		sim.Run(*ticks)
	}
	sim.Report()
}
