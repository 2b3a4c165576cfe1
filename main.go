package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/render"
	"github.com/pthm-cable/warren/scenario"
	"github.com/pthm-cable/warren/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	inputPath := flag.String("input", "", "Scenario file (empty = read stdin)")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = use config)")
	generations := flag.Int("generations", -1, "Generations to run (-1 = use scenario header)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and final snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	printMap := flag.Bool("print", false, "Draw the final grid to stderr")
	watch := flag.Bool("watch", false, "Animate generations in the terminal")
	verify := flag.Bool("verify", false, "Check that 1 and N workers produce the same grid before running")

	flag.Parse()

	// Set up slog (JSON to stderr; stdout carries the result)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	sc, err := readScenario(*inputPath)
	if err != nil {
		slog.Error("failed to read scenario", "error", err)
		os.Exit(1)
	}
	if *generations >= 0 {
		sc.Params.Generations = *generations
		if err := sc.Params.Validate(); err != nil {
			slog.Error("invalid generations", "error", err)
			os.Exit(1)
		}
	}
	cfg.Simulation = sc.Params

	// Build game options
	opts := game.OptionsFromConfig(cfg)
	opts.LogStats = *logStats
	if *workers > 0 {
		opts.Workers = *workers
	}

	if *verify {
		counts := []int{1, max(opts.Workers, 2)}
		if err := game.VerifyDeterminism(sc, opts, counts); err != nil {
			slog.Error("determinism check failed", "error", err)
			os.Exit(1)
		}
		slog.Info("determinism check passed", "workers", counts, "generations", sc.Params.Generations)
	}

	if *outputDir != "" {
		om, err := telemetry.NewOutputManager(*outputDir)
		if err != nil {
			slog.Error("failed to create output dir", "error", err)
			os.Exit(1)
		}
		if err := om.WriteConfig(cfg); err != nil {
			slog.Warn("failed to write config", "error", err)
		}
		opts.Output = om
	}

	if err := run(sc, opts, *watch, *printMap, cfg.Render.WatchDelayMS); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// run executes the scenario and writes the result to stdout.
func run(sc *scenario.Scenario, opts game.Options, watch, printMap bool, delayMS int) error {
	defer opts.Output.Close()

	g := game.New(sc, opts)
	defer g.Close()

	slog.Info("starting simulation",
		"width", sc.Width,
		"height", sc.Height,
		"entities", len(sc.Entities),
		"generations", sc.Params.Generations,
		"workers", g.Workers(),
	)

	start := time.Now()
	if watch {
		if err := runWatched(g, time.Duration(delayMS)*time.Millisecond); err != nil {
			return err
		}
	} else if err := g.Run(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	slog.Info("simulation finished",
		"generation", g.Generation(),
		"elapsed", elapsed.String(),
		"gens_per_sec", float64(g.Generation())/elapsed.Seconds(),
		"events", g.TotalEvents(),
	)

	if printMap {
		if err := render.WriteASCII(os.Stderr, g); err != nil {
			return fmt.Errorf("drawing map: %w", err)
		}
	}
	return scenario.WriteResult(os.Stdout, g.Result())
}

// runWatched steps g while drawing each generation, then holds the final
// frame until the user quits.
func runWatched(g *game.Game, delay time.Duration) error {
	viewer, err := render.NewViewer()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer viewer.Close()

	ticker := time.NewTicker(max(delay, time.Millisecond))
	defer ticker.Stop()

	viewer.Draw(g.Generation(), g)
	for !g.Done() {
		select {
		case <-viewer.Quit():
			return g.Finish()
		case <-ticker.C:
		}
		g.Step()
		viewer.Draw(g.Generation(), g)
	}

	<-viewer.Quit()
	return g.Finish()
}

func readScenario(path string) (*scenario.Scenario, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return scenario.Parse(r)
}
