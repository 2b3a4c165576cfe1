// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all run configuration parameters.
// Simulation parameters normally come from the scenario header; the values
// here are the defaults used when a scenario does not supply them.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Engine     EngineConfig     `yaml:"engine"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`
	Render     RenderConfig     `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds the ecology rules.
type SimulationConfig struct {
	GenProcRabbits int `yaml:"gen_proc_rabbits"` // Generations before a rabbit may reproduce
	GenProcFoxes   int `yaml:"gen_proc_foxes"`   // Generations before a fox may reproduce
	GenFoodFoxes   int `yaml:"gen_food_foxes"`   // Generations a fox survives without eating
	Generations    int `yaml:"generations"`      // Number of generations to run
}

// EngineConfig holds worker pool settings.
type EngineConfig struct {
	Workers           int `yaml:"workers"`            // 0 = GOMAXPROCS
	ParallelThreshold int `yaml:"parallel_threshold"` // Grids with fewer rows run on one worker
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Generations per stats window
	PerfWindow          int `yaml:"perf_window"`  // Generations averaged by the perf collector
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	RabbitCrash RabbitCrashConfig `yaml:"rabbit_crash"`
	Stable      StableConfig      `yaml:"stable"`
}

// RabbitCrashConfig holds rabbit crash detection parameters.
type RabbitCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// StableConfig holds stable ecosystem detection parameters.
type StableConfig struct {
	MinRabbits    int     `yaml:"min_rabbits"`
	MinFoxes      int     `yaml:"min_foxes"`
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// RenderConfig holds terminal viewer settings.
type RenderConfig struct {
	WatchDelayMS int `yaml:"watch_delay_ms"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Workers int // Engine.Workers with 0 resolved to GOMAXPROCS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("%w: engine.workers must be >= 0, got %d", ErrInvalid, c.Engine.Workers)
	}
	if c.Telemetry.StatsWindow < 1 {
		return fmt.Errorf("%w: telemetry.stats_window must be >= 1, got %d", ErrInvalid, c.Telemetry.StatsWindow)
	}
	return nil
}

// MaxGenerations bounds the run length so that int32 age and hunger
// counters cannot overflow.
const MaxGenerations = 1<<31 - 1

// Validate checks the ecology rules.
func (s SimulationConfig) Validate() error {
	switch {
	case s.GenProcRabbits < 0:
		return fmt.Errorf("%w: gen_proc_rabbits must be >= 0, got %d", ErrInvalid, s.GenProcRabbits)
	case s.GenProcFoxes < 0:
		return fmt.Errorf("%w: gen_proc_foxes must be >= 0, got %d", ErrInvalid, s.GenProcFoxes)
	case s.GenFoodFoxes < 0:
		return fmt.Errorf("%w: gen_food_foxes must be >= 0, got %d", ErrInvalid, s.GenFoodFoxes)
	case s.Generations < 0 || s.Generations > MaxGenerations:
		return fmt.Errorf("%w: generations must be in [0, %d], got %d", ErrInvalid, MaxGenerations, s.Generations)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Workers = c.Engine.Workers
	if c.Derived.Workers == 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
