package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Telemetry.StatsWindow != 10 {
		t.Errorf("stats_window = %d, want 10", cfg.Telemetry.StatsWindow)
	}
	if cfg.Derived.Workers < 1 {
		t.Errorf("derived workers = %d, want >= 1", cfg.Derived.Workers)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("engine:\n  workers: 3\nsimulation:\n  gen_food_foxes: 9\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Derived.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Derived.Workers)
	}
	if cfg.Simulation.GenFoodFoxes != 9 {
		t.Errorf("gen_food_foxes = %d, want 9", cfg.Simulation.GenFoodFoxes)
	}
	// Untouched keys keep their defaults
	if cfg.Simulation.GenProcFoxes != 4 {
		t.Errorf("gen_proc_foxes = %d, want default 4", cfg.Simulation.GenProcFoxes)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSimulationValidate(t *testing.T) {
	tests := []struct {
		name    string
		sim     SimulationConfig
		wantErr bool
	}{
		{"zero values", SimulationConfig{}, false},
		{"typical", SimulationConfig{GenProcRabbits: 2, GenProcFoxes: 4, GenFoodFoxes: 3, Generations: 100}, false},
		{"negative rabbits", SimulationConfig{GenProcRabbits: -1}, true},
		{"negative foxes", SimulationConfig{GenProcFoxes: -1}, true},
		{"negative food", SimulationConfig{GenFoodFoxes: -1}, true},
		{"negative generations", SimulationConfig{Generations: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sim.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Engine.Workers = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if loaded.Engine.Workers != 7 {
		t.Errorf("workers = %d, want 7", loaded.Engine.Workers)
	}
}
