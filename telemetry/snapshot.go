package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/warren/config"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the grid state at the end of a generation.
type Snapshot struct {
	Version    int                     `json:"version"`
	Generation int                     `json:"generation"`
	Width      int                     `json:"width"`
	Height     int                     `json:"height"`
	Params     config.SimulationConfig `json:"params"`
	Workers    int                     `json:"workers"`

	Entities []EntityState `json:"entities"`

	Bookmarks []Bookmark `json:"bookmarks,omitempty"`
}

// EntityState holds one occupied cell.
type EntityState struct {
	Kind   string `json:"kind"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Age    int32  `json:"age,omitempty"`
	Hunger int32  `json:"hunger,omitempty"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d.json", snapshot.Generation)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
