package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/telemetry"
)

// telemetryEnabled reports whether window stats have a consumer.
func (g *Game) telemetryEnabled() bool {
	return g.logStats || g.output != nil
}

// recordGeneration merges per-worker event counts and flushes a stats window
// when one is complete.
func (g *Game) recordGeneration() {
	g.lastEvents.Reset()
	for i := range g.scratches {
		g.lastEvents.Add(g.scratches[i].events)
		g.scratches[i].events.Reset()
	}
	g.totals.Add(g.lastEvents)
	g.collector.Record(g.lastEvents)

	if g.telemetryEnabled() && g.collector.ShouldFlush(g.generation) {
		g.flushStats()
	}
}

// takeCensus counts the current grid into g.census.
func (g *Game) takeCensus() {
	g.census.Reset()
	for r := 0; r < g.grid.Height(); r++ {
		for c := 0; c < g.grid.Width(); c++ {
			g.census.Observe(g.grid.EntityAt(r, c))
		}
	}
}

// flushStats closes the current stats window and hands it to every consumer.
func (g *Game) flushStats() {
	g.takeCensus()
	stats := g.collector.Flush(g.generation, &g.census)
	g.lastFlush = g.generation

	for _, b := range g.bookmarks.Check(stats) {
		g.marks = append(g.marks, b)
		if g.logStats {
			b.LogBookmark()
		}
		if err := g.output.WriteBookmark(b); err != nil {
			slog.Warn("failed to write bookmark", "error", err)
		}
	}

	perf := g.perf.Stats()
	if g.logStats {
		stats.LogStats()
		perf.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Warn("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perf, g.generation); err != nil {
		slog.Warn("failed to write perf", "error", err)
	}
}

// Finish flushes a partial stats window and writes the final snapshot.
func (g *Game) Finish() error {
	if g.telemetryEnabled() && g.generation > g.lastFlush {
		g.flushStats()
	}

	if g.output == nil {
		return nil
	}
	path, err := g.output.WriteSnapshot(g.Snapshot())
	if err != nil {
		return fmt.Errorf("writing final snapshot: %w", err)
	}
	slog.Info("snapshot written", "path", path, "generation", g.generation)
	return nil
}

// Snapshot captures every occupied cell with its counters.
func (g *Game) Snapshot() *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		Generation: g.generation,
		Width:      g.grid.Width(),
		Height:     g.grid.Height(),
		Params:     g.params,
		Workers:    g.partition.Workers(),
		Bookmarks:  g.marks,
	}
	for r := 0; r < g.grid.Height(); r++ {
		for c := 0; c < g.grid.Width(); c++ {
			e := g.grid.EntityAt(r, c)
			if e.Kind == components.KindEmpty {
				continue
			}
			s.Entities = append(s.Entities, telemetry.EntityState{
				Kind:   e.Kind.String(),
				Row:    r,
				Col:    c,
				Age:    e.Age,
				Hunger: e.Hunger,
			})
		}
	}
	return s
}
