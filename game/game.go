// Package game runs the rabbits and foxes simulation on a worker pool.
package game

import (
	"runtime"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/scenario"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// Options configures a Game beyond the scenario itself.
type Options struct {
	Workers           int // 0 = GOMAXPROCS
	ParallelThreshold int // grids with fewer rows run on one worker

	LogStats  bool
	Telemetry config.TelemetryConfig
	Bookmarks config.BookmarksConfig
	Output    *telemetry.OutputManager // nil disables file output
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Workers:           cfg.Derived.Workers,
		ParallelThreshold: cfg.Engine.ParallelThreshold,
		Telemetry:         cfg.Telemetry,
		Bookmarks:         cfg.Bookmarks,
	}
}

// workerScratch holds per-worker state that is merged after each generation.
type workerScratch struct {
	events telemetry.EventCounts
}

// Game holds the complete simulation state.
type Game struct {
	params config.SimulationConfig

	grid      *systems.Grid
	partition *systems.Partition
	queues    []systems.MoveQueue
	// claims[i] is the storage index the entity staged at next[i] moved
	// from. Only read for cells a mover has written during the current phase.
	claims    []int
	scratches []workerScratch

	generation int

	parallel *parallelState

	// Telemetry
	collector  *telemetry.Collector
	perf       *telemetry.PerfCollector
	bookmarks  *telemetry.BookmarkDetector
	output     *telemetry.OutputManager
	census     telemetry.Population
	logStats   bool
	lastEvents telemetry.EventCounts
	totals     telemetry.EventCounts
	marks      []telemetry.Bookmark
	lastFlush  int
}

// New builds a game from a scenario. Entities are placed in list order, so a
// later entry for the same cell replaces an earlier one.
func New(sc *scenario.Scenario, opts Options) *Game {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if sc.Height < opts.ParallelThreshold {
		workers = 1
	}

	partition := systems.NewPartition(sc.Height, workers)
	grid := systems.NewGrid(sc.Width, sc.Height)

	g := &Game{
		params:    sc.Params,
		grid:      grid,
		partition: partition,
		queues:    systems.NewMoveQueues(partition.Workers()),
		claims:    make([]int, len(grid.Current())),
		scratches: make([]workerScratch, partition.Workers()),
		collector: telemetry.NewCollector(opts.Telemetry.StatsWindow),
		perf:      telemetry.NewPerfCollector(opts.Telemetry.PerfWindow),
		bookmarks: telemetry.NewBookmarkDetector(opts.Telemetry.BookmarkHistorySize, opts.Bookmarks),
		output:    opts.Output,
		logStats:  opts.LogStats,
	}

	for _, p := range sc.Entities {
		g.Place(p.Row, p.Col, components.New(p.Kind))
	}

	if partition.Workers() > 1 {
		g.parallel = newParallelState(partition.Workers())
	}

	return g
}

// Place puts e at logical coordinates. Only valid before the first Step.
func (g *Game) Place(row, col int, e components.Entity) {
	g.grid.Place(row, col, e)
}

// Params returns the ecology rules the game runs with.
func (g *Game) Params() config.SimulationConfig { return g.params }

// Generation returns the number of completed generations.
func (g *Game) Generation() int { return g.generation }

// Done reports whether the configured number of generations has run.
func (g *Game) Done() bool { return g.generation >= g.params.Generations }

// Workers returns the number of row partitions.
func (g *Game) Workers() int { return g.partition.Workers() }

// Grid exposes the underlying grid for read-only inspection.
func (g *Game) Grid() *systems.Grid { return g.grid }

// Size returns the interior dimensions as (width, height).
func (g *Game) Size() (int, int) { return g.grid.Size() }

// KindAt returns the kind at logical coordinates.
func (g *Game) KindAt(row, col int) components.Kind { return g.grid.KindAt(row, col) }

// EntityAt returns the entity at logical coordinates.
func (g *Game) EntityAt(row, col int) components.Entity { return g.grid.EntityAt(row, col) }

// LastEvents returns the events of the most recent generation.
func (g *Game) LastEvents() telemetry.EventCounts { return g.lastEvents }

// TotalEvents returns the events accumulated over the whole run.
func (g *Game) TotalEvents() telemetry.EventCounts { return g.totals }

// Bookmarks returns the bookmarks triggered so far.
func (g *Game) Bookmarks() []telemetry.Bookmark { return g.marks }

// Perf returns timing statistics over the recent generations.
func (g *Game) Perf() telemetry.PerfStats { return g.perf.Stats() }

// CountEntities returns the number of non-empty interior cells, rocks included.
func (g *Game) CountEntities() int {
	counts := g.grid.Count()
	return g.grid.Width()*g.grid.Height() - counts[components.KindEmpty]
}

// Occupied lists every non-empty interior cell in row-major order.
func (g *Game) Occupied() []scenario.Placement {
	var out []scenario.Placement
	for r := 0; r < g.grid.Height(); r++ {
		for c := 0; c < g.grid.Width(); c++ {
			if k := g.grid.KindAt(r, c); k != components.KindEmpty {
				out = append(out, scenario.Placement{Kind: k, Row: r, Col: c})
			}
		}
	}
	return out
}

// Result returns the final report for the scenario output format.
func (g *Game) Result() *scenario.Result {
	return &scenario.Result{
		Params:   g.params,
		Width:    g.grid.Width(),
		Height:   g.grid.Height(),
		Count:    g.CountEntities(),
		Entities: g.Occupied(),
	}
}

// SameState reports whether both games hold identical grids at the same generation.
func (g *Game) SameState(o *Game) bool {
	if g.generation != o.generation {
		return false
	}
	a, b := g.grid.Current(), o.grid.Current()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Close stops the worker pool. The grid stays readable.
func (g *Game) Close() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
