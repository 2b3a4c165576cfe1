package game

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/warren/scenario"
)

// ErrNondeterministic is returned when runs with different worker counts
// disagree on the final grid.
var ErrNondeterministic = errors.New("simulation is not deterministic")

// VerifyDeterminism runs sc once per worker count, concurrently, and checks
// that every run ends in the same state. Telemetry output is disabled for the
// verification runs.
func VerifyDeterminism(sc *scenario.Scenario, base Options, workerCounts []int) error {
	if len(workerCounts) < 2 {
		return nil
	}

	games := make([]*Game, len(workerCounts))

	var eg errgroup.Group
	for i, workers := range workerCounts {
		eg.Go(func() error {
			opts := base
			opts.Workers = workers
			opts.ParallelThreshold = 0
			opts.LogStats = false
			opts.Output = nil

			g := New(sc, opts)
			defer g.Close()
			if err := g.Run(); err != nil {
				return fmt.Errorf("run with %d workers: %w", workers, err)
			}
			games[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	ref := games[0]
	for i := 1; i < len(games); i++ {
		if !ref.SameState(games[i]) {
			return fmt.Errorf("%w: %d workers and %d workers disagree after %d generations",
				ErrNondeterministic, ref.Workers(), games[i].Workers(), ref.Generation())
		}
	}
	return nil
}
