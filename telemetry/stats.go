package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of generations.
type WindowStats struct {
	WindowStartGen int `csv:"-"`
	WindowEndGen   int `csv:"generation"`

	// Population counts at window end
	Rabbits int `csv:"rabbits"`
	Foxes   int `csv:"foxes"`
	Rocks   int `csv:"rocks"`
	Empty   int `csv:"empty"`

	// Events during window
	RabbitBirths    int `csv:"rabbit_births"`
	FoxBirths       int `csv:"fox_births"`
	RabbitsEaten    int `csv:"rabbits_eaten"`
	FoxesStarved    int `csv:"foxes_starved"`
	RabbitConflicts int `csv:"rabbit_conflicts"`
	FoxConflicts    int `csv:"fox_conflicts"`
	DeferredMoves   int `csv:"deferred_moves"`

	// Age and hunger distribution (sampled at window end)
	RabbitAgeMean   float64 `csv:"rabbit_age_mean"`
	RabbitAgeStd    float64 `csv:"rabbit_age_std"`
	RabbitAgeMedian float64 `csv:"rabbit_age_median"`
	FoxAgeMean      float64 `csv:"fox_age_mean"`
	FoxAgeStd       float64 `csv:"fox_age_std"`
	FoxAgeMedian    float64 `csv:"fox_age_median"`
	FoxHungerMean   float64 `csv:"fox_hunger_mean"`
	FoxHungerMax    float64 `csv:"fox_hunger_max"`
}

// Distribution summarises a sample of per-entity counters.
type Distribution struct {
	Mean   float64
	Std    float64
	Median float64
	Max    float64
}

// Summarize computes mean, sample standard deviation, median and max.
// An empty sample yields all zeros; a single value has zero spread.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:    floats.Max(sorted),
	}
	if n > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartGen),
		slog.Int("window_end", s.WindowEndGen),
		slog.Int("rabbits", s.Rabbits),
		slog.Int("foxes", s.Foxes),
		slog.Int("rocks", s.Rocks),
		slog.Int("rabbit_births", s.RabbitBirths),
		slog.Int("fox_births", s.FoxBirths),
		slog.Int("rabbits_eaten", s.RabbitsEaten),
		slog.Int("foxes_starved", s.FoxesStarved),
		slog.Int("rabbit_conflicts", s.RabbitConflicts),
		slog.Int("fox_conflicts", s.FoxConflicts),
		slog.Int("deferred_moves", s.DeferredMoves),
		slog.Float64("rabbit_age_mean", s.RabbitAgeMean),
		slog.Float64("fox_age_mean", s.FoxAgeMean),
		slog.Float64("fox_hunger_mean", s.FoxHungerMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"generation", s.WindowEndGen,
		"rabbits", s.Rabbits,
		"foxes", s.Foxes,
		"rabbit_births", s.RabbitBirths,
		"fox_births", s.FoxBirths,
		"rabbits_eaten", s.RabbitsEaten,
		"foxes_starved", s.FoxesStarved,
		"rabbit_conflicts", s.RabbitConflicts,
		"fox_conflicts", s.FoxConflicts,
		"deferred_moves", s.DeferredMoves,
		"rabbit_age_mean", s.RabbitAgeMean,
		"rabbit_age_std", s.RabbitAgeStd,
		"fox_age_mean", s.FoxAgeMean,
		"fox_hunger_mean", s.FoxHungerMean,
		"fox_hunger_max", s.FoxHungerMax,
	)
}
