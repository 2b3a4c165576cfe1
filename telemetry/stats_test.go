package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/warren/components"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		wantMean   float64
		wantStd    float64
		wantMedian float64
		wantMax    float64
	}{
		{"empty slice", []float64{}, 0, 0, 0, 0},
		{"single element", []float64{5}, 5, 0, 5, 5},
		{"odd count", []float64{5, 1, 3, 2, 4}, 3, math.Sqrt(2.5), 3, 5},
		{"constant", []float64{2, 2, 2, 2}, 2, 0, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if math.Abs(got.Mean-tt.wantMean) > 0.001 {
				t.Errorf("Mean = %v, want %v", got.Mean, tt.wantMean)
			}
			if math.Abs(got.Std-tt.wantStd) > 0.001 {
				t.Errorf("Std = %v, want %v", got.Std, tt.wantStd)
			}
			if math.Abs(got.Median-tt.wantMedian) > 0.001 {
				t.Errorf("Median = %v, want %v", got.Median, tt.wantMedian)
			}
			if math.Abs(got.Max-tt.wantMax) > 0.001 {
				t.Errorf("Max = %v, want %v", got.Max, tt.wantMax)
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(5)

	c.Record(EventCounts{RabbitBirths: 2, DeferredMoves: 3})
	c.Record(EventCounts{RabbitBirths: 1, FoxesStarved: 1, RabbitsEaten: 4})

	if c.ShouldFlush(4) {
		t.Error("ShouldFlush(4) = true before window end")
	}
	if !c.ShouldFlush(5) {
		t.Error("ShouldFlush(5) = false at window end")
	}

	var pop Population
	pop.Observe(components.Entity{Kind: components.KindRabbit, Age: 2})
	pop.Observe(components.Entity{Kind: components.KindRabbit, Age: 4})
	pop.Observe(components.Entity{Kind: components.KindFox, Age: 1, Hunger: 2})
	pop.Observe(components.Rock)
	pop.Observe(components.Empty)

	stats := c.Flush(5, &pop)

	if stats.RabbitBirths != 3 {
		t.Errorf("RabbitBirths = %d, want 3", stats.RabbitBirths)
	}
	if stats.RabbitsEaten != 4 || stats.FoxesStarved != 1 || stats.DeferredMoves != 3 {
		t.Errorf("unexpected event totals: %+v", stats)
	}
	if stats.Rabbits != 2 || stats.Foxes != 1 || stats.Rocks != 1 || stats.Empty != 1 {
		t.Errorf("unexpected counts: rabbits=%d foxes=%d rocks=%d empty=%d",
			stats.Rabbits, stats.Foxes, stats.Rocks, stats.Empty)
	}
	if stats.RabbitAgeMean != 3 {
		t.Errorf("RabbitAgeMean = %v, want 3", stats.RabbitAgeMean)
	}
	if stats.FoxHungerMax != 2 {
		t.Errorf("FoxHungerMax = %v, want 2", stats.FoxHungerMax)
	}

	// Counters reset and the window moves on
	if c.Events() != (EventCounts{}) {
		t.Errorf("events not reset: %+v", c.Events())
	}
	if c.ShouldFlush(9) {
		t.Error("ShouldFlush(9) = true in second window")
	}
	if !c.ShouldFlush(10) {
		t.Error("ShouldFlush(10) = false at second window end")
	}
}

func TestPopulationReset(t *testing.T) {
	var pop Population
	pop.Observe(components.Entity{Kind: components.KindFox, Age: 3})
	pop.Reset()

	if pop.Counts[components.KindFox] != 0 || len(pop.FoxAges) != 0 || len(pop.FoxHunger) != 0 {
		t.Errorf("Reset left data behind: %+v", pop)
	}
}
