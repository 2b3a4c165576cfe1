package telemetry

import "github.com/pthm-cable/warren/components"

// Population is a census of the grid taken at the end of a window.
type Population struct {
	Counts     [components.NumKinds]int
	RabbitAges []float64
	FoxAges    []float64
	FoxHunger  []float64
}

// Reset empties the census while keeping slice capacity.
func (p *Population) Reset() {
	p.Counts = [components.NumKinds]int{}
	p.RabbitAges = p.RabbitAges[:0]
	p.FoxAges = p.FoxAges[:0]
	p.FoxHunger = p.FoxHunger[:0]
}

// Observe adds one cell to the census.
func (p *Population) Observe(e components.Entity) {
	p.Counts[e.Kind]++
	switch e.Kind {
	case components.KindRabbit:
		p.RabbitAges = append(p.RabbitAges, float64(e.Age))
	case components.KindFox:
		p.FoxAges = append(p.FoxAges, float64(e.Age))
		p.FoxHunger = append(p.FoxHunger, float64(e.Hunger))
	}
}

// Collector accumulates events within windows of generations and produces
// WindowStats.
type Collector struct {
	windowGenerations int
	windowStartGen    int

	events EventCounts
}

// NewCollector creates a collector that flushes every windowGenerations
// generations.
func NewCollector(windowGenerations int) *Collector {
	if windowGenerations < 1 {
		windowGenerations = 1
	}
	return &Collector{windowGenerations: windowGenerations}
}

// Record adds the events of one generation to the current window.
func (c *Collector) Record(events EventCounts) {
	c.events.Add(events)
}

// Events returns the counts accumulated in the current window.
func (c *Collector) Events() EventCounts {
	return c.events
}

// ShouldFlush returns true if enough generations have passed to flush the window.
func (c *Collector) ShouldFlush(generation int) bool {
	return generation-c.windowStartGen >= c.windowGenerations
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(generation int, pop *Population) WindowStats {
	rabbitAge := Summarize(pop.RabbitAges)
	foxAge := Summarize(pop.FoxAges)
	foxHunger := Summarize(pop.FoxHunger)

	stats := WindowStats{
		WindowStartGen: c.windowStartGen,
		WindowEndGen:   generation,

		Rabbits: pop.Counts[components.KindRabbit],
		Foxes:   pop.Counts[components.KindFox],
		Rocks:   pop.Counts[components.KindRock],
		Empty:   pop.Counts[components.KindEmpty],

		RabbitBirths:    c.events.RabbitBirths,
		FoxBirths:       c.events.FoxBirths,
		RabbitsEaten:    c.events.RabbitsEaten,
		FoxesStarved:    c.events.FoxesStarved,
		RabbitConflicts: c.events.RabbitConflicts,
		FoxConflicts:    c.events.FoxConflicts,
		DeferredMoves:   c.events.DeferredMoves,

		RabbitAgeMean:   rabbitAge.Mean,
		RabbitAgeStd:    rabbitAge.Std,
		RabbitAgeMedian: rabbitAge.Median,
		FoxAgeMean:      foxAge.Mean,
		FoxAgeStd:       foxAge.Std,
		FoxAgeMedian:    foxAge.Median,
		FoxHungerMean:   foxHunger.Mean,
		FoxHungerMax:    foxHunger.Max,
	}

	// Reset for next window
	c.windowStartGen = generation
	c.events.Reset()

	return stats
}

// WindowGenerations returns the number of generations per window.
func (c *Collector) WindowGenerations() int {
	return c.windowGenerations
}
