package game

import (
	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// Step advances the simulation by one generation: a rabbit phase followed by
// a fox phase, each ending in a buffer swap.
func (g *Game) Step() {
	g.perf.StartGeneration()

	g.phase(components.KindRabbit, telemetry.PhaseRabbits, telemetry.PhaseRabbitResolve)
	g.phase(components.KindFox, telemetry.PhaseFoxes, telemetry.PhaseFoxResolve)
	g.generation++

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.recordGeneration()
	g.perf.EndGeneration()
}

// Run steps until the configured generation count is reached, then flushes
// telemetry and output.
func (g *Game) Run() error {
	for !g.Done() {
		g.Step()
	}
	return g.Finish()
}

// phase moves every entity of kind. All queues are empty on entry and on
// return; current holds the phase's result on return.
func (g *Game) phase(kind components.Kind, movePhase, resolvePhase string) {
	g.perf.StartPhase(movePhase)
	g.runStep(stepTraverse, kind)

	g.perf.StartPhase(resolvePhase)
	g.runStep(stepResolve, kind)

	g.grid.Swap()
}

// traverse carries worker w's rows into the next buffer and then moves every
// entity of kind found in them. Carrying all rows first matters: a local move
// may land in a later row of the same block.
func (g *Game) traverse(w int, kind components.Kind) {
	first, last := g.partition.Rows(w)
	for r := first; r < last; r++ {
		g.grid.CarryRow(r)
	}

	cur := g.grid.Current()
	stride := g.grid.Stride()
	width := g.grid.Width()

	for r := first; r < last; r++ {
		base := r * stride
		for c := 1; c <= width; c++ {
			e := cur[base+c]
			if e.Kind != kind {
				continue
			}
			switch kind {
			case components.KindRabbit:
				g.updateRabbit(w, e, r, c)
			case components.KindFox:
				g.updateFox(w, e, r, c)
			}
		}
	}
}

// resolve applies every move queued for worker w.
func (g *Game) resolve(w int) {
	sc := &g.scratches[w]
	g.queues[w].Drain(func(m systems.PendingMove) {
		g.settle(sc, g.grid.Index(m.Row, m.Col), systems.Contender{Entity: m.Entity, From: m.From})
	})
}

func (g *Game) updateRabbit(w int, e components.Entity, r, c int) {
	next := g.grid.Next()
	from := g.grid.Index(r, c)

	e.Age++

	tr, tc, ok := systems.RabbitMove(g.grid, r, c, g.generation)
	if !ok {
		next[from] = e
		return
	}

	g.leaveBehind(w, from, &e, g.params.GenProcRabbits)
	g.propose(w, tr, tc, e, from)
}

func (g *Game) updateFox(w int, e components.Entity, r, c int) {
	next := g.grid.Next()
	from := g.grid.Index(r, c)

	e.Age++

	tr, tc, ate := systems.FoxHunt(g.grid, r, c, g.generation)
	if ate {
		e.Hunger = 0
	} else {
		e.Hunger++
		if int(e.Hunger) >= g.params.GenFoodFoxes {
			next[from] = components.Empty
			g.scratches[w].events.FoxesStarved++
			return
		}

		var ok bool
		tr, tc, ok = systems.RabbitMove(g.grid, r, c, g.generation)
		if !ok {
			next[from] = e
			return
		}
	}

	g.leaveBehind(w, from, &e, g.params.GenProcFoxes)
	g.propose(w, tr, tc, e, from)
}

// leaveBehind writes the cell a mover vacates: a newborn when the mover is
// old enough to reproduce (the mover's age restarts), otherwise Empty.
func (g *Game) leaveBehind(w, from int, e *components.Entity, procDelay int) {
	next := g.grid.Next()
	if int(e.Age) > procDelay {
		e.Age = 0
		next[from] = components.New(e.Kind)
		g.scratches[w].events.RecordBirth(e.Kind)
		return
	}
	next[from] = components.Empty
}

// propose settles a move inline when worker w owns the target row and queues
// it for the owner otherwise.
func (g *Game) propose(w, tr, tc int, e components.Entity, from int) {
	sc := &g.scratches[w]
	owner := g.partition.Owner(tr)
	if owner == w {
		g.settle(sc, g.grid.Index(tr, tc), systems.Contender{Entity: e, From: from})
		return
	}

	sc.events.DeferredMoves++
	g.queues[owner].Enqueue(systems.PendingMove{Row: tr, Col: tc, Entity: e, From: from})
}

// settle adjudicates a challenger against whatever is staged at next[idx].
// Only the owner of idx's row calls it.
func (g *Game) settle(sc *workerScratch, idx int, ch systems.Contender) {
	next := g.grid.Next()
	inc := systems.Contender{Entity: next[idx], From: g.claims[idx]}

	if !systems.Wins(ch, inc) {
		sc.events.RecordConflictLoss(ch.Entity.Kind)
		return
	}

	switch inc.Entity.Kind {
	case components.KindEmpty:
	case components.KindRabbit:
		if ch.Entity.Kind == components.KindFox {
			sc.events.RabbitsEaten++
		} else {
			sc.events.RecordConflictLoss(components.KindRabbit)
		}
	default:
		sc.events.RecordConflictLoss(inc.Entity.Kind)
	}

	next[idx] = ch.Entity
	g.claims[idx] = ch.From
}
