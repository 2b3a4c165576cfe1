// Package systems provides the grid storage and the pure rules that drive one
// generation of the simulation.
package systems

import "github.com/pthm-cable/warren/components"

// Grid is a double-buffered cell store with a one-cell ring of rocks.
//
// Storage coordinates run from 0 to Height+1 (rows) and 0 to Width+1
// (columns); logical cell (i, j) lives at storage (i+1, j+1). The border is
// written once by NewGrid and never touched again, so neighbour lookups need
// no bounds checks.
type Grid struct {
	width  int
	height int
	stride int

	cur  []components.Entity
	next []components.Entity
}

// NewGrid allocates a grid for width×height interior cells.
func NewGrid(width, height int) *Grid {
	stride := width + 2
	size := stride * (height + 2)
	g := &Grid{
		width:  width,
		height: height,
		stride: stride,
		cur:    make([]components.Entity, size),
		next:   make([]components.Entity, size),
	}

	for c := 0; c < stride; c++ {
		g.cur[c], g.next[c] = components.Rock, components.Rock
		last := g.Index(height+1, c)
		g.cur[last], g.next[last] = components.Rock, components.Rock
	}
	for r := 1; r <= height; r++ {
		left, right := g.Index(r, 0), g.Index(r, width+1)
		g.cur[left], g.next[left] = components.Rock, components.Rock
		g.cur[right], g.next[right] = components.Rock, components.Rock
	}

	return g
}

// Width returns the number of interior columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of interior rows.
func (g *Grid) Height() int { return g.height }

// Stride returns the length of one storage row.
func (g *Grid) Stride() int { return g.stride }

// Index converts storage coordinates to a flat buffer index.
func (g *Grid) Index(row, col int) int {
	return row*g.stride + col
}

// At returns the current-buffer entity at storage coordinates.
func (g *Grid) At(row, col int) components.Entity {
	return g.cur[row*g.stride+col]
}

// Current exposes the read buffer. Callers must not write to it during a phase.
func (g *Grid) Current() []components.Entity { return g.cur }

// Next exposes the write buffer for the phase in progress.
func (g *Grid) Next() []components.Entity { return g.next }

// Place puts e at logical coordinates in both buffers.
// Only valid before the first generation.
func (g *Grid) Place(row, col int, e components.Entity) {
	i := g.Index(row+1, col+1)
	g.cur[i] = e
	g.next[i] = e
}

// CarryRow copies storage row r of the current buffer into the next buffer.
// Every phase carries its rows forward before writing moves so that cells the
// phase does not touch survive the swap.
func (g *Grid) CarryRow(r int) {
	start := r * g.stride
	copy(g.next[start:start+g.stride], g.cur[start:start+g.stride])
}

// Swap promotes the next buffer to current.
func (g *Grid) Swap() {
	g.cur, g.next = g.next, g.cur
}

// KindAt returns the kind at logical coordinates in the current buffer.
func (g *Grid) KindAt(row, col int) components.Kind {
	return g.cur[g.Index(row+1, col+1)].Kind
}

// EntityAt returns the entity at logical coordinates in the current buffer.
func (g *Grid) EntityAt(row, col int) components.Entity {
	return g.cur[g.Index(row+1, col+1)]
}

// Size returns the interior dimensions as (width, height).
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// Count returns the number of interior cells of each kind.
func (g *Grid) Count() [components.NumKinds]int {
	var counts [components.NumKinds]int
	for r := 1; r <= g.height; r++ {
		row := g.cur[r*g.stride+1 : r*g.stride+1+g.width]
		for _, e := range row {
			counts[e.Kind]++
		}
	}
	return counts
}

// BorderIntact reports whether every border cell of both buffers is a rock.
func (g *Grid) BorderIntact() bool {
	check := func(i int) bool {
		return g.cur[i].Kind == components.KindRock && g.next[i].Kind == components.KindRock
	}
	for c := 0; c < g.stride; c++ {
		if !check(g.Index(0, c)) || !check(g.Index(g.height+1, c)) {
			return false
		}
	}
	for r := 1; r <= g.height; r++ {
		if !check(g.Index(r, 0)) || !check(g.Index(r, g.width+1)) {
			return false
		}
	}
	return true
}
