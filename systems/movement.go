package systems

import "github.com/pthm-cable/warren/components"

// Direction is one of the four neighbour offsets, enumerated in the fixed
// order used for move selection.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// NumDirections is the size of the von Neumann neighbourhood.
const NumDirections = 4

var dirOffsets = [NumDirections][2]int{
	North: {-1, 0},
	East:  {0, 1},
	South: {1, 0},
	West:  {0, -1},
}

// Offset returns the (row, col) delta of d.
func (d Direction) Offset() (int, int) {
	o := dirOffsets[d]
	return o[0], o[1]
}

// SelectDirection picks an index in [0, n) from the cell's logical position
// and the generation number. n must be positive.
func SelectDirection(row, col, generation, n int) int {
	v := (row + col - 2 + generation) % n
	if v < 0 {
		v += n
	}
	return v
}

// admissible collects the directions around storage cell (row, col) whose
// neighbour in cur holds want.
func admissible(cur []components.Entity, stride, row, col int, want components.Kind, dst *[NumDirections]Direction) int {
	n := 0
	for d := North; d <= West; d++ {
		dr, dc := d.Offset()
		if cur[(row+dr)*stride+col+dc].Kind == want {
			dst[n] = d
			n++
		}
	}
	return n
}

// pick chooses among k admissible directions and returns the target storage
// coordinates.
func pick(dirs *[NumDirections]Direction, k, row, col, generation int) (int, int) {
	d := dirs[SelectDirection(row-1, col-1, generation, k)]
	dr, dc := d.Offset()
	return row + dr, col + dc
}

// RabbitMove returns the empty neighbour a rabbit at storage (row, col) moves
// to, or ok=false when it is boxed in. Foxes use the same rule to wander.
func RabbitMove(g *Grid, row, col, generation int) (tr, tc int, ok bool) {
	var dirs [NumDirections]Direction
	k := admissible(g.cur, g.stride, row, col, components.KindEmpty, &dirs)
	if k == 0 {
		return row, col, false
	}
	tr, tc = pick(&dirs, k, row, col, generation)
	return tr, tc, true
}

// FoxHunt returns the rabbit neighbour a fox at storage (row, col) eats, or
// ok=false when no rabbit is adjacent.
func FoxHunt(g *Grid, row, col, generation int) (tr, tc int, ok bool) {
	var dirs [NumDirections]Direction
	k := admissible(g.cur, g.stride, row, col, components.KindRabbit, &dirs)
	if k == 0 {
		return row, col, false
	}
	tr, tc = pick(&dirs, k, row, col, generation)
	return tr, tc, true
}
