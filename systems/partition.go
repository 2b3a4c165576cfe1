package systems

// Partition assigns every interior storage row to exactly one worker.
// Rows are split into contiguous blocks so that most moves stay inside the
// mover's own block. A Partition is immutable once built.
type Partition struct {
	owner  []int    // indexed by storage row; border rows are -1
	bounds [][2]int // per worker [first, last) storage rows
}

// NewPartition splits height rows across workers. The worker count is
// clamped to [1, height] so that every worker owns at least one row.
func NewPartition(height, workers int) *Partition {
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	p := &Partition{
		owner:  make([]int, height+2),
		bounds: make([][2]int, workers),
	}
	p.owner[0] = -1
	p.owner[height+1] = -1

	for w := 0; w < workers; w++ {
		first := 1 + w*height/workers
		last := 1 + (w+1)*height/workers
		p.bounds[w] = [2]int{first, last}
		for r := first; r < last; r++ {
			p.owner[r] = w
		}
	}
	return p
}

// Workers returns the number of workers rows were split across.
func (p *Partition) Workers() int {
	return len(p.bounds)
}

// Owner returns the worker that owns storage row r, or -1 for border rows.
func (p *Partition) Owner(r int) int {
	return p.owner[r]
}

// Rows returns the [first, last) storage rows owned by worker w.
func (p *Partition) Rows(w int) (int, int) {
	b := p.bounds[w]
	return b[0], b[1]
}
