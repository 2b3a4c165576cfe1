package systems

import (
	"sync"

	"github.com/pthm-cable/warren/components"
)

// PendingMove is an entity's proposed next state for a cell in a row owned by
// another worker.
type PendingMove struct {
	Row, Col int // target storage coordinates
	Entity   components.Entity
	From     int // storage index the entity left
}

// MoveQueue collects deferred moves addressed to one worker.
// Any worker may Enqueue concurrently; only the owner calls Drain, and only
// after every producer has finished for the phase.
type MoveQueue struct {
	mu    sync.Mutex
	moves []PendingMove
}

// NewMoveQueues returns one empty queue per worker.
func NewMoveQueues(workers int) []MoveQueue {
	qs := make([]MoveQueue, workers)
	for i := range qs {
		qs[i].moves = make([]PendingMove, 0, 64)
	}
	return qs
}

// Enqueue appends m.
func (q *MoveQueue) Enqueue(m PendingMove) {
	q.mu.Lock()
	q.moves = append(q.moves, m)
	q.mu.Unlock()
}

// Len returns the number of queued moves.
func (q *MoveQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.moves)
}

// Drain calls fn for every queued move in append order and empties the queue.
// The backing array is kept for the next phase.
func (q *MoveQueue) Drain(fn func(PendingMove)) int {
	q.mu.Lock()
	moves := q.moves
	q.moves = q.moves[:0]
	q.mu.Unlock()

	for _, m := range moves {
		fn(m)
	}
	return len(moves)
}
