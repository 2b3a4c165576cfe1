package game

import (
	"log/slog"
	"sync"

	"github.com/pthm-cable/warren/components"
)

// stepKind selects what a worker does with its rows.
type stepKind uint8

const (
	stepTraverse stepKind = iota // move entities of one kind, deferring foreign rows
	stepResolve                  // drain the worker's own move queue
)

// workChunk is one worker's share of a step. Worker is the partition index,
// not the goroutine that happens to pick the chunk up.
type workChunk struct {
	worker int
	step   stepKind
	kind   components.Kind
}

// parallelState holds the persistent worker pool.
type parallelState struct {
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(numWorkers int) *parallelState {
	return &parallelState{numWorkers: numWorkers}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
	slog.Debug("worker pool started", "workers", p.numWorkers)
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
	slog.Debug("worker pool stopped", "workers", p.numWorkers)
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.runChunk(chunk)
			p.doneChan <- struct{}{}
		}
	}
}

// runStep hands every partition its chunk and returns once all of them have
// finished. The return is the barrier between traversal, resolution and swap.
func (g *Game) runStep(step stepKind, kind components.Kind) {
	n := g.partition.Workers()

	if g.parallel == nil {
		for w := 0; w < n; w++ {
			g.runChunk(workChunk{worker: w, step: step, kind: kind})
		}
		return
	}

	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	for w := 0; w < n; w++ {
		g.parallel.workChan <- workChunk{worker: w, step: step, kind: kind}
	}
	for i := 0; i < n; i++ {
		<-g.parallel.doneChan
	}
}

// runChunk executes one worker's share of a step.
func (g *Game) runChunk(chunk workChunk) {
	switch chunk.step {
	case stepTraverse:
		g.traverse(chunk.worker, chunk.kind)
	case stepResolve:
		g.resolve(chunk.worker)
	}
}
