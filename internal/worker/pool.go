// Package worker runs independent game replays on a pool of goroutines.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
)

// WorkItem is one game line to replay.
type WorkItem struct {
	Line  string
	Index int // Position in the input, for reordering results
}

// ProcessResult is the outcome of replaying one line.
type ProcessResult struct {
	Index int
	Line  string
	State *game.State  // Final state; nil when the start position was rejected
	Board *chess.Board // Final position, nil with State
	Err   error        // First move that failed, if any
}

// OK reports whether every move of the line was accepted.
func (r ProcessResult) OK() bool {
	return r.Err == nil
}

// ProcessFunc processes a single work item. It runs on a worker goroutine
// and must not share mutable state with other calls.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool fans work items out to a fixed number of goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. Defaults are one worker and a buffer of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// NewPoolFromConfig sizes a pool from the batch settings.
func NewPoolFromConfig(cfg *config.BatchConfig, processFunc ProcessFunc) *Pool {
	return NewPool(processFunc, WithWorkers(cfg.WorkerCount()), WithBufferSize(cfg.BufferSize))
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // drain
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues an item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit queues an item without blocking. It returns false when the
// buffer is full or the pool has been stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop makes workers discard queued items instead of processing them.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel, waits for the workers and then closes the
// result channel. Results must be drained concurrently.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the channel results are delivered on, in completion order.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
