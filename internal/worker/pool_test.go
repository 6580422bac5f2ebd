package worker

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
	"github.com/QuadDarv1ne/chess-rules-go/internal/testutil"
)

// echoProcessFunc returns a process function that does nothing.
func echoProcessFunc() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		return ProcessResult{Index: item.Index, Line: item.Line}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Index: item.Index, Line: item.Line}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4))
	pool.Start()

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Line: "e4 e5", Index: i})
	}

	go pool.Close()

	if got := collectResults(pool); got != numItems {
		t.Errorf("results = %d; want %d", got, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32
	slow := func(item WorkItem) ProcessResult {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult{Index: item.Index}
	}

	pool := NewPool(slow, WithWorkers(2), WithBufferSize(100))
	pool.Start()

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop did not skip any item: %d processed", processed)
	}
}

func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(echoProcessFunc(), WithWorkers(2))
	pool.Start()

	testutil.AssertFalse(t, pool.IsStopped())
	pool.Stop()
	testutil.AssertTrue(t, pool.IsStopped())

	pool.Close()
}

func TestPoolTrySubmit(t *testing.T) {
	slow := func(item WorkItem) ProcessResult {
		time.Sleep(100 * time.Millisecond)
		return ProcessResult{}
	}

	pool := NewPool(slow, WithBufferSize(2))
	pool.Start()

	if !pool.TrySubmit(WorkItem{Index: 0}) {
		t.Error("first TrySubmit should succeed")
	}
	if !pool.TrySubmit(WorkItem{Index: 1}) {
		t.Error("second TrySubmit should succeed")
	}

	// May or may not fit depending on timing.
	pool.TrySubmit(WorkItem{Index: 2})

	pool.Stop()
	if pool.TrySubmit(WorkItem{Index: 3}) {
		t.Error("TrySubmit after Stop should return false")
	}

	go pool.Close()
	collectResults(pool)
}

func TestNewPool_Options(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"buffer", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"both", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"zero workers ignored", []PoolOption{WithWorkers(0)}, 1, 10},
		{"negative buffer ignored", []PoolOption{WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(echoProcessFunc(), tt.opts...)
			testutil.AssertEqual(t, pool.NumWorkers(), tt.wantWorkers)
			testutil.AssertEqual(t, pool.bufferSize, tt.wantBuffer)
		})
	}
}

func TestNewPoolFromConfig(t *testing.T) {
	cfg := config.NewBatchConfig()
	cfg.Workers = 3
	cfg.BufferSize = 7

	pool := NewPoolFromConfig(cfg, echoProcessFunc())
	testutil.AssertEqual(t, pool.NumWorkers(), 3)
	testutil.AssertEqual(t, pool.bufferSize, 7)

	cfg.Workers = 0
	pool = NewPoolFromConfig(cfg, echoProcessFunc())
	testutil.AssertEqual(t, pool.NumWorkers(), cfg.WorkerCount())
}

// Run with -race.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem{Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

func TestRunBatch_ReplaysInOrder(t *testing.T) {
	lines := []string{
		"f2f3 e7e5 g2g4 d8h4",
		"e4 e5 Bc4 Nc6 Qh5 Nf6 Qxf7#",
		"e4 e5 Ke3",
		"d4",
	}
	cfg := config.NewBatchConfig()
	cfg.Workers = 4

	results := RunBatch(lines, cfg, ReplayFunc(nil, true))
	testutil.AssertEqual(t, len(results), len(lines))

	for i, r := range results {
		testutil.AssertEqual(t, r.Index, i)
		testutil.AssertEqual(t, r.Line, lines[i])
	}

	testutil.AssertTrue(t, results[0].OK())
	testutil.AssertEqual(t, results[0].State.Status, engine.Checkmate)
	testutil.AssertEqual(t, results[1].State.History[6], "Qxf7#")

	testutil.AssertFalse(t, results[2].OK())
	testutil.AssertErrorIs(t, results[2].Err, errors.ErrNoCandidate)
	testutil.AssertEqual(t, len(results[2].State.History), 2)

	testutil.AssertEqual(t, results[3].State.ToMove, "Black")
}

func TestReplayFunc_StartBoardIsNotShared(t *testing.T) {
	start := testutil.MustBoard(t, testutil.TwoRooks, chess.White)
	fn := ReplayFunc(start, true)

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "O-O"
	}
	cfg := config.NewBatchConfig()
	cfg.Workers = 4

	for _, r := range RunBatch(lines, cfg, fn) {
		if !r.OK() {
			t.Fatalf("line %d: %v", r.Index, r.Err)
		}
		testutil.AssertEqual(t, r.State.History, []string{"O-O"})
	}
	testutil.AssertGrid(t, start, testutil.TwoRooks)
}

func TestReplayFunc_RejectsBadStart(t *testing.T) {
	fn := ReplayFunc(chess.NewBoard(), true)
	r := fn(WorkItem{Line: "e4", Index: 0})
	testutil.AssertErrorIs(t, r.Err, errors.ErrPrecondition)
	if r.State != nil {
		t.Error("State should be nil when the start position is rejected")
	}
	testutil.AssertTrue(t, strings.HasPrefix(r.Line, "e4"))
}
