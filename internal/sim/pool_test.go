package sim

import (
	"sync/atomic"
	"testing"
)

func TestPool_RunVisitsEveryWorker(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	for frame := 0; frame < 100; frame++ {
		var seen [4]atomic.Int32
		p.Run(func(worker int) {
			seen[worker].Add(1)
		})
		for i := range seen {
			if n := seen[i].Load(); n != 1 {
				t.Fatalf("frame %d: worker %d ran %d times", frame, i, n)
			}
		}
	}
}

func TestPool_RunBlocksUntilDone(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	var done atomic.Int32
	p.Run(func(worker int) {
		for i := 0; i < 1000; i++ {
			_ = i * worker
		}
		done.Add(1)
	})
	if done.Load() != 3 {
		t.Errorf("Run returned before all workers finished: %d", done.Load())
	}
}

func TestPool_CloseIdempotent(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()

	calls := 0
	p.Run(func(worker int) { calls++ })
	if calls != 2 {
		t.Errorf("expected closed pool to run inline for each worker, got %d calls", calls)
	}
}

func TestPool_MinimumOneWorker(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.Workers() != 1 {
		t.Errorf("expected 1 worker, got %d", p.Workers())
	}
}
