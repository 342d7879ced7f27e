package dynamo

import "sync"

// Batch is a half-open range [Start, End) of star indices owned by one worker
// for one step.
type Batch struct {
	Start, End int
}

func (b Batch) Len() int { return b.End - b.Start }

// Partition splits [0, n) into min(workers, n) contiguous batches of n/k
// elements each. The final batch absorbs the remainder. No batch extends past n.
func Partition(n, workers int) []Batch {
	if n <= 0 {
		return nil
	}
	k := workers
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	size := n / k
	batches := make([]Batch, k)
	for i := 0; i < k; i++ {
		start := i * size
		end := start + size
		if i == k-1 || end > n {
			end = n
		}
		batches[i] = Batch{Start: start, End: end}
	}
	return batches
}

// ParallelFor runs fn once per batch, each on a freshly spawned goroutine,
// and returns after all of them have finished.
func ParallelFor(batches []Batch, fn func(worker int, b Batch)) {
	if len(batches) == 1 {
		fn(0, batches[0])
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(batches))

	for w, b := range batches {
		go func(worker int, b Batch) {
			defer wg.Done()
			fn(worker, b)
		}(w, b)
	}

	wg.Wait()
}
