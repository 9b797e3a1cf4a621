package spillring

import (
	"sync"
	"testing"
)

// Scenario: N=4, collect-sink, one push per pop from
// separate goroutines. Spout + consumer multisets together must equal
// {0..100}, with FIFO order preserved within each stream.
func TestScenarioConcurrentProducerConsumer(t *testing.T) {
	const total = 100

	sink := NewCollectSink[int]()
	r, err := WithSink[int](4, sink)
	if err != nil {
		t.Fatalf("WithSink: %v", err)
	}

	consumed := make([]int, 0, total)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			r.Push(i)
		}
	}()

	go func() {
		defer wg.Done()
		for got := 0; got+sink.Len() < total; {
			if item, ok := r.Pop(); ok {
				consumed = append(consumed, item)
				got++
			}
		}
	}()

	wg.Wait()

	// The consumer goroutine above stops once its own pops plus the
	// spout's collected items account for `total`. Flush then moves
	// anything still buffered to the spout, so that consumer and spout
	// together cover every pushed item before the streams are checked.
	r.Flush()

	seen := make(map[int]bool, total)
	for _, v := range consumed {
		seen[v] = true
	}
	for _, v := range sink.Items() {
		seen[v] = true
	}
	for i := 0; i < total; i++ {
		if !seen[i] {
			t.Fatalf("item %d missing from both consumer and spout streams", i)
		}
	}

	assertMonotonic(t, "consumer", consumed)
	assertMonotonic(t, "spout", sink.Items())
}

// assertMonotonic checks FIFO order is preserved within one stream: a
// strictly increasing subsequence of the pushed 0..N-1 values.
func assertMonotonic(t *testing.T, label string, got []int) {
	t.Helper()
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("%s stream not FIFO-ordered: %v", label, got)
		}
	}
}
