package spillring

import (
	"errors"
	"testing"
)

func TestValidateCapacity(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		if _, err := New[int](0); !errors.Is(err, ErrZeroCapacity) {
			t.Fatalf("New(0) error = %v, want ErrZeroCapacity", err)
		}
	})
	t.Run("not power of two", func(t *testing.T) {
		if _, err := New[int](3); !errors.Is(err, ErrNotPowerOfTwo) {
			t.Fatalf("New(3) error = %v, want ErrNotPowerOfTwo", err)
		}
	})
	t.Run("too large", func(t *testing.T) {
		if _, err := New[int](MaxCapacity * 2); !errors.Is(err, ErrCapacityTooLarge) {
			t.Fatalf("New(2^21) error = %v, want ErrCapacityTooLarge", err)
		}
	})
	t.Run("valid", func(t *testing.T) {
		r, err := New[int](16)
		if err != nil {
			t.Fatalf("New(16): %v", err)
		}
		if r.Capacity() != 16 {
			t.Fatalf("Capacity() = %d, want 16", r.Capacity())
		}
	})
}

func TestTryPushDoesNotEvict(t *testing.T) {
	r, err := Cold[int](2)
	if err != nil {
		t.Fatalf("Cold: %v", err)
	}
	if err := r.TryPush(1); err != nil {
		t.Fatalf("TryPush(1): %v", err)
	}
	if err := r.TryPush(2); err != nil {
		t.Fatalf("TryPush(2): %v", err)
	}
	if err := r.TryPush(3); !errors.Is(err, ErrRingFull) {
		t.Fatalf("TryPush(3) = %v, want ErrRingFull", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (TryPush must not evict)", r.Len())
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	r, err := Cold[int](4)
	if err != nil {
		t.Fatalf("Cold: %v", err)
	}
	r.PushMut(42)
	item, ok := r.Peek()
	if !ok || *item != 42 {
		t.Fatalf("Peek() = (%v, %v), want (42, true)", item, ok)
	}
	if r.Len() != 1 {
		t.Fatalf("Peek must not remove the item, Len() = %d", r.Len())
	}
	got, ok := r.PopMut()
	if !ok || got != 42 {
		t.Fatalf("PopMut() = (%d, %v), want (42, true)", got, ok)
	}
	if _, ok := r.Peek(); ok {
		t.Fatalf("Peek() on empty ring must report false")
	}
}

func TestDrainRemovesEverything(t *testing.T) {
	r, err := Cold[int](4)
	if err != nil {
		t.Fatalf("Cold: %v", err)
	}
	for i := 1; i <= 3; i++ {
		r.PushMut(i)
	}

	var got []int
	for item := range r.Drain() {
		got = append(got, item)
	}
	assertIntSlice(t, "drained", got, []int{1, 2, 3})
	if !r.IsEmpty() {
		t.Fatalf("ring must be empty after full Drain")
	}
}

func TestIterMutDoesNotRemove(t *testing.T) {
	r, err := Cold[int](4)
	if err != nil {
		t.Fatalf("Cold: %v", err)
	}
	for i := 1; i <= 3; i++ {
		r.PushMut(i)
	}

	for item := range r.IterMut() {
		*item *= 10
	}

	var got []int
	for item := range r.Drain() {
		got = append(got, item)
	}
	assertIntSlice(t, "mutated", got, []int{10, 20, 30})
}

func TestPushSliceEquivalentToPushMutLoop(t *testing.T) {
	inputs := [][]int{
		{1, 2, 3},
		{1, 2, 3, 4, 5, 6, 7, 8, 9},
		{},
		{1},
	}

	for _, in := range inputs {
		sliceSink := NewCollectSink[int]()
		sliceRing, err := WithSinkCold[int](4, sliceSink)
		if err != nil {
			t.Fatalf("WithSinkCold: %v", err)
		}
		sliceRing.PushSlice(in)

		loopSink := NewCollectSink[int]()
		loopRing, err := WithSinkCold[int](4, loopSink)
		if err != nil {
			t.Fatalf("WithSinkCold: %v", err)
		}
		for _, v := range in {
			loopRing.PushMut(v)
		}

		var sliceContents, loopContents []int
		for item := range sliceRing.Drain() {
			sliceContents = append(sliceContents, item)
		}
		for item := range loopRing.Drain() {
			loopContents = append(loopContents, item)
		}

		assertIntSlice(t, "ring contents", sliceContents, loopContents)
		assertIntSlice(t, "spilled multiset", sliceSink.Items(), loopSink.Items())
	}
}

func TestLenNeverExceedsCapacity(t *testing.T) {
	r, err := Cold[int](4)
	if err != nil {
		t.Fatalf("Cold: %v", err)
	}
	for i := 0; i < 50; i++ {
		r.Push(i)
		if r.Len() > r.Capacity() {
			t.Fatalf("Len() = %d exceeds Capacity() = %d", r.Len(), r.Capacity())
		}
	}
}

func TestChainedRings(t *testing.T) {
	terminal := NewCollectSink[int]()
	ringB, err := WithSinkCold[int](2, terminal)
	if err != nil {
		t.Fatalf("WithSinkCold (B): %v", err)
	}
	ringA, err := WithSinkCold[int](2, Chain(ringB))
	if err != nil {
		t.Fatalf("WithSinkCold (A): %v", err)
	}

	for i := 1; i <= 6; i++ {
		ringA.PushMut(i)
	}

	// ringA (cap 2) holds the last 2 of its own pushes; everything it
	// evicted cascaded into ringB (cap 2), whose own overflow cascaded
	// into terminal.
	var fromA []int
	for item := range ringA.Drain() {
		fromA = append(fromA, item)
	}
	var fromB []int
	for item := range ringB.Drain() {
		fromB = append(fromB, item)
	}

	assertIntSlice(t, "ring A contents", fromA, []int{5, 6})
	assertIntSlice(t, "ring B contents", fromB, []int{3, 4})
	assertIntSlice(t, "terminal spout", terminal.Items(), []int{1, 2})
}

func TestCloseIsIdempotentAndFlushes(t *testing.T) {
	sink := NewCollectSink[int]()
	r, err := WithSinkCold[int](4, sink)
	if err != nil {
		t.Fatalf("WithSinkCold: %v", err)
	}
	r.PushMut(1)
	r.PushMut(2)

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	assertIntSlice(t, "spout after close", sink.Items(), []int{1, 2})
}
