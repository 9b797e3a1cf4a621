// ring.go: the SPSC overflow-spilling ring buffer.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

import (
	"iter"
	"sync/atomic"
)

// MaxCapacity is the largest capacity a Ring may be constructed with
// (2^20 slots). It exists to catch accidental huge allocations from
// typos.
const MaxCapacity = 1 << 20

// Ring is a bounded SPSC ring buffer that spills evicted items to a
// Spout. T is the payload type; S is the spout's concrete type, fixed
// at construction time.
//
// Fields are grouped into consumerLine and producerLine so the
// consumer's hot counter (head) and the producer's hot counter (tail)
// land on distinct cache lines — see layout.go and TestCacheLineLayout.
type Ring[T any, S Spout[T]] struct {
	consumerLine
	producerLine

	buffer []T
	mask   uint64
	sink   S
	closed bool

	// Telemetry. Deliberately outside consumerLine/producerLine: these
	// are cold counters updated once per eviction, not once per op, so
	// they don't earn a cache line of their own.
	evictCount     atomic.Uint64
	lastEvictNanos atomic.Int64
}

// New creates a warmed ring buffer with the given power-of-two capacity
// and a DropSink (evicted items are discarded).
func New[T any](capacity int) (*Ring[T, *DropSink[T]], error) {
	r, err := Cold[T](capacity)
	if err != nil {
		return nil, err
	}
	r.warm()
	return r, nil
}

// Cold creates an unwarmed ring buffer with a DropSink. Prefer New in
// all but the most latency-sensitive constrained environments.
func Cold[T any](capacity int) (*Ring[T, *DropSink[T]], error) {
	return WithSinkCold[T](capacity, NewDropSink[T]())
}

// WithSink creates a warmed ring buffer with a custom spout.
func WithSink[T any, S Spout[T]](capacity int, sink S) (*Ring[T, S], error) {
	r, err := WithSinkCold[T](capacity, sink)
	if err != nil {
		return nil, err
	}
	r.warm()
	return r, nil
}

// WithSinkCold creates an unwarmed ring buffer with a custom spout.
// Prefer WithSink in all but the most constrained environments.
func WithSinkCold[T any, S Spout[T]](capacity int, sink S) (*Ring[T, S], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}

	n := uint64(capacity)
	return &Ring[T, S]{
		consumerLine: consumerLine{head: newIndexWord(0), cachedTail: 0},
		producerLine: producerLine{tail: newIndexWord(0), cachedHead: 0, evictHead: newIndexWord(0)},
		buffer:       make([]T, capacity),
		mask:         n - 1,
		sink:         sink,
	}, nil
}

// warm touches every slot once to bring it into L1/L2 cache and fault
// its backing page before the ring is handed to callers. Go's slice
// allocator already zeroes memory, so unlike Rust (which
// must write raw bytes into otherwise-uninitialized storage) this is
// purely a cache-warming pass — the zero value is already valid T.
func (r *Ring[T, S]) warm() {
	var zero T
	for i := range r.buffer {
		r.buffer[i] = zero
	}
}

// Push writes item into the ring. If the ring is full, the oldest item
// is evicted to the spout first. Push never blocks and never fails.
//
// Safe to call concurrently with exactly one Pop call, from exactly one
// producer goroutine. Not safe to call from two goroutines at once, and
// not safe to interleave with any exclusive-access method.
func (r *Ring[T, S]) Push(item T) {
	tail := r.tail.loadRelaxed()

	head := r.cachedHead
	if tail-head >= uint64(len(r.buffer)) {
		head = r.head.loadAcquire()
		r.cachedHead = head

		if tail-head >= uint64(len(r.buffer)) {
			// Genuinely full. Evict the oldest item the consumer
			// hasn't claimed yet. evictHead may already be ahead of
			// head if a previous eviction raced a slow consumer.
			evict := r.evictHead.loadRelaxed()
			if evict < head {
				evict = head
			}
			idx := evict & r.mask
			evicted := r.buffer[idx]
			// Do not clear the slot here: Send (r.sink.Send(evicted)) can
			// take unbounded time, and a concurrent Pop may have already
			// cached head/evictHead and be about to take its speculative
			// read of this same slot. Zeroing it before evictHead is
			// published would let that Pop read the zero value, pass its
			// revalidation check against the still-stale evictHead, and
			// return a fabricated item while the real one is also sent to
			// the sink. The slot is simply overwritten by the new item's
			// write below once tail advances past it.
			r.sink.Send(evicted)
			r.evictHead.storeRelease(evict + 1)
			r.recordEviction(1)

			// Release fence: separates the evictHead publication from
			// the new item's write below so
			// a consumer can never observe the new write without also
			// observing the eviction. A no-op under Go's memory model
			// (every atomic Store is already sequentially consistent)
			// but named here to keep the protocol's synchronization
			// edges visible in the code.
			releaseFence()
		}
	}

	idx := tail & r.mask
	r.buffer[idx] = item
	r.tail.storeRelease(tail + 1)
}

// Pop removes and returns the oldest item, or (zero, false) if the ring
// is empty. Pop never blocks.
//
// Safe to call concurrently with exactly one Push call, from exactly
// one consumer goroutine.
func (r *Ring[T, S]) Pop() (T, bool) {
	var zero T
	for {
		head := r.head.loadRelaxed()

		// Skip past anything the producer has evicted since our last
		// look — the "effective head" reconciliation.
		evict := r.evictHead.loadAcquire()
		if head < evict {
			head = evict
		}

		tail := r.cachedTail
		cachedAvail := tail - head
		if cachedAvail == 0 || cachedAvail > uint64(len(r.buffer)) {
			tail = r.tail.loadAcquire()
			r.cachedTail = tail
			if head == tail {
				if head != r.head.loadRelaxed() {
					r.head.storeRelease(head)
				}
				return zero, false
			}
		}

		idx := head & r.mask
		speculative := r.buffer[idx]

		// Acquire fence: ensures the speculative
		// read above completes before the validation load below. A
		// no-op under Go's memory model but named for traceability,
		// same as the release fence in Push.
		acquireFence()

		evict2 := r.evictHead.loadRelaxed()
		if evict2 > head {
			// The producer evicted our slot while we were reading it.
			// Discard the speculative copy and retry.
			continue
		}

		r.head.storeRelease(head + 1)
		return speculative, true
	}
}

// releaseFence and acquireFence exist purely to name the two
// synchronization edges this protocol relies on (release fence between
// an eviction publish and the following write; acquire fence between a
// speculative slot read and its validation load). Go's sync/atomic
// already gives every Load/Store sequential consistency, so these
// compile away to nothing; see DESIGN.md for why the distinction is
// kept anyway.
func releaseFence() {}
func acquireFence() {}

// Len returns the number of items currently in the ring, clamped to
// [0, Capacity()] to absorb transient inconsistency between the three
// counters when read without synchronization.
func (r *Ring[T, S]) Len() int {
	tail := r.tail.loadAcquire()
	head := r.head.loadAcquire()
	evict := r.evictHead.loadAcquire()
	effective := head
	if evict > head {
		effective = evict
	}
	n := tail - effective
	cap64 := uint64(len(r.buffer))
	if n > cap64 {
		n = cap64
	}
	return int(n)
}

// IsEmpty reports whether the ring currently holds no items.
func (r *Ring[T, S]) IsEmpty() bool { return r.Len() == 0 }

// IsFull reports whether the ring is at capacity.
func (r *Ring[T, S]) IsFull() bool { return r.Len() >= len(r.buffer) }

// Capacity returns N, the fixed slot count the ring was constructed with.
func (r *Ring[T, S]) Capacity() int { return len(r.buffer) }

// Sink returns the attached spout.
func (r *Ring[T, S]) Sink() S { return r.sink }

// Close flushes every remaining item to the spout, flushes the spout
// itself, and marks the ring closed. Go has no destructor equivalent to
// Rust's Drop, so callers that want the final drain to happen must
// call Close explicitly.
// Close is idempotent.
func (r *Ring[T, S]) Close() error {
	if r.closed {
		return nil
	}
	r.Flush()
	r.sink.Flush()
	r.closed = true
	return nil
}

// drainSeq is the shared implementation behind Flush and
// PushSlice's evict-to-make-room path: it yields items from the ring in
// FIFO order without any synchronization, for exclusive-access callers
// only.
func (r *Ring[T, S]) drainSeq(from, count uint64) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := uint64(0); i < count; i++ {
			idx := (from + i) & r.mask
			if !yield(r.buffer[idx]) {
				return
			}
		}
	}
}
