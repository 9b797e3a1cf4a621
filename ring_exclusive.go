// ring_exclusive.go: operations that require exclusive (non-concurrent)
// access to the ring — no atomic traffic, no seqlock retry, because no
// concurrent evictor or popper can exist while the caller holds &mut.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

import "iter"

// PushMut pushes item with exclusive access. Behaviorally identical to
// Push, minus the atomic overhead: the caller is responsible for
// ensuring no other operation on this ring is in flight.
func (r *Ring[T, S]) PushMut(item T) {
	tail := r.tail.loadExclusive()
	head := r.head.loadExclusive()
	if evict := r.evictHead.loadExclusive(); head < evict {
		head = evict
	}

	if tail-head >= uint64(len(r.buffer)) {
		idx := head & r.mask
		evicted := r.buffer[idx]
		var zero T
		r.buffer[idx] = zero
		r.head.storeExclusive(head + 1)
		r.sink.Send(evicted)
		r.recordEviction(1)
	}

	idx := tail & r.mask
	r.buffer[idx] = item
	r.tail.storeExclusive(tail + 1)
}

// PopMut pops with exclusive access. Accounts for evictHead in case
// Push was used earlier on this same ring (e.g. before transitioning to
// exclusive access for a Flush).
func (r *Ring[T, S]) PopMut() (T, bool) {
	var zero T
	head := r.head.loadExclusive()
	evict := r.evictHead.loadExclusive()
	if head < evict {
		head = evict
	}
	tail := r.tail.loadExclusive()

	if head == tail {
		r.head.storeExclusive(head)
		r.evictHead.storeExclusive(head)
		return zero, false
	}

	idx := head & r.mask
	item := r.buffer[idx]
	r.buffer[idx] = zero
	head++
	r.head.storeExclusive(head)
	r.evictHead.storeExclusive(head)
	return item, true
}

// TryPush pushes item only if the ring has a free slot, without ever
// evicting. It is the sole fallible operation of the set:
// every other push variant always succeeds.
func (r *Ring[T, S]) TryPush(item T) error {
	tail := r.tail.loadExclusive()
	head := r.head.loadExclusive()

	if tail-head >= uint64(len(r.buffer)) {
		return ErrRingFull
	}

	r.buffer[tail&r.mask] = item
	r.tail.storeExclusive(tail + 1)
	return nil
}

// Peek returns a pointer to the oldest valid item without removing it.
// The pointer is only valid until the next mutating call on the ring.
// Exclusive access only.
func (r *Ring[T, S]) Peek() (*T, bool) {
	head := r.head.loadExclusive()
	evict := r.evictHead.loadExclusive()
	if head < evict {
		head = evict
	}
	tail := r.tail.loadExclusive()
	if head == tail {
		return nil, false
	}
	return &r.buffer[head&r.mask], true
}

// Flush drains every currently-valid item to the spout in FIFO order
// and returns how many items were drained. Exclusive access only.
func (r *Ring[T, S]) Flush() int {
	head := r.head.loadExclusive()
	evict := r.evictHead.loadExclusive()
	if head < evict {
		head = evict
	}
	tail := r.tail.loadExclusive()
	count := tail - head

	if count == 0 {
		return 0
	}

	r.sink.SendAll(r.drainSeq(head, count))
	for i := uint64(0); i < count; i++ {
		var zero T
		r.buffer[(head+i)&r.mask] = zero
	}

	r.head.storeExclusive(tail)
	r.tail.storeExclusive(tail)
	r.evictHead.storeExclusive(tail)
	return int(count)
}

// Clear discards all items from the ring by flushing them to the spout.
func (r *Ring[T, S]) Clear() {
	r.Flush()
}

// PushAndFlush pushes item, then immediately flushes everything
// (including the just-pushed item) to the spout.
func (r *Ring[T, S]) PushAndFlush(item T) {
	r.PushMut(item)
	r.Flush()
}

// SinkMut returns the attached spout for mutation. Since S is typically
// itself a pointer type (*CollectSink[T], *ChannelSink[T], ...), this is
// usually equivalent to Sink(); it exists for parity with the
// exclusive-ref surface.
func (r *Ring[T, S]) SinkMut() S { return r.sink }

// Drain returns a range-over-func iterator that removes and yields
// every item currently in the ring, oldest to newest. Stopping the
// range early (break) leaves the un-yielded items in place.
func (r *Ring[T, S]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := r.PopMut()
			if !ok {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}

// IterMut returns a range-over-func iterator over pointers to every
// item currently in the ring, oldest to newest, without removing them.
// Mutating through the yielded pointer mutates the slot in place.
func (r *Ring[T, S]) IterMut() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		head := r.head.loadExclusive()
		evict := r.evictHead.loadExclusive()
		if head < evict {
			head = evict
		}
		tail := r.tail.loadExclusive()
		for i := head; i != tail; i++ {
			if !yield(&r.buffer[i&r.mask]) {
				return
			}
		}
	}
}

// PushSlice bulk-pushes items using at most two contiguous slice copies
// for the retained portion. If items is larger than the ring's
// capacity, the ring is drained and the slice's own excess prefix goes
// straight to the spout without ever entering the buffer — only the
// last Capacity() items end up retained.
//
// There is no Copy-only bound here: Go's copy() builtin performs a
// memmove for any element type, pointer-containing or not, so this bulk
// path is available for every T (see DESIGN.md).
func (r *Ring[T, S]) PushSlice(items []T) {
	if len(items) == 0 {
		return
	}

	tail := r.tail.loadExclusive()
	head := r.head.loadExclusive()
	n := uint64(len(r.buffer))

	keep := items
	if uint64(len(items)) > n {
		length := tail - head
		if length > 0 {
			r.sink.SendAll(r.drainSeq(head, length))
		}
		excess := uint64(len(items)) - n
		for _, item := range items[:excess] {
			r.sink.Send(item)
		}
		r.recordEviction(length + excess)
		head += length
		tail = head
		r.head.storeExclusive(head)
		r.tail.storeExclusive(tail)
		keep = items[excess:]
	}

	length := tail - head
	free := n - length
	if uint64(len(keep)) > free {
		evictCount := uint64(len(keep)) - free
		r.sink.SendAll(r.drainSeq(head, evictCount))
		r.recordEviction(evictCount)
		head += evictCount
		r.head.storeExclusive(head)
	}

	tailIdx := tail & r.mask
	spaceToEnd := n - tailIdx
	count := uint64(len(keep))

	if count <= spaceToEnd {
		copy(r.buffer[tailIdx:tailIdx+count], keep)
	} else {
		copy(r.buffer[tailIdx:n], keep[:spaceToEnd])
		copy(r.buffer[0:count-spaceToEnd], keep[spaceToEnd:])
	}

	r.tail.storeExclusive(tail + count)
}

// ExtendFromSlice is an alias of PushSlice, for callers used to
// extend_from_slice naming.
func (r *Ring[T, S]) ExtendFromSlice(items []T) {
	r.PushSlice(items)
}
