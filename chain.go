// chain.go: ring-to-ring cascading overflow.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

// ChainSink adapts a *Ring[T, S] into a Spout[T], so overflow from one
// ring can spill into another, whose own overflow spills into its
// terminal sink.
//
// Go can't give Ring itself both an inherent Flush() (int, the count of
// items drained) and a Spout-conforming Flush() (no return, just a
// hint) under the same method name. ChainSink is the adapter that
// carries the Spout-shaped Flush() separately, so Ring.Flush() keeps
// its useful return value.
type ChainSink[T any, S Spout[T]] struct {
	Ring *Ring[T, S]
}

// Chain wraps ring so it can be passed as another ring's Spout.
func Chain[T any, S Spout[T]](ring *Ring[T, S]) ChainSink[T, S] {
	return ChainSink[T, S]{Ring: ring}
}

func (c ChainSink[T, S]) Send(item T) { c.Ring.PushMut(item) }

func (c ChainSink[T, S]) SendAll(items iterSeq[T]) {
	for item := range items {
		c.Ring.PushMut(item)
	}
}

func (c ChainSink[T, S]) Flush() { c.Ring.Flush() }
