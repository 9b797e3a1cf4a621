// traits.go: small polymorphism interfaces a Ring satisfies — a ring
// exposes info/producer/consumer facets independent of its payload and
// spout types, mirroring Rust's RingInfo/RingProducer/RingConsumer
// trait conformance.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

// RingInfo is satisfied by any ring regardless of payload or spout type,
// for code that only needs to report occupancy.
type RingInfo interface {
	Len() int
	Capacity() int
}

// RingProducer is satisfied by anything that can accept items without
// ever blocking, using the non-evicting TryPush semantics.
type RingProducer[T any] interface {
	TryPush(item T) error
}

// RingConsumer is satisfied by anything that can be popped and peeked
// under exclusive access.
type RingConsumer[T any] interface {
	TryPop() (T, bool)
	Peek() (*T, bool)
}

var (
	_ RingInfo = (*Ring[int, *DropSink[int]])(nil)
	_ RingProducer[int] = (*Ring[int, *DropSink[int]])(nil)
	_ RingConsumer[int] = (*Ring[int, *DropSink[int]])(nil)
)

// TryPop satisfies RingConsumer by forwarding to PopMut.
func (r *Ring[T, S]) TryPop() (T, bool) { return r.PopMut() }
