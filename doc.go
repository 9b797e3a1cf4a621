// doc.go: package documentation.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package spillring provides a bounded, power-of-two-capacity ring
// buffer for single-producer/single-consumer use. When the ring is
// full, Push never blocks and never fails: it evicts the oldest item to
// an attached Spout and writes the new one in its place. Pop always
// returns in FIFO order, transparently skipping slots the producer has
// evicted since the consumer's last look.
//
// # Quick start
//
//	ring, err := spillring.New[int](4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ring.Close()
//
//	for i := 0; i < 6; i++ {
//		ring.Push(i)
//	}
//	for {
//		item, ok := ring.Pop()
//		if !ok {
//			break
//		}
//		fmt.Println(item)
//	}
//
// # Attaching a spout
//
//	sink := spillring.NewCollectSink[int]()
//	ring, err := spillring.WithSink[int](4, sink)
//	...
//	// sink.Items() now holds whatever overflowed.
//
// # Concurrency
//
// Push and Pop are safe to call concurrently, but only from exactly one
// producer goroutine and exactly one consumer goroutine respectively.
// Every other method (PushMut, PopMut, Flush, Drain, Clear, PushSlice,
// TryPush, Peek, IterMut) requires exclusive access: the caller must not
// overlap them with any other operation on the same ring. Violating
// either rule is undefined behavior; spillring does not and cannot
// detect the misuse for you.
package spillring
