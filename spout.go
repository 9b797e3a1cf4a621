// spout.go: overflow sink capability consumed by Ring, plus the
// built-in implementations considered "peripheral" (drop, collect,
// channel) and the TimestampedSink decorator added for this repo.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

import (
	"iter"
	"sync"
	"sync/atomic"
	"time"

	timecache "github.com/agilira/go-timecache"
)

// Spout accepts items a Ring can no longer hold: evicted on Push, or
// handed over in bulk by Flush/PushSlice. Implementations must not
// fail — if a Spout panics, the interrupted ring operation does not
// finish and the ring neither detects nor repairs the resulting state.
type Spout[T any] interface {
	// Send accepts one item.
	Send(item T)

	// SendAll accepts a batch, in order. Implementations without a
	// batch-specific fast path can satisfy this with a loop over Send.
	SendAll(items iterSeq[T])

	// Flush hints that any buffered state should be materialized.
	Flush()
}

// iterSeq names iter.Seq[T] locally; ring_exclusive.go's Drain produces
// the same shape, so SendAll and the ring's draining methods compose with a
// plain Go for-range loop (range-over-func, Go 1.23+).
type iterSeq[T any] = iter.Seq[T]

// DropSink discards every item it receives. It is the default spout for
// New/Cold, matching Rust's DropSpout.
type DropSink[T any] struct{}

// NewDropSink returns a spout that discards everything it's sent.
func NewDropSink[T any]() *DropSink[T] { return &DropSink[T]{} }

func (*DropSink[T]) Send(T) {}

func (s *DropSink[T]) SendAll(items iterSeq[T]) {
	for range items {
	}
}

func (*DropSink[T]) Flush() {}

// CollectSink accumulates every item it receives, in order, behind a
// mutex. Intended for tests and for low-volume diagnostic overflow
// paths, not the hot path.
type CollectSink[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewCollectSink returns a spout that remembers everything sent to it.
func NewCollectSink[T any]() *CollectSink[T] {
	return &CollectSink[T]{}
}

func (s *CollectSink[T]) Send(item T) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
}

func (s *CollectSink[T]) SendAll(items iterSeq[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for item := range items {
		s.items = append(s.items, item)
	}
}

func (*CollectSink[T]) Flush() {}

// Items returns a snapshot of everything collected so far, oldest first.
func (s *CollectSink[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports how many items have been collected so far.
func (s *CollectSink[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ChannelSink forwards every item to a buffered channel. Send drops the
// item on the floor if the channel is full rather than blocking — a
// spout must never block the producer it's attached to.
type ChannelSink[T any] struct {
	ch      chan T
	dropped atomic.Uint64
	onDrop  func(T)
}

// NewChannelSink returns a spout backed by a channel of the given
// buffer size. Sends that would block because the channel is full are
// dropped and counted (see Dropped).
func NewChannelSink[T any](bufferSize int) *ChannelSink[T] {
	return &ChannelSink[T]{ch: make(chan T, bufferSize)}
}

// Out exposes the receive side of the channel to a downstream consumer.
func (s *ChannelSink[T]) Out() <-chan T { return s.ch }

func (s *ChannelSink[T]) Send(item T) {
	select {
	case s.ch <- item:
	default:
		s.dropped.Add(1)
		if s.onDrop != nil {
			s.onDrop(item)
		}
	}
}

func (s *ChannelSink[T]) SendAll(items iterSeq[T]) {
	for item := range items {
		s.Send(item)
	}
}

func (*ChannelSink[T]) Flush() {}

// Dropped returns how many items were discarded because the channel
// buffer was full.
func (s *ChannelSink[T]) Dropped() uint64 { return s.dropped.Load() }

// TimestampedSink wraps a downstream Spout, stamping each item with a
// cached wall-clock reading before forwarding it. It uses go-timecache
// the same way a rotating logger uses it for rotation
// timestamps (NewWithResolution/CachedTime/Stop), trading a small amount
// of clock precision for avoiding a syscall on every single eviction.
type TimestampedSink[T any] struct {
	downstream Spout[Stamped[T]]
	clock      *timecache.TimeCache
}

// Stamped pairs a spilled item with the cached time it was spilled at.
type Stamped[T any] struct {
	Item T
	At   time.Time
}

// NewTimestampedSink wraps downstream with a millisecond-resolution
// cached clock. Call Stop when the sink is no longer needed to release
// the background ticker go-timecache runs.
func NewTimestampedSink[T any](downstream Spout[Stamped[T]]) *TimestampedSink[T] {
	return &TimestampedSink[T]{
		downstream: downstream,
		clock:      timecache.NewWithResolution(time.Millisecond),
	}
}

func (s *TimestampedSink[T]) Send(item T) {
	s.downstream.Send(Stamped[T]{Item: item, At: s.clock.CachedTime()})
}

func (s *TimestampedSink[T]) SendAll(items iterSeq[T]) {
	now := s.clock.CachedTime()
	s.downstream.SendAll(func(yield func(Stamped[T]) bool) {
		for item := range items {
			if !yield(Stamped[T]{Item: item, At: now}) {
				return
			}
		}
	})
}

func (s *TimestampedSink[T]) Flush() { s.downstream.Flush() }

// Stop releases the background clock-refresh ticker. Safe to call once.
func (s *TimestampedSink[T]) Stop() { s.clock.Stop() }
