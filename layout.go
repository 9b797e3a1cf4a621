// layout.go: cache-line-partitioned field layout for Ring.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

import "unsafe"

// CacheLine is the target cache-line size in bytes used to pad the
// consumer and producer hot fields apart. 64 bytes is correct for x86-64
// and most ARM64 server cores; platforms with a different line size
// (128 bytes on Apple M-series, 32 bytes on some embedded cores) would
// need this constant changed and the repo rebuilt — it is a build
// constant, not a runtime option.
const CacheLine = 64

// headPad fills out the consumer cache line: head, cachedTail, padding.
const headPad = CacheLine - unsafe.Sizeof(indexWord{}) - unsafe.Sizeof(uint64(0))

// tailPad fills out the producer cache line: tail, cachedHead,
// evictHead, padding.
const tailPad = CacheLine - 2*unsafe.Sizeof(indexWord{}) - unsafe.Sizeof(uint64(0))

// consumerLine holds every field only the consumer writes, plus the
// consumer's private cache of tail. The producer only ever reads head
// from this line (via loadAcquire), so keeping it on its own cache line
// means a busy producer never bounces this line out of the consumer's
// core.
type consumerLine struct {
	head       indexWord
	cachedTail uint64 // consumer-private; never touched by the producer
	_          [headPad]byte
}

// producerLine holds every field only the producer writes: tail, its
// private cache of head, and evictHead (the producer's side-channel
// into the consumer's domain — see the "split-ownership counter
// trio"). The consumer reads tail and evictHead from this line.
type producerLine struct {
	tail       indexWord
	cachedHead uint64 // producer-private; never touched by the consumer
	evictHead  indexWord
	_          [tailPad]byte
}
