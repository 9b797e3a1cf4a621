//go:build !spillring_unsync

// index_atomic.go: atomic index cell backend (default build).
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

import "sync/atomic"

// indexWord is the counter cell used for head, tail and evictHead. This
// build backs it with atomic.Uint64, making Push/Pop safe across one
// producer goroutine and one consumer goroutine running concurrently.
//
// Go's sync/atomic gives every Load/Store sequential consistency, which
// is strictly stronger than the acquire/relaxed/release split the
// protocol actually relies on. The method names below are kept distinct
// anyway: they document which synchronization edge each call sits on,
// so the code reads the same whether or not the runtime's guarantee
// happens to be stronger than required.
type indexWord struct {
	v atomic.Uint64
}

func newIndexWord(initial uint64) indexWord {
	w := indexWord{}
	w.v.Store(initial)
	return w
}

// loadAcquire loads a counter another goroutine may have published.
func (w *indexWord) loadAcquire() uint64 { return w.v.Load() }

// loadRelaxed loads a counter only this goroutine's own side writes.
func (w *indexWord) loadRelaxed() uint64 { return w.v.Load() }

// storeRelease publishes a counter update to the other goroutine.
func (w *indexWord) storeRelease(val uint64) { w.v.Store(val) }

// loadExclusive reads the counter when the caller holds exclusive
// (non-concurrent) access to the whole ring.
func (w *indexWord) loadExclusive() uint64 { return w.v.Load() }

// storeExclusive writes the counter when the caller holds exclusive
// access to the whole ring.
func (w *indexWord) storeExclusive(val uint64) { w.v.Store(val) }
