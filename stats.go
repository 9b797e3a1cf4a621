// stats.go: telemetry snapshot for a Ring, mirroring Logger.Stats().
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

import (
	"time"

	timecache "github.com/agilira/go-timecache"
)

// Stats is a point-in-time snapshot of a ring's occupancy and eviction
// behavior, for operational monitoring. All fields are read from atomic
// counters and are safe to collect concurrently with Push/Pop.
type Stats struct {
	// Capacity is the fixed number of slots the ring was built with.
	Capacity int `json:"capacity"`

	// Len is the number of items currently held.
	Len int `json:"len"`

	// EvictCount is the total number of items ever evicted to the spout.
	EvictCount uint64 `json:"evict_count"`

	// LastEvictAt is the cached wall-clock time of the most recent
	// eviction, or the zero Time if nothing has ever been evicted.
	LastEvictAt time.Time `json:"last_evict_at"`
}

// Stats returns a snapshot of the ring's current occupancy and
// cumulative eviction counters. Safe to call concurrently with Push and
// Pop.
func (r *Ring[T, S]) Stats() Stats {
	nanos := r.lastEvictNanos.Load()
	var lastEvict time.Time
	if nanos != 0 {
		lastEvict = time.Unix(0, nanos)
	}
	return Stats{
		Capacity:    len(r.buffer),
		Len:         r.Len(),
		EvictCount:  r.evictCount.Load(),
		LastEvictAt: lastEvict,
	}
}

// recordEviction updates the eviction telemetry counters. Called from
// both the concurrent Push path and the exclusive-access paths
// (PushMut, PushSlice, Flush never evicts but PushMut/PushSlice do).
func (r *Ring[T, S]) recordEviction(n uint64) {
	r.evictCount.Add(n)
	r.lastEvictNanos.Store(timecache.DefaultCache().CachedTime().UnixNano())
}
