// config.go: struct-based construction, mirroring the
// LoggerConfig + NewWithConfig pattern.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

// RingConfig collects every construction-time choice in one struct, for
// callers who'd rather build one value than thread several constructor
// arguments — the same role a config struct plays for rotation settings
// elsewhere in this ecosystem.
type RingConfig[T any, S Spout[T]] struct {
	// Capacity is N: the number of slots, must be a power of two,
	// 1 <= Capacity <= MaxCapacity.
	Capacity int

	// Sink receives evicted and flushed items. Required — there is no
	// implicit default inside RingConfig (use New/Cold for a DropSink).
	Sink S

	// Warm, when true, touches every slot once at construction to fault
	// its page and bring it into cache before first use.
	Warm bool
}

// NewWithConfig constructs a ring from a RingConfig, validating Capacity
// the same way New/WithSink do.
func NewWithConfig[T any, S Spout[T]](cfg RingConfig[T, S]) (*Ring[T, S], error) {
	if cfg.Warm {
		return WithSink[T](cfg.Capacity, cfg.Sink)
	}
	return WithSinkCold[T](cfg.Capacity, cfg.Sink)
}
