// errors.go: structured, code-tagged construction and runtime errors.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package spillring

import (
	goerrors "github.com/agilira/go-errors"
)

// Sentinel errors returned by construction and by TryPush, the one
// fallible (exclusive-access) operation. All other operations are total: Push
// always succeeds (via eviction) and Pop returns an empty Option-like
// (T, bool) pair rather than an error.
var (
	// ErrZeroCapacity is returned when a ring is constructed with N == 0.
	ErrZeroCapacity = goerrors.New("SPILLRING_ZERO_CAPACITY", "capacity must be greater than zero")

	// ErrNotPowerOfTwo is returned when N is not a power of two.
	ErrNotPowerOfTwo = goerrors.New("SPILLRING_NOT_POW2", "capacity must be a power of two")

	// ErrCapacityTooLarge is returned when N exceeds MaxCapacity (2^20).
	ErrCapacityTooLarge = goerrors.New("SPILLRING_CAPACITY_TOO_LARGE", "capacity exceeds maximum of 2^20")

	// ErrRingFull is returned by TryPush when the ring has no free slot.
	// Unlike Push, TryPush never evicts.
	ErrRingFull = goerrors.New("SPILLRING_FULL", "ring is full")
)

// validateCapacity checks the three construction invariants: N > 0,
// N a power of two, N <= MaxCapacity. Rust enforces these at
// compile time via const assertions; Go has no equivalent for a runtime
// capacity parameter, so construction returns a structured error instead.
func validateCapacity(n int) error {
	if n <= 0 {
		return ErrZeroCapacity
	}
	if n&(n-1) != 0 {
		return ErrNotPowerOfTwo
	}
	if n > MaxCapacity {
		return ErrCapacityTooLarge
	}
	return nil
}
