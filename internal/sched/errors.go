// Package sched - error types for the scheduler core.
//
// spec.md §7 names exactly two user-visible error kinds, both raised
// synchronously from the offending call. Both are modeled the way
// cmd/racedetector/instrument/errors.go models InstrumentationError: a
// small struct carrying context, implementing error.
package sched

import "fmt"

// InvalidArgumentError is returned when a thread is constructed with a nil
// user function (spec.md §4.C, §4.G, §7).
type InvalidArgumentError struct {
	// Op names the operation that rejected the argument, e.g. "NewThread".
	Op string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument: function must not be nil", e.Op)
}

// OwnershipViolationError is returned when Mutex.Unlock is called by a
// thread that is not the current owner, including unlocking an unlocked
// mutex (spec.md §4.H, §7).
type OwnershipViolationError struct {
	// Op names the operation, e.g. "Mutex.Unlock".
	Op string
}

func (e *OwnershipViolationError) Error() string {
	return fmt.Sprintf("%s: ownership violation: caller does not own the mutex", e.Op)
}
