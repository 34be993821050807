package sched

import "testing"

func TestInvalidArgumentErrorMessage(t *testing.T) {
	err := &InvalidArgumentError{Op: "Create"}
	want := "Create: invalid argument: function must not be nil"
	if got := err.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestOwnershipViolationErrorMessage(t *testing.T) {
	err := &OwnershipViolationError{Op: "Mutex.Unlock"}
	want := "Mutex.Unlock: ownership violation: caller does not own the mutex"
	if got := err.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
