package sched

import (
	"unsafe"

	"github.com/google/uuid"

	"github.com/kolkov/vthread/internal/mctx"
	"github.com/kolkov/vthread/internal/vcpu"
)

// UserFunc is the body a thread runs. arg is passed through unmodified
// from Create, the Go analogue of thread.cpp's void* argument. cpu is the
// CPU the thread body started on; Go has no cpu::self(), so every
// scheduler operation a thread body calls (Lock, Yield, Join, ...) takes
// the CPU explicitly rather than discovering it implicitly. Any call that
// can switch away (Lock, Wait, Join, Yield, CheckPoint) may resume the
// thread on a different CPU; after one, SelfCPU reports the CPU now
// running it.
type UserFunc func(cpu *vcpu.CPU, arg any)

// Thread is the scheduler's internal representation of one user-level
// thread: its context, its bookkeeping, and its join waiters. It is
// never exposed directly outside this package; vthread.Thread wraps a
// pointer to one.
type Thread struct {
	ID uuid.UUID

	ctx *mctx.Context

	fn  UserFunc
	arg any

	// idle marks the per-CPU idle thread created at boot (spec.md §4.E).
	// Idle threads are never pushed to readyQueue and never join-waited.
	idle bool

	// exited is set once the thread's fn has returned and its join
	// waiters have been drained, mirroring thread.cpp's unlinking of the
	// thread from any list just before parking it in last_free_thread.
	exited bool

	joinWaiters threadQueue

	// owner back-links to the public handle so lifecycle operations can
	// sever it on exit (spec.md §4.G's "sever back-link" step) or
	// re-point it on a handle move (spec.md §3, §9).
	owner HandleOwner
}

// HandleOwner is implemented by the public package's thread handle so
// this package can null it out on exit or re-point it on a move,
// without importing the public package (spec.md §3: "handle↔internal
// back-pointers are either both null or mutually consistent; both sides
// must clear on any severance"). The method must be exported: Go only
// lets an unexported interface method be satisfied by a type declared
// in the same package as the interface.
type HandleOwner interface {
	Clear()
}

// SetOwner records h as t's back-link, atomically under the guard like
// every other mutable field shared between a thread and its caller, per
// spec.md's shared-resource policy. Called once from New to wire the
// link, and again from Detach to re-point it at the moved-to handle.
func SetOwner(cpu *vcpu.CPU, t *Thread, h HandleOwner) {
	g := withGuard(cpu)
	defer g.release()
	t.owner = h
}

// newThread allocates a Thread bound to fn/arg, wired to run entryTrampoline
// when first switched to. Returns *InvalidArgumentError if fn is nil.
func newThread(op string, fn UserFunc, arg any, idle bool) (*Thread, error) {
	if fn == nil {
		return nil, &InvalidArgumentError{Op: op}
	}
	t := &Thread{ID: uuid.New(), fn: fn, arg: arg, idle: idle}
	t.ctx = mctx.MakeContext(entryTrampoline, unsafe.Pointer(t), nil)
	return t, nil
}
