package vthread

import (
	"github.com/google/uuid"

	"github.com/kolkov/vthread/internal/sched"
	"github.com/kolkov/vthread/internal/vcpu"
)

// Thread is a handle to a user-level thread. The zero value is not
// usable; obtain one from New.
type Thread struct {
	t *sched.Thread
}

// handleBackLink adapts a *Thread to sched.HandleOwner, so the internal
// thread can null the handle it points at on exit or move without this
// package exposing that as part of Thread's own public method set.
type handleBackLink struct {
	th *Thread
}

func (h *handleBackLink) Clear() { h.th.t = nil }

// New creates a new thread running fn(arg) and makes it runnable. The
// calling goroutine must currently be running inside a thread started by
// Init or a previous call to New; New reports an error if fn is nil or
// if the caller is not running on any known CPU.
func New(fn func(arg any), arg any) (*Thread, error) {
	if fn == nil {
		return nil, &sched.InvalidArgumentError{Op: "New"}
	}

	cpu := sched.SelfCPU()
	if cpu == nil {
		return nil, &sched.InvalidArgumentError{Op: "New: not running inside a vthread"}
	}

	t, err := sched.Create(cpu, func(_ *vcpu.CPU, arg any) {
		fn(arg)
	}, arg)
	if err != nil {
		return nil, err
	}
	th := &Thread{t: t}
	sched.SetOwner(cpu, t, &handleBackLink{th: th})
	return th, nil
}

// ID returns the thread's debug identifier.
func (th *Thread) ID() uuid.UUID {
	return th.t.ID
}

// Join blocks the calling thread until th has exited. If the handle is
// null — moved away via Detach, or already exited — it returns
// immediately; join is not an error on a null handle or an exited
// thread.
func (th *Thread) Join() {
	if th.t == nil {
		return
	}
	cpu := sched.SelfCPU()
	sched.Join(cpu, th.t)
}

// Detach performs the Go analogue of thread.cpp's move-construction: it
// returns a new handle that owns the same underlying thread and clears
// the receiver, so the old variable can no longer be used to reach it.
// Go has no destructive-move language feature, so callers who want that
// discipline call Detach and discard (or let go out of scope) the
// original variable, exactly as a C++ caller would write
// other = std::move(th).
func (th *Thread) Detach() *Thread {
	moved := &Thread{t: th.t}
	if moved.t != nil {
		sched.SetOwner(sched.SelfCPU(), moved.t, &handleBackLink{th: moved})
	}
	th.t = nil
	return moved
}

// Yield voluntarily gives up the remainder of the calling thread's turn.
// It must be called from inside a thread started by Init or New.
func Yield() {
	cpu := sched.SelfCPU()
	sched.Yield(cpu)
}

// CheckPoint is a safepoint: if a simulated timer tick has arrived since
// the calling thread last checked, it is preempted here exactly as it
// would have been by the asynchronous timer interrupt in the original
// design. Long-running, tight-loop thread bodies should call this
// periodically; spec.md's preemption invariant only holds at safepoints
// like this one, since Go itself gives embedder code no way to raise it
// between arbitrary instructions.
func CheckPoint() {
	cpu := sched.SelfCPU()
	if cpu == nil {
		return
	}
	sched.CheckPoint(cpu)
}
