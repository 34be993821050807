package sched

import "github.com/kolkov/vthread/internal/vcpu"

// theHost is the Host installed by Boot. preempt.go and boot.go are the
// only files in this package that touch it directly.
var theHost *vcpu.Host

// CheckPoint is the safepoint a running thread's own code must pass
// through for a pending timer tick to actually preempt it (spec.md §4.F).
// Its call site is the public vthread package's CheckPoint (vthread.Yield
// calls Yield, not this); this function only confirms a tick is
// actually pending and preemptible before dispatching to the installed
// TIMER handler.
//
// Because Go cannot raise this check asynchronously between arbitrary
// instructions, a thread that never calls CheckPoint runs to completion
// regardless of elapsed ticks; DESIGN.md records this as the one place
// the simulation is necessarily cooperative rather than truly preemptive.
func CheckPoint(cpu *vcpu.CPU) {
	if !theHost.CheckPoint(cpu) {
		return
	}
	acquireGuard(cpu)

	self := currentThread[cpu.ID()]
	if self == nil || self.idle {
		releaseGuard(cpu)
		return
	}

	theHost.FireTimer(cpu)
	// Resumed, possibly on a different CPU than the one preempted us.
	releaseGuard(threadOwner[self])
}

// timerHandler is what Boot installs at interrupt_vector_table[TIMER]:
// exactly what thread.cpp's interrupt_handler_timer does under the
// guard, the running thread goes to the back of readyQueue and RunNext
// picks a new one. CheckPoint only invokes it, via Host.FireTimer, once
// it has already confirmed a tick is pending and the calling thread is
// preemptible, so by the time this runs the guard is held and c's
// current thread is known non-nil and non-idle.
func timerHandler(c *vcpu.CPU) {
	self := currentThread[c.ID()]
	readyQueue.pushBack(self)
	RunNext(c, idleThreads[c.ID()])
}
