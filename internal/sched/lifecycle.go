package sched

import (
	"unsafe"

	"github.com/kolkov/vthread/internal/vcpu"
)

// Create allocates a new user thread bound to fn/arg and pushes it onto
// readyQueue, per spec.md §4.C. Returns *InvalidArgumentError if fn is
// nil.
func Create(cpu *vcpu.CPU, fn UserFunc, arg any) (*Thread, error) {
	t, err := newThread("Create", fn, arg, false)
	if err != nil {
		return nil, err
	}

	g := withGuard(cpu)
	defer g.release()

	readyQueue.pushBack(t)
	wakeupOneCPU()
	return t, nil
}

// entryTrampoline is the function every user thread's context is built
// with. It implements thread.cpp's six-step thread_start wrapper exactly
// (spec.md §4.G, pinned against original_source/thread.cpp in
// SPEC_FULL.md §9):
//
//  1. reclaim whatever thread was parked in lastFreeThread by the switch
//     that brought us here (nothing to free on a thread's very first run);
//  2. release the guard, so the rest of the system can make progress
//     while this thread's body runs unguarded;
//  3. run the user function;
//  4. reacquire the guard;
//  5. drain join waiters, moving each onto readyQueue;
//  6. sever the back-link, park self as the new lastFreeThread, and call
//     RunNext — this thread never runs again after this point.
func entryTrampoline(a1, a2 unsafe.Pointer) {
	self := (*Thread)(a1)
	cpu := bootCPUOf(self)
	goroutineThread[goroutineID()] = self

	reclaimLastFree()
	releaseGuard(cpu)

	self.fn(cpu, self.arg)

	// self.fn may itself have blocked and resumed on a different CPU (Lock,
	// Wait, and Join all switch away), so the CPU actually running us now
	// is not necessarily the one captured above; re-resolve it before
	// touching anything CPU-specific below.
	cpu = bootCPUOf(self)

	acquireGuard(cpu)
	for {
		w := self.joinWaiters.popFront()
		if w == nil {
			break
		}
		readyQueue.pushBack(w)
		wakeupOneCPU()
	}
	self.exited = true
	if self.owner != nil {
		self.owner.Clear()
		self.owner = nil
	}

	lastFreeThread = self
	currentThread[cpu.ID()] = nil
	RunNext(cpu, idleThreads[cpu.ID()])
}

// reclaimLastFree drops the reference to whatever thread was deferred for
// freeing by the switch onto the currently running thread. In thread.cpp
// this is where the C heap allocation backing the previous thread is
// actually freed; Go's collector reclaims it once lastFreeThread is
// cleared, so this step is the GC-friendly equivalent of the same
// deferred-free discipline, kept for the same reason the original keeps
// it: the previous thread's stack is still in use by the switch
// instruction sequence that got us here, so it cannot be freed any
// earlier than this.
func reclaimLastFree() {
	lastFreeThread = nil
}

// bootCPUOf looks up which CPU is currently running t, via the table
// RunNext keeps current on every switch. entryTrampoline needs this
// because it runs on whichever CPU happened to perform the switch, not
// necessarily the CPU that originally called Create.
func bootCPUOf(t *Thread) *vcpu.CPU {
	return threadOwner[t]
}

// Join blocks the calling thread (running on cpu) until target has
// exited, per spec.md §4.G. If target has already exited it returns
// immediately. Joining an idle thread is a programming error the public
// package is expected to guard against before reaching here.
func Join(cpu *vcpu.CPU, target *Thread) {
	acquireGuard(cpu)
	if target.exited {
		releaseGuard(cpu)
		return
	}

	self := currentThread[cpu.ID()]
	target.joinWaiters.pushBack(self)
	RunNext(cpu, idleThreads[cpu.ID()])
	// Resumed, possibly on a different CPU than the one we blocked on.
	// We were popped off readyQueue by some RunNext call after target's
	// exit drained its waiters; the guard is held again because whichever
	// path woke us re-acquired it before switching back, so all that's
	// left is releasing it on the CPU that actually brought us back.
	releaseGuard(threadOwner[self])
}

// Yield voluntarily gives up the remainder of this thread's turn,
// pushing it to the back of readyQueue and calling RunNext (spec.md
// §4.G). Unlike CheckPoint, this is an explicit, uncontested request:
// the thread always goes back on the queue regardless of any pending
// timer tick.
func Yield(cpu *vcpu.CPU) {
	acquireGuard(cpu)

	self := currentThread[cpu.ID()]
	readyQueue.pushBack(self)
	RunNext(cpu, idleThreads[cpu.ID()])
	// Resumed, possibly on a different CPU than the one we yielded on.
	releaseGuard(threadOwner[self])
}
