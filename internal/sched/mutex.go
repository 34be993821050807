package sched

import "github.com/kolkov/vthread/internal/vcpu"

// Mutex is a non-reentrant mutual exclusion lock scheduled cooperatively
// through readyQueue, per spec.md §4.H. Ownership transfers directly from
// Unlock to the head waiter: there is no window where the mutex appears
// unowned while a waiter is runnable but not yet holding it.
type Mutex struct {
	owner   *Thread
	waiters threadQueue
}

// Lock acquires m, blocking the calling thread (running on cpu) if m is
// already held.
func Lock(cpu *vcpu.CPU, m *Mutex) {
	g := withGuard(cpu)

	self := currentThread[cpu.ID()]
	if m.owner == nil {
		m.owner = self
		g.release()
		return
	}

	m.waiters.pushBack(self)
	RunNext(cpu, idleThreads[cpu.ID()])
	// Resumed, possibly on a different CPU than the one we blocked on.
	// Unlock already set m.owner to us before waking us, so there is
	// nothing left to do but release the guard on whichever CPU actually
	// brought us back.
	releaseGuard(threadOwner[self])
}

// Unlock releases m, which must currently be owned by the calling thread.
// Returns *OwnershipViolationError otherwise.
//
// The handoff order matters and is pinned against thread.cpp in
// SPEC_FULL.md §9: the new owner is recorded BEFORE the waking CPU is
// sent its wakeup, so a waiter can never observe itself chosen as next
// owner and then lose a race to see that reflected in m.owner.
func Unlock(cpu *vcpu.CPU, m *Mutex) error {
	g := withGuard(cpu)
	defer g.release()

	self := currentThread[cpu.ID()]
	return unlockLocked(m, self, "Mutex.Unlock")
}

// unlockLocked is Unlock's hand-off logic, factored out so Cond.Wait can
// run the identical check-and-release under its own guarded section
// instead of reimplementing it without the ownership check. Caller must
// already hold the guard and pass the thread it believes is the owner.
func unlockLocked(m *Mutex, self *Thread, op string) error {
	if m.owner != self {
		return &OwnershipViolationError{Op: op}
	}

	next := m.waiters.popFront()
	m.owner = next
	if next != nil {
		readyQueue.pushBack(next)
		wakeupOneCPU()
	}
	return nil
}
