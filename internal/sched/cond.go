package sched

import "github.com/kolkov/vthread/internal/vcpu"

// Cond is a condition variable used together with a Mutex, per spec.md
// §4.I: Wait releases m, blocks, and reacquires m before returning;
// Signal wakes at most one waiter, Broadcast wakes all of them.
type Cond struct {
	waiters threadQueue
}

// Wait atomically releases m and blocks the calling thread, then
// reacquires m before returning. The caller must hold m; if it does not,
// Wait returns *OwnershipViolationError and leaves c and m untouched,
// same as an Unlock would.
func Wait(cpu *vcpu.CPU, c *Cond, m *Mutex) error {
	acquireGuard(cpu)

	self := currentThread[cpu.ID()]

	// Release m under the same guarded section that enqueues self, so no
	// Signal/Broadcast between the unlock and the enqueue can be missed.
	if err := unlockLocked(m, self, "Cond.Wait"); err != nil {
		releaseGuard(cpu)
		return err
	}

	c.waiters.pushBack(self)
	RunNext(cpu, idleThreads[cpu.ID()])
	// Resumed by Signal/Broadcast, possibly on a different CPU than the
	// one we blocked on. Still need to reacquire m ourselves: Signal only
	// moved us to readyQueue, it did not grant us the mutex.
	cpu = threadOwner[self]
	releaseGuard(cpu)

	Lock(cpu, m)
	return nil
}

// Signal wakes at most one thread waiting on c, if any.
func Signal(cpu *vcpu.CPU, c *Cond) {
	g := withGuard(cpu)
	defer g.release()

	w := c.waiters.popFront()
	if w == nil {
		return
	}
	readyQueue.pushBack(w)
	wakeupOneCPU()
}

// Broadcast wakes every thread currently waiting on c.
func Broadcast(cpu *vcpu.CPU, c *Cond) {
	g := withGuard(cpu)
	defer g.release()

	for {
		w := c.waiters.popFront()
		if w == nil {
			return
		}
		readyQueue.pushBack(w)
		wakeupOneCPU()
	}
}
