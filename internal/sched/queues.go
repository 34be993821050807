package sched

import "github.com/kolkov/vthread/internal/vcpu"

// threadQueue is a FIFO of threads, backed by a slice. All core state is
// already serialized by the guard, so this needs no locking of its own.
type threadQueue struct {
	items []*Thread
}

func (q *threadQueue) pushBack(t *Thread) {
	q.items = append(q.items, t)
}

func (q *threadQueue) popFront() *Thread {
	if len(q.items) == 0 {
		return nil
	}
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return t
}

func (q *threadQueue) empty() bool { return len(q.items) == 0 }

// cpuQueue is a FIFO of CPUs, used for the idleCPUs singleton (spec.md
// §4.B, §4.E).
type cpuQueue struct {
	items []*vcpu.CPU
}

func (q *cpuQueue) pushBack(c *vcpu.CPU) {
	q.items = append(q.items, c)
}

func (q *cpuQueue) popFront() *vcpu.CPU {
	if len(q.items) == 0 {
		return nil
	}
	c := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return c
}

func (q *cpuQueue) empty() bool { return len(q.items) == 0 }

// Process-wide singletons, mirroring thread.cpp's file-static globals
// (spec.md §4.B): a ready queue of runnable threads, a queue of CPUs that
// have nothing to run and are parked in suspend, and a single
// deferred-free slot for the thread a context switch is stepping off of.
// Idle threads are not kept in a queue: each CPU's idle thread sits in
// idleThreads, indexed by CPU id.
var (
	readyQueue     threadQueue
	idleCPUs       cpuQueue
	lastFreeThread *Thread
)

// resetGlobals clears all package-level singleton state. Exported for
// tests only, via ResetForTest.
func resetGlobals() {
	guardFlag.Store(false)
	readyQueue = threadQueue{}
	idleCPUs = cpuQueue{}
	lastFreeThread = nil
	currentThread = nil
	idleThreads = nil
	theHost = nil
	for k := range threadOwner {
		delete(threadOwner, k)
	}
	for k := range goroutineThread {
		delete(goroutineThread, k)
	}
}

// ResetForTest discards all scheduler singleton state, so sequential
// tests in this package can each start from a clean slate. Mirrors the
// teacher's Detector.Reset pattern. Must not be called while any CPU
// goroutine from a previous test is still running.
func ResetForTest() {
	resetGlobals()
}
