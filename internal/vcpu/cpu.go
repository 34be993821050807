package vcpu

import "sync/atomic"

// CPU is one virtual processor. It has no notion of threads, queues, or
// mutexes; it only exposes identity, interrupt masking, and the two ways a
// CPU changes execution state from the outside (an IPI, or a shared timer
// tick observed at InterruptEnableAndSuspend or CheckPoint).
//
// Exactly one goroutine is ever "running as" a CPU at a time: the core
// hands control from one thread's machine context to the next via
// internal/mctx, and that hand-off is exactly what makes CPU.seenTick safe
// to touch without an atomic — only the currently-scheduled thread's
// goroutine ever reads or writes it, and each hand-off is a channel
// operation that publishes the write to whichever goroutine runs next.
type CPU struct {
	id        int
	masked    atomic.Bool
	suspended atomic.Bool
	wake      chan struct{}
	seenTick  uint64
}

func newCPU(id int) *CPU {
	c := &CPU{id: id, wake: make(chan struct{}, 1)}
	c.masked.Store(true) // a CPU boots with interrupts disabled, per cpu::init
	return c
}

// ID returns this CPU's index in its Host. It is the closest Go analogue to
// cpu::self() returning an identity; unlike the original, nothing here
// reads a hardware register or thread-local slot — the identity is simply
// the *CPU value threaded explicitly through the scheduler core, since Go
// has no goroutine-local storage to fake self() with.
func (c *CPU) ID() int { return c.id }

// InterruptDisable masks TIMER and IPI delivery on this CPU.
func (c *CPU) InterruptDisable() { c.masked.Store(true) }

// InterruptEnable unmasks TIMER and IPI delivery on this CPU.
func (c *CPU) InterruptEnable() { c.masked.Store(false) }

// Masked reports whether interrupts are currently disabled on this CPU.
func (c *CPU) Masked() bool { return c.masked.Load() }

// InterruptEnableAndSuspend atomically unmasks interrupts and parks the
// calling goroutine until a timer tick or an IPI arrives.
//
// wake is buffered with capacity one, which is what makes this atomic in
// the sense spec.md §4.A requires: a real CPU's "STI; HLT" pair (or this
// package's Host.tick loop, or another CPU's InterruptSend) can only ever
// race with the gap between marking suspended and the blocking receive
// below, and any send that lands in that gap is captured by the buffer
// rather than lost — the receive then returns immediately instead of
// truly parking, which is the correct outcome: work was already waiting.
func (c *CPU) InterruptEnableAndSuspend() {
	c.masked.Store(false)
	c.suspended.Store(true)
	<-c.wake
	c.suspended.Store(false)
}

// InterruptSend delivers an IPI to this CPU: a non-blocking, coalesced send
// on wake. The scheduler core sends it to a CPU it has just popped from its
// queue of parked CPUs under the guard, and Host's timer sends it to every
// parked CPU with interrupts unmasked. A send to a CPU that is not parked
// stays in the buffer, so that CPU's next InterruptEnableAndSuspend
// returns at once.
func (c *CPU) InterruptSend() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}
