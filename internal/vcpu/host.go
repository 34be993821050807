package vcpu

import (
	"sync/atomic"
	"time"
)

// DefaultTimerPeriod is the interval between simulated timer interrupts,
// standing in for spec.md §4.F's periodic hardware timer.
const DefaultTimerPeriod = 10 * time.Millisecond

// Host owns a fixed pool of virtual CPUs and the single shared timer that
// drives preemption across all of them. spec.md's Non-goals rule out
// dynamic CPU hot-plug, so the pool size is fixed for the Host's lifetime.
type Host struct {
	cpus   []*CPU
	tick   atomic.Uint64
	period time.Duration
	ticker *time.Ticker
	stop   chan struct{}

	vectors [numVectors]atomic.Pointer[Handler]
}

// NewHost creates a Host with n virtual CPUs, all booted with interrupts
// disabled and both vectors routed to a no-op handler until the caller
// installs real ones (spec.md §4.F's boot-time IPI-routing trick, so that a
// stray tick before the scheduler core is ready does nothing).
func NewHost(n int, period time.Duration) *Host {
	if period <= 0 {
		period = DefaultTimerPeriod
	}
	h := &Host{cpus: make([]*CPU, n), period: period, stop: make(chan struct{})}
	for i := range h.cpus {
		h.cpus[i] = newCPU(i)
	}
	noopHandler := Handler(noop)
	h.vectors[TIMER].Store(&noopHandler)
	h.vectors[IPI].Store(&noopHandler)
	return h
}

// CPUs returns the fixed pool, indexed by CPU.ID().
func (h *Host) CPUs() []*CPU { return h.cpus }

// InstallVector sets the handler invoked for v. It is intended to be called
// during boot only; spec.md §6 models the vector table as installable
// slots, not as something rewritten while interrupts are live.
func (h *Host) InstallVector(v Vector, fn Handler) {
	h.vectors[v].Store(&fn)
}

// vectorHandler returns the currently installed handler for v.
func (h *Host) vectorHandler(v Vector) Handler {
	return *h.vectors[v].Load()
}

// FireIPI invokes the installed IPI handler for cpu. Its body is a no-op
// per spec.md §4.E, kept here only so boot-time wiring has something
// concrete to point interrupt_vector_table[IPI] at before the real
// scheduler installs its own (identical) no-op.
func (h *Host) FireIPI(cpu *CPU) { h.vectorHandler(IPI)(cpu) }

// FireTimer invokes the installed TIMER handler for cpu. Called by
// internal/sched from CheckPoint once a pending tick has been observed —
// see CheckPoint's doc comment for why delivery is cooperative rather than
// asynchronous in this simulation.
func (h *Host) FireTimer(cpu *CPU) { h.vectorHandler(TIMER)(cpu) }

// StartTimer launches the shared timer goroutine. Every period it advances
// the global tick counter (observed by CheckPoint for CPUs that are
// currently running a thread) and nudges every CPU that is parked in
// InterruptEnableAndSuspend with interrupts unmasked, exactly as a real
// hardware timer would raise TIMER on every core simultaneously.
func (h *Host) StartTimer() {
	h.ticker = time.NewTicker(h.period)
	go func() {
		for {
			select {
			case <-h.stop:
				return
			case <-h.ticker.C:
				h.tick.Add(1)
				for _, c := range h.cpus {
					if c.suspended.Load() && !c.masked.Load() {
						c.InterruptSend()
					}
				}
			}
		}
	}()
}

// StopTimer halts the shared timer goroutine. Safe to call at most once.
func (h *Host) StopTimer() {
	if h.ticker != nil {
		h.ticker.Stop()
	}
	close(h.stop)
}

// CheckPoint reports whether a timer tick has arrived since c last checked,
// consuming it if so and if interrupts are currently unmasked on c.
//
// spec.md's timer interrupt is asynchronous hardware: it can preempt a
// running thread between any two instructions. Go gives embedder code no
// way to interrupt another goroutine's control flow from outside, so this
// package moves the granularity of "instruction boundary" to "the running
// thread calls CheckPoint" — the same cooperative-safepoint approach the Go
// runtime itself used for preemption before signal-based async preemption
// landed in 1.14. A tick that arrives while c is masked stays pending (the
// comparison below simply does not advance seenTick) and fires the next
// time CheckPoint is called after interrupts are re-enabled.
func (h *Host) CheckPoint(c *CPU) bool {
	if c.masked.Load() {
		return false
	}
	cur := h.tick.Load()
	if cur == c.seenTick {
		return false
	}
	c.seenTick = cur
	return true
}
