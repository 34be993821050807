package sched

import (
	"sync/atomic"

	"github.com/kolkov/vthread/internal/vcpu"
)

// guardFlag is the single process-wide binary flag that serializes every
// mutation of core state across CPUs (spec.md §4.A). It is the only
// synchronization primitive the core itself uses.
var guardFlag atomic.Bool

// acquireGuard disables interrupts on cpu, then spins until guardFlag
// flips from false to true. Ordering matters: interrupts must be masked
// before the CAS loop starts, or a preemption while this CPU already holds
// the guard would deadlock against itself.
func acquireGuard(cpu *vcpu.CPU) {
	cpu.InterruptDisable()
	for !guardFlag.CompareAndSwap(false, true) {
	}
}

// releaseGuard stores false to guardFlag, then re-enables interrupts on
// cpu. The store must happen before interrupts are unmasked, the inverse
// of acquireGuard's ordering.
func releaseGuard(cpu *vcpu.CPU) {
	guardFlag.Store(false)
	cpu.InterruptEnable()
}

// releaseGuardAndSuspend is the "unlock and suspend" variant used only by
// the idle loop (spec.md §4.A, §4.E): it releases the guard and parks cpu
// in one step, so no wakeup that arrives after cpu publishes itself in
// idleCPUs can be missed.
func releaseGuardAndSuspend(cpu *vcpu.CPU) {
	guardFlag.Store(false)
	cpu.InterruptEnableAndSuspend()
}

// guardScope is a scoped guard holder: acquiring one locks the guard,
// releasing it unlocks, and every public entry point defers release so
// the guard comes off on every exit path, including a panic unwinding
// through it. This is the Go shape of thread.cpp's cpu::impl::lock_guard
// RAII type.
type guardScope struct {
	cpu *vcpu.CPU
}

// withGuard acquires the guard for cpu and returns a scope whose release
// method should be deferred immediately by the caller.
func withGuard(cpu *vcpu.CPU) guardScope {
	acquireGuard(cpu)
	return guardScope{cpu: cpu}
}

func (g guardScope) release() {
	releaseGuard(g.cpu)
}
