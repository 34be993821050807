package sched

import (
	"github.com/kolkov/vthread/internal/mctx"
	"github.com/kolkov/vthread/internal/vcpu"
)

// threadOwner maps a *Thread back to the *vcpu.CPU that is currently
// running it, standing in for thread.cpp's cpu::self() — Go has no
// thread-local-storage equivalent, so entryTrampoline needs this table to
// find out which CPU it is running on. Kept current by RunNext on every
// switch.
var threadOwner = map[*Thread]*vcpu.CPU{}

// Boot implements spec.md §6's cpu::init contract: build one idle thread
// per CPU, install the interrupt vector table, and hand the CPU running
// mainFn its own idle context as the thing it falls into once mainFn
// returns control to the scheduler.
//
// Vector routing order is pinned against thread.cpp in SPEC_FULL.md §9:
// IPI stays routed to the permanent no-op a freshly constructed Host
// already installs (spec.md §4.E's IPI delivery is done directly by
// CPU.InterruptSend, not through the vector table), and TIMER is only
// pointed at the real handler once every CPU's idle thread has been
// built, so a tick cannot land on a CPU whose currentThread/idleThreads
// slot has not been populated yet.
func Boot(host *vcpu.Host, mainFn UserFunc, arg any) error {
	resetGlobals()
	theHost = host

	cpus := host.CPUs()
	currentThread = make([]*Thread, len(cpus))
	idleThreads = make([]*Thread, len(cpus))

	for _, cpu := range cpus {
		idle := newIdleThread(cpu)
		idleThreads[cpu.ID()] = idle
	}

	main, err := newThread("Boot", mainFn, arg, false)
	if err != nil {
		return err
	}

	host.InstallVector(vcpu.IPI, func(c *vcpu.CPU) {
		// Permanent no-op: IPIs in this design only ever need to
		// interrupt a suspended CPU's blocking receive, handled
		// directly by vcpu.CPU.InterruptSend, never through this
		// vector.
	})
	host.InstallVector(vcpu.TIMER, timerHandler)

	bootCPU := cpus[0]
	currentThread[bootCPU.ID()] = main
	threadOwner[main] = bootCPU

	host.StartTimer()

	// Secondary CPUs have nothing of their own to run yet, so they fall
	// straight into their idle loop. Each gets its own driving goroutine,
	// the Go stand-in for the secondary cores a real boot loader parks in
	// cpu::init's idle branch while the primary core runs mainFn. Every
	// one of these, main's CPU included, must properly acquire the guard
	// (not merely assume it) before its first switch: entryTrampoline's
	// first act on the other side is an unconditional release, and that
	// release is only correctly paired if exactly one of these startups
	// actually won the guard first.
	for _, cpu := range cpus[1:] {
		currentThread[cpu.ID()] = idleThreads[cpu.ID()]
		threadOwner[idleThreads[cpu.ID()]] = cpu
		go func(cpu *vcpu.CPU, idle *Thread) {
			acquireGuard(cpu)
			mctx.SetContext(idle.ctx)
		}(cpu, idleThreads[cpu.ID()])
	}

	acquireGuard(bootCPU)
	mctx.SetContext(main.ctx)
	return nil
}
