// Package vcpu implements the simulated multi-CPU host that the scheduler
// core in internal/sched runs on top of.
//
// spec.md places the CPU abstraction itself out of scope for the core: how
// many CPUs exist, how timers and inter-processor interrupts are delivered,
// and how a CPU physically enters low-power suspend are all collaborator
// concerns reached through a narrow contract (self, interrupt
// enable/disable/suspend, interrupt send, an installable vector table).
// Go gives user code no hardware CPUs or real interrupts, so this package
// plays the collaborator's role for real: each virtual CPU is a value the
// scheduler core passes around explicitly, interrupt masking is a per-CPU
// flag, an IPI is a channel send, and low-power suspend is a blocking
// channel receive.
//
// Nothing in this package understands threads, ready queues, or mutexes.
// It is the trusted boundary spec.md's design notes call for: the scheduler
// core treats a *CPU purely as an opaque identity (ID) plus four
// operations: InterruptDisable, InterruptEnable, InterruptEnableAndSuspend
// and InterruptSend.
package vcpu
