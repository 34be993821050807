// Package sched is the scheduler and synchronization core: the ready
// queue, the per-CPU idle loop, the CPU suspend/wake protocol, the
// context-switch discipline, preemption safety, thread lifecycle, and the
// mutex/condition-variable primitives built on top of it.
//
// Everything in this package is guarded by a single process-wide flag
// (guard.go) combined with per-CPU interrupt masking (internal/vcpu); it
// is, deliberately, the only synchronization primitive the core itself
// uses — spec.md §5 is explicit that nothing else here may use atomics
// except the guard flag. Package-level state (the ready queue, the queue
// of parked CPUs, the deferred-free slot, and the per-CPU current-thread
// and idle-thread tables) mirrors thread.cpp's own file-static
// globals; spec.md §9's design notes call this out as the expected shape
// in a language, like Go, where a single process owns this state for its
// whole lifetime.
//
// The public, user-facing surface is the sibling vthread package; nothing
// here is meant to be imported by user thread functions.
package sched
