// Package trace provides a small vector-clock-based happens-before tracer
// used by internal/sched's tests to make ordering invariants observable.
//
// spec.md §8 states several ordering properties as testable invariants —
// mutex hand-off FIFO, no lost wakeup, CV signal waking the
// longest-waiting thread — that are awkward to assert on directly since
// they are properties of *when* things happened relative to each other
// across CPUs, not of any single value. This package adapts the vector
// clock and epoch machinery a happens-before race detector needs for the
// opposite purpose: instead of flagging when two accesses are concurrent,
// tests use it to assert that two scheduler events are ordered the way
// spec.md requires.
//
// It is deliberately independent of internal/sched: the guard remains the
// only synchronization primitive the scheduler core itself uses (spec.md
// §5), and nothing here is consulted to make a scheduling decision. A
// Stamp is advisory bookkeeping recorded alongside a scheduling event,
// never a substitute for it.
package trace
