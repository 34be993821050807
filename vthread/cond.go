package vthread

import "github.com/kolkov/vthread/internal/sched"

// Cond is a condition variable used together with a Mutex. The zero
// value is ready to use; NewCond exists only for symmetry with the
// standard library's sync.NewCond and callers who prefer it.
type Cond struct {
	c sched.Cond
}

// NewCond returns a new Cond.
func NewCond() *Cond {
	return &Cond{}
}

// Wait atomically releases m and blocks the calling thread, then
// reacquires m before returning. The caller must hold m; it returns an
// error if it does not.
func (c *Cond) Wait(m *Mutex) error {
	return sched.Wait(sched.SelfCPU(), &c.c, &m.m)
}

// Signal wakes at most one thread waiting on c, if any.
func (c *Cond) Signal() {
	sched.Signal(sched.SelfCPU(), &c.c)
}

// Broadcast wakes every thread currently waiting on c.
func (c *Cond) Broadcast() {
	sched.Broadcast(sched.SelfCPU(), &c.c)
}
