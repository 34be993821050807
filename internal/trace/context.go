package trace

// CPUContext tracks logical time for one CPU: a full Clock (used when a
// tester needs to compare against another CPU's whole history) plus a
// cached Stamp for the CPU's own current position, kept in sync the same
// way a race detector's per-goroutine epoch cache tracks C[TID].
//
// Invariant: Stamp always equals NewStamp(id, C[id]).
type CPUContext struct {
	id    int
	C     *Clock
	Stamp Stamp
}

// NewCPUContext allocates a CPUContext for the given CPU id, starting at
// logical time zero.
func NewCPUContext(id int) *CPUContext {
	return &CPUContext{id: id, C: &Clock{}, Stamp: NewStamp(id, 0)}
}

// Tick advances this CPU's local clock by one and refreshes the cached
// Stamp. Callers record one Tick per event they want future assertions to
// be able to order relative to other CPUs' events.
func (cc *CPUContext) Tick() Stamp {
	cc.C[cc.id]++
	cc.Stamp = NewStamp(cc.id, cc.C[cc.id])
	return cc.Stamp
}

// Join merges other into this CPU's clock, recording that everything other
// had observed is now also known to have happened-before this CPU's next
// event. Used, for example, when a woken waiter's tracer joins the
// signaler's clock.
func (cc *CPUContext) Join(other *Clock) {
	cc.C.Join(other)
}
