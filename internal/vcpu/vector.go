package vcpu

// Vector identifies a slot in the interrupt vector table.
type Vector int

const (
	// TIMER fires periodically on every unmasked CPU; the core installs
	// the preemption handler here once boot has finished.
	TIMER Vector = iota
	// IPI is the inter-processor interrupt used to wake a suspended CPU.
	// Its handler is intentionally empty (spec.md §4.E) — the only job of
	// delivering it is to unblock InterruptEnableAndSuspend.
	IPI

	numVectors = 2
)

// Handler is the signature every vector table entry must satisfy. The
// original's interrupt_vector_table entries take no arguments because
// cpu::self() lets a handler ask "which CPU am I" from inside; Go has no
// such thread-local lookup, so a Handler takes the delivering CPU
// explicitly instead — the same substitution CPU.ID() makes for self().
type Handler func(cpu *CPU)

func noop(*CPU) {}
