package mctx

import "unsafe"

// EntryFunc is the trampoline every Context runs once it is first resumed,
// matching makecontext's "entry point with two opaque arguments" contract.
type EntryFunc func(a1, a2 unsafe.Pointer)

// Context stands in for a ucontext_t plus its private stack. resume is the
// single channel used both to start the Context's goroutine for the first
// time and to hand control back to it on every later resume — the receiver
// is always exactly one of "the freshly spawned trampoline, blocked before
// calling entry" or "some earlier SwapContext call, blocked on this same
// channel after having run entry partway".
type Context struct {
	resume chan struct{}
}

// MakeContext allocates a Context whose goroutine will run entry(a1, a2)
// the first time it is switched to. It mirrors make_context(ctx, entry_fn,
// arg1, arg2, stack, stack_size) minus the stack parameters: Go supplies
// the goroutine's stack, so there is no caller-sized allocation for this
// package to perform.
func MakeContext(entry EntryFunc, a1, a2 unsafe.Pointer) *Context {
	c := &Context{resume: make(chan struct{})}
	go func() {
		<-c.resume
		entry(a1, a2)
		panic("mctx: entry function returned; every thread must end by switching away, never by returning")
	}()
	return c
}

// SwapContext saves the caller's resumption point in old and transfers
// control to next. It must be called from the goroutine that old itself
// represents — precisely the same restriction swapcontext places on its
// caller, since there is no other context to "be" while executing it.
//
// After next's goroutine eventually calls SwapContext or SetContext back
// against old, this call returns and old's goroutine resumes exactly where
// it left off, matching swapcontext's semantics.
func SwapContext(old, next *Context) {
	next.resume <- struct{}{}
	<-old.resume
}

// SetContext discards the calling context and transfers control to next.
// It is used for the very first switch on a CPU (spec.md §4.D step 4),
// where there is no old context to save. Because Go offers no way to
// actually retire and free a running goroutine's own stack from within
// itself, the caller's goroutine instead parks forever after handing off —
// it is never resumed, which is the only externally observable property
// setcontext's "discard" promises anyway.
func SetContext(next *Context) {
	next.resume <- struct{}{}
	select {}
}
