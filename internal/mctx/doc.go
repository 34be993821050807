// Package mctx implements the machine-context primitive spec.md §6 leaves
// as an external collaborator: make_context, swap_context, and set_context
// in the ucontext_t style the original was built on.
//
// Go has no user-level stack-switch instruction, so a Context is not a
// saved register file — it is one dedicated goroutine, parked on an
// unbuffered channel whenever it is not the one currently running. Handing
// control from one Context to another is a channel hand-off: signal the
// next Context's channel, then block on the current one's. Exactly one
// Context's goroutine is ever unblocked at a time, which is what makes this
// a faithful (if goroutine-shaped rather than stack-shaped) stand-in for a
// swapcontext pair.
package mctx
