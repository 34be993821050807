// Package vthread provides a pure-Go user-level threading runtime over a
// simulated multi-CPU host.
//
// A host is a fixed pool of virtual CPUs (vthread.Init) each running a
// cooperative scheduler: user threads (vthread.New) are picked up off a
// single ready queue, run until they block or voluntarily yield, and a
// periodic simulated timer interrupt gives every running thread the
// chance to be preempted the next time it passes the safepoint
// vthread.CheckPoint (Yield and blocking calls switch away on their own
// terms and do not look at the timer). Mutex and Cond are built directly
// on the same scheduler, so blocking on either parks the calling thread
// instead of the calling goroutine.
//
// # Quick start
//
//	func main() {
//		vthread.Init(2, func(arg any) {
//			var m vthread.Mutex
//			done := 0
//
//			t, _ := vthread.New(func(any) {
//				m.Lock()
//				done++
//				m.Unlock()
//			}, nil)
//			t.Join()
//		}, nil)
//	}
//
// Everything in this package must be called from inside a thread started
// by Init or New; there is no meaningful way to call Lock, Wait, Yield,
// or Join from an ordinary goroutine that the scheduler does not know
// about.
package vthread
