package sched

import (
	"github.com/kolkov/vthread/internal/mctx"
	"github.com/kolkov/vthread/internal/vcpu"
)

// currentThread is indexed by cpu.ID(); it records the thread presently
// running on each CPU. Sized by Boot once the CPU count is known.
var currentThread []*Thread

// RunNext implements spec.md §4.D: pick the next thread to run on cpu and
// switch to it. Caller must hold the guard.
//
//  1. If readyQueue is non-empty, pop the head and run it.
//  2. Otherwise run cpu's own idle thread.
//  3. Publish the choice in currentThread[cpu.ID()].
//  4. Switch context from the old current thread to the new one.
//
// thread.cpp inlines this switch into the caller at every call site; Go
// shapes it as one function since nothing here needs the call-site
// context that justified inlining in C.
func RunNext(cpu *vcpu.CPU, idle *Thread) {
	next := readyQueue.popFront()
	if next == nil {
		next = idle
	}

	prev := currentThread[cpu.ID()]
	currentThread[cpu.ID()] = next
	threadOwner[next] = cpu

	if prev == next {
		return
	}

	// The previous thread is stepping off the CPU. If it has already
	// exited, thread.cpp's idiom is to park it in last_free_thread rather
	// than destroy it immediately, because the code still executing here
	// is running on the exiting thread's own context right up until the
	// switch below. lifecycle.go's exit path sets this up before calling
	// RunNext, so this function only performs the switch itself.
	if prev == nil {
		mctx.SetContext(next.ctx)
		return
	}
	mctx.SwapContext(prev.ctx, next.ctx)
}
