package sched

import "github.com/kolkov/vthread/internal/vcpu"

// idleThreads is indexed by cpu.ID(); each CPU's idle thread is the
// fallback RunNext switches to when readyQueue is empty. Sized and filled
// by Boot.
var idleThreads []*Thread

// newIdleThread builds the per-CPU idle thread installed during Boot
// (spec.md §4.E). Its body never returns: when there is nothing ready to
// run, cpu parks itself in idleCPUs and releases the guard together
// with suspending the CPU, so no IPI arriving in between can be lost.
func newIdleThread(cpu *vcpu.CPU) *Thread {
	t, err := newThread("idle", func(_ *vcpu.CPU, _ any) {
		idleLoop(cpu)
	}, nil, true)
	if err != nil {
		// fn is the literal above, never nil.
		panic(err)
	}
	return t
}

// wakeupOneCPU nudges one idle CPU, if any is parked, so it comes out of
// InterruptEnableAndSuspend and re-enters the scheduler to pick up newly
// ready work. Mirrors thread.cpp's wakeup_one_cpu(): popping a CPU off
// idleCPUs here does not by itself guarantee that CPU runs the thread the
// caller just pushed (some other CPU might steal it first via RunNext),
// only that at least one CPU is nudged to go look.
func wakeupOneCPU() {
	cpu := idleCPUs.popFront()
	if cpu == nil {
		return
	}
	cpu.InterruptSend()
}

// idleLoop is the idle thread's body (spec.md §4.E):
//
//	for {
//	    run_next()            // switch to a ready thread, if there is one
//	    push cpu onto idleCPUs
//	    release guard and suspend
//	    // woken by an IPI or a timer tick
//	    acquire guard
//	}
//
// entryTrampoline releases the guard before calling into any thread's fn,
// idle threads included, so idleLoop's first action is to reacquire it,
// matching the guard-held precondition every other statement here assumes.
func idleLoop(cpu *vcpu.CPU) {
	acquireGuard(cpu)
	for {
		RunNext(cpu, idleThreads[cpu.ID()])
		idleCPUs.pushBack(cpu)
		releaseGuardAndSuspend(cpu)
		acquireGuard(cpu)
	}
}
