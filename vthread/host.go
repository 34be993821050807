package vthread

import (
	"time"

	"github.com/kolkov/vthread/internal/sched"
	"github.com/kolkov/vthread/internal/vcpu"
)

// currentHost is the single host a process can have booted at a time.
// spec.md's Non-goals rule out dynamic CPU hot-plug and multiple
// independent hosts in one process; one package-level pointer is the Go
// shape of that constraint.
var currentHost *vcpu.Host

// cpuCount reports how many CPUs the current host was booted with, or 0
// if none has been booted.
func cpuCount() int {
	if currentHost == nil {
		return 0
	}
	return len(currentHost.CPUs())
}

// Init boots a host with the given number of virtual CPUs and runs main
// as the first thread on it, with arg passed through unchanged.
//
// In the original C design, cpu::init is called once per physical CPU,
// each call blocking that OS thread forever inside the scheduler; Go has
// no meaningful way to dedicate one OS thread per simulated CPU up
// front, so Init folds that into a single call: it boots every CPU's
// idle loop in the background and blocks the calling goroutine forever
// once main starts running, exactly like cpu::init never returning on
// the physical CPU that calls it. DESIGN.md records this as the
// resolution to spec.md's open question about how multi-CPU boot maps
// onto a single-process Go runtime.
//
// Init returns an error only if main is nil; the only way to observe
// Init's side effects after booting is from within main or one of its
// descendant threads — call Shutdown from there once the work it cares
// about has finished, typically right after joining every thread it
// created.
func Init(cpus int, main func(any), arg any) error {
	return InitWithTimerPeriod(cpus, vcpu.DefaultTimerPeriod, main, arg)
}

// InitWithTimerPeriod is Init with an explicit simulated timer period,
// for tests and demos that want to control how often CheckPoint observes
// a pending preemption without waiting on the default interval.
func InitWithTimerPeriod(cpus int, period time.Duration, main func(any), arg any) error {
	if main == nil {
		return &sched.InvalidArgumentError{Op: "Init"}
	}

	host := vcpu.NewHost(cpus, period)
	currentHost = host

	return sched.Boot(host, func(cpu *vcpu.CPU, arg any) {
		main(arg)
	}, arg)
}

// Shutdown stops the host's simulated timer. It does not stop CPUs
// mid-thread; callers are expected to have already joined every thread
// they care about before calling it. Mirrors the teacher's race.Fini:
// a single, explicit, best-effort teardown call, not a forced abort.
func Shutdown() {
	if currentHost == nil {
		return
	}
	currentHost.StopTimer()
}
