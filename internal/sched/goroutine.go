package sched

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/kolkov/vthread/internal/vcpu"
)

// goroutineID extracts the calling goroutine's numeric ID by parsing the
// header line of its own stack trace ("goroutine 7 [running]:"). There is
// no supported runtime API for this; parsing runtime.Stack's own output
// is the portable idiom, in contrast to reading the scheduler's internal
// g struct by computed field offset, the way the teacher's
// tools/calc_goid_offset.go does it for its own instrumentation, which
// breaks across Go versions whenever the struct layout shifts.
func goroutineID() uint64 {
	var buf [128]byte
	n := runtime.Stack(buf[:], false)
	field := strings.Fields(string(buf[:n]))[1]
	id, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		panic("sched: could not parse goroutine id from stack header: " + err.Error())
	}
	return id
}

// goroutineThread maps a goroutine ID to the Thread whose entire
// lifetime runs on that goroutine. Entries are written once, by
// entryTrampoline, the first and only time a thread's goroutine starts;
// every later resume of that thread executes on the very same goroutine
// (mctx never migrates a Context to a different one), so the mapping
// never needs updating after that.
//
// This is this package's stand-in for thread-local storage: the public
// vthread package's Lock/Wait/Yield/Join take no explicit CPU argument,
// so they need some way to recover "which thread, and therefore which
// CPU, is calling me" from inside an ordinary method call.
var goroutineThread = map[uint64]*Thread{}

// Self returns the Thread whose body is currently executing on the
// calling goroutine, or nil if the caller is not running inside a thread
// started by this scheduler (for example, the goroutine that called
// Boot itself, before the switch into main's context).
func Self() *Thread {
	return goroutineThread[goroutineID()]
}

// SelfCPU returns the CPU presently running the calling thread, looked
// up through threadOwner so it is always current even if this thread has
// been rescheduled onto a different CPU since it was created.
func SelfCPU() *vcpu.CPU {
	t := Self()
	if t == nil {
		return nil
	}
	return threadOwner[t]
}
