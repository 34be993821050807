package vthread

import "github.com/kolkov/vthread/internal/sched"

// Mutex is a non-reentrant mutual exclusion lock. The zero value is an
// unlocked mutex, ready to use.
type Mutex struct {
	m sched.Mutex
}

// Lock blocks the calling thread until the mutex is available, then
// acquires it.
func (mu *Mutex) Lock() {
	sched.Lock(sched.SelfCPU(), &mu.m)
}

// Unlock releases the mutex. It returns an error if the calling thread
// does not currently hold it.
func (mu *Mutex) Unlock() error {
	return sched.Unlock(sched.SelfCPU(), &mu.m)
}
