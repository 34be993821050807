package sched

import (
	"testing"
	"time"

	"github.com/kolkov/vthread/internal/vcpu"
)

// bootForTest starts a fresh scheduler with n CPUs running mainFn as the
// boot thread, and returns the Host so the test can stop its timer when
// done. Boot itself never returns on the success path (mctx.SetContext
// never does), so it is always launched in its own goroutine.
func bootForTest(t *testing.T, n int, mainFn UserFunc) *vcpu.Host {
	t.Helper()
	ResetForTest()
	host := vcpu.NewHost(n, time.Millisecond)
	go func() {
		if err := Boot(host, mainFn, nil); err != nil {
			t.Errorf("Boot: %v", err)
		}
	}()
	return host
}

func TestCreateAndJoinRunsChildToCompletion(t *testing.T) {
	done := make(chan string, 1)

	host := bootForTest(t, 2, func(cpu *vcpu.CPU, arg any) {
		child, err := Create(cpu, func(cpu *vcpu.CPU, arg any) {
			done <- "child ran"
		}, nil)
		if err != nil {
			t.Errorf("Create: %v", err)
			return
		}
		Join(cpu, child)
		done <- "joined"
	})
	defer host.StopTimer()

	want := []string{"child ran", "joined"}
	for _, w := range want {
		select {
		case got := <-done:
			if got != w {
				t.Fatalf("got %q, want %q", got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", w)
		}
	}
}

func TestCreateRejectsNilFunc(t *testing.T) {
	ResetForTest()
	host := vcpu.NewHost(1, time.Hour)
	defer host.StopTimer()
	currentThread = make([]*Thread, 1)
	idleThreads = make([]*Thread, 1)

	_, err := Create(host.CPUs()[0], nil, nil)
	if err == nil {
		t.Fatal("expected an error creating a thread with a nil function")
	}
	if _, ok := err.(*InvalidArgumentError); !ok {
		t.Fatalf("got %T, want *InvalidArgumentError", err)
	}
}

func TestMutexExcludesConcurrentAccess(t *testing.T) {
	const n = 20
	var m Mutex
	counter := 0
	results := make(chan int, n)

	host := bootForTest(t, 4, func(cpu0 *vcpu.CPU, arg any) {
		children := make([]*Thread, n)
		for i := 0; i < n; i++ {
			children[i], _ = Create(cpu0, func(cpu *vcpu.CPU, arg any) {
				Lock(cpu, &m)
				counter++
				local := counter
				Unlock(SelfCPU(), &m)
				results <- local
			}, nil)
		}
		for _, c := range children {
			Join(SelfCPU(), c)
		}
		close(results)
	})
	defer host.StopTimer()

	seen := make(map[int]bool)
	count := 0
	timeout := time.After(2 * time.Second)
	for count < n {
		select {
		case v, ok := <-results:
			if !ok {
				t.Fatalf("results closed early, got %d of %d", count, n)
			}
			if seen[v] {
				t.Fatalf("value %d observed twice: mutex did not exclude concurrent increments", v)
			}
			seen[v] = true
			count++
		case <-timeout:
			t.Fatalf("timed out after %d of %d results", count, n)
		}
	}
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
}

func TestCondBroadcastWakesAllWaiters(t *testing.T) {
	var m Mutex
	var c Cond
	ready := false
	woke := make(chan int, 2)

	host := bootForTest(t, 2, func(cpu0 *vcpu.CPU, arg any) {
		waiter := func(id int) UserFunc {
			return func(cpu *vcpu.CPU, arg any) {
				Lock(cpu, &m)
				for !ready {
					Wait(SelfCPU(), &c, &m)
				}
				Unlock(SelfCPU(), &m)
				woke <- id
			}
		}
		w1, _ := Create(cpu0, waiter(1), nil)
		w2, _ := Create(cpu0, waiter(2), nil)

		signaler, _ := Create(cpu0, func(cpu *vcpu.CPU, arg any) {
			Lock(cpu, &m)
			ready = true
			Broadcast(SelfCPU(), &c)
			Unlock(SelfCPU(), &m)
		}, nil)

		Join(cpu0, signaler)
		Join(SelfCPU(), w1)
		Join(SelfCPU(), w2)
		close(woke)
	})
	defer host.StopTimer()

	got := map[int]bool{}
	timeout := time.After(2 * time.Second)
	for i := 0; i < 2; i++ {
		select {
		case id, ok := <-woke:
			if !ok {
				t.Fatalf("woke closed early after %d wakes", i)
			}
			got[id] = true
		case <-timeout:
			t.Fatalf("timed out waiting for waiters to wake, got %v", got)
		}
	}
	if !got[1] || !got[2] {
		t.Fatalf("expected both waiters to wake, got %v", got)
	}
}

func TestCondWaitWithoutHoldingMutexReturnsOwnershipViolation(t *testing.T) {
	var m Mutex
	var c Cond
	result := make(chan error, 1)

	host := bootForTest(t, 1, func(cpu *vcpu.CPU, arg any) {
		result <- Wait(cpu, &c, &m)
	})
	defer host.StopTimer()

	select {
	case err := <-result:
		if _, ok := err.(*OwnershipViolationError); !ok {
			t.Fatalf("Wait returned %v (%T), want *OwnershipViolationError", err, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Wait to return")
	}
}

func TestYieldReturnsControlToOtherReadyThreads(t *testing.T) {
	order := make(chan string, 2)

	host := bootForTest(t, 1, func(cpu0 *vcpu.CPU, arg any) {
		second, _ := Create(cpu0, func(cpu *vcpu.CPU, arg any) {
			order <- "second"
		}, nil)

		Yield(cpu0)
		order <- "first-after-yield"
		Join(cpu0, second)
		close(order)
	})
	defer host.StopTimer()

	first := <-order
	second := <-order
	if first != "second" || second != "first-after-yield" {
		t.Fatalf("got order [%q, %q], want the newly created thread to run before the yielding one resumes", first, second)
	}
}
