package vthread

import (
	"testing"
	"time"
)

// bootForTest boots a host with n CPUs running main, and returns a done
// channel so the test can wait for it. Init never returns, so it is
// always launched in its own goroutine; tests call Shutdown themselves
// once their done channel fires.
func bootForTest(t *testing.T, n int, main func(arg any)) {
	t.Helper()
	go func() {
		if err := InitWithTimerPeriod(n, time.Millisecond, main, nil); err != nil {
			t.Errorf("Init: %v", err)
		}
	}()
}

func TestNewAndJoin(t *testing.T) {
	done := make(chan string, 1)

	bootForTest(t, 2, func(arg any) {
		th, err := New(func(any) {
			done <- "ran"
		}, nil)
		if err != nil {
			t.Errorf("New: %v", err)
			return
		}
		th.Join()
		Shutdown()
		done <- "joined"
	})

	for _, want := range []string{"ran", "joined"} {
		select {
		case got := <-done:
			if got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestNewRejectsNilFunc(t *testing.T) {
	done := make(chan error, 1)

	bootForTest(t, 1, func(arg any) {
		_, err := New(nil, nil)
		done <- err
		Shutdown()
	})

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error creating a thread with a nil function")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}

func TestThreadDetachTransfersOwnership(t *testing.T) {
	done := make(chan bool, 1)

	bootForTest(t, 1, func(arg any) {
		th, _ := New(func(any) {}, nil)
		moved := th.Detach()
		if th.t != nil {
			done <- false
			return
		}
		th.Join() // null handle; must return immediately, not panic
		moved.Join()
		Shutdown()
		done <- true
	})

	select {
	case ok := <-done:
		if !ok {
			t.Fatal("Detach did not clear the original handle")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}

func TestMutexExcludesConcurrentAccess(t *testing.T) {
	const n = 10
	var mu Mutex
	counter := 0
	done := make(chan bool, 1)

	bootForTest(t, 4, func(arg any) {
		children := make([]*Thread, n)
		for i := 0; i < n; i++ {
			children[i], _ = New(func(any) {
				mu.Lock()
				counter++
				mu.Unlock()
			}, nil)
		}
		for _, c := range children {
			c.Join()
		}
		Shutdown()
		done <- counter == n
	})

	select {
	case ok := <-done:
		if !ok {
			t.Fatalf("counter = %d, want %d", counter, n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
}

func TestUnlockWithoutOwnershipReturnsError(t *testing.T) {
	done := make(chan error, 1)

	bootForTest(t, 1, func(arg any) {
		var mu Mutex
		done <- mu.Unlock()
		Shutdown()
	})

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an ownership violation error")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}

func TestCondBroadcastWakesAllWaiters(t *testing.T) {
	var mu Mutex
	c := NewCond()
	ready := false
	woke := make(chan int, 2)
	done := make(chan bool, 1)

	bootForTest(t, 2, func(arg any) {
		waiter := func(id int) func(any) {
			return func(any) {
				mu.Lock()
				for !ready {
					c.Wait(&mu)
				}
				mu.Unlock()
				woke <- id
			}
		}
		w1, _ := New(waiter(1), nil)
		w2, _ := New(waiter(2), nil)

		signaler, _ := New(func(any) {
			mu.Lock()
			ready = true
			c.Broadcast()
			mu.Unlock()
		}, nil)

		signaler.Join()
		w1.Join()
		w2.Join()
		Shutdown()
		done <- true
	})

	got := map[int]bool{}
	timeout := time.After(2 * time.Second)
	for i := 0; i < 2; i++ {
		select {
		case id := <-woke:
			got[id] = true
		case <-timeout:
			t.Fatalf("timed out, only saw %v", got)
		}
	}
	<-done
	if !got[1] || !got[2] {
		t.Fatalf("expected both waiters to wake, got %v", got)
	}
}

func TestYieldLetsOtherReadyThreadsRun(t *testing.T) {
	order := make(chan string, 2)
	done := make(chan bool, 1)

	bootForTest(t, 1, func(arg any) {
		second, _ := New(func(any) {
			order <- "second"
		}, nil)

		Yield()
		order <- "first-after-yield"
		second.Join()
		Shutdown()
		done <- true
	})

	first := <-order
	next := <-order
	<-done
	if first != "second" || next != "first-after-yield" {
		t.Fatalf("got order [%q, %q], want the newly created thread to run before the yielding one resumes", first, next)
	}
}

func TestGetInfoReportsBootedCPUCount(t *testing.T) {
	done := make(chan int, 1)

	bootForTest(t, 3, func(arg any) {
		done <- GetInfo().CPUs
		Shutdown()
	})

	select {
	case n := <-done:
		if n != 3 {
			t.Fatalf("GetInfo().CPUs = %d, want 3", n)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}
