package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/kolkov/vthread/vthread"
)

// demoCommand runs one of the named scenarios against a freshly booted
// host, printing a trace line per significant event and a final
// PASS/FAIL summary line.
func demoCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: 'demo' requires a scenario name")
		printUsage()
		os.Exit(1)
	}

	scenario, ok := scenarios[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n\n", args[0])
		printUsage()
		os.Exit(1)
	}

	if !scenario() {
		fmt.Println("FAIL")
		os.Exit(1)
	}
	fmt.Println("PASS")
}

var scenarios = map[string]func() bool{
	"pingpong":       pingpongDemo,
	"broadcast":      broadcastDemo,
	"mutex_fairness": mutexFairnessDemo,
	"idle_wake":      idleWakeDemo,
	"join_exited":    joinExitedDemo,
	"preemption":     preemptionDemo,
}

// tail returns the last 8 hex characters of a thread's UUID, short
// enough to keep trace lines readable.
func tail(th *vthread.Thread) string {
	s := th.ID().String()
	return s[len(s)-8:]
}

func pingpongDemo() bool {
	ok := atomic.Bool{}
	done := make(chan struct{})

	go vthread.Init(2, func(any) {
		var mu vthread.Mutex
		turn := vthread.NewCond()
		side := 0
		var ping, pong *vthread.Thread

		ping, _ = vthread.New(func(any) {
			mu.Lock()
			for side != 0 {
				turn.Wait(&mu)
			}
			fmt.Printf("[%s] ping\n", tail(ping))
			side = 1
			turn.Signal()
			mu.Unlock()
		}, nil)

		pong, _ = vthread.New(func(any) {
			mu.Lock()
			for side != 1 {
				turn.Wait(&mu)
			}
			fmt.Printf("[%s] pong\n", tail(pong))
			side = 2
			turn.Signal()
			mu.Unlock()
		}, nil)

		ping.Join()
		pong.Join()
		ok.Store(side == 2)
		vthread.Shutdown()
		close(done)
	}, nil)

	<-done
	return ok.Load()
}

func broadcastDemo() bool {
	const n = 4
	ok := atomic.Bool{}
	done := make(chan struct{})

	go vthread.Init(2, func(any) {
		var mu vthread.Mutex
		cond := vthread.NewCond()
		ready := false
		woke := make(chan int, n)

		waiters := make([]*vthread.Thread, n)
		for i := 0; i < n; i++ {
			id := i
			waiters[i], _ = vthread.New(func(any) {
				mu.Lock()
				for !ready {
					cond.Wait(&mu)
				}
				mu.Unlock()
				fmt.Printf("waiter %d woke\n", id)
				woke <- id
			}, nil)
		}

		signaler, _ := vthread.New(func(any) {
			mu.Lock()
			ready = true
			cond.Broadcast()
			mu.Unlock()
		}, nil)

		signaler.Join()
		for _, w := range waiters {
			w.Join()
		}
		close(woke)

		count := 0
		for range woke {
			count++
		}
		ok.Store(count == n)
		vthread.Shutdown()
		close(done)
	}, nil)

	<-done
	return ok.Load()
}

func mutexFairnessDemo() bool {
	const n = 8
	ok := atomic.Bool{}
	done := make(chan struct{})

	go vthread.Init(4, func(any) {
		var mu vthread.Mutex
		counter := 0
		threads := make([]*vthread.Thread, n)
		for i := 0; i < n; i++ {
			threads[i], _ = vthread.New(func(any) {
				mu.Lock()
				counter++
				fmt.Printf("acquired, counter=%d\n", counter)
				mu.Unlock()
			}, nil)
		}
		for _, th := range threads {
			th.Join()
		}
		ok.Store(counter == n)
		vthread.Shutdown()
		close(done)
	}, nil)

	<-done
	return ok.Load()
}

func idleWakeDemo() bool {
	ok := atomic.Bool{}
	done := make(chan struct{})

	go vthread.Init(4, func(any) {
		ran := make(chan struct{})
		th, _ := vthread.New(func(any) {
			fmt.Println("work picked up by a previously idle CPU")
			close(ran)
		}, nil)
		th.Join()
		select {
		case <-ran:
			ok.Store(true)
		default:
		}
		vthread.Shutdown()
		close(done)
	}, nil)

	<-done
	return ok.Load()
}

func joinExitedDemo() bool {
	ok := atomic.Bool{}
	done := make(chan struct{})

	go vthread.Init(1, func(any) {
		th, _ := vthread.New(func(any) {
			fmt.Println("short-lived thread exiting")
		}, nil)
		th.Join()
		fmt.Println("first join returned")
		th.Join()
		fmt.Println("second join on an already-exited thread also returned")
		ok.Store(true)
		vthread.Shutdown()
		close(done)
	}, nil)

	<-done
	return ok.Load()
}

func preemptionDemo() bool {
	ok := atomic.Bool{}
	done := make(chan struct{})

	go vthread.Init(1, func(any) {
		order := make(chan string, 2)

		spinner, _ := vthread.New(func(any) {
			for i := 0; i < 1000; i++ {
				vthread.CheckPoint()
			}
			order <- "spinner"
		}, nil)

		sibling, _ := vthread.New(func(any) {
			order <- "sibling"
		}, nil)

		spinner.Join()
		sibling.Join()
		close(order)

		got := map[string]bool{}
		for s := range order {
			fmt.Printf("finished: %s\n", s)
			got[s] = true
		}
		ok.Store(got["spinner"] && got["sibling"])
		vthread.Shutdown()
		close(done)
	}, nil)

	<-done
	return ok.Load()
}
