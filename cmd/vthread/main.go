// Package main implements the vthread CLI tool.
//
// vthread is a demonstration harness for the pure-Go user-level threading
// runtime in github.com/kolkov/vthread. It boots a simulated multi-CPU
// host and runs one of a handful of scripted scenarios against it,
// printing a trace line per significant scheduler event.
//
// Usage:
//
//	vthread demo <scenario>   # run one of the built-in scenarios
//	vthread version           # print the runtime version
//	vthread help              # print this message
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "demo":
		demoCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("vthread version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`vthread - user-level threading runtime demo tool

USAGE:
    vthread <command> [arguments]

COMMANDS:
    demo <scenario>   Run a scripted scheduler scenario
    version           Show version information
    help              Show this help message

SCENARIOS:
    pingpong          Two threads hand off a value via a mutex and cond
    broadcast         One signaler wakes every waiter on a cond at once
    mutex_fairness    Many threads contend for one mutex, hand-off order
    idle_wake         An idle CPU wakes to pick up newly created work
    join_exited       Join on a thread that has already exited
    preemption        A tight loop yields to a sibling via CheckPoint

EXAMPLES:
    vthread demo pingpong
    vthread demo preemption

`)
}

// demoCommand is implemented in demo.go.
