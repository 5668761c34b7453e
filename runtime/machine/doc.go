// Package machine simulates the single processor the nucleus runs on: a CPU
// executing assembled programs in simulated microseconds, an interval timer
// and a bank of devices completing operations after a latency.
//
// Run drives the kernel entry points from one goroutine. Traps, clock and
// device interrupts hand the interrupted state to the kernel, which answers
// with Load, Idle or Halt before the next instruction executes.
package machine
