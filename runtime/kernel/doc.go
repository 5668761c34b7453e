// Package kernel implements the nucleus: the semaphore engine, process
// creation and destruction, trap and interrupt dispatch, and the round-robin
// scheduler.
//
// The kernel is a single context value owning the process pool, the ready
// queue, the active semaphore list and the device bank. Every entry point
// (Boot, Trap, Interrupt, Clock) runs to completion and ends by dispatching
// the head of the ready queue on the Machine, idling or halting it. Entry
// points must not be called concurrently; the Machine drives them from one
// goroutine the way hardware drives one CPU.
package kernel
