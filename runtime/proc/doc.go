// Package proc implements the process table and the multi-queue ring.
//
// Process records live in a fixed arena addressed by Handle. Every record
// carries Links link slots, so one process can sit on several queues at once
// (the ready queue, semaphore queues, the free pool). A Queue is only a view:
// the tail handle plus the slot the tail uses for that queue. The tail's slot
// points back at the head, which gives O(1) head, enqueue and dequeue without
// a sentinel node.
package proc
