package kernel

import (
	"github.com/viant/nucleus/model/device"
	"github.com/viant/nucleus/model/state"
	"github.com/viant/nucleus/runtime/proc"
)

// complete performs the V of a device interrupt. A released waiter receives
// the completion in D2 (length) and D3 (status); otherwise it is kept for the
// next wait call.
func (k *Kernel) complete(id device.ID, completion Completion) {
	k.devices[id] = completion
	waiter := k.v(DeviceSemaphore(id))
	if waiter == proc.None {
		return
	}
	s := &k.pool.Get(waiter).State
	s.Return(completion.Length)
	s.D[state.D3] = completion.Status
}

// tick releases every pseudo-clock waiter and restarts the period
func (k *Kernel) tick(now int64) {
	for k.asl.Head(ClockSemaphore) != proc.None {
		k.v(ClockSemaphore)
	}
	k.pseudoStart = now
}

// preempt rotates h from the head to the tail of the ready queue
func (k *Kernel) preempt(h proc.Handle) {
	if k.pool.Head(&k.ready) != h {
		return
	}
	k.pool.Remove(&k.ready)
	k.pool.Insert(&k.ready, h)
	k.slice = proc.None
	k.current = proc.None
	k.progress.Update(progressPreempt)
	k.emit(EventPreempted, h, "pid %d: end of quantum", h)
}
