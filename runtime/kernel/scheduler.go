package kernel

import (
	"github.com/viant/nucleus/model/device"
	"github.com/viant/nucleus/progress"
	"github.com/viant/nucleus/runtime/proc"
)

var (
	progressPreempt  = progress.Delta{Preemptions: 1}
	progressDispatch = progress.Delta{Dispatches: 1}
)

// schedule loads the head of the ready queue. With an empty ready queue it
// idles while a pseudo-clock or device waiter exists, otherwise it halts:
// normally when no process is blocked, on deadlock when some still are.
func (k *Kernel) schedule() {
	if k.status != Running {
		return
	}
	now := k.machine.Now()
	if h := k.pool.Head(&k.ready); h != proc.None {
		process := k.pool.Get(h)
		if h != k.slice {
			k.slice = h
			k.sliceStart = now
			k.progress.Update(progressDispatch)
			k.emit(EventDispatched, h, "pid %d: ready -> running", h)
		}
		k.current = h
		process.LastStart = now
		k.machine.SetTimer(k.nextTimer(now))
		k.machine.Load(process.State.Clone())
		return
	}
	k.current = proc.None
	k.slice = proc.None
	switch {
	case k.asl.Head(ClockSemaphore) != proc.None:
		k.machine.SetTimer(k.pseudoRemaining(now))
		k.machine.Idle()
	case k.deviceWaiters():
		k.machine.Idle()
	case !k.asl.Active():
		k.halt(Normal, "halt: end of program")
	default:
		k.halt(Deadlock, "halt: deadlock")
	}
}

// nextTimer returns the earlier of the quantum end and the pseudo-clock tick
func (k *Kernel) nextTimer(now int64) int64 {
	remaining := k.config.Quantum - (now - k.sliceStart)
	if pseudo := k.pseudoRemaining(now); pseudo < remaining {
		remaining = pseudo
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (k *Kernel) pseudoRemaining(now int64) int64 {
	remaining := k.config.PseudoClock - (now - k.pseudoStart)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (k *Kernel) deviceWaiters() bool {
	for id := device.ID(0); id < device.Count; id++ {
		if k.asl.Head(DeviceSemaphore(id)) != proc.None {
			return true
		}
	}
	return false
}

func (k *Kernel) halt(status Status, message string) {
	if k.status != Running {
		return
	}
	k.status = status
	k.message = message
	k.current = proc.None
	k.emit(EventHalted, proc.None, "%s", message)
	k.machine.Halt(status)
}
