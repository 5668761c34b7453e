package kernel

import (
	"fmt"

	"github.com/viant/nucleus/model/device"
	"github.com/viant/nucleus/model/state"
	"github.com/viant/nucleus/model/trap"
	"github.com/viant/nucleus/progress"
	"github.com/viant/nucleus/runtime/proc"
)

// syscall services the system call trap of h. Calls 1..8 are kernel calls and
// require supervisor mode, anything else is passed up.
func (k *Kernel) syscall(h proc.Handle) {
	process := k.pool.Get(h)
	s := &process.State
	call := s.SysNo
	if !trap.Kernel(call) {
		k.passUp(h, trap.System)
		return
	}
	if !s.Status.Supervisor {
		s.Cause = trap.Privileged
		k.passUp(h, trap.Program)
		return
	}
	var err error
	switch call {
	case trap.Create:
		err = k.sysCreate(h, s)
	case trap.Kill:
		k.terminate(h, "terminate call")
	case trap.SemOp:
		var ops []Op
		if ops, err = k.readOps(s.D[state.D3], s.D[state.D4]); err == nil {
			err = k.semop(h, ops)
		}
	case trap.NotUsed:
	case trap.TrapVector:
		err = k.sysTrapVector(process, s)
	case trap.CPUTime:
		s.Return(int(process.CPUTime))
	case trap.WaitClock:
		if !k.p(h, ClockSemaphore) {
			s.Return(-1)
		}
	case trap.WaitIO:
		err = k.sysWaitIO(h, s)
	}
	if err != nil {
		k.terminate(h, err.Error())
	}
}

func (k *Kernel) sysCreate(parent proc.Handle, s *state.State) error {
	initial, err := k.memory.LoadState(s.D[state.D4])
	if err != nil {
		return fmt.Errorf("%w: create: %v", ErrProtocol, err)
	}
	if _, err = k.create(parent, initial); err != nil {
		k.logger.Printf("pid %d: create failed: %v", parent, err)
		s.Return(-1)
		return nil
	}
	s.Return(0)
	return nil
}

func (k *Kernel) sysTrapVector(process *proc.Process, s *state.State) error {
	class := trap.Class(s.D[state.D2])
	if !class.Valid() {
		return fmt.Errorf("%w: trap class %d", ErrProtocol, int(class))
	}
	if process.Vectors[class] != nil {
		return fmt.Errorf("%w: %v", ErrVectorInstalled, class)
	}
	vector := &trap.Vector{Old: s.D[state.D3], New: s.D[state.D4]}
	if !k.memory.Valid(vector.Old) || !k.memory.Valid(vector.New) {
		return fmt.Errorf("%w: %v vector areas %d/%d", ErrProtocol, class, vector.Old, vector.New)
	}
	process.Vectors[class] = vector
	return nil
}

// sysWaitIO consumes a cached completion or blocks h on the device semaphore
func (k *Kernel) sysWaitIO(h proc.Handle, s *state.State) error {
	id := device.ID(s.D[state.D4])
	if !id.Valid() {
		return fmt.Errorf("%w: device %d", ErrProtocol, int(id))
	}
	addr := DeviceSemaphore(id)
	if value, _ := k.memory.Load(addr); value > 0 {
		_, _ = k.memory.Add(addr, -1) // address validated
		s.Return(k.devices[id].Length)
		s.D[state.D3] = k.devices[id].Status
		return nil
	}
	if !k.p(h, addr) {
		s.Return(-1)
	}
	return nil
}

// passUp loads the handler h installed for class, saving the interrupted state
// into its old area; without a handler h is destroyed.
func (k *Kernel) passUp(h proc.Handle, class trap.Class) {
	process := k.pool.Get(h)
	vector := process.Vector(class)
	if vector == nil {
		reason := fmt.Sprintf("unhandled %v trap", class)
		if process.State.Cause != trap.CauseNone {
			reason += " (" + process.State.Cause.String() + ")"
		}
		k.terminate(h, reason)
		return
	}
	if err := k.memory.SaveState(vector.Old, &process.State); err != nil {
		k.terminate(h, err.Error())
		return
	}
	handler, err := k.memory.LoadState(vector.New)
	if err != nil {
		k.terminate(h, err.Error())
		return
	}
	process.State = *handler
	k.progress.Update(progress.Delta{PassUps: 1})
	k.emit(EventPassUp, h, "pid %d: %v trap passed up", h, class)
}
