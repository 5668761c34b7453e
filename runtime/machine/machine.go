package machine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/viant/nucleus/model/device"
	"github.com/viant/nucleus/model/state"
	"github.com/viant/nucleus/model/trap"
	"github.com/viant/nucleus/runtime/asm"
	"github.com/viant/nucleus/runtime/kernel"
	"github.com/viant/nucleus/runtime/memory"
)

var (
	// ErrNoPendingInterrupt reports an idle processor with nothing left to wake it
	ErrNoPendingInterrupt = errors.New("idle with no pending interrupt")
	// ErrTimeLimit reports a run exceeding the configured simulated time
	ErrTimeLimit = errors.New("time limit exceeded")
	// ErrNotAttached reports a machine without a kernel
	ErrNotAttached = errors.New("kernel not attached")
)

const disarmed = -1

// Kernel is the set of entry points the hardware invokes
type Kernel interface {
	Boot(initial *state.State) error
	Trap(class trap.Class, old *state.State)
	Interrupt(id device.ID, status, length int, old *state.State)
	Clock(old *state.State)
}

// Device represents device behaviour: each operation completes after Latency µs with Status and Length
type Device struct {
	Latency int64 `json:"latency,omitempty" yaml:"latency,omitempty"`
	Status  int   `json:"status,omitempty" yaml:"status,omitempty"`
	Length  int   `json:"length,omitempty" yaml:"length,omitempty"`
}

type completion struct {
	at     int64
	id     device.ID
	status int
	length int
}

// Machine represents the simulated processor
type Machine struct {
	kernel          Kernel
	memory          *memory.Memory
	programs        map[string]*asm.Program
	devices         [device.Count]Device
	deviceLatency   int64
	instructionTime int64
	timeLimit       int64

	now       int64
	timer     int64
	cpu       *state.State
	halted    bool
	status    kernel.Status
	completes []completion
	busyUntil [device.Count]int64
}

// Attach sets the kernel driven by the machine
func (m *Machine) Attach(k Kernel) {
	m.kernel = k
}

// Now returns the simulated time in µs
func (m *Machine) Now() int64 {
	return m.now
}

// SetTimer arms the interval timer
func (m *Machine) SetTimer(d int64) {
	if d < 0 {
		d = 0
	}
	m.timer = m.now + d
}

// Load resumes execution with s
func (m *Machine) Load(s *state.State) {
	m.cpu = s
}

// Idle stops fetching until the next interrupt
func (m *Machine) Idle() {
	m.cpu = nil
}

// Halt stops the processor
func (m *Machine) Halt(status kernel.Status) {
	m.cpu = nil
	m.halted = true
	m.status = status
}

// Halted returns the halt status
func (m *Machine) Halted() (kernel.Status, bool) {
	return m.status, m.halted
}

// Run boots the kernel with initial and executes until the kernel halts the machine
func (m *Machine) Run(ctx context.Context, initial *state.State) error {
	if m.kernel == nil {
		return ErrNotAttached
	}
	if err := m.kernel.Boot(initial); err != nil {
		return err
	}
	for !m.halted {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.timeLimit > 0 && m.now > m.timeLimit {
			return fmt.Errorf("%w: %dµs", ErrTimeLimit, m.timeLimit)
		}
		if m.cpu == nil {
			at, ok := m.nextEvent()
			if !ok {
				return fmt.Errorf("%w at %dµs", ErrNoPendingInterrupt, m.now)
			}
			if at > m.now {
				m.now = at
			}
			m.deliver()
			continue
		}
		if at, ok := m.nextEvent(); ok && at <= m.now {
			m.deliver()
			continue
		}
		m.step()
	}
	return nil
}

// nextEvent returns the time of the earliest armed timer or device completion
func (m *Machine) nextEvent() (int64, bool) {
	at, ok := m.timer, m.timer != disarmed
	if len(m.completes) > 0 && (!ok || m.completes[0].at < at) {
		at, ok = m.completes[0].at, true
	}
	return at, ok
}

// deliver raises the earliest event, the timer wins ties
func (m *Machine) deliver() {
	old := m.cpu
	m.cpu = nil
	if m.timer != disarmed && (len(m.completes) == 0 || m.timer <= m.completes[0].at) {
		m.timer = disarmed
		m.kernel.Clock(old)
		return
	}
	next := m.completes[0]
	m.completes = m.completes[1:]
	m.kernel.Interrupt(next.id, next.status, next.length, old)
}

func (m *Machine) raise(class trap.Class, cause trap.Cause) {
	old := m.cpu
	old.Cause = cause
	m.cpu = nil
	m.kernel.Trap(class, old)
}

// step executes one instruction of the loaded state
func (m *Machine) step() {
	s := m.cpu
	program, ok := m.programs[s.Text]
	if !ok {
		m.raise(trap.Program, trap.Address)
		return
	}
	instruction, ok := program.At(s.PC)
	if !ok {
		m.raise(trap.Program, trap.Address)
		return
	}
	if instruction.Op == asm.Work {
		m.work(s, int64(instruction.Value))
		return
	}
	m.now += m.instructionTime
	switch instruction.Op {
	case asm.Set:
		s.D[instruction.Reg] = instruction.Value
		s.PC++
	case asm.Add:
		s.D[instruction.Reg] += instruction.Value
		s.PC++
	case asm.Jmp:
		s.PC = instruction.Target
	case asm.Jnz:
		if s.D[instruction.Reg] != 0 {
			s.PC = instruction.Target
		} else {
			s.PC++
		}
	case asm.IO:
		s.PC++
		m.start(instruction.Device)
	case asm.Sys:
		s.PC++
		s.SysNo = instruction.Value
		m.raise(trap.System, trap.CauseNone)
	case asm.Fault:
		s.PC++
		m.raise(instruction.Class, trap.Fault)
	case asm.Ldst:
		if !s.Status.Supervisor {
			m.raise(trap.Program, trap.Privileged)
			return
		}
		loaded, err := m.memory.LoadState(instruction.Value)
		if err != nil {
			m.raise(trap.Program, trap.Address)
			return
		}
		m.cpu = loaded
	default:
		m.raise(trap.Program, trap.Illegal)
	}
}

// work computes for the remaining part of a work instruction, stopping at the next event
func (m *Machine) work(s *state.State, amount int64) {
	if s.Remaining <= 0 {
		s.Remaining = amount
	}
	deadline := m.now + s.Remaining
	if at, ok := m.nextEvent(); ok && at < deadline {
		s.Remaining -= at - m.now
		m.now = at
		return
	}
	m.now = deadline
	s.Remaining = 0
	s.PC++
}

// start queues a completion of the device after its latency, operations on one device are serialized
func (m *Machine) start(id device.ID) {
	behavior := m.devices[id]
	latency := behavior.Latency
	if latency <= 0 {
		latency = m.deviceLatency
	}
	begin := m.now
	if m.busyUntil[id] > begin {
		begin = m.busyUntil[id]
	}
	event := completion{at: begin + latency, id: id, status: behavior.Status, length: behavior.Length}
	m.busyUntil[id] = event.at
	index := sort.Search(len(m.completes), func(i int) bool { return m.completes[i].at > event.at })
	m.completes = append(m.completes, completion{})
	copy(m.completes[index+1:], m.completes[index:])
	m.completes[index] = event
}

// New creates a machine over mem running programs
func New(mem *memory.Memory, programs map[string]*asm.Program, opts ...Option) *Machine {
	ret := &Machine{
		memory:          mem,
		programs:        programs,
		deviceLatency:   1000,
		instructionTime: 1,
		timer:           disarmed,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
