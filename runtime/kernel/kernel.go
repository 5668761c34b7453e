package kernel

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/viant/nucleus/model/device"
	"github.com/viant/nucleus/model/state"
	"github.com/viant/nucleus/model/trap"
	"github.com/viant/nucleus/progress"
	"github.com/viant/nucleus/runtime/asl"
	"github.com/viant/nucleus/runtime/memory"
	"github.com/viant/nucleus/runtime/proc"
	"github.com/viant/nucleus/tracing"
)

// Reserved memory layout: the pseudo-clock semaphore, one semaphore per
// device, nothing else below Reserved is addressable by semop.
const (
	ClockSemaphore = 0
	Reserved       = 32
)

// DeviceSemaphore returns the address of the device semaphore
func DeviceSemaphore(id device.ID) int {
	return 1 + int(id)
}

// Status represents the machine run status
type Status string

const (
	Running  Status = "running"
	Normal   Status = "normal"
	Deadlock Status = "deadlock"
	Panic    Status = "panic"
)

// Machine is the processor the kernel runs on
type Machine interface {
	// Now returns the time in µs
	Now() int64
	// SetTimer arms the interval timer to raise Clock after d µs
	SetTimer(d int64)
	// Load resumes execution with the supplied state
	Load(s *state.State)
	// Idle waits for the next interrupt
	Idle()
	// Halt stops the processor
	Halt(status Status)
}

// Completion is the last device completion not yet consumed by a wait call
type Completion struct {
	Status int `json:"status"`
	Length int `json:"length"`
}

// Kernel represents the nucleus context
type Kernel struct {
	config      Config
	machine     Machine
	memory      *memory.Memory
	pool        *proc.Pool
	asl         *asl.List
	ready       proc.Queue
	current     proc.Handle
	slice       proc.Handle
	sliceStart  int64
	pseudoStart int64
	devices     [device.Count]Completion
	booted      bool
	status      Status
	message     string
	logger      *log.Logger
	listeners   []Listener
	progress    *progress.Progress
}

// Boot creates the first process from initial and dispatches it
func (k *Kernel) Boot(initial *state.State) (err error) {
	if k.booted {
		return ErrBooted
	}
	k.booted = true
	defer k.recoverPanic()
	_, span := tracing.StartSpan(context.Background(), "kernel.Boot", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	k.pseudoStart = k.machine.Now()
	if _, err = k.create(proc.None, initial); err != nil {
		return fmt.Errorf("failed to create initial process: %w", err)
	}
	k.schedule()
	return nil
}

// Trap handles a program, memory or system call trap raised by the running process
func (k *Kernel) Trap(class trap.Class, old *state.State) {
	defer k.recoverPanic()
	defer k.enter("kernel.Trap " + class.String())()
	k.progress.Update(progress.Delta{Traps: 1})
	if h := k.save(old); h != proc.None {
		switch class {
		case trap.System:
			k.syscall(h)
		default:
			k.passUp(h, class)
		}
	}
	k.schedule()
}

// Interrupt handles a device completion. old is nil when the processor was idle.
func (k *Kernel) Interrupt(id device.ID, status, length int, old *state.State) {
	defer k.recoverPanic()
	defer k.enter("kernel.Interrupt " + id.String())()
	k.progress.Update(progress.Delta{Interrupts: 1})
	k.save(old)
	if id.Valid() {
		k.complete(id, Completion{Status: status, Length: length})
	} else {
		k.logger.Printf("spurious interrupt from %v", id)
	}
	k.schedule()
}

// Clock handles the interval timer. old is nil when the processor was idle.
func (k *Kernel) Clock(old *state.State) {
	defer k.recoverPanic()
	defer k.enter("kernel.Clock")()
	k.progress.Update(progress.Delta{Interrupts: 1})
	h := k.save(old)
	now := k.machine.Now()
	if h != proc.None && now-k.sliceStart >= k.config.Quantum {
		k.preempt(h)
	}
	if now-k.pseudoStart >= k.config.PseudoClock {
		k.tick(now)
	}
	k.schedule()
}

// Status returns the halt status and message
func (k *Kernel) Status() (Status, string) {
	return k.status, k.message
}

// Current returns the process loaded on the processor
func (k *Kernel) Current() proc.Handle {
	return k.current
}

// Ready returns the ready queue from head to tail
func (k *Kernel) Ready() []proc.Handle {
	return k.pool.Members(&k.ready)
}

// Process returns the process record for h
func (k *Kernel) Process(h proc.Handle) *proc.Process {
	return k.pool.Get(h)
}

// Pool returns the process pool
func (k *Kernel) Pool() *proc.Pool {
	return k.pool
}

// ASL returns the active semaphore list
func (k *Kernel) ASL() *asl.List {
	return k.asl
}

// Memory returns kernel memory
func (k *Kernel) Memory() *memory.Memory {
	return k.memory
}

// Pending returns the cached completion of a device
func (k *Kernel) Pending(id device.ID) (Completion, bool) {
	if !id.Valid() {
		return Completion{}, false
	}
	value, _ := k.memory.Load(DeviceSemaphore(id))
	return k.devices[id], value > 0
}

// save stores the interrupted state into the current process and accounts its processor time
func (k *Kernel) save(old *state.State) proc.Handle {
	process := k.pool.Get(k.current)
	if process == nil || old == nil {
		return proc.None
	}
	process.State = *old
	now := k.machine.Now()
	process.CPUTime += now - process.LastStart
	process.LastStart = now
	return k.current
}

func (k *Kernel) enter(name string) func() {
	_, span := tracing.StartSpan(context.Background(), name, "INTERNAL")
	span.WithAttributes(map[string]string{"pid": strconv.Itoa(int(k.current))})
	return func() {
		tracing.EndSpan(span, nil)
	}
}

func (k *Kernel) recoverPanic() {
	if r := recover(); r != nil {
		k.halt(Panic, fmt.Sprintf("panic: %v", r))
	}
}

// New creates a kernel over the supplied machine and memory
func New(machine Machine, mem *memory.Memory, config Config, opts ...Option) (*Kernel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if mem.Size() < Reserved {
		return nil, fmt.Errorf("%w: %d < %d", ErrMemory, mem.Size(), Reserved)
	}
	pool := proc.NewPool(config.MaxProc)
	ret := &Kernel{
		config:  config,
		machine: machine,
		memory:  mem,
		pool:    pool,
		asl:     asl.New(pool, config.Descriptors),
		status:  Running,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = log.Default()
	}
	return ret, nil
}
