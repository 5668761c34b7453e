package proc

import (
	"fmt"

	"github.com/viant/nucleus/model/state"
	"github.com/viant/nucleus/model/trap"
)

// Links is the number of queues a process can be a member of at the same time.
const Links = 20

// Handle identifies a process table entry. The zero value is None.
type Handle int

// None is the null process handle
const None Handle = 0

func (h Handle) String() string {
	if h == None {
		return "none"
	}
	return fmt.Sprintf("pid %d", int(h))
}

// Link is one queue membership slot: the next process on the queue and the
// slot that next process uses for the same queue.
type Link struct {
	Next Handle
	Slot int
}

// Process represents a process table entry
type Process struct {
	State state.State
	// CPUTime is the processor time consumed in µs.
	CPUTime int64
	// LastStart is the time of the last dispatch in µs.
	LastStart int64
	Vectors   [trap.Classes]*trap.Vector
	Parent    Handle
	Children  []Handle

	links  [Links]Link
	queues int
	semvec []int
	free   bool
}

// Queues returns the number of queues containing this process
func (p *Process) Queues() int {
	return p.queues
}

// BlockedOn returns the semaphore addresses the process is waiting on
func (p *Process) BlockedOn() []int {
	return p.semvec
}

// Blocked reports whether the process waits on any semaphore
func (p *Process) Blocked() bool {
	return len(p.semvec) > 0
}

// AddBlocker records a semaphore address the process waits on
func (p *Process) AddBlocker(addr int) bool {
	if len(p.semvec) >= Links {
		return false
	}
	p.semvec = append(p.semvec, addr)
	return true
}

// RemoveBlocker drops addr from the block vector
func (p *Process) RemoveBlocker(addr int) bool {
	for i, candidate := range p.semvec {
		if candidate == addr {
			p.semvec = append(p.semvec[:i], p.semvec[i+1:]...)
			return true
		}
	}
	return false
}

// Vector returns the trap vector installed for class or nil
func (p *Process) Vector(class trap.Class) *trap.Vector {
	if !class.Valid() {
		return nil
	}
	return p.Vectors[class]
}

func (p *Process) freeSlot() int {
	for i := range p.links {
		if p.links[i].Next == None {
			return i
		}
	}
	return -1
}

func (p *Process) reset() {
	*p = Process{}
}

// OverflowError reports a process that is already on Links queues, raised with panic.
type OverflowError struct {
	Handle Handle
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v is on the maximum number of queues (%d)", e.Handle, Links)
}
