// Package trap defines the trap classes, system call numbers and trap causes
// understood by the nucleus.
package trap

import "fmt"

// Class identifies a trap kind a process may install a handler for.
type Class int

const (
	Program Class = iota
	Memory
	System
	// Classes is the number of trap classes.
	Classes
)

func (c Class) String() string {
	switch c {
	case Program:
		return "program"
	case Memory:
		return "memory"
	case System:
		return "system"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// Valid reports whether c names an installable trap class.
func (c Class) Valid() bool {
	return c >= Program && c < Classes
}

// System call numbers serviced directly by the nucleus. Calls above WaitIO are
// passed up to the handler installed by the calling process.
const (
	Create     = 1
	Kill       = 2
	SemOp      = 3
	NotUsed    = 4
	TrapVector = 5
	CPUTime    = 6
	WaitClock  = 7
	WaitIO     = 8
)

// Kernel reports whether call is serviced by the nucleus itself.
func Kernel(call int) bool {
	return call >= Create && call <= WaitIO
}

// Cause describes why a program or memory trap was raised.
type Cause int

const (
	CauseNone Cause = iota
	// Privileged is raised when a kernel system call is issued in user mode.
	Privileged
	// Address is raised on a reference outside memory or past program end.
	Address
	// Illegal is raised by an undecodable instruction.
	Illegal
	// Fault is raised explicitly by the running program.
	Fault
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case Privileged:
		return "privileged"
	case Address:
		return "address"
	case Illegal:
		return "illegal"
	case Fault:
		return "fault"
	}
	return fmt.Sprintf("cause(%d)", int(c))
}

// Vector is the (old state area, new state area) pair a process installs for a
// trap class. Both are memory addresses of state areas.
type Vector struct {
	Old int `json:"old" yaml:"old"`
	New int `json:"new" yaml:"new"`
}
