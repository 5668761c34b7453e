package state

import "github.com/viant/nucleus/model/trap"

// Registers is the number of data registers.
const Registers = 8

// Register indexes used by the system call protocol.
const (
	D0 = iota
	D1
	D2
	D3
	D4
	D5
	D6
	D7
)

// Status holds the processor mode flags.
type Status struct {
	Supervisor bool `json:"supervisor" yaml:"supervisor"`
	Interrupts bool `json:"interrupts" yaml:"interrupts"`
	Mapped     bool `json:"mapped,omitempty" yaml:"mapped,omitempty"`
}

// State represents a saved processor state
type State struct {
	D           [Registers]int `json:"d" yaml:"d"`
	PC          int            `json:"pc" yaml:"pc"`
	SP          int            `json:"sp,omitempty" yaml:"sp,omitempty"`
	Status      Status         `json:"status" yaml:"status"`
	RootPointer int            `json:"rootPointer,omitempty" yaml:"rootPointer,omitempty"`
	// Text names the program the PC indexes into.
	Text string `json:"text" yaml:"text"`
	// Remaining is the unfinished part of an interrupted work instruction.
	Remaining int64 `json:"remaining,omitempty" yaml:"remaining,omitempty"`
	// SysNo and Cause are filled in by the hardware on trap entry.
	SysNo int        `json:"sysNo,omitempty" yaml:"sysNo,omitempty"`
	Cause trap.Cause `json:"cause,omitempty" yaml:"cause,omitempty"`
}

// Clone returns a copy of the state
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	ret := *s
	return &ret
}

// Reset zeroes the state
func (s *State) Reset() {
	*s = State{}
}

// Return sets the D2 result register
func (s *State) Return(value int) {
	s.D[D2] = value
}
