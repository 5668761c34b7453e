// Package memory provides the word addressed physical memory shared by the
// nucleus and processes: semaphore words and processor state areas.
package memory

import (
	"errors"
	"fmt"

	"github.com/viant/nucleus/model/state"
)

// ErrAddress reports a reference outside of memory
var ErrAddress = errors.New("address out of range")

// Memory represents word memory. State areas are kept aside from words and
// allocated on first use.
type Memory struct {
	words []int
	areas map[int]*state.State
}

// Size returns the number of words
func (m *Memory) Size() int {
	return len(m.words)
}

// Valid reports whether addr is inside memory
func (m *Memory) Valid(addr int) bool {
	return addr >= 0 && addr < len(m.words)
}

func (m *Memory) check(addr int) error {
	if !m.Valid(addr) {
		return fmt.Errorf("%w: %d", ErrAddress, addr)
	}
	return nil
}

// Load reads the word at addr
func (m *Memory) Load(addr int) (int, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}
	return m.words[addr], nil
}

// Store writes the word at addr
func (m *Memory) Store(addr int, value int) error {
	if err := m.check(addr); err != nil {
		return err
	}
	m.words[addr] = value
	return nil
}

// Add adds delta to the word at addr and returns the value before the update
func (m *Memory) Add(addr int, delta int) (int, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}
	old := m.words[addr]
	m.words[addr] = old + delta
	return old, nil
}

// Area returns the state area at addr, the returned state is live
func (m *Memory) Area(addr int) (*state.State, error) {
	if err := m.check(addr); err != nil {
		return nil, err
	}
	area, ok := m.areas[addr]
	if !ok {
		area = &state.State{}
		m.areas[addr] = area
	}
	return area, nil
}

// SaveState copies s into the state area at addr
func (m *Memory) SaveState(addr int, s *state.State) error {
	area, err := m.Area(addr)
	if err != nil {
		return err
	}
	*area = *s
	return nil
}

// LoadState returns a copy of the state area at addr
func (m *Memory) LoadState(addr int) (*state.State, error) {
	area, err := m.Area(addr)
	if err != nil {
		return nil, err
	}
	return area.Clone(), nil
}

// New creates memory with size words
func New(size int) *Memory {
	return &Memory{words: make([]int, size), areas: map[int]*state.State{}}
}
