// Package image defines the boot image: machine configuration, initial memory
// contents, state areas, process programs, device behaviour and the state of
// the first process.
package image

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/nucleus/model/device"
	"github.com/viant/nucleus/model/state"
	"gopkg.in/yaml.v3"
)

// Config overrides runtime defaults, zero values keep the default
type Config struct {
	MaxProc       int   `json:"maxProc,omitempty" yaml:"maxProc,omitempty"`
	Descriptors   int   `json:"descriptors,omitempty" yaml:"descriptors,omitempty"`
	Quantum       int64 `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	PseudoClock   int64 `json:"pseudoClock,omitempty" yaml:"pseudoClock,omitempty"`
	MemoryWords   int   `json:"memoryWords,omitempty" yaml:"memoryWords,omitempty"`
	DeviceLatency int64 `json:"deviceLatency,omitempty" yaml:"deviceLatency,omitempty"`
}

// Device represents device behaviour
type Device struct {
	Latency int64 `json:"latency,omitempty" yaml:"latency,omitempty"`
	Status  int   `json:"status,omitempty" yaml:"status,omitempty"`
	Length  int   `json:"length,omitempty" yaml:"length,omitempty"`
}

// State represents a processor state as written in an image
type State struct {
	Text       string         `json:"text" yaml:"text"`
	PC         int            `json:"pc,omitempty" yaml:"pc,omitempty"`
	SP         int            `json:"sp,omitempty" yaml:"sp,omitempty"`
	Supervisor bool           `json:"supervisor,omitempty" yaml:"supervisor,omitempty"`
	Interrupts *bool          `json:"interrupts,omitempty" yaml:"interrupts,omitempty"`
	Registers  map[string]int `json:"registers,omitempty" yaml:"registers,omitempty"`
}

// State converts to a processor state, interrupts default to enabled
func (s *State) State() (*state.State, error) {
	ret := &state.State{Text: s.Text, PC: s.PC, SP: s.SP}
	ret.Status.Supervisor = s.Supervisor
	ret.Status.Interrupts = s.Interrupts == nil || *s.Interrupts
	for name, value := range s.Registers {
		index, err := register(name)
		if err != nil {
			return nil, err
		}
		ret.D[index] = value
	}
	return ret, nil
}

func register(name string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(name, "d") {
		if index, err := strconv.Atoi(name[1:]); err == nil && index >= 0 && index < state.Registers {
			return index, nil
		}
	}
	return 0, fmt.Errorf("invalid register: %v", name)
}

// Image represents a boot image
type Image struct {
	Name     string             `json:"name,omitempty" yaml:"name,omitempty"`
	Config   Config             `json:"config,omitempty" yaml:"config,omitempty"`
	Memory   map[int]int        `json:"memory,omitempty" yaml:"memory,omitempty"`
	Areas    map[int]*State     `json:"areas,omitempty" yaml:"areas,omitempty"`
	Programs map[string]string  `json:"programs,omitempty" yaml:"programs,omitempty"`
	Devices  map[string]*Device `json:"devices,omitempty" yaml:"devices,omitempty"`
	Init     *State             `json:"init,omitempty" yaml:"init,omitempty"`
}

// DeviceBehaviors resolves device names
func (i *Image) DeviceBehaviors() (map[device.ID]*Device, error) {
	ret := map[device.ID]*Device{}
	for name, behavior := range i.Devices {
		id, err := device.Parse(name)
		if err != nil {
			return nil, err
		}
		if behavior == nil {
			behavior = &Device{}
		}
		ret[id] = behavior
	}
	return ret, nil
}

// Validate checks the image is bootable
func (i *Image) Validate() error {
	if i.Init == nil {
		return fmt.Errorf("image %v: init state was empty", i.Name)
	}
	if _, ok := i.Programs[i.Init.Text]; !ok {
		return fmt.Errorf("image %v: init program %q not defined", i.Name, i.Init.Text)
	}
	if _, err := i.Init.State(); err != nil {
		return fmt.Errorf("image %v: init: %w", i.Name, err)
	}
	for addr, area := range i.Areas {
		if area == nil {
			continue
		}
		if _, err := area.State(); err != nil {
			return fmt.Errorf("image %v: area %d: %w", i.Name, addr, err)
		}
	}
	if _, err := i.DeviceBehaviors(); err != nil {
		return fmt.Errorf("image %v: %w", i.Name, err)
	}
	return nil
}

// Decode decodes a YAML image
func Decode(data []byte) (*Image, error) {
	ret := &Image{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return ret, nil
}
