package nucleus

import (
	"fmt"

	"github.com/viant/nucleus/model/image"
	"github.com/viant/nucleus/runtime/kernel"
)

// Config is a serialisable representation of the machine and kernel
// configuration, times are in simulated µs.
type Config struct {
	MaxProc       int   `json:"maxProc" yaml:"maxProc"`
	Descriptors   int   `json:"descriptors" yaml:"descriptors"`
	Quantum       int64 `json:"quantum" yaml:"quantum"`
	PseudoClock   int64 `json:"pseudoClock" yaml:"pseudoClock"`
	MemoryWords   int   `json:"memoryWords" yaml:"memoryWords"`
	DeviceLatency int64 `json:"deviceLatency" yaml:"deviceLatency"`
	// TimeLimit stops a run once simulated time passes it, zero means no limit
	TimeLimit int64 `json:"timeLimit,omitempty" yaml:"timeLimit,omitempty"`
}

// DefaultConfig returns a Config with the HOCA defaults
func DefaultConfig() *Config {
	k := kernel.DefaultConfig()
	return &Config{
		MaxProc:       k.MaxProc,
		Descriptors:   k.Descriptors,
		Quantum:       k.Quantum,
		PseudoClock:   k.PseudoClock,
		MemoryWords:   4096,
		DeviceLatency: 1000,
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	k := c.Kernel()
	if err := k.Validate(); err != nil {
		return err
	}
	if c.MemoryWords < kernel.Reserved {
		return fmt.Errorf("memoryWords must be >= %d", kernel.Reserved)
	}
	if c.DeviceLatency <= 0 {
		return fmt.Errorf("deviceLatency must be > 0")
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("timeLimit must be >= 0")
	}
	return nil
}

// Kernel returns the kernel part of the configuration
func (c *Config) Kernel() kernel.Config {
	return kernel.Config{
		MaxProc:     c.MaxProc,
		Descriptors: c.Descriptors,
		Quantum:     c.Quantum,
		PseudoClock: c.PseudoClock,
	}
}

// Merge returns a copy of c with the non zero image settings applied
func (c *Config) Merge(override image.Config) *Config {
	ret := *c
	if override.MaxProc > 0 {
		ret.MaxProc = override.MaxProc
	}
	if override.Descriptors > 0 {
		ret.Descriptors = override.Descriptors
	}
	if override.Quantum > 0 {
		ret.Quantum = override.Quantum
	}
	if override.PseudoClock > 0 {
		ret.PseudoClock = override.PseudoClock
	}
	if override.MemoryWords > 0 {
		ret.MemoryWords = override.MemoryWords
	}
	if override.DeviceLatency > 0 {
		ret.DeviceLatency = override.DeviceLatency
	}
	return &ret
}
