package kernel

import "fmt"

// Config represents kernel limits and timing, times are in µs
type Config struct {
	MaxProc     int   `json:"maxProc" yaml:"maxProc"`
	Descriptors int   `json:"descriptors" yaml:"descriptors"`
	Quantum     int64 `json:"quantum" yaml:"quantum"`
	PseudoClock int64 `json:"pseudoClock" yaml:"pseudoClock"`
}

// DefaultConfig returns the HOCA limits: 20 processes and descriptors, 5ms quantum, 100ms pseudo-clock
func DefaultConfig() Config {
	return Config{
		MaxProc:     20,
		Descriptors: 20,
		Quantum:     5000,
		PseudoClock: 100000,
	}
}

// Validate checks the limits
func (c *Config) Validate() error {
	switch {
	case c.MaxProc <= 0:
		return fmt.Errorf("maxProc must be > 0")
	case c.Descriptors <= 0:
		return fmt.Errorf("descriptors must be > 0")
	case c.Quantum <= 0:
		return fmt.Errorf("quantum must be > 0")
	case c.PseudoClock <= 0:
		return fmt.Errorf("pseudoClock must be > 0")
	}
	return nil
}
