package machine

import "github.com/viant/nucleus/model/device"

// Option represents a machine option
type Option func(m *Machine)

// WithDevice sets device behaviour
func WithDevice(id device.ID, behavior Device) Option {
	return func(m *Machine) {
		if id.Valid() {
			m.devices[id] = behavior
		}
	}
}

// WithDeviceLatency sets the latency of devices without explicit behaviour
func WithDeviceLatency(latency int64) Option {
	return func(m *Machine) {
		m.deviceLatency = latency
	}
}

// WithInstructionTime sets the µs cost of non work instructions
func WithInstructionTime(cost int64) Option {
	return func(m *Machine) {
		m.instructionTime = cost
	}
}

// WithTimeLimit stops Run with ErrTimeLimit once simulated time passes limit µs
func WithTimeLimit(limit int64) Option {
	return func(m *Machine) {
		m.timeLimit = limit
	}
}
