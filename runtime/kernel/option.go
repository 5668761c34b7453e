package kernel

import (
	"log"

	"github.com/viant/nucleus/progress"
)

// Option represents a kernel option
type Option func(k *Kernel)

// WithLogger sets the transition logger
func WithLogger(logger *log.Logger) Option {
	return func(k *Kernel) {
		k.logger = logger
	}
}

// WithListener adds a synchronous event listener
func WithListener(listener Listener) Option {
	return func(k *Kernel) {
		if listener != nil {
			k.listeners = append(k.listeners, listener)
		}
	}
}

// WithProgress sets the counters tracker
func WithProgress(tracker *progress.Progress) Option {
	return func(k *Kernel) {
		k.progress = tracker
	}
}
