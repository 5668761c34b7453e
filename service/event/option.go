package event

import (
	"github.com/viant/nucleus/service/messaging/memory"
)

// Option configures the event service
type Option func(s *Service)

// WithNewMemoryQueueConfig sets the per queue memory configuration
func WithNewMemoryQueueConfig(newQueue func(name string) memory.Config) Option {
	return func(s *Service) {
		s.memNewQueueConfig = newQueue
	}
}
