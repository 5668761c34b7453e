package nucleus

import (
	"log"

	"github.com/viant/afs"
	"github.com/viant/nucleus/runtime/kernel"
	rmemory "github.com/viant/nucleus/service/dao/report/memory"
	"github.com/viant/nucleus/service/event"
	"github.com/viant/nucleus/service/image"
)

// Service represents the nucleus service
type Service struct {
	runtime      *Runtime
	config       *Config
	logger       *log.Logger
	listeners    []kernel.Listener
	eventService *event.Service
	fs           afs.Service
	initErr      error
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.runtime.config = s.config
	s.runtime.logger = s.logger
	s.runtime.listeners = s.listeners
	s.runtime.eventService = s.eventService
	s.runtime.imageService = image.New(s.fs)
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.runtime.reportDAO == nil {
		s.runtime.reportDAO = rmemory.New()
	}
}

// Runtime returns the runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Err returns the first option initialisation error
func (s *Service) Err() error {
	return s.initErr
}

// New creates a nucleus service
func New(options ...Option) *Service {
	ret := &Service{runtime: &Runtime{}}
	ret.init(options)
	return ret
}
