package nucleus

import (
	"log"

	"github.com/viant/afs"
	"github.com/viant/nucleus/model/report"
	"github.com/viant/nucleus/runtime/kernel"
	"github.com/viant/nucleus/service/dao"
	"github.com/viant/nucleus/service/event"
	"github.com/viant/nucleus/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option represents a nucleus service option
type Option func(s *Service)

// WithConfig sets the base configuration, images may override it
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the kernel transition logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithListener adds a synchronous kernel event listener to every run
func WithListener(listener kernel.Listener) Option {
	return func(s *Service) {
		if listener != nil {
			s.listeners = append(s.listeners, listener)
		}
	}
}

// WithEventService publishes every kernel event to the event service
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithFS sets the file system used to load images
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithReportDAO sets the boot report store
func WithReportDAO(reports dao.Service[string, report.Report]) Option {
	return func(s *Service) {
		s.runtime.reportDAO = reports
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; otherwise spans are written to the supplied file.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.initErr = err
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.initErr = err
		}
	}
}
