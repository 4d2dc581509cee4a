package comets

import (
	"github.com/viant/afs"
	"github.com/viant/comets/service/dao/modelfile/sbml"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises Service.
type Option func(s *Service)

// WithConfig sets the configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithFS sets the storage service shared by all stores.
func WithFS(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(runID string) Option {
	return func(s *Service) { s.runID = runID }
}

// WithSBMLReader sets the SBML reader.
func WithSBMLReader(reader sbml.Reader) Option {
	return func(s *Service) { s.sbmlReader = reader }
}

// WithTracing installs the exporter as the trace provider.
func WithTracing(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracing = &tracingSetup{serviceName: serviceName, serviceVersion: serviceVersion, exporter: exporter}
	}
}
