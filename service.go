package comets

import (
	"context"
	"log"

	"github.com/viant/afs"
	"github.com/viant/comets/internal/idgen"
	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/params"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/dao/layoutfile"
	"github.com/viant/comets/service/dao/modelfile"
	"github.com/viant/comets/service/dao/modelfile/sbml"
	"github.com/viant/comets/service/dao/paramfile"
	"github.com/viant/comets/service/roundtrip"
	"github.com/viant/comets/service/workspace"
	"github.com/viant/comets/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serviceName    = "comets"
	serviceVersion = "0.1.0"
	// DefaultContextLines is the unified diff context of round trip reports.
	DefaultContextLines = 3
)

type tracingSetup struct {
	serviceName    string
	serviceVersion string
	exporter       sdktrace.SpanExporter
}

// Service is the entry point for reading, writing and preparing engine inputs.
type Service struct {
	config     *Config
	fs         afs.Service
	runID      string
	fixedRunID bool
	sbmlReader sbml.Reader
	tracing    *tracingSetup

	models    *modelfile.Service
	layouts   *layoutfile.Service
	params    *paramfile.Service
	workspace *workspace.Service
	roundtrip *roundtrip.Service
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.fixedRunID = s.runID != ""
	s.ensureBaseSetup()
	if err := s.initTracing(); err != nil {
		return err
	}
	modelOptions := []modelfile.Option{
		modelfile.WithFS(s.fs),
		modelfile.WithIndent(s.config.ModelIndent),
		modelfile.WithExtension(s.config.ModelExtension),
		modelfile.WithRunID(s.runID),
	}
	if s.sbmlReader != nil {
		modelOptions = append(modelOptions, modelfile.WithSBMLReader(s.sbmlReader))
	}
	s.models = modelfile.New(modelOptions...)
	s.layouts = layoutfile.New(
		layoutfile.WithFS(s.fs),
		layoutfile.WithModelService(s.models),
		layoutfile.WithIndent(s.config.LayoutIndent),
	)
	s.params = paramfile.New(s.fs)
	s.workspace = workspace.New(s.fs, s.layouts)
	s.roundtrip = roundtrip.New(s.fs, s.layouts, DefaultContextLines)
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.runID == "" {
		s.runID = idgen.New()
	}
}

// RunID returns the run id naming anonymous models and new layouts.
func (s *Service) RunID() string {
	return s.runID
}

func (s *Service) initTracing() error {
	if s.tracing != nil {
		return tracing.InitWithExporter(s.tracing.serviceName, s.tracing.serviceVersion, s.tracing.exporter)
	}
	if s.config.TraceFile == "" {
		return nil
	}
	outputFile := s.config.TraceFile
	if outputFile == "-" {
		outputFile = ""
	}
	return tracing.Init(serviceName, serviceVersion, outputFile)
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// LoadModel reads a native or SBML model.
func (s *Service) LoadModel(ctx context.Context, URL string) (model *metabolic.Model, issues types.Issues, err error) {
	ctx, span := tracing.StartSpan(ctx, "comets.load_model", tracing.KindClient)
	span.WithAttributes(map[string]string{"url": URL})
	defer func() { tracing.EndSpan(span.WithCount("issues", len(issues)), err) }()
	if model, issues, err = s.models.Load(ctx, URL); err != nil {
		return nil, issues, err
	}
	if err = s.review(URL, issues); err != nil {
		return nil, issues, err
	}
	return model, issues, nil
}

// SaveModel writes model in the native format.
func (s *Service) SaveModel(ctx context.Context, model *metabolic.Model, URL string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "comets.save_model", tracing.KindClient)
	span.WithAttributes(map[string]string{"url": URL})
	defer func() { tracing.EndSpan(span, err) }()
	return s.models.Save(ctx, model, URL)
}

// LoadLayout reads a layout with the models it references.
func (s *Service) LoadLayout(ctx context.Context, URL string) (l *layout.Layout, issues types.Issues, err error) {
	ctx, span := tracing.StartSpan(ctx, "comets.load_layout", tracing.KindClient)
	span.WithAttributes(map[string]string{"url": URL})
	defer func() { tracing.EndSpan(span.WithCount("issues", len(issues)), err) }()
	if l, issues, err = s.layouts.Load(ctx, URL); err != nil {
		return nil, issues, err
	}
	if err = s.review(URL, issues); err != nil {
		return nil, issues, err
	}
	if l.RunID == "" && s.fixedRunID {
		l.RunID = s.runID
	}
	return l, issues, nil
}

// SaveLayout writes l and its models next to URL.
func (s *Service) SaveLayout(ctx context.Context, l *layout.Layout, URL string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "comets.save_layout", tracing.KindClient)
	span.WithAttributes(map[string]string{"url": URL})
	defer func() { tracing.EndSpan(span, err) }()
	return s.layouts.Save(ctx, l, URL)
}

// NewLayout builds a one cell layout seeded with every model.
func (s *Service) NewLayout(models ...*metabolic.Model) *layout.Layout {
	return layout.New(models,
		layout.WithRunID(s.runID),
		layout.WithSeedBiomass(s.config.SeedBiomass),
		layout.WithGlobalDiffusion(s.config.GlobalDiffusion),
	)
}

// NewParameters returns the default parameter table with configured overrides.
func (s *Service) NewParameters() *params.Table {
	return params.New(s.config.Parameters)
}

// LoadParameters applies the parameter files at URLs over the configured table.
func (s *Service) LoadParameters(ctx context.Context, URLs ...string) (table *params.Table, issues types.Issues, err error) {
	ctx, span := tracing.StartSpan(ctx, "comets.load_parameters", tracing.KindClient)
	defer func() { tracing.EndSpan(span.WithCount("issues", len(issues)), err) }()
	if table, issues, err = s.params.LoadInto(ctx, s.NewParameters(), URLs...); err != nil {
		return nil, issues, err
	}
	if err = s.review("parameters", issues); err != nil {
		return nil, issues, err
	}
	return table, issues, nil
}

// SaveParameters writes the global and package parameter files.
func (s *Service) SaveParameters(ctx context.Context, table *params.Table, globalURL, packageURL string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "comets.save_parameters", tracing.KindClient)
	defer func() { tracing.EndSpan(span, err) }()
	return s.params.Save(ctx, table, globalURL, packageURL)
}

// Prepare writes the control files of a run into dir, or the configured work
// directory when dir is empty. A nil table selects NewParameters.
func (s *Service) Prepare(ctx context.Context, l *layout.Layout, table *params.Table, dir string) (run *workspace.Run, err error) {
	ctx, span := tracing.StartSpan(ctx, "comets.prepare", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	if dir == "" {
		dir = s.config.WorkDir
	}
	if table == nil {
		table = s.NewParameters()
	}
	if l != nil && l.RunID == "" && s.fixedRunID {
		l.RunID = s.runID
	}
	if run, err = s.workspace.Prepare(ctx, l, table, dir); err != nil {
		return nil, err
	}
	span.WithAttributes(map[string]string{"run.id": run.ID})
	return run, nil
}

// Check round trips the model or layout at URL.
func (s *Service) Check(ctx context.Context, URL string) (report *roundtrip.Report, err error) {
	ctx, span := tracing.StartSpan(ctx, "comets.check", tracing.KindInternal)
	span.WithAttributes(map[string]string{"url": URL})
	defer func() { tracing.EndSpan(span, err) }()
	return s.roundtrip.CheckFile(ctx, URL)
}

// review logs issues, or fails with them in strict mode.
func (s *Service) review(source string, issues types.Issues) error {
	if len(issues) == 0 {
		return nil
	}
	if s.config.Strict {
		return issues.Err()
	}
	for _, issue := range issues {
		log.Printf("warning: %s: %v", source, issue)
	}
	return nil
}

// New creates a service; it panics on an invalid configuration. Use
// NewService to handle the error.
func New(options ...Option) *Service {
	ret, err := NewService(options...)
	if err != nil {
		panic(err)
	}
	return ret
}

// NewService creates a service.
func NewService(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
