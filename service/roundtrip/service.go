package roundtrip

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/dao"
	"github.com/viant/comets/service/dao/layoutfile"
	"github.com/viant/comets/service/section"
)

// Report describes a round trip of one document.
type Report struct {
	Name string `json:"name" yaml:"name"`
	// Canonical is the first native rendering.
	Canonical []byte `json:"-" yaml:"-"`
	// Diff compares the canonical rendering with its re-rendering after a
	// decode; it is empty when the canonical form is a fixed point.
	Diff  string    `json:"diff,omitempty" yaml:"diff,omitempty"`
	Stats DiffStats `json:"stats" yaml:"stats"`
	// SourceDiff compares the source file with the canonical rendering.
	SourceDiff  string       `json:"sourceDiff,omitempty" yaml:"sourceDiff,omitempty"`
	SourceStats DiffStats    `json:"sourceStats" yaml:"sourceStats"`
	Issues      types.Issues `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Stable reports whether the canonical rendering is a fixed point.
func (r *Report) Stable() bool {
	return !r.Stats.Changed()
}

// Service checks that documents survive encode, decode, encode unchanged.
type Service struct {
	fs           afs.Service
	layouts      *layoutfile.Service
	contextLines int
}

// CheckModel round trips model.
func (s *Service) CheckModel(ctx context.Context, model *metabolic.Model) (*Report, error) {
	models := s.layouts.Models()
	canonical, err := models.Encode(model)
	if err != nil {
		return nil, err
	}
	decoded, issues, err := models.Decode(ctx, model.Name, canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to decode canonical model %v: %w", model.Name, err)
	}
	again, err := models.Encode(decoded)
	if err != nil {
		return nil, err
	}
	return s.report(models.FileName(model), canonical, again, issues)
}

// CheckLayout round trips l. Models are carried over as loaded.
func (s *Service) CheckLayout(ctx context.Context, l *layout.Layout) (*Report, error) {
	canonical, err := s.layouts.Encode(l)
	if err != nil {
		return nil, err
	}
	decoded, issues, err := layoutfile.Decode(canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to decode canonical layout: %w", err)
	}
	decoded.Models = l.Models
	again, err := s.layouts.Encode(decoded)
	if err != nil {
		return nil, err
	}
	return s.report("layout", canonical, again, issues)
}

// CheckFile loads the model or layout at URL and reports both the changes
// canonicalisation makes to the source and the fixed point check.
func (s *Service) CheckFile(ctx context.Context, URL string) (*Report, error) {
	source, err := dao.Download(ctx, s.fs, URL)
	if err != nil {
		return nil, err
	}
	var report *Report
	var issues types.Issues
	if IsLayout(source) {
		var l *layout.Layout
		if l, issues, err = s.layouts.Load(ctx, URL); err == nil {
			report, err = s.CheckLayout(ctx, l)
		}
	} else {
		var model *metabolic.Model
		if model, issues, err = s.layouts.Models().Load(ctx, URL); err == nil {
			report, err = s.CheckModel(ctx, model)
		}
	}
	if err != nil {
		return nil, err
	}
	report.Name = URL
	report.Issues = append(issues, report.Issues...)
	if report.SourceDiff, report.SourceStats, err = GenerateDiff(source, report.Canonical, URL, s.contextLines); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) report(name string, canonical, again []byte, issues types.Issues) (*Report, error) {
	diff, stats, err := GenerateDiff(canonical, again, name, s.contextLines)
	if err != nil {
		return nil, err
	}
	return &Report{Name: name, Canonical: canonical, Diff: diff, Stats: stats, Issues: issues}, nil
}

// IsLayout reports whether data is a layout file rather than a model.
func IsLayout(data []byte) bool {
	return section.Parse(data).Has(layout.ModelFileKeyword)
}

// New creates a round trip checker.
func New(fs afs.Service, layouts *layoutfile.Service, contextLines int) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if layouts == nil {
		layouts = layoutfile.New(layoutfile.WithFS(fs))
	}
	return &Service{fs: fs, layouts: layouts, contextLines: contextLines}
}
