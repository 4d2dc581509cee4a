package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/comets/internal/clock"
	"github.com/viant/comets/internal/idgen"
	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/model/params"
	"github.com/viant/comets/service/dao"
	"github.com/viant/comets/service/dao/layoutfile"
	"github.com/viant/comets/service/dao/paramfile"
)

// Script commands understood by the engine.
const (
	LoadGlobalCommand  = "load_comets_parameters"
	LoadPackageCommand = "load_package_parameters"
	LoadLayoutCommand  = "load_layout"
)

// Service writes the control files of an engine run.
type Service struct {
	fs      afs.Service
	layouts *layoutfile.Service
	params  *paramfile.Service
}

// Prepare assigns run scoped log names to table and writes the parameter
// files, the layout with its models, and the control script into dir.
func (s *Service) Prepare(ctx context.Context, l *layout.Layout, table *params.Table, dir string) (*Run, error) {
	if l == nil || table == nil {
		return nil, dao.ErrNilEntity
	}
	if l.RunID == "" {
		l.RunID = idgen.New()
	}
	run := &Run{
		ID:         l.RunID,
		Dir:        dir,
		GlobalURL:  url.Join(dir, GlobalPrefix+l.RunID),
		PackageURL: url.Join(dir, PackagePrefix+l.RunID),
		LayoutURL:  url.Join(dir, LayoutPrefix+l.RunID),
		ScriptURL:  url.Join(dir, ScriptPrefix+l.RunID),
		Logs:       newLogs(l.RunID),
		Prepared:   clock.Now(),
		fs:         s.fs,
	}
	for _, model := range l.Models {
		run.ModelURLs = append(run.ModelURLs, url.Join(dir, s.layouts.Models().FileName(model)))
	}

	table.Set(params.UseLogNameTimeStamp, false)
	table.SetString(params.TotalBiomassLogName, run.Logs.TotalBiomass)
	table.SetString(params.BiomassLogName, run.Logs.Biomass)
	table.SetString(params.FluxLogName, run.Logs.Flux)
	table.SetString(params.MediaLogName, run.Logs.Media)

	if err := s.layouts.Save(ctx, l, run.LayoutURL); err != nil {
		return nil, fmt.Errorf("failed to write layout of run %v: %w", run.ID, err)
	}
	if err := s.params.Save(ctx, table, run.GlobalURL, run.PackageURL); err != nil {
		return nil, fmt.Errorf("failed to write parameters of run %v: %w", run.ID, err)
	}
	if err := dao.Replace(ctx, s.fs, run.ScriptURL, Script(run)); err != nil {
		return nil, err
	}
	return run, nil
}

// Script renders the control script of run.
func Script(run *Run) []byte {
	lines := []string{
		LoadGlobalCommand + " " + url.Path(run.GlobalURL),
		LoadPackageCommand + " " + url.Path(run.PackageURL),
		LoadLayoutCommand + " " + url.Path(run.LayoutURL),
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// New creates a workspace service sharing fs with its stores.
func New(fs afs.Service, layouts *layoutfile.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if layouts == nil {
		layouts = layoutfile.New(layoutfile.WithFS(fs))
	}
	return &Service{fs: fs, layouts: layouts, params: paramfile.New(fs)}
}
