package paramfile

import (
	"context"

	"github.com/viant/afs"
	"github.com/viant/comets/model/params"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/dao"
)

// Service loads and saves parameter file pairs.
type Service struct {
	fs afs.Service
}

// Load applies the files at URLs, in order, over the engine defaults.
func (s *Service) Load(ctx context.Context, URLs ...string) (*params.Table, types.Issues, error) {
	return s.LoadInto(ctx, params.New(nil), URLs...)
}

// LoadInto applies the files at URLs, in order, over table.
func (s *Service) LoadInto(ctx context.Context, table *params.Table, URLs ...string) (*params.Table, types.Issues, error) {
	if table == nil {
		return nil, nil, dao.ErrNilEntity
	}
	var issues types.Issues
	for _, URL := range URLs {
		data, err := dao.Download(ctx, s.fs, URL)
		if err != nil {
			return nil, issues, err
		}
		issues.Append(Decode(table, data))
	}
	return table, issues, nil
}

// Save writes the global and package files, replacing existing content.
func (s *Service) Save(ctx context.Context, table *params.Table, globalURL, packageURL string) error {
	if table == nil {
		return dao.ErrNilEntity
	}
	global, pkg := Encode(table)
	if err := dao.Replace(ctx, s.fs, globalURL, global); err != nil {
		return err
	}
	return dao.Replace(ctx, s.fs, packageURL, pkg)
}

// New creates a parameter file service.
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
