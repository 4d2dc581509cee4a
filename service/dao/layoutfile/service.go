package layoutfile

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/dao"
	"github.com/viant/comets/service/dao/modelfile"
)

// Service loads and saves layouts together with their models.
type Service struct {
	fs      afs.Service
	models  *modelfile.Service
	encoder *Encoder
	indent  string
}

// Option customises Service.
type Option func(s *Service)

// WithFS sets the storage service.
func WithFS(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}

// WithModelService sets the model store used for referenced models.
func WithModelService(models *modelfile.Service) Option {
	return func(s *Service) { s.models = models }
}

// WithIndent sets the layout nesting indent.
func WithIndent(indent string) Option {
	return func(s *Service) { s.indent = indent }
}

// Load reads the layout at URL and every model it references. Relative model
// paths resolve against the layout location.
func (s *Service) Load(ctx context.Context, URL string) (*layout.Layout, types.Issues, error) {
	data, err := dao.Download(ctx, s.fs, URL)
	if err != nil {
		return nil, nil, err
	}
	ret, issues, err := Decode(data)
	if err != nil {
		return nil, issues, fmt.Errorf("failed to load layout %s: %w", URL, err)
	}
	parent, _ := url.Split(URL, file.Scheme)
	for _, location := range ret.ModelFiles {
		modelURL := location
		if url.IsRelative(location) {
			modelURL = url.Join(parent, location)
		}
		model, modelIssues, err := s.models.Load(ctx, modelURL)
		issues.Append(modelIssues)
		if err != nil {
			return nil, issues, err
		}
		ret.Models = append(ret.Models, model)
	}
	return ret, issues, nil
}

// Save writes every model as <name><ext> next to the layout, then the layout
// itself referencing them. The layout and all models are encoded before
// anything is written.
func (s *Service) Save(ctx context.Context, l *layout.Layout, URL string) error {
	if l == nil {
		return dao.ErrNilEntity
	}
	for _, model := range l.Models {
		if model == nil {
			return dao.ErrNilEntity
		}
	}
	data, err := s.Encode(l)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	parent, _ := url.Split(URL, file.Scheme)
	models := make(map[string][]byte, len(l.Models))
	var locations []string
	for _, model := range l.Models {
		location := url.Join(parent, s.models.FileName(model))
		if _, ok := models[location]; ok {
			return fmt.Errorf("failed to save layout: models share file %v", location)
		}
		if models[location], err = s.models.Encode(model); err != nil {
			return fmt.Errorf("failed to encode model %v: %w", model.Name, err)
		}
		locations = append(locations, location)
	}
	for _, location := range locations {
		if err := dao.Replace(ctx, s.fs, location, models[location]); err != nil {
			return err
		}
	}
	return dao.Replace(ctx, s.fs, URL, data)
}

// Encode renders l.
func (s *Service) Encode(l *layout.Layout) ([]byte, error) {
	return s.encoder.Encode(l)
}

// Models returns the model store.
func (s *Service) Models() *modelfile.Service {
	return s.models
}

// New creates a layout store.
func New(opts ...Option) *Service {
	ret := &Service{fs: afs.New(), indent: DefaultIndent}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.models == nil {
		ret.models = modelfile.New(modelfile.WithFS(ret.fs))
	}
	ret.encoder = NewEncoder(ret.indent, ret.models.Extension())
	return ret
}

var _ dao.Service[layout.Layout] = (*Service)(nil)
