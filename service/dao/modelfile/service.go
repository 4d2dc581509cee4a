package modelfile

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/viant/afs"
	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/dao"
	"github.com/viant/comets/service/dao/modelfile/sbml"
)

// DefaultExtension is the native model file extension.
const DefaultExtension = ".cmd"

// Service loads models in either dialect and saves them in the native one.
type Service struct {
	fs        afs.Service
	reader    sbml.Reader
	encoder   *Encoder
	extension string
	runID     string
	anonymous atomic.Int64
}

// Option customises Service.
type Option func(s *Service)

// WithFS sets the storage service.
func WithFS(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}

// WithSBMLReader sets the SBML reader.
func WithSBMLReader(reader sbml.Reader) Option {
	return func(s *Service) { s.reader = reader }
}

// WithIndent sets the native body indent.
func WithIndent(indent string) Option {
	return func(s *Service) { s.encoder = NewEncoder(indent) }
}

// WithExtension sets the native file extension.
func WithExtension(extension string) Option {
	return func(s *Service) { s.extension = extension }
}

// WithRunID sets the run id used to name SBML models without an id.
func WithRunID(runID string) Option {
	return func(s *Service) { s.runID = runID }
}

// Load reads and decodes the model at URL, sniffing its dialect.
func (s *Service) Load(ctx context.Context, URL string) (*metabolic.Model, types.Issues, error) {
	data, err := dao.Download(ctx, s.fs, URL)
	if err != nil {
		return nil, nil, err
	}
	model, issues, err := s.Decode(ctx, Name(URL), data)
	if err != nil {
		return nil, issues, fmt.Errorf("failed to load model %s: %w", URL, err)
	}
	return model, issues, nil
}

// Decode decodes data; name is used for native models, SBML models are named
// after their document id.
func (s *Service) Decode(ctx context.Context, name string, data []byte) (*metabolic.Model, types.Issues, error) {
	dialect, err := Sniff(data)
	if err != nil {
		return nil, nil, err
	}
	if dialect == DialectNative {
		return Decode(name, data)
	}
	doc, err := s.reader.Read(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	runID := s.runID
	if doc.ID == "" {
		runID = s.anonymousID()
	}
	return sbml.Normalize(doc, runID)
}

// anonymousID returns the run id for the next SBML model without an id. The
// first keeps the run id as is, later ones get a sequence suffix so that their
// file names never collide.
func (s *Service) anonymousID() string {
	n := s.anonymous.Add(1)
	if n == 1 {
		return s.runID
	}
	if s.runID == "" {
		return strconv.FormatInt(n, 10)
	}
	return s.runID + "_" + strconv.FormatInt(n, 10)
}

// Encode renders model in the native dialect.
func (s *Service) Encode(model *metabolic.Model) ([]byte, error) {
	return s.encoder.Encode(model)
}

// Save writes model to URL in the native dialect, replacing existing content.
func (s *Service) Save(ctx context.Context, model *metabolic.Model, URL string) error {
	if model == nil {
		return dao.ErrNilEntity
	}
	data, err := s.Encode(model)
	if err != nil {
		return fmt.Errorf("failed to encode model %v: %w", model.Name, err)
	}
	return dao.Replace(ctx, s.fs, URL, data)
}

// FileName returns the native file name of model.
func (s *Service) FileName(model *metabolic.Model) string {
	return model.Name + s.extension
}

// Extension returns the native file extension.
func (s *Service) Extension() string {
	return s.extension
}

// Name derives a model name from URL: the base name without extension.
func Name(URL string) string {
	base := path.Base(URL)
	return strings.TrimSuffix(base, path.Ext(base))
}

// New creates a model file service.
func New(opts ...Option) *Service {
	ret := &Service{
		fs:        afs.New(),
		reader:    sbml.NewXMLReader(),
		encoder:   NewEncoder(DefaultIndent),
		extension: DefaultExtension,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

var _ dao.Service[metabolic.Model] = (*Service)(nil)
