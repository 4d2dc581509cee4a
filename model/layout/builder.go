package layout

import "github.com/viant/comets/model/metabolic"

type options struct {
	runID           string
	seedBiomass     float64
	globalDiffusion float64
}

// Option customises layouts built from models.
type Option func(*options)

// WithRunID sets the run identifier.
func WithRunID(runID string) Option {
	return func(o *options) {
		o.runID = runID
	}
}

// WithSeedBiomass sets the biomass seeded per model at (0, 0).
func WithSeedBiomass(biomass float64) Option {
	return func(o *options) {
		o.seedBiomass = biomass
	}
}

// WithGlobalDiffusion sets the global diffusion constant.
func WithGlobalDiffusion(value float64) Option {
	return func(o *options) {
		o.globalDiffusion = value
	}
}

// New builds a single cell layout from models: the media table is the
// deduplicated union of exchanged metabolites with zeroed values, and a single
// custom population row at (0, 0) seeds every model.
func New(models []*metabolic.Model, opts ...Option) *Layout {
	o := &options{seedBiomass: DefaultSeedBiomass, globalDiffusion: DefaultGlobalDiffusion}
	for _, opt := range opts {
		opt(o)
	}
	ret := &Layout{
		RunID:     o.runID,
		Grid:      []int{1, 1},
		Diffusion: &Diffusion{Global: o.globalDiffusion},
	}
	for _, model := range models {
		ret.Models = append(ret.Models, model)
		for _, name := range model.ExchangedMetabolites() {
			ret.AddMetabolite(name)
		}
	}
	seed := make([]float64, len(models))
	for i := range seed {
		seed[i] = o.seedBiomass
	}
	ret.Population.Cells = []*Cell{NewCell(0, 0, seed...)}
	return ret
}
