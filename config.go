package comets

import (
	"context"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/service/dao"
	"github.com/viant/comets/service/dao/layoutfile"
	"github.com/viant/comets/service/dao/modelfile"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the engine configuration. It can
// be populated from YAML and overlaid with environment variables.
type Config struct {
	ModelExtension  string  `json:"modelExtension" yaml:"modelExtension" env:"COMETS_MODEL_EXTENSION"`
	ModelIndent     string  `json:"modelIndent" yaml:"modelIndent" env:"COMETS_MODEL_INDENT"`
	LayoutIndent    string  `json:"layoutIndent" yaml:"layoutIndent" env:"COMETS_LAYOUT_INDENT"`
	SeedBiomass     float64 `json:"seedBiomass" yaml:"seedBiomass" env:"COMETS_SEED_BIOMASS"`
	GlobalDiffusion float64 `json:"globalDiffusion" yaml:"globalDiffusion" env:"COMETS_GLOBAL_DIFFUSION"`
	// Strict turns row-level issues into load errors.
	Strict  bool   `json:"strict" yaml:"strict" env:"COMETS_STRICT"`
	WorkDir string `json:"workDir" yaml:"workDir" env:"COMETS_WORK_DIR"`
	// TraceFile enables stdout tracing into the file; "-" selects os.Stdout.
	TraceFile string `json:"traceFile,omitempty" yaml:"traceFile,omitempty" env:"COMETS_TRACE_FILE"`
	// Parameters override engine parameter defaults.
	Parameters map[string]interface{} `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// DefaultConfig returns a Config populated with the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		ModelExtension:  modelfile.DefaultExtension,
		ModelIndent:     modelfile.DefaultIndent,
		LayoutIndent:    layoutfile.DefaultIndent,
		SeedBiomass:     layout.DefaultSeedBiomass,
		GlobalDiffusion: layout.DefaultGlobalDiffusion,
		WorkDir:         ".",
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.ModelExtension == "" {
		errs = append(errs, fmt.Errorf("modelExtension was empty"))
	}
	if c.SeedBiomass < 0 {
		errs = append(errs, fmt.Errorf("seedBiomass must be >= 0"))
	}
	if c.GlobalDiffusion < 0 {
		errs = append(errs, fmt.Errorf("globalDiffusion must be >= 0"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads YAML configuration from URL over the defaults, then
// applies environment variables. An empty URL skips the file.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	cfg := DefaultConfig()
	if URL != "" {
		if fs == nil {
			fs = afs.New()
		}
		data, err := dao.Download(ctx, fs, URL)
		if err != nil {
			return nil, err
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
