package workspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/afs"
)

// Control file name prefixes, suffixed with the run id.
const (
	GlobalPrefix  = ".current_global_"
	PackagePrefix = ".current_package_"
	LayoutPrefix  = ".current_layout_"
	ScriptPrefix  = ".current_script_"
)

// Result log name prefixes, suffixed with the run id.
const (
	TotalBiomassLogPrefix = "total_biomass_log_"
	BiomassLogPrefix      = "biomass_log_"
	FluxLogPrefix         = "flux_log_"
	MediaLogPrefix        = "media_log_"
)

// Logs holds the result log names assigned to a run.
type Logs struct {
	TotalBiomass string `json:"totalBiomass" yaml:"totalBiomass"`
	Biomass      string `json:"biomass" yaml:"biomass"`
	Flux         string `json:"flux" yaml:"flux"`
	Media        string `json:"media" yaml:"media"`
}

// Run is a prepared engine run.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	Dir        string    `json:"dir" yaml:"dir"`
	GlobalURL  string    `json:"globalURL" yaml:"globalURL"`
	PackageURL string    `json:"packageURL" yaml:"packageURL"`
	LayoutURL  string    `json:"layoutURL" yaml:"layoutURL"`
	ScriptURL  string    `json:"scriptURL" yaml:"scriptURL"`
	ModelURLs  []string  `json:"modelURLs,omitempty" yaml:"modelURLs,omitempty"`
	Logs       Logs      `json:"logs" yaml:"logs"`
	Prepared   time.Time `json:"prepared" yaml:"prepared"`
	fs         afs.Service
}

// ControlURLs returns every file emitted for the run.
func (r *Run) ControlURLs() []string {
	return append([]string{r.GlobalURL, r.PackageURL, r.LayoutURL, r.ScriptURL}, r.ModelURLs...)
}

// Cleanup deletes the files emitted for the run.
func (r *Run) Cleanup(ctx context.Context) error {
	var errs []error
	for _, URL := range r.ControlURLs() {
		exists, err := r.fs.Exists(ctx, URL)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !exists {
			continue
		}
		if err := r.fs.Delete(ctx, URL); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", URL, err))
		}
	}
	return errors.Join(errs...)
}

func newLogs(runID string) Logs {
	return Logs{
		TotalBiomass: TotalBiomassLogPrefix + runID,
		Biomass:      BiomassLogPrefix + runID,
		Flux:         FluxLogPrefix + runID,
		Media:        MediaLogPrefix + runID,
	}
}
