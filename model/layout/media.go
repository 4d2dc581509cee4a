package layout

import "github.com/viant/comets/model/types"

// Block keywords of the layout file.
const (
	ModelFileKeyword  = "model_file"
	WorldKeyword      = "model_world"
	GridKeyword       = "grid_size"
	MediaKeyword      = "world_media"
	DiffusionKeyword  = "diffusion_constants"
	RefreshKeyword    = "media_refresh"
	StaticKeyword     = "static_media"
	PopulationKeyword = "initial_pop"
)

// MediaEntry describes one metabolite of the world media.
type MediaEntry struct {
	Metabolite string  `json:"metabolite" yaml:"metabolite"`
	Amount     float64 `json:"amount" yaml:"amount"`
	// Diffusion overrides the global diffusion constant when set.
	Diffusion   *float64 `json:"diffusion,omitempty" yaml:"diffusion,omitempty"`
	Static      bool     `json:"static,omitempty" yaml:"static,omitempty"`
	StaticValue float64  `json:"staticValue,omitempty" yaml:"staticValue,omitempty"`
	Refresh     float64  `json:"refresh,omitempty" yaml:"refresh,omitempty"`
}

// MediaIndex returns the 0-based media index of metabolite or -1.
func (l *Layout) MediaIndex(metabolite string) int {
	for i, entry := range l.Media {
		if entry.Metabolite == metabolite {
			return i
		}
	}
	return -1
}

// Medium returns the media entry of metabolite or nil.
func (l *Layout) Medium(metabolite string) *MediaEntry {
	if index := l.MediaIndex(metabolite); index != -1 {
		return l.Media[index]
	}
	return nil
}

// AddMetabolite appends a zeroed media entry unless metabolite is already
// present. Local refresh and static rows grow accordingly.
func (l *Layout) AddMetabolite(metabolite string) *MediaEntry {
	if entry := l.Medium(metabolite); entry != nil {
		return entry
	}
	entry := &MediaEntry{Metabolite: metabolite}
	l.Media = append(l.Media, entry)
	if l.Refresh != nil {
		for _, cell := range l.Refresh.Cells {
			cell.Values = append(cell.Values, types.NewNumber(0))
		}
	}
	for _, cell := range l.Static.Cells {
		cell.Values = append(cell.Values, types.NewNumber(0), types.NewNumber(0))
	}
	return entry
}

// SetAmount sets the initial amount of metabolite, adding it when absent.
func (l *Layout) SetAmount(metabolite string, amount float64) {
	l.AddMetabolite(metabolite).Amount = amount
}
