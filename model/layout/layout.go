package layout

import (
	"fmt"
	"path"
	"strings"

	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/types"
)

const (
	// DefaultGlobalDiffusion is the diffusion constant of layouts built from models.
	DefaultGlobalDiffusion = 1e-6
	// DefaultSeedBiomass is the initial biomass per model of layouts built from models.
	DefaultSeedBiomass = 1e-9
)

// Layout is the canonical spatial simulation layout.
type Layout struct {
	RunID string `json:"runId,omitempty" yaml:"runId,omitempty"`
	// ModelFiles lists model paths as declared by a layout file.
	ModelFiles []string           `json:"modelFiles,omitempty" yaml:"modelFiles,omitempty"`
	Models     []*metabolic.Model `json:"models,omitempty" yaml:"models,omitempty"`
	Grid       []int              `json:"grid" yaml:"grid"`
	Media      []*MediaEntry      `json:"media" yaml:"media"`
	// Diffusion is nil when the layout carries no diffusion block.
	Diffusion *Diffusion `json:"diffusion,omitempty" yaml:"diffusion,omitempty"`
	// Refresh is nil when the layout carries no refresh block.
	Refresh    *Refresh   `json:"refresh,omitempty" yaml:"refresh,omitempty"`
	Static     Static     `json:"static" yaml:"static"`
	Population Population `json:"population" yaml:"population"`
}

// Diffusion holds the global diffusion constant; per metabolite constants
// live on media entries.
type Diffusion struct {
	Global float64 `json:"global" yaml:"global"`
}

// Refresh holds local refresh overrides, one value per media metabolite.
type Refresh struct {
	Cells []*Cell `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// Static holds local static overrides, a (flag, value) pair per media metabolite.
type Static struct {
	Cells []*Cell `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// Cell is a local override row keyed by grid coordinate.
type Cell struct {
	X      int            `json:"x" yaml:"x"`
	Y      int            `json:"y" yaml:"y"`
	Values []types.Number `json:"values" yaml:"values"`
}

// NewCell creates a cell from plain values.
func NewCell(x, y int, values ...float64) *Cell {
	return &Cell{X: x, Y: y, Values: types.Numbers(values...)}
}

// Width returns the row width including coordinates.
func (c *Cell) Width() int {
	return len(c.Values) + 2
}

// ModelCount returns the number of models the layout refers to.
func (l *Layout) ModelCount() int {
	if len(l.Models) > 0 {
		return len(l.Models)
	}
	return len(l.ModelFiles)
}

// ModelNames returns model names, derived from files when models are not loaded.
func (l *Layout) ModelNames() []string {
	if len(l.Models) > 0 {
		names := make([]string, len(l.Models))
		for i, model := range l.Models {
			names[i] = model.Name
		}
		return names
	}
	names := make([]string, len(l.ModelFiles))
	for i, file := range l.ModelFiles {
		base := path.Base(file)
		names[i] = strings.TrimSuffix(base, path.Ext(base))
	}
	return names
}

// RefreshWidth returns the expected local refresh row width.
func (l *Layout) RefreshWidth() int {
	return len(l.Media) + 2
}

// StaticWidth returns the expected local static row width.
func (l *Layout) StaticWidth() int {
	return 2*len(l.Media) + 2
}

// PopulationWidth returns the expected custom population row width.
func (l *Layout) PopulationWidth() int {
	return l.ModelCount() + 2
}

// InGrid reports whether (x, y) falls inside the grid.
func (l *Layout) InGrid(x, y int) bool {
	if len(l.Grid) < 2 {
		return false
	}
	return x >= 0 && y >= 0 && x < l.Grid[0] && y < l.Grid[1]
}

// CheckCell validates a local row against width and grid, returning nil when valid.
func (l *Layout) CheckCell(block string, line int, cell *Cell, width int) *types.Issue {
	if cell.Width() != width {
		return types.NewCorruptLineError(block, line, width, cell.Width())
	}
	if !l.InGrid(cell.X, cell.Y) {
		return types.NewOutOfGridError(block, line, cell.X, cell.Y, l.Grid)
	}
	return nil
}

// SetDiffusion enables the diffusion block.
func (l *Layout) SetDiffusion(global float64) {
	l.Diffusion = &Diffusion{Global: global}
}

// AddRefresh enables the refresh block and appends a local row.
func (l *Layout) AddRefresh(cell *Cell) error {
	if issue := l.CheckCell(RefreshKeyword, 0, cell, l.RefreshWidth()); issue != nil {
		return issue
	}
	if l.Refresh == nil {
		l.Refresh = &Refresh{}
	}
	l.Refresh.Cells = append(l.Refresh.Cells, cell)
	return nil
}

// AddStatic appends a local static row.
func (l *Layout) AddStatic(cell *Cell) error {
	if issue := l.CheckCell(StaticKeyword, 0, cell, l.StaticWidth()); issue != nil {
		return issue
	}
	l.Static.Cells = append(l.Static.Cells, cell)
	return nil
}

// AddModel appends a model, extending the media table with its exchanged
// metabolites and every custom population row with a zero biomass column.
func (l *Layout) AddModel(model *metabolic.Model) {
	l.Models = append(l.Models, model)
	for _, name := range model.ExchangedMetabolites() {
		l.AddMetabolite(name)
	}
	if l.Population.Custom() {
		for _, cell := range l.Population.Cells {
			cell.Values = append(cell.Values, types.NewNumber(0))
		}
	}
}

// Validate returns every structural problem of the layout.
func (l *Layout) Validate() types.Issues {
	var issues types.Issues
	if len(l.Grid) < 2 {
		issues.Add(types.NewCorruptValueError(GridKeyword, 0, "expected at least 2 grid dimensions, got %d", len(l.Grid)))
	}
	for _, dim := range l.Grid {
		if dim <= 0 {
			issues.Add(types.NewCorruptValueError(GridKeyword, 0, "grid dimension %d is not positive", dim))
		}
	}
	seen := map[string]bool{}
	for _, entry := range l.Media {
		if seen[entry.Metabolite] {
			issues.Add(types.NewCorruptValueError(MediaKeyword, 0, "duplicate metabolite %v", entry.Metabolite))
		}
		seen[entry.Metabolite] = true
	}
	if l.Refresh != nil {
		for _, cell := range l.Refresh.Cells {
			issues.Add(l.CheckCell(RefreshKeyword, 0, cell, l.RefreshWidth()))
		}
	}
	for _, cell := range l.Static.Cells {
		issues.Add(l.CheckCell(StaticKeyword, 0, cell, l.StaticWidth()))
	}
	if l.Population.Custom() {
		for _, cell := range l.Population.Cells {
			issues.Add(l.CheckCell(PopulationKeyword, 0, cell, l.PopulationWidth()))
		}
	} else if !IsGenerator(l.Population.Generator) {
		issues.Add(types.NewCorruptValueError(PopulationKeyword, 0, "unknown generator %v", l.Population.Generator))
	}
	return issues
}

// String returns a short description.
func (l *Layout) String() string {
	return fmt.Sprintf("layout(grid=%v, models=%v, media=%d)", l.Grid, l.ModelNames(), len(l.Media))
}
