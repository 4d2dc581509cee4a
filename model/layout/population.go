package layout

import "github.com/viant/comets/model/types"

// Initial population generators understood by the engine.
const (
	GeneratorRandom     = "random"
	GeneratorRandomRect = "random_rect"
	GeneratorFilled     = "filled"
	GeneratorFilledRect = "filled_rect"
	GeneratorSquare     = "square"
)

// Generators lists the named population generators.
var Generators = []string{GeneratorRandom, GeneratorRandomRect, GeneratorFilled, GeneratorFilledRect, GeneratorSquare}

// IsGenerator reports whether name is a population generator.
func IsGenerator(name string) bool {
	for _, candidate := range Generators {
		if candidate == name {
			return true
		}
	}
	return false
}

// Population is either a named generator with parameters, or custom rows of
// (x, y, biomass per model).
type Population struct {
	Generator string         `json:"generator,omitempty" yaml:"generator,omitempty"`
	Params    []types.Number `json:"params,omitempty" yaml:"params,omitempty"`
	Cells     []*Cell        `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// Custom reports whether the population is given as explicit rows.
func (p *Population) Custom() bool {
	return p.Generator == ""
}

// SetGenerator switches to generator mode.
func (l *Layout) SetGenerator(name string, params ...float64) error {
	if !IsGenerator(name) {
		return types.NewCorruptValueError(PopulationKeyword, 0, "unknown generator %v", name)
	}
	l.Population = Population{Generator: name, Params: types.Numbers(params...)}
	return nil
}

// AddPopulation switches to custom mode and appends a row.
func (l *Layout) AddPopulation(cell *Cell) error {
	if issue := l.CheckCell(PopulationKeyword, 0, cell, l.PopulationWidth()); issue != nil {
		return issue
	}
	if !l.Population.Custom() {
		l.Population = Population{}
	}
	l.Population.Cells = append(l.Population.Cells, cell)
	return nil
}
