package metabolic

import (
	"fmt"
	"sort"

	"github.com/viant/comets/model/types"
)

// ObjectiveStyle names the optimisation objective used by the engine.
type ObjectiveStyle string

const (
	MaximizeObjectiveFlux ObjectiveStyle = "MAXIMIZE_OBJECTIVE_FLUX"
	MinimizeTotalFlux     ObjectiveStyle = "MAX_OBJECTIVE_MIN_TOTAL"
)

const (
	// DefaultOptimizer is used when the source does not name one.
	DefaultOptimizer = "GUROBI"

	DefaultVmax = 10.0
	DefaultKm   = 1.0
	DefaultHill = 1.0
)

// Bounds is a (lower, upper) flux pair.
type Bounds struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// DefaultBounds returns the bounds applied when a source is silent.
func DefaultBounds() Bounds {
	return Bounds{Lower: 0, Upper: 1000}
}

// Stoichiometry is one sparse (metabolite, reaction, coefficient) entry.
type Stoichiometry struct {
	Metabolite  int     `json:"metabolite" yaml:"metabolite"`
	Reaction    int     `json:"reaction" yaml:"reaction"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
}

// Metabolite is identified by its 1-based declaration position.
type Metabolite struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Model is the canonical, dialect independent metabolic model.
type Model struct {
	Name           string           `json:"name" yaml:"name"`
	Reactions      []*Reaction      `json:"reactions" yaml:"reactions"`
	Metabolites    []*Metabolite    `json:"metabolites" yaml:"metabolites"`
	Stoichiometry  []*Stoichiometry `json:"stoichiometry" yaml:"stoichiometry"`
	Objective      int              `json:"objective" yaml:"objective"`
	ObjectiveStyle ObjectiveStyle   `json:"objectiveStyle" yaml:"objectiveStyle"`
	Optimizer      string           `json:"optimizer" yaml:"optimizer"`
	DefaultBounds  Bounds           `json:"defaultBounds" yaml:"defaultBounds"`
	DefaultVmax    *float64         `json:"defaultVmax,omitempty" yaml:"defaultVmax,omitempty"`
	DefaultKm      *float64         `json:"defaultKm,omitempty" yaml:"defaultKm,omitempty"`
	DefaultHill    *float64         `json:"defaultHill,omitempty" yaml:"defaultHill,omitempty"`
}

// New creates an empty model with engine defaults.
func New(name string) *Model {
	return &Model{
		Name:           name,
		ObjectiveStyle: MaximizeObjectiveFlux,
		Optimizer:      DefaultOptimizer,
		DefaultBounds:  DefaultBounds(),
	}
}

// AddMetabolite appends a metabolite and returns it.
func (m *Model) AddMetabolite(name string) *Metabolite {
	metabolite := &Metabolite{ID: len(m.Metabolites) + 1, Name: name}
	m.Metabolites = append(m.Metabolites, metabolite)
	return metabolite
}

// AddReaction appends a reaction with default bounds and returns it.
func (m *Model) AddReaction(name string) *Reaction {
	reaction := &Reaction{ID: len(m.Reactions) + 1, Name: name, Lower: m.DefaultBounds.Lower, Upper: m.DefaultBounds.Upper}
	m.Reactions = append(m.Reactions, reaction)
	return reaction
}

// AddStoichiometry appends an entry.
func (m *Model) AddStoichiometry(metabolite, reaction int, coefficient float64) {
	m.Stoichiometry = append(m.Stoichiometry, &Stoichiometry{Metabolite: metabolite, Reaction: reaction, Coefficient: coefficient})
}

// Reaction returns the reaction with the given id.
func (m *Model) Reaction(id int) *Reaction {
	if id < 1 || id > len(m.Reactions) {
		return nil
	}
	return m.Reactions[id-1]
}

// ExchangeReaction returns the reaction at the 1-based exchange index.
func (m *Model) ExchangeReaction(index int) *Reaction {
	if index < 1 {
		return nil
	}
	for _, reaction := range m.Reactions {
		if reaction.ExchangeIndex == index {
			return reaction
		}
	}
	return nil
}

// Metabolite returns the metabolite with the given id.
func (m *Model) Metabolite(id int) *Metabolite {
	if id < 1 || id > len(m.Metabolites) {
		return nil
	}
	return m.Metabolites[id-1]
}

// ExchangeReactions returns exchange reactions in exchange-index order.
func (m *Model) ExchangeReactions() []*Reaction {
	var result []*Reaction
	for _, reaction := range m.Reactions {
		if reaction.Exchange {
			result = append(result, reaction)
		}
	}
	return result
}

// Reindex assigns dense reaction ids, metabolite ids and exchange indices in
// declaration order.
func (m *Model) Reindex() {
	exchange := 0
	for i, reaction := range m.Reactions {
		reaction.ID = i + 1
		reaction.ExchangeIndex = 0
		if reaction.Exchange {
			exchange++
			reaction.ExchangeIndex = exchange
		}
	}
	for i, metabolite := range m.Metabolites {
		metabolite.ID = i + 1
	}
}

// SortStoichiometry orders entries by (metabolite, reaction).
func (m *Model) SortStoichiometry() {
	sort.SliceStable(m.Stoichiometry, func(i, j int) bool {
		a, b := m.Stoichiometry[i], m.Stoichiometry[j]
		if a.Metabolite != b.Metabolite {
			return a.Metabolite < b.Metabolite
		}
		return a.Reaction < b.Reaction
	})
}

// Normalize prepares the model for emission.
func (m *Model) Normalize() {
	if m.ObjectiveStyle == "" {
		m.ObjectiveStyle = MaximizeObjectiveFlux
	}
	if m.Optimizer == "" {
		m.Optimizer = DefaultOptimizer
	}
	m.Reindex()
	m.SortStoichiometry()
}

// ExchangedMetabolites returns the names of metabolites taking part in
// exchange reactions, ordered by stoichiometry and without duplicates.
func (m *Model) ExchangedMetabolites() []string {
	exchange := map[int]bool{}
	for _, reaction := range m.Reactions {
		if reaction.Exchange {
			exchange[reaction.ID] = true
		}
	}
	seen := map[string]bool{}
	var result []string
	for _, entry := range m.Stoichiometry {
		if !exchange[entry.Reaction] {
			continue
		}
		metabolite := m.Metabolite(entry.Metabolite)
		if metabolite == nil || seen[metabolite.Name] {
			continue
		}
		seen[metabolite.Name] = true
		result = append(result, metabolite.Name)
	}
	return result
}

// HasKinetics reports whether any reaction carries the given kinetic value.
func (m *Model) HasKinetics(kind Kinetic) bool {
	for _, reaction := range m.Reactions {
		if reaction.Kinetic(kind) != nil {
			return true
		}
	}
	return false
}

// HasKineticDefault reports whether the model sets its own default for kind.
func (m *Model) HasKineticDefault(kind Kinetic) bool {
	switch kind {
	case Km:
		return m.DefaultKm != nil
	case Hill:
		return m.DefaultHill != nil
	}
	return m.DefaultVmax != nil
}

// KineticDefault returns the model default for kind, falling back to the
// engine default.
func (m *Model) KineticDefault(kind Kinetic) float64 {
	var value *float64
	fallback := DefaultVmax
	switch kind {
	case Vmax:
		value = m.DefaultVmax
	case Km:
		value, fallback = m.DefaultKm, DefaultKm
	case Hill:
		value, fallback = m.DefaultHill, DefaultHill
	}
	if value != nil {
		return *value
	}
	return fallback
}

// SetKineticDefault sets the model default for kind.
func (m *Model) SetKineticDefault(kind Kinetic, value float64) {
	switch kind {
	case Vmax:
		m.DefaultVmax = &value
	case Km:
		m.DefaultKm = &value
	case Hill:
		m.DefaultHill = &value
	}
}

// Validate performs structural validation of cross references. It does not
// check the network itself (mass balance, feasibility).
func (m *Model) Validate() types.Issues {
	var issues types.Issues
	for i, reaction := range m.Reactions {
		if reaction.ID != i+1 {
			issues.Add(types.NewCorruptValueError("REACTION_NAMES", 0, "reaction %v has id %d, expected %d", reaction.Name, reaction.ID, i+1))
		}
	}
	exchange := 0
	for _, reaction := range m.Reactions {
		expect := 0
		if reaction.Exchange {
			exchange++
			expect = exchange
		}
		if reaction.ExchangeIndex != expect {
			issues.Add(types.NewCorruptValueError("EXCHANGE_REACTIONS", 0, "reaction %v has exchange index %d, expected %d", reaction.Name, reaction.ExchangeIndex, expect))
		}
	}
	for _, reaction := range m.Reactions {
		for _, kind := range Kinetics {
			if reaction.Kinetic(kind) != nil && !reaction.Exchange {
				issues.Add(types.NewCorruptValueError(kind.Keyword(), 0, "reaction %v is not an exchange reaction", reaction.Name))
			}
		}
	}
	for _, entry := range m.Stoichiometry {
		if entry.Metabolite < 1 || entry.Metabolite > len(m.Metabolites) {
			issues.Add(types.NewUnallocatedMetaboliteError("SMATRIX", 0, entry.Metabolite, 1, len(m.Metabolites)))
		}
		if entry.Reaction < 1 || entry.Reaction > len(m.Reactions) {
			issues.Add(types.NewCorruptValueError("SMATRIX", 0, "reaction index %d outside [1, %d]", entry.Reaction, len(m.Reactions)))
		}
	}
	if m.Reaction(m.Objective) == nil {
		issues.Add(&types.Issue{Kind: types.ErrObjective, Block: "OBJECTIVE", Message: fmt.Sprintf("objective reaction %d undefined", m.Objective)})
	}
	return issues
}
