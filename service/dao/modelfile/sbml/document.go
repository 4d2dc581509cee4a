package sbml

import "context"

// Reader parses SBML content into a Document.
type Reader interface {
	Read(ctx context.Context, data []byte) (*Document, error)
}

// Document is the parsed subset of an SBML model needed to build a
// metabolic model. Identifiers are already clipped of the M_ and R_ prefixes.
type Document struct {
	ID        string
	Species   []string
	Reactions []*Reaction
	// DefaultBounds, when set, replaces the engine default (0, 1000).
	DefaultBounds *[2]float64
	DefaultVmax   *float64
	DefaultKm     *float64
	DefaultHill   *float64
}

// Reaction is an SBML reaction with resolved bounds.
type Reaction struct {
	ID          string
	Lower       float64
	Upper       float64
	Objective   float64
	Metabolites []*SpeciesReference
	Vmax        *float64
	Km          *float64
	Hill        *float64
}

// SpeciesReference is a reaction participant; reactants carry a negative
// coefficient.
type SpeciesReference struct {
	Species     string
	Coefficient float64
}

// AddReaction appends a reaction with the supplied bounds.
func (d *Document) AddReaction(id string, lower, upper float64) *Reaction {
	ret := &Reaction{ID: id, Lower: lower, Upper: upper}
	d.Reactions = append(d.Reactions, ret)
	return ret
}

// Add appends a participant.
func (r *Reaction) Add(species string, coefficient float64) *Reaction {
	r.Metabolites = append(r.Metabolites, &SpeciesReference{Species: species, Coefficient: coefficient})
	return r
}
