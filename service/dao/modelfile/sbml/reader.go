package sbml

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/viant/comets/model/types"
)

// Prefixes clipped from SBML identifiers.
const (
	SpeciesPrefix  = "M_"
	ReactionPrefix = "R_"
)

// Model level parameter ids recognised as defaults.
const (
	DefaultLowerBoundParameter = "default_lower_bound"
	DefaultUpperBoundParameter = "default_upper_bound"
	DefaultVmaxParameter       = "default_vmax"
	DefaultKmParameter         = "default_km"
	DefaultHillParameter       = "default_hill"
)

// Bounds used when a reaction declares neither fbc bounds nor kinetic law
// bound parameters.
const (
	FallbackLowerBound = -1000.0
	FallbackUpperBound = 1000.0
)

type (
	xmlDocument struct {
		XMLName xml.Name `xml:"sbml"`
		Model   xmlModel `xml:"model"`
	}

	xmlModel struct {
		ID         string          `xml:"id,attr"`
		Parameters []xmlParameter  `xml:"listOfParameters>parameter"`
		Species    []xmlSpecies    `xml:"listOfSpecies>species"`
		Reactions  []xmlReaction   `xml:"listOfReactions>reaction"`
		Objectives xmlObjectiveSet `xml:"listOfObjectives"`
	}

	xmlParameter struct {
		ID    string `xml:"id,attr"`
		Value string `xml:"value,attr"`
	}

	xmlSpecies struct {
		ID string `xml:"id,attr"`
	}

	xmlReaction struct {
		ID         string         `xml:"id,attr"`
		Reversible string         `xml:"reversible,attr"`
		Lower      string         `xml:"lowerFluxBound,attr"`
		Upper      string         `xml:"upperFluxBound,attr"`
		Reactants  []xmlReference `xml:"listOfReactants>speciesReference"`
		Products   []xmlReference `xml:"listOfProducts>speciesReference"`
		Kinetic    *xmlKineticLaw `xml:"kineticLaw"`
	}

	xmlReference struct {
		Species       string `xml:"species,attr"`
		Stoichiometry string `xml:"stoichiometry,attr"`
	}

	xmlKineticLaw struct {
		Parameters      []xmlParameter `xml:"listOfParameters>parameter"`
		LocalParameters []xmlParameter `xml:"listOfLocalParameters>localParameter"`
	}

	xmlObjectiveSet struct {
		Active     string         `xml:"activeObjective,attr"`
		Objectives []xmlObjective `xml:"objective"`
	}

	xmlObjective struct {
		ID     string             `xml:"id,attr"`
		Fluxes []xmlFluxObjective `xml:"listOfFluxObjectives>fluxObjective"`
	}

	xmlFluxObjective struct {
		Reaction    string `xml:"reaction,attr"`
		Coefficient string `xml:"coefficient,attr"`
	}
)

// XMLReader reads SBML level 2 and level 3 (fbc) documents.
type XMLReader struct{}

// Read parses data. Flux bounds come from fbc bound parameters when present,
// then from LOWER_BOUND/UPPER_BOUND kinetic law parameters; objective
// coefficients come from the active fbc objective or OBJECTIVE_COEFFICIENT
// kinetic law parameters.
func (r *XMLReader) Read(ctx context.Context, data []byte) (*Document, error) {
	src := &xmlDocument{}
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(src); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnrecognizedFormat, err)
	}
	model := &src.Model
	parameters := map[string]float64{}
	for _, parameter := range model.Parameters {
		value, err := parseValue(parameter.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %v: %w", parameter.ID, err)
		}
		parameters[parameter.ID] = value
	}
	ret := &Document{ID: model.ID}
	lower, hasLower := parameters[DefaultLowerBoundParameter]
	upper, hasUpper := parameters[DefaultUpperBoundParameter]
	if hasLower || hasUpper {
		bounds := [2]float64{0, 1000}
		if hasLower {
			bounds[0] = lower
		}
		if hasUpper {
			bounds[1] = upper
		}
		ret.DefaultBounds = &bounds
	}
	ret.DefaultVmax = lookup(parameters, DefaultVmaxParameter)
	ret.DefaultKm = lookup(parameters, DefaultKmParameter)
	ret.DefaultHill = lookup(parameters, DefaultHillParameter)

	for _, species := range model.Species {
		ret.Species = append(ret.Species, strings.TrimPrefix(species.ID, SpeciesPrefix))
	}
	objectives, err := model.objectiveCoefficients()
	if err != nil {
		return nil, err
	}
	for _, source := range model.Reactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reaction, err := source.reaction(parameters)
		if err != nil {
			return nil, err
		}
		if coefficient, ok := objectives[source.ID]; ok {
			reaction.Objective = coefficient
		}
		ret.Reactions = append(ret.Reactions, reaction)
	}
	return ret, nil
}

func (m *xmlModel) objectiveCoefficients() (map[string]float64, error) {
	result := map[string]float64{}
	var active *xmlObjective
	for i := range m.Objectives.Objectives {
		candidate := &m.Objectives.Objectives[i]
		if active == nil || candidate.ID == m.Objectives.Active {
			active = candidate
		}
	}
	if active == nil {
		return result, nil
	}
	for _, flux := range active.Fluxes {
		value, err := parseValue(flux.Coefficient)
		if err != nil {
			return nil, fmt.Errorf("invalid objective coefficient of %v: %w", flux.Reaction, err)
		}
		result[flux.Reaction] = value
	}
	return result, nil
}

func (x *xmlReaction) reaction(parameters map[string]float64) (*Reaction, error) {
	ret := &Reaction{ID: strings.TrimPrefix(x.ID, ReactionPrefix), Lower: FallbackLowerBound, Upper: FallbackUpperBound}
	if x.Reversible == "false" {
		ret.Lower = 0
	}
	law := map[string]float64{}
	if x.Kinetic != nil {
		for _, parameter := range append(x.Kinetic.Parameters, x.Kinetic.LocalParameters...) {
			value, err := parseValue(parameter.Value)
			if err != nil {
				return nil, fmt.Errorf("invalid kinetic parameter %v of %v: %w", parameter.ID, x.ID, err)
			}
			law[strings.ToUpper(parameter.ID)] = value
		}
	}
	if value, ok := law["LOWER_BOUND"]; ok {
		ret.Lower = value
	}
	if value, ok := law["UPPER_BOUND"]; ok {
		ret.Upper = value
	}
	if value, ok := law["OBJECTIVE_COEFFICIENT"]; ok {
		ret.Objective = value
	}
	ret.Vmax = lookup(law, "VMAX")
	ret.Km = lookup(law, "KM")
	ret.Hill = lookup(law, "HILL")

	if x.Lower != "" {
		value, ok := parameters[x.Lower]
		if !ok {
			return nil, fmt.Errorf("reaction %v: undefined lower bound parameter %v", x.ID, x.Lower)
		}
		ret.Lower = value
	}
	if x.Upper != "" {
		value, ok := parameters[x.Upper]
		if !ok {
			return nil, fmt.Errorf("reaction %v: undefined upper bound parameter %v", x.ID, x.Upper)
		}
		ret.Upper = value
	}
	for _, reference := range x.Reactants {
		coefficient, err := reference.coefficient()
		if err != nil {
			return nil, err
		}
		ret.Add(strings.TrimPrefix(reference.Species, SpeciesPrefix), -coefficient)
	}
	for _, reference := range x.Products {
		coefficient, err := reference.coefficient()
		if err != nil {
			return nil, err
		}
		ret.Add(strings.TrimPrefix(reference.Species, SpeciesPrefix), coefficient)
	}
	return ret, nil
}

func (x *xmlReference) coefficient() (float64, error) {
	if x.Stoichiometry == "" {
		return 1, nil
	}
	value, err := parseValue(x.Stoichiometry)
	if err != nil {
		return 0, fmt.Errorf("invalid stoichiometry of %v: %w", x.Species, err)
	}
	return value, nil
}

func lookup(values map[string]float64, key string) *float64 {
	if value, ok := values[key]; ok {
		return &value
	}
	return nil
}

// parseValue accepts SBML numeric literals including INF and -INF.
func parseValue(text string) (float64, error) {
	text = strings.TrimSpace(text)
	switch strings.ToUpper(text) {
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(text, 64)
}

// NewXMLReader creates the default SBML reader.
func NewXMLReader() *XMLReader {
	return &XMLReader{}
}
