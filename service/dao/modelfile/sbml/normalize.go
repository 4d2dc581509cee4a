package sbml

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/types"
)

// DemandMarker excludes demand reactions from exchange detection.
const DemandMarker = "DM_"

// IsExchange reports whether reaction is an exchange: exactly one participant
// consumed with coefficient -1 and not a demand reaction.
func IsExchange(reaction *Reaction) bool {
	if len(reaction.Metabolites) != 1 {
		return false
	}
	return reaction.Metabolites[0].Coefficient == -1 && !strings.Contains(reaction.ID, DemandMarker)
}

// Normalize converts doc into a metabolic model. The model is named after the
// document id, or model_<runID> when the document has none. References to
// undeclared species are dropped and reported.
func Normalize(doc *Document, runID string) (*metabolic.Model, types.Issues, error) {
	name := doc.ID
	if name == "" {
		name = "model"
		if runID != "" {
			name += "_" + runID
		}
	}
	model := metabolic.New(name)
	if doc.DefaultBounds != nil {
		model.DefaultBounds = metabolic.Bounds{Lower: doc.DefaultBounds[0], Upper: doc.DefaultBounds[1]}
	}
	if doc.DefaultVmax != nil {
		model.SetKineticDefault(metabolic.Vmax, *doc.DefaultVmax)
	}
	if doc.DefaultKm != nil {
		model.SetKineticDefault(metabolic.Km, *doc.DefaultKm)
	}
	if doc.DefaultHill != nil {
		model.SetKineticDefault(metabolic.Hill, *doc.DefaultHill)
	}

	index := map[string]int{}
	for _, species := range doc.Species {
		index[species] = model.AddMetabolite(species).ID
	}

	var issues types.Issues
	var objectives []*metabolic.Reaction
	for _, source := range doc.Reactions {
		reaction := model.AddReaction(source.ID)
		reaction.Lower, reaction.Upper = source.Lower, source.Upper
		reaction.Exchange = IsExchange(source)
		if reaction.Exchange {
			reaction.Vmax, reaction.Km, reaction.Hill = source.Vmax, source.Km, source.Hill
		}
		if source.Objective != 0 {
			objectives = append(objectives, reaction)
		}
		coefficients := map[int]float64{}
		for _, participant := range source.Metabolites {
			id, ok := index[participant.Species]
			if !ok {
				issues.Add(&types.Issue{Kind: types.ErrUnallocatedMetabolite, Block: "SMATRIX",
					Message: fmt.Sprintf("reaction %v references undeclared species %v", source.ID, participant.Species)})
				continue
			}
			coefficients[id] += participant.Coefficient
		}
		ids := make([]int, 0, len(coefficients))
		for id := range coefficients {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			model.AddStoichiometry(id, reaction.ID, coefficients[id])
		}
	}

	if len(objectives) != 1 {
		var names []string
		for _, reaction := range objectives {
			names = append(names, reaction.Name)
		}
		return nil, issues, fmt.Errorf("%w: %v: expected 1 reaction with nonzero objective coefficient, got %d %v",
			types.ErrObjective, name, len(objectives), names)
	}
	model.Objective = objectives[0].ID
	model.Normalize()
	return model, issues, nil
}
