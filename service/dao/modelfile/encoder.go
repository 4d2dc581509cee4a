package modelfile

import (
	"strconv"
	"strings"

	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/section"
)

// DefaultIndent is the native dialect body indent.
const DefaultIndent = "    "

// Encoder renders models in the native dialect.
type Encoder struct {
	writer *section.Writer
}

// Encode normalizes model and renders it. Nothing is rendered when the model
// fails validation.
func (e *Encoder) Encode(model *metabolic.Model) ([]byte, error) {
	model.Normalize()
	if err := model.Validate().Err(); err != nil {
		return nil, err
	}
	blocks := []*section.Block{
		e.smatrix(model),
		e.bounds(model),
		section.NewBlock(ObjectiveKeyword).AddLine(strconv.Itoa(model.Objective)),
		e.metabolites(model),
		e.reactions(model),
		e.exchange(model),
	}
	for _, kind := range metabolic.Kinetics {
		if model.HasKinetics(kind) || model.HasKineticDefault(kind) {
			blocks = append(blocks, e.kinetics(model, kind))
		}
	}
	blocks = append(blocks,
		section.NewBlock(ObjectiveStyleKeyword).AddLine(string(model.ObjectiveStyle)),
		section.NewBlock(OptimizerKeyword, model.Optimizer),
	)
	return e.writer.Encode(blocks...), nil
}

func (e *Encoder) smatrix(model *metabolic.Model) *section.Block {
	block := section.NewBlock(SMatrixKeyword, strconv.Itoa(len(model.Metabolites)), strconv.Itoa(len(model.Reactions)))
	for _, entry := range model.Stoichiometry {
		block.AddLine(strconv.Itoa(entry.Metabolite), strconv.Itoa(entry.Reaction), types.FormatFloat(entry.Coefficient))
	}
	return block
}

// bounds writes only reactions whose bounds differ from the model default.
func (e *Encoder) bounds(model *metabolic.Model) *section.Block {
	defaults := model.DefaultBounds
	block := section.NewBlock(BoundsKeyword, types.FormatFloat(defaults.Lower), types.FormatFloat(defaults.Upper))
	for _, reaction := range model.Reactions {
		if reaction.Bounds() == defaults {
			continue
		}
		block.AddLine(strconv.Itoa(reaction.ID), types.FormatFloat(reaction.Lower), types.FormatFloat(reaction.Upper))
	}
	return block
}

func (e *Encoder) metabolites(model *metabolic.Model) *section.Block {
	block := section.NewBlock(MetaboliteNamesKeyword)
	for _, metabolite := range model.Metabolites {
		block.AddLine(metabolite.Name)
	}
	return block
}

func (e *Encoder) reactions(model *metabolic.Model) *section.Block {
	block := section.NewBlock(ReactionNamesKeyword)
	for _, reaction := range model.Reactions {
		block.AddLine(reaction.Name)
	}
	return block
}

func (e *Encoder) exchange(model *metabolic.Model) *section.Block {
	block := section.NewBlock(ExchangeKeyword)
	var ids []string
	for _, reaction := range model.ExchangeReactions() {
		ids = append(ids, strconv.Itoa(reaction.ID))
	}
	if len(ids) > 0 {
		block.AddLine(strings.Join(ids, " "))
	}
	return block
}

func (e *Encoder) kinetics(model *metabolic.Model, kind metabolic.Kinetic) *section.Block {
	block := section.NewBlock(kind.Keyword(), types.FormatFloat(model.KineticDefault(kind)))
	for _, reaction := range model.ExchangeReactions() {
		if value := reaction.Kinetic(kind); value != nil {
			block.AddLine(strconv.Itoa(reaction.ExchangeIndex), types.FormatFloat(*value))
		}
	}
	return block
}

// NewEncoder creates an encoder with the supplied body indent.
func NewEncoder(indent string) *Encoder {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Encoder{writer: section.NewWriter(indent)}
}

// Encode renders model with the default indent.
func Encode(model *metabolic.Model) ([]byte, error) {
	return NewEncoder(DefaultIndent).Encode(model)
}
