package modelfile

import (
	"strconv"
	"strings"

	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/section"
)

// Native dialect block keywords.
const (
	SMatrixKeyword         = "SMATRIX"
	BoundsKeyword          = "BOUNDS"
	ObjectiveKeyword       = "OBJECTIVE"
	MetaboliteNamesKeyword = "METABOLITE_NAMES"
	ReactionNamesKeyword   = "REACTION_NAMES"
	ExchangeKeyword        = "EXCHANGE_REACTIONS"
	ObjectiveStyleKeyword  = "OBJECTIVE_STYLE"
	OptimizerKeyword       = "OPTIMIZER"
)

// Decode parses a native dialect model. Stoichiometry rows referencing
// unallocated metabolites are dropped and reported; any other structural
// problem aborts the parse.
func Decode(name string, data []byte) (*metabolic.Model, types.Issues, error) {
	doc := section.Parse(data)
	model := metabolic.New(name)
	var issues types.Issues

	smatrix, err := doc.Section(SMatrixKeyword)
	if err != nil {
		return nil, nil, err
	}
	counts, err := parseInts(SMatrixKeyword, smatrix.Line, smatrix.Header, 2)
	if err != nil {
		return nil, nil, err
	}
	metaboliteCount, reactionCount := counts[0], counts[1]

	if err = decodeNames(doc, MetaboliteNamesKeyword, metaboliteCount, func(name string) { model.AddMetabolite(name) }); err != nil {
		return nil, nil, err
	}
	bounds, err := doc.Section(BoundsKeyword)
	if err != nil {
		return nil, nil, err
	}
	defaults, err := parseFloats(BoundsKeyword, bounds.Line, bounds.Header, 2)
	if err != nil {
		return nil, nil, err
	}
	model.DefaultBounds = metabolic.Bounds{Lower: defaults[0], Upper: defaults[1]}
	if err = decodeNames(doc, ReactionNamesKeyword, reactionCount, func(name string) { model.AddReaction(name) }); err != nil {
		return nil, nil, err
	}

	for _, row := range smatrix.Rows {
		if len(row.Fields) != 3 {
			return nil, nil, types.NewCorruptLineError(SMatrixKeyword, row.Number, 3, len(row.Fields))
		}
		ids, err := parseInts(SMatrixKeyword, row.Number, row.Fields[:2], 2)
		if err != nil {
			return nil, nil, err
		}
		coefficient, err := parseFloat(SMatrixKeyword, row.Number, row.Fields[2])
		if err != nil {
			return nil, nil, err
		}
		if ids[1] < 1 || ids[1] > reactionCount {
			return nil, nil, types.NewCorruptValueError(SMatrixKeyword, row.Number, "reaction index %d outside [1, %d]", ids[1], reactionCount)
		}
		if ids[0] < 1 || ids[0] > metaboliteCount {
			issues.Add(types.NewUnallocatedMetaboliteError(SMatrixKeyword, row.Number, ids[0], 1, metaboliteCount))
			continue
		}
		model.AddStoichiometry(ids[0], ids[1], coefficient)
	}

	for _, row := range bounds.Rows {
		if len(row.Fields) != 3 {
			return nil, nil, types.NewCorruptLineError(BoundsKeyword, row.Number, 3, len(row.Fields))
		}
		id, err := parseInt(BoundsKeyword, row.Number, row.Fields[0])
		if err != nil {
			return nil, nil, err
		}
		values, err := parseFloats(BoundsKeyword, row.Number, row.Fields[1:], 2)
		if err != nil {
			return nil, nil, err
		}
		reaction := model.Reaction(id)
		if reaction == nil {
			return nil, nil, types.NewCorruptValueError(BoundsKeyword, row.Number, "reaction index %d outside [1, %d]", id, reactionCount)
		}
		reaction.Lower, reaction.Upper = values[0], values[1]
	}

	if err = decodeObjective(doc, model); err != nil {
		return nil, nil, err
	}
	if err = decodeExchange(doc, model); err != nil {
		return nil, nil, err
	}
	for _, kind := range metabolic.Kinetics {
		if err = decodeKinetics(doc, model, kind); err != nil {
			return nil, nil, err
		}
	}
	model.Reindex()

	style, err := doc.OptionalSection(ObjectiveStyleKeyword)
	if err != nil {
		return nil, nil, err
	}
	if style != nil {
		if len(style.Rows) != 1 {
			return nil, nil, types.NewCorruptValueError(ObjectiveStyleKeyword, style.Line, "expected 1 line, got %d", len(style.Rows))
		}
		model.ObjectiveStyle = metabolic.ObjectiveStyle(strings.TrimSpace(style.Rows[0].Text))
	}
	if index := doc.Index(OptimizerKeyword); index != -1 {
		line := doc.Line(index)
		if len(line.Fields) != 2 {
			return nil, nil, types.NewCorruptLineError(OptimizerKeyword, line.Number, 2, len(line.Fields))
		}
		model.Optimizer = line.Fields[1]
	}
	return model, issues, nil
}

func decodeNames(doc *section.Document, keyword string, expected int, add func(name string)) error {
	names, err := doc.Section(keyword)
	if err != nil {
		return err
	}
	for _, row := range names.Rows {
		if len(row.Fields) != 1 {
			return types.NewCorruptLineError(keyword, row.Number, 1, len(row.Fields))
		}
		add(row.Fields[0])
	}
	if len(names.Rows) != expected {
		return types.NewCorruptValueError(keyword, names.Line, "%s declares %d entries, got %d", SMatrixKeyword, expected, len(names.Rows))
	}
	return nil
}

func decodeObjective(doc *section.Document, model *metabolic.Model) error {
	objective, err := doc.Section(ObjectiveKeyword)
	if err != nil {
		return err
	}
	if len(objective.Rows) != 1 {
		return types.NewCorruptValueError(ObjectiveKeyword, objective.Line, "expected 1 line, got %d", len(objective.Rows))
	}
	row := objective.Rows[0]
	if len(row.Fields) != 1 {
		return types.NewCorruptLineError(ObjectiveKeyword, row.Number, 1, len(row.Fields))
	}
	id, err := parseInt(ObjectiveKeyword, row.Number, row.Fields[0])
	if err != nil {
		return err
	}
	if model.Reaction(id) == nil {
		return types.NewCorruptValueError(ObjectiveKeyword, row.Number, "reaction index %d outside [1, %d]", id, len(model.Reactions))
	}
	model.Objective = id
	return nil
}

// decodeExchange reads the single line of exchange reaction ids. Exchange
// indices follow the list order as written, since kinetic rows are keyed by
// them. More than one body line means the terminator is missing and the next
// block was swallowed.
func decodeExchange(doc *section.Document, model *metabolic.Model) error {
	exchange, err := doc.Section(ExchangeKeyword)
	if err != nil {
		return err
	}
	if len(exchange.Rows) > 1 {
		return types.NewUnterminatedSectionError(ExchangeKeyword, exchange.Line)
	}
	if len(exchange.Rows) == 0 {
		return nil
	}
	row := exchange.Rows[0]
	for i, field := range row.Fields {
		id, err := parseInt(ExchangeKeyword, row.Number, field)
		if err != nil {
			return err
		}
		reaction := model.Reaction(id)
		if reaction == nil {
			return types.NewCorruptValueError(ExchangeKeyword, row.Number, "reaction index %d outside [1, %d]", id, len(model.Reactions))
		}
		if reaction.Exchange {
			return types.NewCorruptValueError(ExchangeKeyword, row.Number, "reaction index %d listed twice", id)
		}
		reaction.Exchange = true
		reaction.ExchangeIndex = i + 1
	}
	return nil
}

func decodeKinetics(doc *section.Document, model *metabolic.Model, kind metabolic.Kinetic) error {
	keyword := kind.Keyword()
	block, err := doc.OptionalSection(keyword)
	if err != nil || block == nil {
		return err
	}
	value, err := parseFloats(keyword, block.Line, block.Header, 1)
	if err != nil {
		return err
	}
	model.SetKineticDefault(kind, value[0])
	for _, row := range block.Rows {
		if len(row.Fields) != 2 {
			return types.NewCorruptLineError(keyword, row.Number, 2, len(row.Fields))
		}
		index, err := parseInt(keyword, row.Number, row.Fields[0])
		if err != nil {
			return err
		}
		value, err := parseFloat(keyword, row.Number, row.Fields[1])
		if err != nil {
			return err
		}
		reaction := model.ExchangeReaction(index)
		if reaction == nil {
			return types.NewCorruptValueError(keyword, row.Number, "exchange index %d not allocated", index)
		}
		reaction.SetKinetic(kind, value)
	}
	return nil
}

func parseInts(block string, line int, fields []string, expected int) ([]int, error) {
	if len(fields) != expected {
		return nil, types.NewCorruptLineError(block, line, expected, len(fields))
	}
	result := make([]int, len(fields))
	for i, field := range fields {
		value, err := parseInt(block, line, field)
		if err != nil {
			return nil, err
		}
		result[i] = value
	}
	return result, nil
}

func parseFloats(block string, line int, fields []string, expected int) ([]float64, error) {
	if len(fields) != expected {
		return nil, types.NewCorruptLineError(block, line, expected, len(fields))
	}
	result := make([]float64, len(fields))
	for i, field := range fields {
		value, err := parseFloat(block, line, field)
		if err != nil {
			return nil, err
		}
		result[i] = value
	}
	return result, nil
}

func parseInt(block string, line int, field string) (int, error) {
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, types.NewCorruptValueError(block, line, "invalid integer %q", field)
	}
	return value, nil
}

func parseFloat(block string, line int, field string) (float64, error) {
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, types.NewCorruptValueError(block, line, "invalid number %q", field)
	}
	return value, nil
}
