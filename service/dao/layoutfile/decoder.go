package layoutfile

import (
	"math"
	"strconv"

	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/section"
)

// Decode parses a layout file. Model files are listed but not loaded. Local
// rows failing width or grid checks are skipped and reported as issues.
func Decode(data []byte) (*layout.Layout, types.Issues, error) {
	doc := section.Parse(data)
	ret := &layout.Layout{}
	var issues types.Issues

	index := doc.Index(layout.ModelFileKeyword)
	if index == -1 {
		return nil, nil, types.NewSectionNotFoundError(layout.ModelFileKeyword)
	}
	ret.ModelFiles = append([]string{}, doc.Line(index).Fields[1:]...)

	if err := decodeGrid(doc, ret); err != nil {
		return nil, nil, err
	}
	if err := decodeMedia(doc, ret, &issues); err != nil {
		return nil, nil, err
	}
	if err := decodeDiffusion(doc, ret, &issues); err != nil {
		return nil, nil, err
	}
	if err := decodeRefresh(doc, ret, &issues); err != nil {
		return nil, nil, err
	}
	if err := decodeStatic(doc, ret, &issues); err != nil {
		return nil, nil, err
	}
	if err := decodePopulation(doc, ret, &issues); err != nil {
		return nil, nil, err
	}
	return ret, issues, nil
}

func decodeGrid(doc *section.Document, ret *layout.Layout) error {
	index := doc.Index(layout.GridKeyword)
	if index == -1 {
		return types.NewSectionNotFoundError(layout.GridKeyword)
	}
	line := doc.Line(index)
	dims := line.Fields[1:]
	if len(dims) < 2 {
		return types.NewCorruptLineError(layout.GridKeyword, line.Number, 2, len(dims))
	}
	for _, field := range dims {
		dim, err := strconv.Atoi(field)
		if err != nil || dim <= 0 {
			return types.NewCorruptValueError(layout.GridKeyword, line.Number, "invalid grid dimension %q", field)
		}
		ret.Grid = append(ret.Grid, dim)
	}
	return nil
}

func decodeMedia(doc *section.Document, ret *layout.Layout, issues *types.Issues) error {
	media, err := doc.Section(layout.MediaKeyword)
	if err != nil {
		return err
	}
	for _, row := range media.Rows {
		if len(row.Fields) != 2 {
			return types.NewCorruptLineError(layout.MediaKeyword, row.Number, 2, len(row.Fields))
		}
		amount, err := strconv.ParseFloat(row.Fields[1], 64)
		if err != nil {
			return types.NewCorruptValueError(layout.MediaKeyword, row.Number, "invalid amount %q", row.Fields[1])
		}
		if ret.Medium(row.Fields[0]) != nil {
			issues.Add(types.NewCorruptValueError(layout.MediaKeyword, row.Number, "duplicate metabolite %v", row.Fields[0]))
			continue
		}
		ret.SetAmount(row.Fields[0], amount)
	}
	return nil
}

func decodeDiffusion(doc *section.Document, ret *layout.Layout, issues *types.Issues) error {
	block, err := doc.OptionalSection(layout.DiffusionKeyword)
	if err != nil || block == nil {
		return err
	}
	if len(block.Header) != 1 {
		return types.NewCorruptLineError(layout.DiffusionKeyword, block.Line, 1, len(block.Header))
	}
	global, err := strconv.ParseFloat(block.Header[0], 64)
	if err != nil {
		return types.NewCorruptValueError(layout.DiffusionKeyword, block.Line, "invalid diffusion constant %q", block.Header[0])
	}
	ret.SetDiffusion(global)
	for _, row := range block.Rows {
		if len(row.Fields) != 2 {
			issues.Add(types.NewCorruptLineError(layout.DiffusionKeyword, row.Number, 2, len(row.Fields)))
			continue
		}
		index, err := strconv.Atoi(row.Fields[0])
		value, vErr := strconv.ParseFloat(row.Fields[1], 64)
		if err != nil || vErr != nil {
			issues.Add(types.NewCorruptValueError(layout.DiffusionKeyword, row.Number, "invalid diffusion row %q", row.Text))
			continue
		}
		if index < 0 || index >= len(ret.Media) {
			issues.Add(types.NewUnallocatedMetaboliteError(layout.DiffusionKeyword, row.Number, index, 0, len(ret.Media)-1))
			continue
		}
		ret.Media[index].Diffusion = &value
	}
	return nil
}

func decodeRefresh(doc *section.Document, ret *layout.Layout, issues *types.Issues) error {
	block, err := doc.OptionalSection(layout.RefreshKeyword)
	if err != nil || block == nil {
		return err
	}
	ret.Refresh = &layout.Refresh{}
	if values, ok := parseGlobals(block, len(ret.Media), issues); ok {
		for i, entry := range ret.Media {
			entry.Refresh = values[i]
		}
	}
	ret.Refresh.Cells = decodeCells(block, ret, ret.RefreshWidth(), issues)
	return nil
}

func decodeStatic(doc *section.Document, ret *layout.Layout, issues *types.Issues) error {
	block, err := doc.Section(layout.StaticKeyword)
	if err != nil {
		return err
	}
	if values, ok := parseGlobals(block, 2*len(ret.Media), issues); ok {
		for i, entry := range ret.Media {
			entry.Static = values[2*i] != 0
			entry.StaticValue = values[2*i+1]
		}
	}
	ret.Static.Cells = decodeCells(block, ret, ret.StaticWidth(), issues)
	return nil
}

func decodePopulation(doc *section.Document, ret *layout.Layout, issues *types.Issues) error {
	block, err := doc.Section(layout.PopulationKeyword)
	if err != nil {
		return err
	}
	if len(block.Header) > 0 && layout.IsGenerator(block.Header[0]) {
		ret.Population.Generator = block.Header[0]
		for _, field := range block.Header[1:] {
			param, err := types.ParseNumber(field)
			if err != nil {
				return types.NewCorruptValueError(layout.PopulationKeyword, block.Line, "invalid generator parameter %q", field)
			}
			ret.Population.Params = append(ret.Population.Params, param)
		}
		return nil
	}
	ret.Population.Cells = decodeCells(block, ret, ret.PopulationWidth(), issues)
	return nil
}

// parseGlobals reads the numeric header values of block. A count mismatch is
// reported and leaves the globals untouched.
func parseGlobals(block *section.Section, expected int, issues *types.Issues) ([]float64, bool) {
	if len(block.Header) != expected {
		issues.Add(types.NewCorruptLineError(block.Keyword, block.Line, expected, len(block.Header)))
		return nil, false
	}
	values := make([]float64, len(block.Header))
	for i, field := range block.Header {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			issues.Add(types.NewCorruptValueError(block.Keyword, block.Line, "invalid value %q", field))
			return nil, false
		}
		values[i] = value
	}
	return values, true
}

func decodeCells(block *section.Section, ret *layout.Layout, width int, issues *types.Issues) []*layout.Cell {
	var cells []*layout.Cell
	for _, row := range block.Rows {
		cell, issue := parseCell(block.Keyword, row)
		if issue == nil {
			issue = ret.CheckCell(block.Keyword, row.Number, cell, width)
		}
		if issue != nil {
			issues.Add(issue)
			continue
		}
		cells = append(cells, cell)
	}
	return cells
}

func parseCell(block string, row *section.Line) (*layout.Cell, *types.Issue) {
	if len(row.Fields) < 2 {
		return nil, types.NewCorruptLineError(block, row.Number, 2, len(row.Fields))
	}
	x, ok := parseCoordinate(row.Fields[0])
	y, yOK := parseCoordinate(row.Fields[1])
	if !ok || !yOK {
		return nil, types.NewCorruptValueError(block, row.Number, "invalid coordinate (%v, %v)", row.Fields[0], row.Fields[1])
	}
	cell := &layout.Cell{X: x, Y: y}
	for _, field := range row.Fields[2:] {
		value, err := types.ParseNumber(field)
		if err != nil {
			return nil, types.NewCorruptValueError(block, row.Number, "invalid value %q", field)
		}
		cell.Values = append(cell.Values, value)
	}
	return cell, nil
}

// parseCoordinate accepts integers and integral floats such as "2.0".
func parseCoordinate(field string) (int, bool) {
	if value, err := strconv.Atoi(field); err == nil {
		return value, true
	}
	value, err := strconv.ParseFloat(field, 64)
	if err != nil || value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}
