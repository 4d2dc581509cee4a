package layoutfile

import (
	"strconv"

	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/model/types"
	"github.com/viant/comets/service/section"
)

const (
	// DefaultIndent is the layout nesting indent.
	DefaultIndent = "  "
	// DefaultExtension is appended to loaded model names in the model_file line.
	DefaultExtension = ".cmd"
)

// Encoder renders layouts.
type Encoder struct {
	writer    *section.Writer
	extension string
}

// Encode renders l. Nothing is rendered when the layout fails validation.
func (e *Encoder) Encode(l *layout.Layout) ([]byte, error) {
	if err := l.Validate().Err(); err != nil {
		return nil, err
	}
	root := section.NewBlock(append([]string{layout.ModelFileKeyword}, e.ModelFiles(l)...)...)
	world := section.NewBlock(layout.WorldKeyword)
	grid := section.NewBlock(layout.GridKeyword)
	grid.Open = true
	for _, dim := range l.Grid {
		grid.Header += " " + strconv.Itoa(dim)
	}
	world.AddChild(grid)

	media := section.NewBlock(layout.MediaKeyword)
	for _, entry := range l.Media {
		media.AddLine(entry.Metabolite, types.FormatFloat(entry.Amount))
	}
	world.AddChild(media)

	if l.Diffusion != nil {
		diffusion := section.NewBlock(layout.DiffusionKeyword, types.FormatFloat(l.Diffusion.Global))
		for i, entry := range l.Media {
			if entry.Diffusion != nil {
				diffusion.AddLine(strconv.Itoa(i), types.FormatFloat(*entry.Diffusion))
			}
		}
		world.AddChild(diffusion)
	}
	if l.Refresh != nil {
		header := []string{layout.RefreshKeyword}
		for _, entry := range l.Media {
			header = append(header, types.FormatFloat(entry.Refresh))
		}
		world.AddChild(addCells(section.NewBlock(header...), l.Refresh.Cells))
	}
	header := []string{layout.StaticKeyword}
	for _, entry := range l.Media {
		flag := "0"
		if entry.Static {
			flag = "1"
		}
		header = append(header, flag, types.FormatFloat(entry.StaticValue))
	}
	world.AddChild(addCells(section.NewBlock(header...), l.Static.Cells))
	root.AddChild(world)

	population := section.NewBlock(layout.PopulationKeyword)
	if l.Population.Custom() {
		addCells(population, l.Population.Cells)
	} else {
		population.Header += " " + l.Population.Generator
		for _, param := range l.Population.Params {
			population.Header += " " + param.String()
		}
	}
	root.AddChild(population)
	return e.writer.Encode(root), nil
}

// ModelFiles returns the model file names listed on the model_file line.
func (e *Encoder) ModelFiles(l *layout.Layout) []string {
	if len(l.Models) == 0 {
		return l.ModelFiles
	}
	files := make([]string, len(l.Models))
	for i, model := range l.Models {
		files[i] = model.Name + e.extension
	}
	return files
}

func addCells(block *section.Block, cells []*layout.Cell) *section.Block {
	for _, cell := range cells {
		fields := []string{strconv.Itoa(cell.X), strconv.Itoa(cell.Y)}
		for _, value := range cell.Values {
			fields = append(fields, value.String())
		}
		block.AddLine(fields...)
	}
	return block
}

// NewEncoder creates an encoder; empty arguments select the defaults.
func NewEncoder(indent, extension string) *Encoder {
	if indent == "" {
		indent = DefaultIndent
	}
	if extension == "" {
		extension = DefaultExtension
	}
	return &Encoder{writer: section.NewWriter(indent), extension: extension}
}

// Encode renders l with the default indent and extension.
func Encode(l *layout.Layout) ([]byte, error) {
	return NewEncoder("", "").Encode(l)
}
