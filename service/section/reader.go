package section

import (
	"strings"

	"github.com/viant/comets/model/types"
)

// Terminator marks the end of a block.
const Terminator = "//"

// Line is a non-blank source line.
type Line struct {
	// Number is the 1-based line number in the original text.
	Number int
	Text   string
	Fields []string
}

// Keyword returns the leading field or an empty string.
func (l *Line) Keyword() string {
	if len(l.Fields) == 0 {
		return ""
	}
	return l.Fields[0]
}

// Document is a tokenised sectioned text with blank lines stripped.
type Document struct {
	Lines       []*Line
	Terminators []int
}

// Section is the half-open line range [Start, End) of a keyword block, End
// being the index of its terminator line.
type Section struct {
	Keyword string
	Start   int
	End     int
	// Header holds the fields following the keyword on the header line.
	Header []string
	// Line is the source line number of the header.
	Line int
	Rows []*Line
}

// Parse tokenises raw text.
func Parse(data []byte) *Document {
	doc := &Document{}
	for i, text := range strings.Split(string(data), "\n") {
		text = strings.TrimRight(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if strings.Contains(text, Terminator) {
			doc.Terminators = append(doc.Terminators, len(doc.Lines))
		}
		doc.Lines = append(doc.Lines, &Line{Number: i + 1, Text: text, Fields: Fields(text)})
	}
	return doc
}

// IsTerminator reports whether the line at index closes a block.
func (d *Document) IsTerminator(index int) bool {
	for _, candidate := range d.Terminators {
		if candidate == index {
			return true
		}
	}
	return false
}

// Index returns the index of the first line led by keyword (case-insensitive), or -1.
func (d *Document) Index(keyword string) int {
	for i, line := range d.Lines {
		if strings.EqualFold(line.Keyword(), keyword) {
			return i
		}
	}
	return -1
}

// Has reports whether keyword leads any line.
func (d *Document) Has(keyword string) bool {
	return d.Index(keyword) != -1
}

// NextTerminator returns the first terminator index strictly after start, or -1.
func (d *Document) NextTerminator(start int) int {
	for _, candidate := range d.Terminators {
		if candidate > start {
			return candidate
		}
	}
	return -1
}

// Line returns the line at index or nil when out of range.
func (d *Document) Line(index int) *Line {
	if index < 0 || index >= len(d.Lines) {
		return nil
	}
	return d.Lines[index]
}

// Section locates the keyword block.
func (d *Document) Section(keyword string) (*Section, error) {
	start := d.Index(keyword)
	if start == -1 {
		return nil, types.NewSectionNotFoundError(keyword)
	}
	header := d.Lines[start]
	end := d.NextTerminator(start)
	if end == -1 {
		return nil, types.NewUnterminatedSectionError(keyword, header.Number)
	}
	return &Section{
		Keyword: keyword,
		Start:   start,
		End:     end,
		Header:  header.Fields[1:],
		Line:    header.Number,
		Rows:    d.Lines[start+1 : end],
	}, nil
}

// OptionalSection returns nil without error when keyword is absent.
func (d *Document) OptionalSection(keyword string) (*Section, error) {
	if !d.Has(keyword) {
		return nil, nil
	}
	return d.Section(keyword)
}
