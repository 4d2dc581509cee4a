package types

import (
	"errors"
	"fmt"
	"strings"
)

// Format error kinds. Every Issue unwraps to exactly one of these so callers
// can match with errors.Is.
var (
	// ErrCorruptLine reports a row whose shape or count does not match the
	// declared or inferred schema of its block.
	ErrCorruptLine = errors.New("CorruptLine")

	// ErrOutOfGrid reports a coordinate outside the declared grid.
	ErrOutOfGrid = errors.New("OutOfGrid")

	// ErrUnallocatedMetabolite reports a metabolite index beyond the declared
	// metabolite count.
	ErrUnallocatedMetabolite = errors.New("UnallocatedMetabolite")

	// ErrUnrecognizedFormat is returned when dialect sniffing fails.
	ErrUnrecognizedFormat = errors.New("UnrecognizedFormat")

	// ErrSectionNotFound is returned when a required keyword block is absent.
	ErrSectionNotFound = errors.New("SectionNotFound")

	// ErrObjective is returned when an alternative-dialect model does not
	// carry exactly one reaction with a nonzero objective coefficient.
	ErrObjective = errors.New("AmbiguousObjective")
)

// Issue is a problem attributable to a single block row.
type Issue struct {
	Kind     error  `json:"-" yaml:"-"`
	Block    string `json:"block,omitempty" yaml:"block,omitempty"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Expected int    `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   int    `json:"actual,omitempty" yaml:"actual,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

func (i *Issue) Error() string {
	var b strings.Builder
	if i.Kind != nil {
		b.WriteString(i.Kind.Error())
	} else {
		b.WriteString("Issue")
	}
	if i.Block != "" {
		b.WriteString(": ")
		b.WriteString(i.Block)
	}
	if i.Line > 0 {
		fmt.Fprintf(&b, " line %d", i.Line)
	}
	if i.Expected != 0 || i.Actual != 0 {
		fmt.Fprintf(&b, ": expected %d fields, got %d", i.Expected, i.Actual)
	}
	if i.Message != "" {
		b.WriteString(": ")
		b.WriteString(i.Message)
	}
	return b.String()
}

// Unwrap returns the issue kind.
func (i *Issue) Unwrap() error {
	return i.Kind
}

// NewCorruptLineError reports a row width mismatch.
func NewCorruptLineError(block string, line, expected, actual int) *Issue {
	return &Issue{Kind: ErrCorruptLine, Block: block, Line: line, Expected: expected, Actual: actual}
}

// NewCorruptValueError reports a malformed field value.
func NewCorruptValueError(block string, line int, format string, args ...interface{}) *Issue {
	return &Issue{Kind: ErrCorruptLine, Block: block, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewOutOfGridError reports a coordinate outside grid.
func NewOutOfGridError(block string, line, x, y int, grid []int) *Issue {
	return &Issue{Kind: ErrOutOfGrid, Block: block, Line: line,
		Message: fmt.Sprintf("coordinate (%d, %d) outside grid %v", x, y, grid)}
}

// NewUnallocatedMetaboliteError reports a metabolite reference outside [low, high].
func NewUnallocatedMetaboliteError(block string, line, index, low, high int) *Issue {
	return &Issue{Kind: ErrUnallocatedMetabolite, Block: block, Line: line,
		Message: fmt.Sprintf("metabolite index %d outside [%d, %d]", index, low, high)}
}

// NewSectionNotFoundError reports a missing keyword block.
func NewSectionNotFoundError(keyword string) *Issue {
	return &Issue{Kind: ErrSectionNotFound, Block: keyword, Message: "keyword not found"}
}

// NewUnterminatedSectionError reports a block without terminator.
func NewUnterminatedSectionError(keyword string, line int) *Issue {
	return &Issue{Kind: ErrCorruptLine, Block: keyword, Line: line, Message: "missing // terminator"}
}

// Issues collects row-level problems that did not abort a parse.
type Issues []*Issue

// Add appends an issue, ignoring nil.
func (i *Issues) Add(issue *Issue) {
	if issue == nil {
		return
	}
	*i = append(*i, issue)
}

// Append appends all issues from another collection.
func (i *Issues) Append(other Issues) {
	*i = append(*i, other...)
}

// Has reports whether any collected issue is of the supplied kind.
func (i Issues) Has(kind error) bool {
	for _, issue := range i {
		if errors.Is(issue, kind) {
			return true
		}
	}
	return false
}

// Err returns the joined issues or nil when empty.
func (i Issues) Err() error {
	if len(i) == 0 {
		return nil
	}
	errs := make([]error, 0, len(i))
	for _, issue := range i {
		errs = append(errs, issue)
	}
	return errors.Join(errs...)
}
