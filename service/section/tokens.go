package section

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	fieldCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	fieldToken      = parsly.NewToken(fieldCode, "Field", newFieldMatcher())
)

func newFieldMatcher() parsly.Matcher {
	return &fieldMatcher{}
}

// fieldMatcher matches a run of non-whitespace bytes
type fieldMatcher struct{}

func (m *fieldMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if isWhitespace(input[i]) {
			break
		}
		matched++
	}
	return matched
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// Fields splits a line into whitespace-delimited fields.
func Fields(line string) []string {
	cursor := parsly.NewCursor("", []byte(line), 0)
	var fields []string
	for {
		matched := cursor.MatchAny(whitespaceToken, fieldToken)
		switch matched.Code {
		case fieldCode:
			fields = append(fields, matched.Text(cursor))
		case whitespaceCode:
		default:
			return fields
		}
	}
}
