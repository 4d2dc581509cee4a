package paramfile

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	nameCode
	assignCode
	valueCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	nameToken       = parsly.NewToken(nameCode, "Name", newNameMatcher())
	assignToken     = parsly.NewToken(assignCode, "=", matcher.NewByte('='))
	valueToken      = parsly.NewToken(valueCode, "Value", newValueMatcher())
)

func newNameMatcher() parsly.Matcher {
	return &nameMatcher{}
}

func newValueMatcher() parsly.Matcher {
	return &valueMatcher{}
}

// nameMatcher matches parameter names
type nameMatcher struct{}

func (m *nameMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}
	if !isLetter(input[pos]) && input[pos] != '_' {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		if isLetter(input[i]) || isDigit(input[i]) || input[i] == '_' || input[i] == '.' {
			matched++
			continue
		}
		break
	}
	return matched
}

// valueMatcher matches the remainder of the line
type valueMatcher struct{}

func (m *valueMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if cursor.Input[i] == '\n' {
			break
		}
		matched++
	}
	return matched
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
