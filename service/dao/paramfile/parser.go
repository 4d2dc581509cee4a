package paramfile

import (
	"strings"

	"github.com/viant/parsly"
)

// Parameter is a single name = value assignment.
type Parameter struct {
	Name  string
	Value string
}

// Parse parses an assignment in the format: name = value
func Parse(input []byte) (*Parameter, error) {
	cursor := parsly.NewCursor("", input, 0)
	cursor.MatchOne(whitespaceToken)

	matched := cursor.MatchOne(nameToken)
	if matched.Code != nameToken.Code {
		return nil, cursor.NewError(nameToken)
	}
	parameter := &Parameter{Name: matched.Text(cursor)}

	matched = cursor.MatchAfterOptional(whitespaceToken, assignToken)
	if matched.Code != assignToken.Code {
		return nil, cursor.NewError(assignToken)
	}

	cursor.MatchOne(whitespaceToken)
	matched = cursor.MatchOne(valueToken)
	if matched.Code != valueToken.Code {
		return nil, cursor.NewError(valueToken)
	}
	parameter.Value = strings.TrimSpace(matched.Text(cursor))
	return parameter, nil
}
