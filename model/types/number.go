package types

import (
	"math"
	"strconv"
	"strings"
)

// Number is a float that remembers the literal it was parsed from, so that
// hand-edited values are echoed back unchanged.
type Number struct {
	Value   float64
	literal string
}

// NewNumber returns a number without a source literal.
func NewNumber(v float64) Number {
	return Number{Value: v}
}

// ParseNumber parses a numeric field keeping its literal text.
func ParseNumber(text string) (Number, error) {
	text = strings.TrimSpace(text)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Number{}, err
	}
	return Number{Value: v, literal: text}, nil
}

// String returns the source literal when it still denotes Value, otherwise the
// shortest representation of Value.
func (n Number) String() string {
	if n.literal != "" {
		if v, err := strconv.ParseFloat(n.literal, 64); err == nil && v == n.Value {
			return n.literal
		}
	}
	return FormatFloat(n.Value)
}

// Numbers converts plain floats.
func Numbers(values ...float64) []Number {
	result := make([]Number, len(values))
	for i, v := range values {
		result[i] = NewNumber(v)
	}
	return result
}

// Floats returns the numeric values.
func Floats(numbers []Number) []float64 {
	result := make([]float64, len(numbers))
	for i, n := range numbers {
		result[i] = n.Value
	}
	return result
}

// FormatFloat renders v in the shortest form that parses back to v.
// Infinities use the Infinity spelling the engine accepts.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
