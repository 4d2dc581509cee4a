package types

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber_String(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		mutate      func(n *Number)
		expect      string
	}{
		{description: "literal kept", input: "0.0", expect: "0.0"},
		{description: "exponent kept", input: "1e-09", expect: "1e-09"},
		{description: "changed value reformatted", input: "5.0", mutate: func(n *Number) { n.Value = 2.5 }, expect: "2.5"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			n, err := ParseNumber(tc.input)
			assert.NoError(t, err)
			if tc.mutate != nil {
				tc.mutate(&n)
			}
			assert.Equal(t, tc.expect, n.String())
		})
	}
	assert.Equal(t, "1e-06", NewNumber(1e-6).String())
	_, err := ParseNumber("abc")
	assert.Error(t, err)
}

func TestFormatFloat(t *testing.T) {
	testCases := []struct {
		description string
		input       float64
		expect      string
	}{
		{description: "shortest form", input: 1e-6, expect: "1e-06"},
		{description: "integral", input: 1000, expect: "1000"},
		{description: "positive infinity", input: math.Inf(1), expect: "Infinity"},
		{description: "negative infinity", input: math.Inf(-1), expect: "-Infinity"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual := FormatFloat(tc.input)
			assert.Equal(t, tc.expect, actual)
			parsed, err := strconv.ParseFloat(actual, 64)
			assert.Nil(t, err)
			assert.Equal(t, tc.input, parsed)
		})
	}
}

func TestIssue_Error(t *testing.T) {
	issue := NewCorruptLineError("static_media", 12, 6, 5)
	assert.True(t, errors.Is(issue, ErrCorruptLine))
	assert.Equal(t, "CorruptLine: static_media line 12: expected 6 fields, got 5", issue.Error())

	var issues Issues
	issues.Add(nil)
	assert.Nil(t, issues.Err())
	issues.Add(NewOutOfGridError("media_refresh", 3, 6, 2, []int{5, 5}))
	assert.True(t, issues.Has(ErrOutOfGrid))
	assert.False(t, issues.Has(ErrCorruptLine))
	assert.True(t, errors.Is(issues.Err(), ErrOutOfGrid))
}
