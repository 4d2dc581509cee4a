package modelfile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/types"
)

const toyText = `SMATRIX 2 3
    1 1 -1
    1 2 -2
    2 2 1
    2 3 -1
//
BOUNDS 0 1000
    1 -10 1000
//
OBJECTIVE
    2
//
METABOLITE_NAMES
    glc
    biomass
//
REACTION_NAMES
    EX_glc
    growth
    EX_biomass
//
EXCHANGE_REACTIONS
    1 3
//
VMAX_VALUES 10
    1 20
//
OBJECTIVE_STYLE
    MAXIMIZE_OBJECTIVE_FLUX
//
OPTIMIZER GUROBI
//
`

func newToyModel() *metabolic.Model {
	model := metabolic.New("toy")
	model.AddMetabolite("glc")
	model.AddMetabolite("biomass")
	exchange := model.AddReaction("EX_glc")
	exchange.Lower = -10
	exchange.Exchange = true
	model.AddReaction("growth")
	model.AddReaction("EX_biomass").Exchange = true
	model.AddStoichiometry(2, 3, -1)
	model.AddStoichiometry(1, 1, -1)
	model.AddStoichiometry(2, 2, 1)
	model.AddStoichiometry(1, 2, -2)
	model.Objective = 2
	return model
}

func TestDecode(t *testing.T) {
	model, issues, err := Decode("toy", []byte(toyText))
	if !assert.Nil(t, err) {
		return
	}
	assert.Empty(t, issues)
	assert.Equal(t, "toy", model.Name)
	assert.Equal(t, 2, model.Objective)
	assert.EqualValues(t, metabolic.DefaultBounds(), model.DefaultBounds)
	assert.Equal(t, -10.0, model.Reactions[0].Lower)
	assert.Equal(t, 1, model.Reactions[0].ExchangeIndex)
	assert.Equal(t, 2, model.Reactions[2].ExchangeIndex)
	if assert.NotNil(t, model.Reactions[0].Vmax) {
		assert.Equal(t, 20.0, *model.Reactions[0].Vmax)
	}
	assert.Equal(t, 10.0, model.KineticDefault(metabolic.Vmax))
	assert.Equal(t, "GUROBI", model.Optimizer)
	assert.Equal(t, metabolic.MaximizeObjectiveFlux, model.ObjectiveStyle)
}

func TestEncode(t *testing.T) {
	model, _, err := Decode("toy", []byte(toyText))
	if !assert.Nil(t, err) {
		return
	}
	data, err := Encode(model)
	assert.Nil(t, err)
	assert.Equal(t, toyText, string(data))
}

func TestEncode_RoundTrip(t *testing.T) {
	expected := newToyModel()
	data, err := Encode(expected)
	if !assert.Nil(t, err) {
		return
	}
	assert.False(t, strings.Contains(string(data), "VMAX_VALUES"))
	actual, issues, err := Decode("toy", data)
	if !assert.Nil(t, err) {
		return
	}
	assert.Empty(t, issues)
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_BoundsCompaction(t *testing.T) {
	model := newToyModel()
	model.DefaultBounds = metabolic.Bounds{Lower: -10, Upper: 1000}
	data, err := Encode(model)
	if !assert.Nil(t, err) {
		return
	}
	assert.Contains(t, string(data), "BOUNDS -10 1000\n    2 0 1000\n    3 0 1000\n//\n")
}

func TestEncode_Invalid(t *testing.T) {
	model := newToyModel()
	model.Objective = 7
	_, err := Encode(model)
	assert.True(t, errors.Is(err, types.ErrObjective))

	model = newToyModel()
	model.Reactions[1].SetKinetic(metabolic.Km, 2)
	_, err = Encode(model)
	assert.True(t, errors.Is(err, types.ErrCorruptLine))
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		description string
		text        string
		expectKind  error
	}{
		{
			description: "missing exchange terminator",
			text:        strings.Replace(toyText, "    1 3\n//\n", "    1 3\n", 1),
			expectKind:  types.ErrCorruptLine,
		},
		{
			description: "missing block",
			text:        strings.Replace(toyText, "OBJECTIVE\n    2\n//\n", "", 1),
			expectKind:  types.ErrSectionNotFound,
		},
		{
			description: "reaction count mismatch",
			text:        strings.Replace(toyText, "SMATRIX 2 3", "SMATRIX 2 4", 1),
			expectKind:  types.ErrCorruptLine,
		},
		{
			description: "short stoichiometry row",
			text:        strings.Replace(toyText, "    2 3 -1\n", "    2 3\n", 1),
			expectKind:  types.ErrCorruptLine,
		},
		{
			description: "kinetic row for non exchange",
			text:        strings.Replace(toyText, "    1 20\n", "    3 20\n", 1),
			expectKind:  types.ErrCorruptLine,
		},
		{
			description: "exchange reaction listed twice",
			text:        strings.Replace(toyText, "    1 3\n", "    1 1\n", 1),
			expectKind:  types.ErrCorruptLine,
		},
		{
			description: "non numeric bound",
			text:        strings.Replace(toyText, "    1 -10 1000\n", "    1 low 1000\n", 1),
			expectKind:  types.ErrCorruptLine,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, _, err := Decode("toy", []byte(tc.text))
			assert.True(t, errors.Is(err, tc.expectKind), "unexpected error: %v", err)
		})
	}
}

func TestDecode_ExchangeOrder(t *testing.T) {
	text := strings.Replace(toyText, "EXCHANGE_REACTIONS\n    1 3\n", "EXCHANGE_REACTIONS\n    3 1\n", 1)
	model, issues, err := Decode("toy", []byte(text))
	if !assert.Nil(t, err) {
		return
	}
	assert.Empty(t, issues)
	exchange, biomass := model.Reactions[0], model.Reactions[2]
	assert.Nil(t, exchange.Vmax)
	if assert.NotNil(t, biomass.Vmax) {
		assert.Equal(t, 20.0, *biomass.Vmax)
	}
	assert.Equal(t, 1, exchange.ExchangeIndex)
	assert.Equal(t, 2, biomass.ExchangeIndex)

	data, err := Encode(model)
	assert.Nil(t, err)
	assert.Contains(t, string(data), "EXCHANGE_REACTIONS\n    1 3\n//\nVMAX_VALUES 10\n    2 20\n//\n")
}

func TestEncode_KineticDefaults(t *testing.T) {
	testCases := []struct {
		description string
		text        string
	}{
		{description: "default without rows", text: strings.Replace(toyText, "VMAX_VALUES 10\n    1 20\n", "VMAX_VALUES 7\n", 1)},
		{description: "several defaults", text: strings.Replace(toyText, "VMAX_VALUES 10\n    1 20\n//\n", "VMAX_VALUES 7\n//\nKM_VALUES 0.5\n//\nHILL_COEFFICIENTS 2\n    2 3\n//\n", 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			model, _, err := Decode("toy", []byte(tc.text))
			if !assert.Nil(t, err) {
				return
			}
			assert.Equal(t, 7.0, model.KineticDefault(metabolic.Vmax))
			data, err := Encode(model)
			assert.Nil(t, err)
			assert.Equal(t, tc.text, string(data))
		})
	}
}

func TestDecode_UnallocatedMetabolite(t *testing.T) {
	text := strings.Replace(toyText, "    2 3 -1\n", "    2 3 -1\n    3 1 4\n", 1)
	model, issues, err := Decode("toy", []byte(text))
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, issues.Has(types.ErrUnallocatedMetabolite))
	assert.Len(t, model.Stoichiometry, 4)
}

func TestSniff(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      Dialect
		expectErr   bool
	}{
		{description: "native", input: toyText, expect: DialectNative},
		{description: "xml prolog", input: "\n<?xml version=\"1.0\"?>\n<sbml/>", expect: DialectSBML},
		{description: "sbml root", input: "<sbml level=\"3\"/>", expect: DialectSBML},
		{description: "other markup", input: "<html></html>", expectErr: true},
		{description: "empty", input: " \n\t", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := Sniff([]byte(tc.input))
			if tc.expectErr {
				assert.True(t, errors.Is(err, types.ErrUnrecognizedFormat))
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestService_SaveLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	srv := New(WithFS(fs))
	URL := "mem://localhost/modelfile/" + srv.FileName(newToyModel())
	assert.Equal(t, "mem://localhost/modelfile/toy.cmd", URL)

	assert.Nil(t, srv.Save(ctx, newToyModel(), URL))
	// saving twice replaces content
	assert.Nil(t, srv.Save(ctx, newToyModel(), URL))
	model, issues, err := srv.Load(ctx, URL)
	if !assert.Nil(t, err) {
		return
	}
	assert.Empty(t, issues)
	expected := newToyModel()
	expected.Normalize()
	if diff := cmp.Diff(expected, model); diff != "" {
		t.Errorf("load mismatch (-want +got):\n%s", diff)
	}

	_, _, err = srv.Load(ctx, "mem://localhost/modelfile/missing.cmd")
	assert.NotNil(t, err)
}
