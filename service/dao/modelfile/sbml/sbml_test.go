package sbml

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/comets/model/types"
)

const level3 = `<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="http://www.sbml.org/sbml/level3/version1/core" xmlns:fbc="http://www.sbml.org/sbml/level3/version1/fbc/version2" level="3" version="1" fbc:required="false">
  <model id="toy" fbc:strict="true">
    <listOfParameters>
      <parameter id="cobra_default_lb" value="-1000" constant="true"/>
      <parameter id="cobra_default_ub" value="1000" constant="true"/>
      <parameter id="cobra_0_bound" value="0" constant="true"/>
      <parameter id="R_EX_glc_e_lower_bound" value="-10" constant="true"/>
    </listOfParameters>
    <listOfSpecies>
      <species id="M_glc_e" compartment="e"/>
      <species id="M_biomass_c" compartment="c"/>
    </listOfSpecies>
    <listOfReactions>
      <reaction id="R_EX_glc_e" reversible="true" fbc:lowerFluxBound="R_EX_glc_e_lower_bound" fbc:upperFluxBound="cobra_default_ub">
        <listOfReactants>
          <speciesReference species="M_glc_e" stoichiometry="1" constant="true"/>
        </listOfReactants>
      </reaction>
      <reaction id="R_growth" reversible="false" fbc:lowerFluxBound="cobra_0_bound" fbc:upperFluxBound="cobra_default_ub">
        <listOfReactants>
          <speciesReference species="M_glc_e" stoichiometry="2" constant="true"/>
        </listOfReactants>
        <listOfProducts>
          <speciesReference species="M_biomass_c" stoichiometry="1" constant="true"/>
        </listOfProducts>
      </reaction>
      <reaction id="R_DM_biomass_c" reversible="false" fbc:lowerFluxBound="cobra_0_bound" fbc:upperFluxBound="cobra_default_ub">
        <listOfReactants>
          <speciesReference species="M_biomass_c" stoichiometry="1" constant="true"/>
        </listOfReactants>
      </reaction>
    </listOfReactions>
    <fbc:listOfObjectives fbc:activeObjective="obj">
      <fbc:objective fbc:id="obj" fbc:type="maximize">
        <fbc:listOfFluxObjectives>
          <fbc:fluxObjective fbc:reaction="R_growth" fbc:coefficient="1"/>
        </fbc:listOfFluxObjectives>
      </fbc:objective>
    </fbc:listOfObjectives>
  </model>
</sbml>`

const level2 = `<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="http://www.sbml.org/sbml/level2" level="2" version="1">
  <model>
    <listOfSpecies>
      <species id="M_o2_e"/>
    </listOfSpecies>
    <listOfReactions>
      <reaction id="R_EX_o2_e">
        <listOfReactants>
          <speciesReference species="M_o2_e"/>
        </listOfReactants>
        <kineticLaw>
          <listOfParameters>
            <parameter id="LOWER_BOUND" value="-20"/>
            <parameter id="UPPER_BOUND" value="INF"/>
            <parameter id="OBJECTIVE_COEFFICIENT" value="1"/>
            <parameter id="VMAX" value="15"/>
          </listOfParameters>
        </kineticLaw>
      </reaction>
    </listOfReactions>
  </model>
</sbml>`

func TestXMLReader_Read(t *testing.T) {
	doc, err := NewXMLReader().Read(context.Background(), []byte(level3))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "toy", doc.ID)
	assert.Equal(t, []string{"glc_e", "biomass_c"}, doc.Species)
	if !assert.Len(t, doc.Reactions, 3) {
		return
	}
	exchange := doc.Reactions[0]
	assert.Equal(t, "EX_glc_e", exchange.ID)
	assert.Equal(t, -10.0, exchange.Lower)
	assert.Equal(t, 1000.0, exchange.Upper)
	assert.Equal(t, []*SpeciesReference{{Species: "glc_e", Coefficient: -1}}, exchange.Metabolites)
	assert.Equal(t, 1.0, doc.Reactions[1].Objective)
	assert.Equal(t, 0.0, doc.Reactions[2].Objective)
}

func TestXMLReader_ReadLevel2(t *testing.T) {
	doc, err := NewXMLReader().Read(context.Background(), []byte(level2))
	if !assert.Nil(t, err) {
		return
	}
	reaction := doc.Reactions[0]
	assert.Equal(t, -20.0, reaction.Lower)
	assert.True(t, reaction.Upper > 1e300)
	assert.Equal(t, 1.0, reaction.Objective)
	if assert.NotNil(t, reaction.Vmax) {
		assert.Equal(t, 15.0, *reaction.Vmax)
	}
}

func TestXMLReader_ReadInvalid(t *testing.T) {
	_, err := NewXMLReader().Read(context.Background(), []byte("<?xml version=\"1.0\"?><sbml><model>"))
	assert.True(t, errors.Is(err, types.ErrUnrecognizedFormat))
}

func TestNormalize(t *testing.T) {
	doc, err := NewXMLReader().Read(context.Background(), []byte(level3))
	if !assert.Nil(t, err) {
		return
	}
	model, issues, err := Normalize(doc, "run1")
	if !assert.Nil(t, err) {
		return
	}
	assert.Empty(t, issues)
	assert.Equal(t, "toy", model.Name)
	assert.Equal(t, 2, model.Objective)
	assert.True(t, model.Reactions[0].Exchange)
	assert.Equal(t, 1, model.Reactions[0].ExchangeIndex)
	assert.False(t, model.Reactions[1].Exchange)
	assert.False(t, model.Reactions[2].Exchange, "demand reactions are not exchanges")
	assert.Equal(t, []string{"glc_e"}, model.ExchangedMetabolites())
	assert.Len(t, model.Stoichiometry, 4)
	assert.Empty(t, model.Validate())
}

func TestNormalize_Objective(t *testing.T) {
	testCases := []struct {
		description string
		objectives  []float64
		expectErr   bool
	}{
		{description: "single objective", objectives: []float64{0, 1}},
		{description: "no objective", objectives: []float64{0, 0}, expectErr: true},
		{description: "two objectives", objectives: []float64{1, 0.5}, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			doc := &Document{Species: []string{"a"}}
			for i, objective := range tc.objectives {
				reaction := doc.AddReaction(string(rune('x'+i)), 0, 1000).Add("a", -1)
				reaction.Objective = objective
			}
			model, _, err := Normalize(doc, "abc")
			if tc.expectErr {
				assert.True(t, errors.Is(err, types.ErrObjective))
				return
			}
			if assert.Nil(t, err) {
				assert.Equal(t, "model_abc", model.Name)
				assert.Equal(t, 2, model.Objective)
			}
		})
	}
}

func TestNormalize_UndeclaredSpecies(t *testing.T) {
	doc := &Document{ID: "m", Species: []string{"a"}}
	doc.AddReaction("growth", 0, 1000).Add("a", -1).Add("ghost", 1).Objective = 1
	model, issues, err := Normalize(doc, "")
	assert.Nil(t, err)
	assert.True(t, issues.Has(types.ErrUnallocatedMetabolite))
	assert.Len(t, model.Stoichiometry, 1)
}
