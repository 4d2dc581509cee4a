package paramfile

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/comets/model/params"
	"github.com/viant/comets/model/types"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      *Parameter
		expectErr   bool
	}{
		{description: "spaced", input: "maxCycles = 100", expect: &Parameter{Name: "maxCycles", Value: "100"}},
		{description: "compact", input: "cellSize=1e-13", expect: &Parameter{Name: "cellSize", Value: "1e-13"}},
		{description: "value with spaces", input: "  exchangestyle = Monod Style  ", expect: &Parameter{Name: "exchangestyle", Value: "Monod Style"}},
		{description: "missing assignment", input: "maxCycles 100", expectErr: true},
		{description: "missing value", input: "maxCycles =", expectErr: true},
		{description: "invalid name", input: "= 3", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := Parse([]byte(tc.input))
			if tc.expectErr {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestEncode(t *testing.T) {
	table := params.New(map[string]interface{}{"myFlag": true})
	global, pkg := Encode(table)
	assert.Contains(t, string(global), "cellSize = 1e-13\n")
	assert.Contains(t, string(global), "writeTotalBiomassLog = true\n")
	assert.NotContains(t, string(global), "maxCycles")
	assert.Contains(t, string(pkg), "maxCycles = 100\n")
	assert.Contains(t, string(pkg), "exchangestyle = Monod Style\n")
	assert.Contains(t, string(pkg), "myFlag = true\n")
	assert.NotContains(t, string(pkg), "biomassMotionStyle")

	lines := strings.Split(strings.TrimSpace(string(global)), "\n")
	for i := 1; i < len(lines); i++ {
		assert.True(t, lines[i-1] < lines[i], "unsorted: %v >= %v", lines[i-1], lines[i])
	}
}

func TestDecode(t *testing.T) {
	table := params.New(nil)
	issues := Decode(table, []byte("maxCycles = 250\n\nevolution = true\nbroken line\ntimeStep = 0.5\n"))
	if assert.Len(t, issues, 1) {
		assert.True(t, issues.Has(types.ErrCorruptLine))
		assert.Equal(t, 4, issues[0].Line)
	}
	value, _ := table.Get("maxCycles")
	assert.Equal(t, 250, value)
	assert.Equal(t, "0.5", table.String("timeStep"))
	assert.False(t, table.Bool(params.WriteTotalBiomassLog))
}

func TestService_SaveLoad(t *testing.T) {
	ctx := context.Background()
	srv := New(afs.New())
	table := params.New(map[string]interface{}{"maxCycles": 42, "cellSize": 2e-13})
	globalURL, packageURL := "mem://localhost/paramfile/global.txt", "mem://localhost/paramfile/package.txt"
	assert.Nil(t, srv.Save(ctx, table, globalURL, packageURL))

	actual, issues, err := srv.Load(ctx, globalURL, packageURL)
	if !assert.Nil(t, err) {
		return
	}
	assert.Empty(t, issues)
	assert.Equal(t, table.Names(), actual.Names())
	for _, name := range table.Names() {
		assert.Equal(t, table.String(name), actual.String(name), name)
	}
}
