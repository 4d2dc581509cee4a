package roundtrip

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/model/metabolic"
)

const sourceModel = `SMATRIX  1 1
   1 1 -1.0
//
BOUNDS 0 1000
//
OBJECTIVE
   1
//
METABOLITE_NAMES
   glc
//
REACTION_NAMES
   EX_glc
//
EXCHANGE_REACTIONS
   1
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
	model.AddReaction("EX_glc").Exchange = true
	model.AddStoichiometry(1, 1, -1)
	model.Objective = 1
	return model
}

func TestGenerateDiff(t *testing.T) {
	diff, stats, err := GenerateDiff([]byte("a\nb\nc\n"), []byte("a\nx\nc\nd\n"), "sample.txt", 3)
	assert.Nil(t, err)
	assert.Contains(t, diff, "--- sample.txt (before)")
	assert.Contains(t, diff, "+++ sample.txt (after)")
	assert.Equal(t, DiffStats{Hunks: 1, Added: 2, Removed: 1}, stats)

	diff, stats, err = GenerateDiff([]byte("same\n"), []byte("same\n"), "sample.txt", 0)
	assert.Nil(t, err)
	assert.Empty(t, diff)
	assert.False(t, stats.Changed())
}

func TestService_CheckModel(t *testing.T) {
	srv := New(afs.New(), nil, 3)
	report, err := srv.CheckModel(context.Background(), newToyModel())
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, report.Stable(), report.Diff)
	assert.Equal(t, "toy.cmd", report.Name)
	assert.Contains(t, string(report.Canonical), "SMATRIX 1 1\n")
}

func TestService_CheckLayout(t *testing.T) {
	srv := New(afs.New(), nil, 3)
	l := layout.New([]*metabolic.Model{newToyModel()})
	assert.Nil(t, l.AddStatic(layout.NewCell(0, 0, 1, 2.5)))
	report, err := srv.CheckLayout(context.Background(), l)
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, report.Stable(), report.Diff)
	assert.Empty(t, report.Issues)
}

func TestService_CheckFile(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/roundtrip/toy.cmd"
	assert.Nil(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader([]byte(sourceModel))))

	srv := New(fs, nil, 3)
	report, err := srv.CheckFile(ctx, URL)
	if !assert.Nil(t, err) {
		return
	}
	assert.True(t, report.Stable(), report.Diff)
	assert.True(t, report.SourceStats.Changed())
	assert.Contains(t, report.SourceDiff, "-SMATRIX  1 1")
	assert.Contains(t, report.SourceDiff, "+SMATRIX 1 1")
}

func TestIsLayout(t *testing.T) {
	assert.True(t, IsLayout([]byte("model_file a.cmd\n  model_world\n")))
	assert.False(t, IsLayout([]byte(sourceModel)))
}

func TestStats(t *testing.T) {
	testCases := []struct {
		description string
		diff        string
		expect      DiffStats
	}{
		{description: "empty", diff: ""},
		{
			description: "two hunks",
			diff:        "--- a.txt\n+++ b.txt\n@@ -1,2 +1,2 @@\n a\n-b\n+c\n@@ -10 +10,2 @@\n x\n+y\n",
			expect:      DiffStats{Hunks: 2, Added: 2, Removed: 1},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := Stats(tc.diff)
			assert.Nil(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}
