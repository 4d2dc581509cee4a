package workspace

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/comets/internal/clock"
	"github.com/viant/comets/internal/idgen"
	"github.com/viant/comets/model/layout"
	"github.com/viant/comets/model/metabolic"
	"github.com/viant/comets/model/params"
)

func newToyModel() *metabolic.Model {
	model := metabolic.New("toy")
	model.AddMetabolite("glc")
	model.AddReaction("EX_glc").Exchange = true
	model.AddStoichiometry(1, 1, -1)
	model.Objective = 1
	return model
}

func TestService_Prepare(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	srv := New(fs, nil)

	prev := idgen.NewFunc
	idgen.NewFunc = func() string { return "abc123" }
	defer func() { idgen.NewFunc = prev }()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	prevNow := clock.NowFunc
	clock.NowFunc = func() time.Time { return now }
	defer func() { clock.NowFunc = prevNow }()

	l := layout.New([]*metabolic.Model{newToyModel()})
	table := params.New(map[string]interface{}{params.UseLogNameTimeStamp: true})
	run, err := srv.Prepare(ctx, l, table, "mem://localhost/workspace")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "abc123", run.ID)
	assert.Equal(t, "abc123", l.RunID)
	assert.Equal(t, now, run.Prepared)
	assert.Equal(t, "mem://localhost/workspace/.current_layout_abc123", run.LayoutURL)
	assert.Equal(t, []string{"mem://localhost/workspace/toy.cmd"}, run.ModelURLs)
	assert.Equal(t, Logs{
		TotalBiomass: "total_biomass_log_abc123",
		Biomass:      "biomass_log_abc123",
		Flux:         "flux_log_abc123",
		Media:        "media_log_abc123",
	}, run.Logs)
	assert.False(t, table.Bool(params.UseLogNameTimeStamp))
	assert.Equal(t, "flux_log_abc123", table.String(params.FluxLogName))

	for _, URL := range run.ControlURLs() {
		exists, err := fs.Exists(ctx, URL)
		assert.Nil(t, err)
		assert.True(t, exists, URL)
	}
	script, err := fs.DownloadWithURL(ctx, run.ScriptURL)
	assert.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(script)), "\n")
	if assert.Len(t, lines, 3) {
		assert.True(t, strings.HasPrefix(lines[0], "load_comets_parameters "))
		assert.True(t, strings.HasSuffix(lines[0], ".current_global_abc123"))
		assert.True(t, strings.HasPrefix(lines[1], "load_package_parameters "))
		assert.True(t, strings.HasSuffix(lines[2], ".current_layout_abc123"))
	}
	global, err := fs.DownloadWithURL(ctx, run.GlobalURL)
	assert.Nil(t, err)
	assert.Contains(t, string(global), "useLogNameTimeStamp = false\n")
	assert.Contains(t, string(global), "TotalBiomassLogName = total_biomass_log_abc123\n")

	assert.Nil(t, run.Cleanup(ctx))
	for _, URL := range run.ControlURLs() {
		exists, _ := fs.Exists(ctx, URL)
		assert.False(t, exists, URL)
	}
}
