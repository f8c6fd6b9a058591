package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/vellum/internal/config"
	"github.com/vellumlabs/vellum/internal/hazard"
	"github.com/vellumlabs/vellum/internal/token"
)

const testCUE = `
prefixes: ["a"]
suffixes: ["d"]
kernel: ["cd"]
kernel_window: 1
class_count: 3
classes: {
	c1: {role: "AUXILIARY", members: ["ab"]}
	c2: {role: "AUXILIARY", members: ["cd"]}
	c3: {role: "INFRASTRUCTURE", members: ["ad"]}
}
hazards: [
	{source: "cd", target: "ab", category: "ORDER_INVERSION"},
	{source: "qq", target: "rr", category: "KERNEL_CLASH"},
]
`

func makeTestSource(t *testing.T) token.TokenSource {
	t.Helper()
	var tokens []token.Token
	lines := [][]string{
		{"ab", "cd"},
		{"cd"},
		{"x*", "zz"},
	}
	for line, texts := range lines {
		for pos, text := range texts {
			tokens = append(tokens, token.Token{
				Text: text, Folio: "f1", Line: line, Position: pos, Track: "canonical",
			})
		}
	}
	return token.NewMemorySource(tokens)
}

func TestRun_EndToEnd(t *testing.T) {
	cfg, err := config.Parse(testCUE)
	require.NoError(t, err)

	res, err := Run(context.Background(), cfg, makeTestSource(t), Options{HubPercentile: 90})
	require.NoError(t, err)

	// Per-token table covers every corpus token in canonical order.
	require.Len(t, res.Table, 5)
	assert.Equal(t, "ab", res.Table[0].Token.Text)
	assert.Equal(t, "c1", res.Table[0].Assignment.ClassID)
	assert.Equal(t, "c2", res.Table[1].Assignment.ClassID)

	// The damaged token is unresolved and unknown; "zz" is merely unknown.
	// Neither is dropped from the table.
	assert.Equal(t, 1, res.Summary.UnresolvedCount())
	assert.Equal(t, 2, res.Summary.UnknownCount())
	assert.Equal(t, []string{"x*", "zz"}, res.Summary.UnknownTokens())
	assert.True(t, res.Table[3].Assignment.Unknown)
	assert.True(t, res.Table[4].Assignment.Unknown)

	// Both interpretations are always present.
	for _, mode := range []token.Mode{token.ModeStrict, token.ModeUnion} {
		assert.NotNil(t, res.Graphs[mode], "graph for %s", mode)
		assert.NotNil(t, res.Survivors[mode], "survivors for %s", mode)
		assert.NotNil(t, res.CoSurvival[mode], "co-survival for %s", mode)
		assert.NotEmpty(t, res.Equivalence[mode], "equivalence classes for %s", mode)
	}

	// Strict survivors: the atomic class c3 ("ad" is fully consumed by its
	// affixes) survives every record, even the damaged one.
	strict := res.Survivors[token.ModeStrict]
	require.Len(t, strict.Sets, 3)
	assert.Equal(t, []string{"c1", "c2", "c3"}, strict.Sets[0].Classes)
	assert.Equal(t, []string{"c2", "c3"}, strict.Sets[1].Classes)
	assert.Equal(t, []string{"c3"}, strict.Sets[2].Classes)
	assert.Equal(t, []string{"c3"}, strict.AlwaysSurvive())

	// Hazard inventory: cd->ab is testable and absent (only ab->cd occurs),
	// qq->rr touches tokens the corpus never attests.
	rec := res.Reconciliation
	require.NotNil(t, rec)
	require.Len(t, rec.Findings, 2)
	assert.Equal(t, hazard.StatusConfirmedAbsent, rec.Findings[0].Status)
	assert.True(t, rec.Findings[0].Asymmetric, "reverse direction ab->cd is attested")
	assert.Equal(t, hazard.StatusUntestable, rec.Findings[1].Status)
	assert.Zero(t, rec.Violated)
}

func TestRun_DriftAbortsRun(t *testing.T) {
	// Declaring a transition the corpus actually contains is configuration
	// drift: the run aborts and no result is produced.
	driftCUE := `
prefixes: ["a"]
suffixes: ["d"]
kernel: []
kernel_window: 1
class_count: 1
classes: {c1: {role: "AUXILIARY", members: ["ab"]}}
hazards: [{source: "ab", target: "cd", category: "ORDER_INVERSION"}]
`
	cfg, err := config.Parse(driftCUE)
	require.NoError(t, err)

	_, err = Run(context.Background(), cfg, makeTestSource(t), Options{HubPercentile: 90})
	require.Error(t, err)
	assert.True(t, hazard.IsDrift(err))
}

func TestRun_RequiresHubPercentile(t *testing.T) {
	cfg, err := config.Parse(testCUE)
	require.NoError(t, err)

	_, err = Run(context.Background(), cfg, makeTestSource(t), Options{})
	assert.Error(t, err, "hub percentile has no default")
}

func TestRun_SourceErrorAborts(t *testing.T) {
	cfg, err := config.Parse(testCUE)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, cfg, makeTestSource(t), Options{HubPercentile: 90})
	assert.Error(t, err)
}
