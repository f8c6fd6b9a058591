package hazard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/vellum/internal/token"
)

func makeTestCorpus(t *testing.T, texts ...string) *token.Corpus {
	t.Helper()
	tokens := make([]token.Token, len(texts))
	for i, text := range texts {
		tokens[i] = token.Token{Text: text, Folio: "f1", Line: 0, Position: i, Track: "canonical"}
	}
	corpus, err := token.BuildCorpus(context.Background(), token.NewMemorySource(tokens))
	require.NoError(t, err)
	return corpus
}

func TestReconcile_ViolatedTransitionIsHardError(t *testing.T) {
	// Declared forbidden ("ab","cd") but the corpus contains the adjacent
	// pair at positions 0 -> 1.
	corpus := makeTestCorpus(t, "ab", "cd", "ab", "ef")
	ev := Scan(corpus, ScanParams{})

	inventory := []Declared{{Source: "ab", Target: "cd", Category: CategoryFlowViolation}}
	rec, err := Reconcile(inventory, ev, ScanParams{})
	require.Error(t, err)
	assert.True(t, IsDrift(err), "a violated declaration is configuration drift, not a skip")

	require.NotNil(t, rec, "the diff travels with the error")
	require.Len(t, rec.Findings, 1)
	f := rec.Findings[0]
	assert.Equal(t, StatusViolated, f.Status)
	assert.Equal(t, 1, f.Forward)
	assert.Equal(t, []int{0}, f.Positions)
}

func TestReconcile_EveryDeclarationClassifiedExactlyOnce(t *testing.T) {
	corpus := makeTestCorpus(t, "ab", "ef", "cd")
	ev := Scan(corpus, ScanParams{})

	inventory := []Declared{
		{Source: "ab", Target: "cd", Category: CategoryKernelClash},      // both attested, never adjacent
		{Source: "ab", Target: "zz", Category: CategoryEnergyConflict},   // zz never occurs
		{Source: "ab", Target: "ef", Category: CategoryOrderInversion},   // observed
		{Source: "cd", Target: "ef", Category: CategoryResourceConflict}, // both attested, never adjacent
	}
	rec, err := Reconcile(inventory, ev, ScanParams{})
	require.Error(t, err, "one violated entry fails the reconciliation")

	statuses := make(map[Status]int)
	for _, f := range rec.Findings {
		statuses[f.Status]++
	}
	assert.Equal(t, len(inventory), rec.ConfirmedAbsent+rec.Violated+rec.Untestable,
		"no declaration left unclassified")
	assert.Equal(t, 2, statuses[StatusConfirmedAbsent])
	assert.Equal(t, 1, statuses[StatusViolated])
	assert.Equal(t, 1, statuses[StatusUntestable])
}

func TestReconcile_ConfirmedAbsentCleanRun(t *testing.T) {
	corpus := makeTestCorpus(t, "ab", "ef", "cd")
	ev := Scan(corpus, ScanParams{})

	inventory := []Declared{{Source: "cd", Target: "ab", Category: CategoryKernelClash}}
	rec, err := Reconcile(inventory, ev, ScanParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ConfirmedAbsent)
	assert.Equal(t, StatusConfirmedAbsent, rec.Findings[0].Status)
}

func TestReconcile_AsymmetryAndReverseCounts(t *testing.T) {
	// "cd" -> "ab" occurs once; the declared direction "ab" -> "cd" never.
	corpus := makeTestCorpus(t, "cd", "ab", "ef")
	ev := Scan(corpus, ScanParams{})

	inventory := []Declared{{Source: "ab", Target: "cd", Category: CategoryOrderInversion}}
	rec, err := Reconcile(inventory, ev, ScanParams{})
	require.NoError(t, err)

	f := rec.Findings[0]
	assert.Equal(t, 0, f.Forward)
	assert.Equal(t, 1, f.Reverse)
	assert.True(t, f.Asymmetric, "asymmetry is strictly forward=0 with reverse>0")
}

func TestReconcile_RedundantWithReverse(t *testing.T) {
	corpus := makeTestCorpus(t, "ab", "ef", "cd")
	ev := Scan(corpus, ScanParams{})

	inventory := []Declared{
		{Source: "ab", Target: "cd", Category: CategoryKernelClash},
		{Source: "cd", Target: "ab", Category: CategoryKernelClash},
	}
	rec, err := Reconcile(inventory, ev, ScanParams{})
	require.NoError(t, err)
	assert.True(t, rec.Findings[0].RedundantWithReverse)
	assert.True(t, rec.Findings[1].RedundantWithReverse)
}

func TestReconcile_KernelAdjacencyEndpointAndWindow(t *testing.T) {
	corpus := makeTestCorpus(t, "kk", "ab", "cd", "ef", "gh")

	testCases := []struct {
		name   string
		params ScanParams
		decl   Declared
		want   bool
	}{
		{
			"endpoint in kernel set",
			ScanParams{Kernel: map[string]bool{"ab": true}},
			Declared{Source: "ab", Target: "cd", Category: CategoryKernelClash},
			true,
		},
		{
			"kernel within window",
			ScanParams{Kernel: map[string]bool{"kk": true}, KernelWindow: 1},
			Declared{Source: "ab", Target: "cd", Category: CategoryKernelClash},
			true,
		},
		{
			"kernel outside window",
			ScanParams{Kernel: map[string]bool{"kk": true}, KernelWindow: 1},
			Declared{Source: "ef", Target: "gh", Category: CategoryKernelClash},
			false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev := Scan(corpus, tc.params)
			rec, err := Reconcile([]Declared{tc.decl}, ev, tc.params)
			require.Error(t, err, "all these pairs are observed, so the run drifts")
			assert.Equal(t, tc.want, rec.Findings[0].KernelAdjacent)
		})
	}
}

func TestReconcile_InvalidInventory(t *testing.T) {
	corpus := makeTestCorpus(t, "ab", "cd")
	ev := Scan(corpus, ScanParams{})

	testCases := []struct {
		name      string
		inventory []Declared
	}{
		{"missing endpoint", []Declared{{Source: "", Target: "cd", Category: CategoryKernelClash}}},
		{"unknown category", []Declared{{Source: "ab", Target: "cd", Category: "CURSED"}}},
		{"duplicate declaration", []Declared{
			{Source: "x", Target: "y", Category: CategoryKernelClash},
			{Source: "x", Target: "y", Category: CategoryFlowViolation},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Reconcile(tc.inventory, ev, ScanParams{})
			assert.Error(t, err)
		})
	}
}

func TestScan_CountsAndAsymmetry(t *testing.T) {
	corpus := makeTestCorpus(t, "ab", "cd", "ab", "cd")
	ev := Scan(corpus, ScanParams{})

	assert.Equal(t, 2, ev.Count(Pair{Source: "ab", Target: "cd"}))
	assert.Equal(t, 1, ev.Count(Pair{Source: "cd", Target: "ab"}))
	assert.False(t, ev.Asymmetric(Pair{Source: "ab", Target: "cd"}))
	assert.Equal(t, 2, ev.TokenCount("ab"))

	pairs := ev.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, Pair{Source: "ab", Target: "cd"}, pairs[0], "deterministic pair order")
}
