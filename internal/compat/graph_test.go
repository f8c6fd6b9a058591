package compat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlabs/vellum/internal/morph"
	"github.com/vellumlabs/vellum/internal/token"
)

func makeTestCorpus(t *testing.T, lines ...[]string) *token.Corpus {
	t.Helper()
	var tokens []token.Token
	for line, texts := range lines {
		for pos, text := range texts {
			tokens = append(tokens, token.Token{
				Text: text, Folio: "f1", Line: line, Position: pos, Track: "canonical",
			})
		}
	}
	corpus, err := token.BuildCorpus(context.Background(), token.NewMemorySource(tokens))
	require.NoError(t, err)
	return corpus
}

func makeTestDecomps(t *testing.T, corpus *token.Corpus) map[string]morph.Decomposition {
	t.Helper()
	rules := morph.NewRules([]string{"a"}, []string{"d"})
	var texts []string
	for _, tok := range corpus.Tokens() {
		texts = append(texts, tok.Text)
	}
	decomps, err := rules.DecomposeAll(texts)
	require.NoError(t, err)
	return decomps
}

func strictParams() Params {
	return Params{Mode: token.ModeStrict, HubPercentile: 90}
}

func TestParams_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"valid strict", Params{Mode: token.ModeStrict, HubPercentile: 90}, false},
		{"valid union", Params{Mode: token.ModeUnion, HubPercentile: 50}, false},
		{"missing mode", Params{HubPercentile: 90}, true},
		{"missing percentile", Params{Mode: token.ModeStrict}, true},
		{"percentile over 100", Params{Mode: token.ModeStrict, HubPercentile: 101}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.params.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLegalVocabularies_StrictIsLiteral(t *testing.T) {
	corpus := makeTestCorpus(t, []string{"ab", "cd"}, []string{"ef"})
	decomps := makeTestDecomps(t, corpus)

	vocabs, err := LegalVocabularies(corpus, decomps, strictParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "cd"}, vocabs["f1:0"].Sorted())
	assert.Equal(t, []string{"ef"}, vocabs["f1:1"].Sorted())
}

func TestLegalVocabularies_UnionFoldsAuxiliarySet(t *testing.T) {
	corpus := makeTestCorpus(t, []string{"ab"}, []string{"cd"})
	decomps := makeTestDecomps(t, corpus)

	params := Params{
		Mode:          token.ModeUnion,
		HubPercentile: 90,
		Auxiliary:     map[string][]string{"f1:0": {"f1:1"}},
	}
	vocabs, err := LegalVocabularies(corpus, decomps, params)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "cd"}, vocabs["f1:0"].Sorted(),
		"union adds the matched record's middles")
	assert.Equal(t, []string{"cd"}, vocabs["f1:1"].Sorted(),
		"records without auxiliary entries keep their own vocabulary")
}

func TestLegalVocabularies_UnknownAuxiliaryRecord(t *testing.T) {
	corpus := makeTestCorpus(t, []string{"ab"})
	decomps := makeTestDecomps(t, corpus)

	params := Params{
		Mode:          token.ModeUnion,
		HubPercentile: 90,
		Auxiliary:     map[string][]string{"f1:0": {"missing"}},
	}
	_, err := LegalVocabularies(corpus, decomps, params)
	assert.Error(t, err)
}

func TestLegalVocabularies_ExcludesUnresolvedAndEmptyMiddles(t *testing.T) {
	// "ad" is fully consumed (EMPTY middle), "a*d" is unresolved; neither
	// contributes a middle.
	corpus := makeTestCorpus(t, []string{"ab", "ad", "a*d"})
	decomps := makeTestDecomps(t, corpus)

	vocabs, err := LegalVocabularies(corpus, decomps, strictParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"ab"}, vocabs["f1:0"].Sorted())
}

func TestBuildGraph_EdgesAndComponents(t *testing.T) {
	corpus := makeTestCorpus(t,
		[]string{"ab", "cd"}, // ab-cd compatible
		[]string{"cd", "ef"}, // cd-ef compatible
		[]string{"gh"},       // isolated
	)
	decomps := makeTestDecomps(t, corpus)
	vocabs, err := LegalVocabularies(corpus, decomps, strictParams())
	require.NoError(t, err)

	g, err := BuildGraph(vocabs, strictParams())
	require.NoError(t, err)

	assert.True(t, g.HasEdge("ab", "cd"))
	assert.True(t, g.HasEdge("cd", "ef"))
	assert.False(t, g.HasEdge("ab", "ef"), "compatibility is not transitive at edge level")
	assert.Equal(t, 2, g.Degree("cd"))
	assert.Equal(t, 0, g.Degree("gh"))
	assert.Equal(t, -1, g.Degree("zz"))

	comps := g.Components()
	assert.Equal(t, [][]string{{"ab", "cd", "ef"}, {"gh"}}, comps)
}

func TestBuildGraph_IdempotentPartition(t *testing.T) {
	corpus := makeTestCorpus(t, []string{"ab", "cd"}, []string{"cd", "ef"})
	decomps := makeTestDecomps(t, corpus)
	vocabs, err := LegalVocabularies(corpus, decomps, strictParams())
	require.NoError(t, err)

	g1, err := BuildGraph(vocabs, strictParams())
	require.NoError(t, err)
	g2, err := BuildGraph(vocabs, strictParams())
	require.NoError(t, err)
	assert.Equal(t, g1.Components(), g2.Components(), "partitions are idempotent given fixed inputs")
}

func TestBuildGraph_HubExclusionSplitsGiantComponent(t *testing.T) {
	// "hub" co-occurs with everything; the others only ever co-occur with
	// the hub. Raw view: one giant component. Hub-excluded view: singletons.
	corpus := makeTestCorpus(t,
		[]string{"hub", "x1"},
		[]string{"hub", "x2"},
		[]string{"hub", "x3"},
		[]string{"hub", "x4"},
	)
	decomps := makeTestDecomps(t, corpus)
	vocabs, err := LegalVocabularies(corpus, decomps, strictParams())
	require.NoError(t, err)

	params := Params{Mode: token.ModeStrict, HubPercentile: 80}
	g, err := BuildGraph(vocabs, params)
	require.NoError(t, err)

	assert.Len(t, g.Components(), 1, "hub collapses the raw view")
	assert.Equal(t, []string{"hub"}, g.Hubs())

	excluded := g.ComponentsExcludingHubs()
	assert.Len(t, excluded, 4, "finer structure appears once the hub is removed")
	for _, comp := range excluded {
		assert.Len(t, comp, 1)
	}
}

func TestBuildGraph_RequiresMode(t *testing.T) {
	_, err := BuildGraph(map[string]Vocabulary{}, Params{HubPercentile: 90})
	assert.Error(t, err, "mode must never default silently")
}
