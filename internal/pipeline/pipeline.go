package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vellumlabs/vellum/internal/class"
	"github.com/vellumlabs/vellum/internal/compat"
	"github.com/vellumlabs/vellum/internal/config"
	"github.com/vellumlabs/vellum/internal/diag"
	"github.com/vellumlabs/vellum/internal/hazard"
	"github.com/vellumlabs/vellum/internal/morph"
	"github.com/vellumlabs/vellum/internal/survivor"
	"github.com/vellumlabs/vellum/internal/token"
)

// Options are the per-run analysis parameters beyond the frozen config.
type Options struct {
	// HubPercentile for compatibility-graph hub reporting. Required.
	HubPercentile float64

	// Auxiliary maps record ID to its matched-record set for union mode.
	// The matching is external input; the pipeline never infers it.
	Auxiliary map[string][]string
}

// AssignedToken is one row of the per-token decomposition and class table.
type AssignedToken struct {
	Token         token.Token         `json:"token"`
	Decomposition morph.Decomposition `json:"decomposition"`
	Assignment    class.Assignment    `json:"assignment"`
}

// Result holds every artifact of one run as in-memory records for the
// external reporting layer. All fields are fully built or the run errored;
// there are no partially populated results.
type Result struct {
	Summary *diag.Summary

	Corpus         *token.Corpus
	Decompositions map[string]morph.Decomposition
	Table          []AssignedToken

	Registry *class.Registry
	Profiles []survivor.Profile

	// Per-mode artifacts: both interpretations are always computed so the
	// historical divergence stays reproducible.
	Vocabularies map[token.Mode]map[string]compat.Vocabulary
	Graphs       map[token.Mode]*compat.Graph
	Survivors    map[token.Mode]*survivor.Table
	CoSurvival   map[token.Mode]*survivor.CoSurvival
	Equivalence  map[token.Mode][]survivor.EquivalenceClass

	Reconciliation *hazard.Reconciliation
}

// Run executes one full analysis run. Every derived structure is rebuilt
// from scratch; hard errors abort immediately and nothing downstream of the
// failing stage is produced.
func Run(ctx context.Context, cfg *config.Config, src token.TokenSource, opts Options) (*Result, error) {
	summary := diag.NewSummary()
	slog.Info("run starting", "run_id", summary.RunID)

	corpus, err := token.BuildCorpus(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("corpus stage: %w", err)
	}
	slog.Info("corpus loaded", "tokens", len(corpus.Tokens()), "records", len(corpus.Records()))

	rules := morph.NewRules(cfg.Prefixes(), cfg.Suffixes())
	texts := make([]string, 0, len(corpus.Tokens()))
	for _, t := range corpus.Tokens() {
		texts = append(texts, t.Text)
	}
	registry, err := class.NewRegistry(cfg.Classes())
	if err != nil {
		return nil, fmt.Errorf("class stage: %w", err)
	}
	for _, c := range registry.Classes() {
		texts = append(texts, c.Members...)
	}
	decomps, err := rules.DecomposeAll(texts)
	if err != nil {
		return nil, fmt.Errorf("decomposition stage: %w", err)
	}

	table := make([]AssignedToken, 0, len(corpus.Tokens()))
	for _, t := range corpus.Tokens() {
		d := decomps[t.Text]
		a := registry.Assign(d)
		if !d.Resolved() {
			summary.AddUnresolved(t.Text)
		}
		if a.Unknown {
			summary.AddUnknown(t.Text)
		}
		table = append(table, AssignedToken{Token: t, Decomposition: d, Assignment: a})
	}

	res := &Result{
		Summary:        summary,
		Corpus:         corpus,
		Decompositions: decomps,
		Table:          table,
		Registry:       registry,
		Profiles:       survivor.Profiles(registry, decomps),
		Vocabularies:   make(map[token.Mode]map[string]compat.Vocabulary),
		Graphs:         make(map[token.Mode]*compat.Graph),
		Survivors:      make(map[token.Mode]*survivor.Table),
		CoSurvival:     make(map[token.Mode]*survivor.CoSurvival),
		Equivalence:    make(map[token.Mode][]survivor.EquivalenceClass),
	}

	for _, mode := range []token.Mode{token.ModeStrict, token.ModeUnion} {
		params := compat.Params{Mode: mode, HubPercentile: opts.HubPercentile, Auxiliary: opts.Auxiliary}
		vocabs, err := compat.LegalVocabularies(corpus, decomps, params)
		if err != nil {
			return nil, fmt.Errorf("vocabulary stage (%s): %w", mode, err)
		}
		graph, err := compat.BuildGraph(vocabs, params)
		if err != nil {
			return nil, fmt.Errorf("graph stage (%s): %w", mode, err)
		}
		tbl, err := survivor.ComputeAll(ctx, corpus, vocabs, res.Profiles, mode)
		if err != nil {
			return nil, fmt.Errorf("survivor stage (%s): %w", mode, err)
		}
		res.Vocabularies[mode] = vocabs
		res.Graphs[mode] = graph
		res.Survivors[mode] = tbl
		res.CoSurvival[mode] = tbl.CoSurvivalMatrix(res.Profiles)
		res.Equivalence[mode] = tbl.EquivalenceClasses(res.Profiles)
		slog.Info("mode artifacts built",
			"mode", mode.String(),
			"graph_nodes", len(graph.Nodes()),
			"components", len(graph.Components()),
			"survivor_patterns", tbl.PatternCount())
	}

	scanParams := hazard.ScanParams{Kernel: cfg.KernelSet(), KernelWindow: cfg.KernelWindow()}
	evidence := hazard.Scan(corpus, scanParams)
	reconciliation, err := hazard.Reconcile(cfg.Hazards(), evidence, scanParams)
	if err != nil {
		// The reconciliation diff travels with the error; the partial
		// artifact must not feed further analysis.
		return nil, fmt.Errorf("hazard stage: %w", err)
	}
	res.Reconciliation = reconciliation

	summary.Log()
	return res, nil
}
