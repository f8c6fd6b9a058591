package nullmodel

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Statistic computes the test statistic on one (surrogate) dataset.
type Statistic[T any] func(T) float64

// Config controls a surrogate test run.
type Config struct {
	// Trials is the surrogate count, typically 100-1000.
	Trials int

	// Seed is the base seed; trial i derives its own source from Seed+i so
	// results are reproducible at any parallelism.
	Seed int64

	// Parallelism bounds concurrent trials. Zero means GOMAXPROCS.
	Parallelism int

	// MinTrials is the documented minimum for a well-powered result.
	// A run completing fewer trials (after cancellation) is returned but
	// flagged low-confidence. Zero means Trials.
	MinTrials int

	// Progress, when set, is called after each completed trial.
	Progress func(done, total int)
}

func (c Config) validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("trials must be >= 1 (got %d)", c.Trials)
	}
	if c.MinTrials < 0 || c.MinTrials > c.Trials {
		return fmt.Errorf("min trials %d out of range [0, %d]", c.MinTrials, c.Trials)
	}
	return nil
}

// Result is the outcome of one surrogate test. It always carries both the
// empirical significance and a non-null effect size.
type Result struct {
	Observed  float64 `json:"observed"`
	Trials    int     `json:"trials"`
	Completed int     `json:"completed"`

	// Rank counts surrogates whose statistic is >= the observed value;
	// Percentile is Rank as a share of completed trials. A 0th-percentile
	// rank means no surrogate reached the observation.
	Rank       int     `json:"rank"`
	Percentile float64 `json:"percentile"`

	// PValue is the empirical upper-tail p-value (Rank+1)/(Completed+1).
	PValue float64 `json:"p_value"`

	SurrogateMean   float64 `json:"surrogate_mean"`
	SurrogateStdDev float64 `json:"surrogate_std_dev"`

	Effect EffectSize `json:"effect"`

	// LowConfidence marks results below the documented trial minimum. Such
	// results must never be presented with equal weight to well-powered
	// ones.
	LowConfidence bool `json:"low_confidence"`
}

// Run executes the surrogate test: N trials of generate-then-score against
// the observed statistic. effect is the caller-computed effect size for the
// observed association; Run refuses to produce a result without a valid
// one.
//
// Cancelling ctx stops scheduling remaining trials; completed trials form a
// valid partial result (flagged low-confidence when below the minimum). A
// SurrogateGenerationError from any trial aborts the whole run.
func Run[T any](ctx context.Context, cfg Config, gen Generator[T], statFn Statistic[T], observed float64, effect EffectSize) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := effect.Validate(); err != nil {
		return nil, fmt.Errorf("significance without effect size is not reportable: %w", err)
	}

	values := make([]float64, cfg.Trials)
	completed := make([]bool, cfg.Trials)
	var done atomic.Int64

	limit := cfg.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for trial := 0; trial < cfg.Trials; trial++ {
		if ctx.Err() != nil {
			break // stop scheduling; completed trials remain valid
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil // cancelled before start, discard trial
			}
			rng := rand.New(rand.NewSource(cfg.Seed + int64(trial)))
			surrogate, err := gen.Generate(rng)
			if err != nil {
				return err // SurrogateGenerationError aborts the run
			}
			values[trial] = statFn(surrogate)
			completed[trial] = true
			if cfg.Progress != nil {
				cfg.Progress(int(done.Add(1)), cfg.Trials)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var finished []float64
	for i, ok := range completed {
		if ok {
			finished = append(finished, values[i])
		}
	}
	if len(finished) == 0 {
		return nil, fmt.Errorf("no surrogate trials completed: %w", ctx.Err())
	}

	res := &Result{
		Observed:  observed,
		Trials:    cfg.Trials,
		Completed: len(finished),
		Effect:    effect,
	}
	for _, v := range finished {
		if v >= observed {
			res.Rank++
		}
	}
	res.Percentile = 100 * float64(res.Rank) / float64(res.Completed)
	res.PValue = float64(res.Rank+1) / float64(res.Completed+1)
	res.SurrogateMean = stat.Mean(finished, nil)
	if len(finished) > 1 {
		res.SurrogateStdDev = stat.StdDev(finished, nil)
	}

	minTrials := cfg.MinTrials
	if minTrials == 0 {
		minTrials = cfg.Trials
	}
	res.LowConfidence = res.Completed < minTrials

	slog.Info("surrogate test complete",
		"scheme", gen.Name(),
		"observed", observed,
		"completed", res.Completed,
		"trials", cfg.Trials,
		"rank", res.Rank,
		"p_value", res.PValue,
		"effect_kind", string(effect.Kind),
		"effect", effect.Value,
		"low_confidence", res.LowConfidence)
	return res, nil
}
