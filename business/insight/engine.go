package insight

import (
	"context"
	"fmt"
	"shopifyPulse/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Engine runs the registered evaluators over a snapshot, scores the
// findings and returns the ranked, deduplicated recommendation list.
// It is stateless across calls and safe for concurrent use.
type Engine struct {
	cfg        Config
	evaluators []Evaluator
}

// NewEngine builds an engine. With no explicit evaluators the four
// built-ins are registered.
func NewEngine(cfg Config, evaluators ...Evaluator) *Engine {
	if len(evaluators) == 0 {
		evaluators = BuiltinEvaluators(cfg)
	}
	return &Engine{
		cfg:        cfg,
		evaluators: evaluators,
	}
}

// Generate is the single entry point: evaluate, score, rank. A limit of
// zero means unrestricted. Findings that cannot be scored are dropped;
// the remaining list is still returned.
func (e *Engine) Generate(
	ctx context.Context,
	snap *MetricSnapshot,
	benchmarks BenchmarkSet,
	limit int,
) (RankedList, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if snap == nil {
		return nil, &ValidationError{Field: "snapshot", Reason: "must not be nil"}
	}

	// Evaluators are independent, so they run in parallel. Results land
	// in per-evaluator slots and are flattened in registration order:
	// final ranking never depends on completion order.
	results := make([][]Finding, len(e.evaluators))

	g, gctx := errgroup.WithContext(ctx)
	for i, ev := range e.evaluators {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ev.Evaluate(snap, benchmarks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate snapshot: %w", err)
	}

	scored := make([]ScoredRecommendation, 0, 8)
	for i, findings := range results {
		for _, f := range findings {
			FindingsTotal.WithLabelValues(string(f.Category)).Inc()

			rec, err := e.cfg.Score(f)
			if err != nil {
				FindingsDroppedTotal.Inc()
				logger.Debug("finding dropped",
					"evaluator", e.evaluators[i].Name(),
					"title", f.Title,
					"error", err,
				)
				continue
			}
			scored = append(scored, rec)
		}
	}

	return Rank(scored, limit), nil
}
