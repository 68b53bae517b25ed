package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/crawlsight/crawlsight/app/crawl"
)

// Persister accepts a completed run for fire-and-forget storage. Failures are
// its own concern; the pipeline result never depends on persistence.
type Persister interface {
	Persist(sessionID string, pages []crawl.Page, result *Result)
}

// Pipeline sequences one analysis run: normalize, aggregate, sample, analyze
// qualitatively, generate insights, assemble. It holds no state between runs;
// the session id is the only thread binding a dataset to its results.
type Pipeline struct {
	normalizer *crawl.Normalizer
	aggregator *Aggregator
	sampler    *Sampler
	analyzer   *Analyzer
	engine     *Engine
	persister  Persister
}

func NewPipeline(normalizer *crawl.Normalizer, aggregator *Aggregator, sampler *Sampler,
	analyzer *Analyzer, engine *Engine, persister Persister) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		aggregator: aggregator,
		sampler:    sampler,
		analyzer:   analyzer,
		engine:     engine,
		persister:  persister,
	}
}

// Run executes the full pipeline for one uploaded dataset. It either fully
// succeeds or fails with a well-defined input/internal error; it never
// partially returns.
func (p *Pipeline) Run(ctx context.Context, rows []crawl.Row) (*Result, error) {
	sessionID := NewSessionID()

	pages := make([]crawl.Page, 0, len(rows))
	for _, row := range rows {
		pages = append(pages, p.normalizer.Run(row))
	}

	quantitative, err := p.aggregator.Run(pages)
	if err != nil {
		return nil, err
	}

	sample := p.sampler.Run(pages)
	prompt := p.sampler.BuildPrompt(sample)
	qualitative := p.analyzer.Run(ctx, prompt)

	insights := p.engine.Run(quantitative, qualitative)

	result := &Result{
		SessionID:    sessionID,
		Quantitative: quantitative,
		Qualitative:  qualitative,
		Insights:     insights,
	}

	slog.Info("Analysis pipeline completed",
		"session", sessionID,
		"pages", quantitative.TotalPages,
		"sampled", len(sample),
		"insights", len(insights),
		"qualitative_degraded", qualitative.Degraded())

	if p.persister != nil {
		p.persister.Persist(sessionID, pages, result)
	}

	return result, nil
}

// NewSessionID generates a session identifier unique with overwhelmingly high
// probability across concurrent uploads. Not a security token.
func NewSessionID() string {
	return fmt.Sprintf("%d-%04d", time.Now().UnixNano(), rand.Intn(10000))
}
