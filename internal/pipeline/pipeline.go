package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/ppiankov/foundyear/internal/extract"
	"github.com/ppiankov/foundyear/internal/lookup"
	"github.com/ppiankov/foundyear/internal/model"
)

// Pipeline resolves and estimates one company at a time
type Pipeline struct {
	lookup    lookup.Lookup
	estimator *extract.Estimator
	renderer  *Renderer
	logger    *slog.Logger
}

// NewPipeline wires a lookup backend, an estimator and a renderer together
func NewPipeline(l lookup.Lookup, estimator *extract.Estimator, renderer *Renderer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		renderer = NewRenderer(false)
	}
	return &Pipeline{
		lookup:    l,
		estimator: estimator,
		renderer:  renderer,
		logger:    logger,
	}
}

// Process looks name up and estimates its founding year. Lookup failures are
// folded into the record as a confidence-0 outcome and never returned.
func (p *Pipeline) Process(ctx context.Context, name string) model.Record {
	start := time.Now()

	// 1. Resolve the article
	article, err := p.lookup.Lookup(ctx, name)
	outcome := lookup.Classify(err)

	rec := model.Record{
		Name:    name,
		Outcome: outcome,
	}

	switch outcome {
	case model.OutcomeMatched:
		rec.Title = article.Title
	case model.OutcomeMiss, model.OutcomeAmbiguous:
		rec.Title = lookup.TitleOf(err)
		p.logger.Warn("no usable article", "company", name, "outcome", outcome, "error", err)
		article = nil
	default:
		rec.Title = lookup.TitleOf(err)
		rec.Error = err.Error()
		p.logger.Error("lookup failed", "company", name, "error", err)
		article = nil
	}

	// 2. Estimate (a nil article yields the empty confidence-0 result)
	rec.Result = p.estimator.Estimate(article, name)

	p.logger.Debug("company processed",
		"company", name,
		"title", rec.Title,
		"outcome", rec.Outcome,
		"confidence", int(rec.Result.Confidence),
		"elapsed", time.Since(start))

	return rec
}

// Line renders rec in the record line format
func (p *Pipeline) Line(rec model.Record) string {
	return p.renderer.Line(rec)
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// EstimateText runs the estimator on local text, bypassing the lookup
func (p *Pipeline) EstimateText(title, text, name string) model.Record {
	article := &model.Article{Title: title, Text: text}
	return model.Record{
		Name:    name,
		Title:   title,
		Outcome: model.OutcomeMatched,
		Result:  p.estimator.Estimate(article, name),
	}
}
