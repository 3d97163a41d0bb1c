package extract

import (
	"github.com/ppiankov/foundyear/internal/model"
)

// Scopes are the three nested sentence sets derived from one article
type Scopes struct {
	Full     []string // Every sentence
	Name     []string // Sentences containing the company name
	Founding []string // Name sentences containing a founding keyword
}

// Estimator reduces an article to a founding-year guess
type Estimator struct {
	segmenter Segmenter
	years     *YearExtractor
	keywords  []string
}

// NewEstimator creates an estimator. Nil arguments fall back to the default
// segmenter, the default year window and the default founding keywords.
func NewEstimator(segmenter Segmenter, years *YearExtractor, keywords []string) *Estimator {
	if segmenter == nil {
		segmenter = DefaultSegmenter()
	}
	if years == nil {
		years = NewDefaultYearExtractor()
	}
	if len(keywords) == 0 {
		keywords = model.DefaultFoundingKeywords
	}
	return &Estimator{
		segmenter: segmenter,
		years:     years,
		keywords:  append([]string(nil), keywords...),
	}
}

// NewEstimatorFromConfig builds an estimator from the extract configuration
func NewEstimatorFromConfig(cfg model.ExtractConfig) (*Estimator, error) {
	segmenter, err := NewSegmenter(cfg.Segmenter)
	if err != nil {
		return nil, err
	}
	return NewEstimator(segmenter, NewYearExtractor(cfg.MinYear, cfg.MaxYear), cfg.FoundingKeywords), nil
}

// Scopes derives the full, name and founding scopes. A nil article yields
// three empty scopes.
func (e *Estimator) Scopes(article *model.Article, name string) Scopes {
	if article == nil {
		return Scopes{Full: []string{}, Name: []string{}, Founding: []string{}}
	}

	full := e.segmenter.Segment(article.Text)
	named := FilterByContains(full, []string{name})
	founding := FilterByContains(named, e.keywords)

	return Scopes{Full: full, Name: named, Founding: founding}
}

// Estimate computes the per-scope years, the confidence tier and the best guess
func (e *Estimator) Estimate(article *model.Article, name string) model.EstimationResult {
	scopes := e.Scopes(article, name)
	return e.reduce(scopes)
}

func (e *Estimator) reduce(scopes Scopes) model.EstimationResult {
	fullYears := e.years.Extract(scopes.Full)
	nameYears := e.years.Extract(scopes.Name)
	foundingYears := e.years.Extract(scopes.Founding)

	// Each scope only counts when every narrower scope is empty, except the
	// founding scope which always counts.
	var g guess
	g = g.fold(fullYears, model.ConfidenceArticle, len(scopes.Name) == 0)
	g = g.fold(nameYears, model.ConfidenceName, len(scopes.Founding) == 0)
	g = g.fold(foundingYears, model.ConfidenceFounding, true)

	return model.EstimationResult{
		FullYears:     fullYears,
		NameYears:     nameYears,
		FoundingYears: foundingYears,
		Confidence:    g.tier,
		BestGuess:     g.best,
		HasGuess:      g.has,
	}
}

// guess is the running accumulator of the precedence fold
type guess struct {
	best int
	has  bool
	tier model.Confidence
}

// fold returns g updated with years at the given tier. The best guess only
// ever decreases.
func (g guess) fold(years []int, tier model.Confidence, counts bool) guess {
	if !counts {
		return g
	}
	for _, y := range years {
		if !g.has || y < g.best {
			g.best = y
			g.has = true
		}
		g.tier = tier
	}
	return g
}
