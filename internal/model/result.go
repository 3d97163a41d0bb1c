package model

// Confidence ranks the quality of the evidence behind a best guess
type Confidence int

const (
	ConfidenceNone     Confidence = 0 // No article, or no counted year
	ConfidenceArticle  Confidence = 1 // Year somewhere in the article; name never mentioned in a sentence
	ConfidenceName     Confidence = 2 // Year in a sentence naming the company, no founding keyword
	ConfidenceFounding Confidence = 3 // Year in a sentence naming the company with a founding keyword
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceArticle:
		return "article"
	case ConfidenceName:
		return "name"
	case ConfidenceFounding:
		return "founding"
	default:
		return "none"
	}
}

// EstimationResult holds the years found in each scope and the reduced guess
type EstimationResult struct {
	FullYears     []int      `json:"full_years"`
	NameYears     []int      `json:"name_years"`
	FoundingYears []int      `json:"founding_years"`
	Confidence    Confidence `json:"confidence"`
	BestGuess     int        `json:"best_guess,omitempty"` // Valid only when HasGuess is set
	HasGuess      bool       `json:"has_guess"`
}

// Guess returns the best guess and whether one exists
func (r EstimationResult) Guess() (int, bool) {
	return r.BestGuess, r.HasGuess
}

// Outcome classifies how the article lookup for a company ended
type Outcome string

const (
	OutcomeMatched   Outcome = "matched"
	OutcomeMiss      Outcome = "miss"
	OutcomeAmbiguous Outcome = "ambiguous"
	OutcomeError     Outcome = "error"
)

// Record is the per-company unit emitted by a batch run
type Record struct {
	Name    string           `json:"name"`
	Title   string           `json:"title,omitempty"` // Search title; kept for ambiguous hits too
	Outcome Outcome          `json:"outcome"`
	Error   string           `json:"error,omitempty"`
	Result  EstimationResult `json:"result"`
}
