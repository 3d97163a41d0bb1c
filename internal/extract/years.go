package extract

import (
	"regexp"
	"strconv"

	"github.com/ppiankov/foundyear/internal/model"
)

// yearPattern matches four ASCII digits anywhere, including inside longer numbers
var yearPattern = regexp.MustCompile(`[0-9]{4}`)

// YearExtractor finds plausible founding years in sentences
type YearExtractor struct {
	min int // exclusive
	max int // exclusive
}

// NewYearExtractor creates an extractor keeping years strictly between min and max
func NewYearExtractor(min, max int) *YearExtractor {
	return &YearExtractor{min: min, max: max}
}

// NewDefaultYearExtractor keeps years in (1600, 1913)
func NewDefaultYearExtractor() *YearExtractor {
	return NewYearExtractor(model.DefaultMinYear, model.DefaultMaxYear)
}

// Extract returns every in-range year token of scope, in sentence then token order
func (e *YearExtractor) Extract(scope []string) []int {
	years := []int{}
	for _, sentence := range scope {
		for _, tok := range yearPattern.FindAllString(sentence, -1) {
			year, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			if year > e.min && year < e.max {
				years = append(years, year)
			}
		}
	}
	return years
}
