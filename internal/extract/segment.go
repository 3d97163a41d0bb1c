package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Segmenter splits plain text into an ordered list of sentences
type Segmenter interface {
	Segment(text string) []string
}

// NewSegmenter returns the segmenter registered under name
func NewSegmenter(name string) (Segmenter, error) {
	switch strings.ToLower(name) {
	case "punkt", "":
		return NewPunktSegmenter()
	case "rules":
		return NewRuleSegmenter(), nil
	default:
		return nil, fmt.Errorf("unknown segmenter: %s (supported: punkt, rules)", name)
	}
}

// DefaultSegmenter returns the punkt segmenter, or the rule segmenter if the
// punkt model cannot be loaded
func DefaultSegmenter() Segmenter {
	if punkt, err := NewPunktSegmenter(); err == nil {
		return punkt
	}
	return NewRuleSegmenter()
}

// PunktSegmenter uses the pre-trained English punkt model
type PunktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter loads the English punkt model
func NewPunktSegmenter() (*PunktSegmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt model: %w", err)
	}
	return &PunktSegmenter{tokenizer: tokenizer}, nil
}

// Segment splits text into sentences
func (s *PunktSegmenter) Segment(text string) []string {
	out := []string{}
	for _, paragraph := range paragraphs(text) {
		for _, sent := range s.tokenizer.Tokenize(paragraph) {
			if t := strings.TrimSpace(sent.Text); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// RuleSegmenter splits on terminal punctuation, skipping known abbreviations
// and single-letter initials
type RuleSegmenter struct {
	abbreviations map[string]bool
}

// NewRuleSegmenter creates a rule segmenter with the built-in abbreviation list
func NewRuleSegmenter() *RuleSegmenter {
	abbr := make(map[string]bool, len(defaultAbbreviations))
	for _, a := range defaultAbbreviations {
		abbr[a] = true
	}
	return &RuleSegmenter{abbreviations: abbr}
}

var defaultAbbreviations = []string{
	"inc", "co", "corp", "ltd", "bros", "assn", "dept", "est",
	"mr", "mrs", "ms", "dr", "prof", "rev", "hon", "gen", "col", "capt", "lt", "sgt",
	"st", "mt", "ft", "ave", "rd",
	"jr", "sr", "no", "vol", "pp", "cf", "vs", "etc", "approx", "ca", "c",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	"e.g", "i.e", "u.s", "u.k", "u.s.a",
}

// closers may trail terminal punctuation without ending the sentence early
const closers = "\"')]}”’"

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Segment splits text into sentences
func (s *RuleSegmenter) Segment(text string) []string {
	out := []string{}
	for _, paragraph := range paragraphs(text) {
		tokens := strings.Fields(paragraph)

		var current []string
		for i, tok := range tokens {
			current = append(current, tok)

			var next string
			if i+1 < len(tokens) {
				next = tokens[i+1]
			}
			if s.endsSentence(tok, next) {
				out = append(out, strings.Join(current, " "))
				current = current[:0]
			}
		}

		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
		}
	}
	return out
}

// endsSentence reports whether tok closes a sentence given the following token
func (s *RuleSegmenter) endsSentence(tok, next string) bool {
	if next == "" {
		return false
	}

	core := strings.TrimRight(tok, closers)
	if core == "" {
		return false
	}

	switch core[len(core)-1] {
	case '!', '?':
	case '.':
		if s.isAbbreviation(strings.TrimSuffix(core, ".")) {
			return false
		}
	default:
		return false
	}

	r, _ := utf8.DecodeRuneInString(strings.TrimLeft(next, closers+"(["))
	return !unicode.IsLower(r)
}

func (s *RuleSegmenter) isAbbreviation(word string) bool {
	word = strings.TrimLeft(word, closers+"([")
	if word == "" {
		return false
	}
	if s.abbreviations[strings.ToLower(word)] {
		return true
	}

	// Initials such as "J." in "J. P. Morgan"
	if utf8.RuneCountInString(word) == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		return unicode.IsUpper(r)
	}
	return false
}

// paragraphs collapses single newlines and splits on blank lines
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
