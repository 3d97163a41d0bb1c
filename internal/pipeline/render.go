package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/foundyear/internal/model"
)

// NoGuessSentinel is written in place of a best guess when there is none
const NoGuessSentinel = 9000

// Renderer formats records as semicolon-delimited lines
type Renderer struct {
	legacyLists bool
}

// NewRenderer creates a renderer. With legacyLists every year is followed by
// ", " instead of years being joined by it.
func NewRenderer(legacyLists bool) *Renderer {
	return &Renderer{legacyLists: legacyLists}
}

// Line formats rec as
// name; title; full years; name years; founding years; confidence; guess
func (r *Renderer) Line(rec model.Record) string {
	guess := NoGuessSentinel
	if g, ok := rec.Result.Guess(); ok {
		guess = g
	}

	fields := []string{
		rec.Name,
		rec.Title,
		r.years(rec.Result.FullYears),
		r.years(rec.Result.NameYears),
		r.years(rec.Result.FoundingYears),
		strconv.Itoa(int(rec.Result.Confidence)),
		strconv.Itoa(guess),
	}
	return strings.Join(fields, "; ")
}

func (r *Renderer) years(years []int) string {
	var buf strings.Builder
	for i, y := range years {
		if i > 0 && !r.legacyLists {
			buf.WriteString(", ")
		}
		buf.WriteString(strconv.Itoa(y))
		if r.legacyLists {
			buf.WriteString(", ")
		}
	}
	return buf.String()
}

// RenderJSON writes rec as indented JSON
func (r *Renderer) RenderJSON(w io.Writer, rec model.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}
