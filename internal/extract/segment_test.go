package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestRuleSegmenter_Segment(t *testing.T) {
	seg := NewRuleSegmenter()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "Acme Corp was founded in 1887 by John Doe. Acme Corp expanded in 1920.",
			want: []string{
				"Acme Corp was founded in 1887 by John Doe.",
				"Acme Corp expanded in 1920.",
			},
		},
		{
			name: "initials and company abbreviation",
			text: "J. P. Morgan & Co. was founded in 1871. It grew.",
			want: []string{
				"J. P. Morgan & Co. was founded in 1871.",
				"It grew.",
			},
		},
		{
			name: "country abbreviation",
			text: "Founded in the U.S. by Smith. Moved later.",
			want: []string{
				"Founded in the U.S. by Smith.",
				"Moved later.",
			},
		},
		{
			name: "question and exclamation",
			text: "Is it? Yes! Done.",
			want: []string{"Is it?", "Yes!", "Done."},
		},
		{
			name: "closing quote",
			text: `He said "Stop." Then left.`,
			want: []string{`He said "Stop."`, "Then left."},
		},
		{
			name: "lowercase continuation",
			text: "Prices rose 3.5 percent. in lower case",
			want: []string{"Prices rose 3.5 percent. in lower case"},
		},
		{
			name: "single newline joins lines",
			text: "The works opened\nin 1850.",
			want: []string{"The works opened in 1850."},
		},
		{
			name: "blank line ends a sentence",
			text: "== History ==\n\nThe works opened in 1850.",
			want: []string{"== History ==", "The works opened in 1850."},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "whitespace only",
			text: " \n\t\n ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Segment(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q)\n got: %q\nwant: %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRuleSegmenter_Restartable(t *testing.T) {
	seg := NewRuleSegmenter()
	text := "First sentence here. Second one follows."

	first := seg.Segment(text)
	second := seg.Segment(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical segmentation, got %q and %q", first, second)
	}
}

func TestPunktSegmenter_Segment(t *testing.T) {
	seg, err := NewPunktSegmenter()
	if err != nil {
		t.Fatalf("NewPunktSegmenter failed: %v", err)
	}

	sentences := seg.Segment("Acme Corp was founded in 1887 by John Doe. Acme Corp expanded in 1920.")
	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d: %q", len(sentences), sentences)
	}
	for _, s := range sentences {
		if !strings.HasPrefix(s, "Acme Corp") {
			t.Errorf("Expected sentence to start with company name, got %q", s)
		}
	}

	if got := seg.Segment(""); len(got) != 0 {
		t.Errorf("Expected no sentences for empty text, got %q", got)
	}
}

func TestNewSegmenter(t *testing.T) {
	if _, err := NewSegmenter("rules"); err != nil {
		t.Errorf("rules: unexpected error %v", err)
	}
	if _, err := NewSegmenter("punkt"); err != nil {
		t.Errorf("punkt: unexpected error %v", err)
	}
	if _, err := NewSegmenter("nltk"); err == nil {
		t.Error("Expected error for unknown segmenter")
	}
}
