package extract

import (
	"reflect"
	"testing"
)

func TestYearExtractor_Extract(t *testing.T) {
	e := NewDefaultYearExtractor()

	tests := []struct {
		name  string
		scope []string
		want  []int
	}{
		{
			name:  "bounds are exclusive",
			scope: []string{"1600 1601 1912 1913"},
			want:  []int{1601, 1912},
		},
		{
			name:  "embedded in longer numbers",
			scope: []string{"Serial 12345 and 19000 units."},
			want:  []int{1900},
		},
		{
			name:  "order and duplicates kept",
			scope: []string{"In 1850 and 1820.", "Again 1850."},
			want:  []int{1850, 1820, 1850},
		},
		{
			name:  "adjacent to letters",
			scope: []string{"c.1750s and AD1800"},
			want:  []int{1750, 1800},
		},
		{
			name:  "only ASCII digits count",
			scope: []string{"Founded in ١٨٥٠ (1851)."},
			want:  []int{1851},
		},
		{
			name:  "short numbers ignored",
			scope: []string{"In 850 there were 17 mills."},
			want:  []int{},
		},
		{
			name:  "empty scope",
			scope: nil,
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.scope)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.scope, got, tt.want)
			}
		})
	}
}

func TestYearExtractor_NeverOutOfRange(t *testing.T) {
	e := NewDefaultYearExtractor()
	scope := []string{"0000 1599 1600 1601 1700 1800 1900 1912 1913 1914 2024 9999 16001913"}

	for _, y := range e.Extract(scope) {
		if y <= 1600 || y >= 1913 {
			t.Errorf("Extracted out-of-range year %d", y)
		}
	}
}

func TestYearExtractor_CustomWindow(t *testing.T) {
	e := NewYearExtractor(1800, 2000)
	got := e.Extract([]string{"1700 1850 1999 2000"})
	want := []int{1850, 1999}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}
