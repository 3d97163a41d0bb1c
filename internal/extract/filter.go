package extract

import "strings"

// FilterByContains returns the sentences of scope that contain at least one of
// terms as a literal, case-sensitive substring. Order is kept and the result
// never aliases scope.
func FilterByContains(scope []string, terms []string) []string {
	out := make([]string, 0, len(scope))
	for _, sentence := range scope {
		if containsAny(sentence, terms) {
			out = append(out, sentence)
		}
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
