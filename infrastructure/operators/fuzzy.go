package operators

import (
	"fmt"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// defaultFuzzyThreshold is the minimum similarity accepted when the
// operand does not override it.
const defaultFuzzyThreshold = 0.8

// foldCaser is a package-level Unicode case folder for performance.
// Fold handles international text correctly where ASCII lowercasing
// does not.
var foldCaser = cases.Fold()

// newFuzzyHandler builds the $fuzzy handler: approximate string
// matching by Levenshtein similarity. The operand is either a bare
// pattern string (default threshold, case-insensitive) or a map:
//
//	{"pattern": "colour", "threshold": 0.7, "case_sensitive": true}
//
// Similarity is 1 - distance/maxLen over runes. A non-string document
// value is a non-match; a malformed operand is an invalid operand.
func newFuzzyHandler() ports.OperatorHandler {
	return func(_ ports.ValueMatcher, value, operand any) (bool, error) {
		pattern, threshold, caseSensitive, err := fuzzyOperand(operand)
		if err != nil {
			return false, err
		}
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		if !caseSensitive {
			s = foldCaser.String(s)
			pattern = foldCaser.String(pattern)
		}
		return fuzzySimilarity(s, pattern) >= threshold, nil
	}
}

func fuzzyOperand(operand any) (pattern string, threshold float64, caseSensitive bool, err error) {
	threshold = defaultFuzzyThreshold

	switch op := operand.(type) {
	case string:
		return op, threshold, false, nil
	default:
		m, ok := asOperatorMap(operand)
		if !ok {
			return "", 0, false, domain.NewOperatorError("$fuzzy", "",
				fmt.Errorf("%w: operand must be a pattern string or options map, got %T", domain.ErrInvalidOperand, operand))
		}
		pattern, ok = m["pattern"].(string)
		if !ok {
			return "", 0, false, domain.NewOperatorError("$fuzzy", "",
				fmt.Errorf("%w: options map requires a string pattern", domain.ErrInvalidOperand))
		}
		if raw, present := m["threshold"]; present {
			t, tok := asNumber(raw)
			if !tok || t < 0 || t > 1 {
				return "", 0, false, domain.NewOperatorError("$fuzzy", "",
					fmt.Errorf("%w: threshold must be a number in [0,1]", domain.ErrInvalidOperand))
			}
			threshold = t
		}
		if raw, present := m["case_sensitive"]; present {
			cs, csok := raw.(bool)
			if !csok {
				return "", 0, false, domain.NewOperatorError("$fuzzy", "",
					fmt.Errorf("%w: case_sensitive must be a boolean", domain.ErrInvalidOperand))
			}
			caseSensitive = cs
		}
		return pattern, threshold, caseSensitive, nil
	}
}

// fuzzySimilarity maps Levenshtein distance to a [0,1] similarity
// score. Two empty strings are identical.
func fuzzySimilarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}
