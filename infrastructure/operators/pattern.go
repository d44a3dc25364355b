package operators

import (
	"fmt"
	"regexp"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// patternCacheSize bounds the compiled-pattern cache. Specifications
// reuse a small set of patterns across many documents, so a modest
// bound keeps recompilation rare without letting adversarial
// specifications grow memory unbounded.
const patternCacheSize = 256

// patternCache is the process-wide compiled-pattern cache shared by all
// evaluations. Concurrent-safe; a miss recompiles.
var patternCache = newLRUCache[*regexp.Regexp](patternCacheSize)

// matchRegex implements $regex with partial-match semantics, as in
// MongoDB: the pattern needs to match a substring of the value, not the
// whole string. Anchor with ^ and $ for full-string matching.
//
// A non-string document value is a non-match. A malformed pattern is an
// invalid operand, surfacing as UNDETERMINED with the compile error
// rather than propagating a failure.
func matchRegex(_ ports.ValueMatcher, value, operand any) (bool, error) {
	pattern, ok := operand.(string)
	if !ok {
		return false, domain.NewOperatorError("$regex", "",
			fmt.Errorf("%w: pattern must be a string, got %T", domain.ErrInvalidOperand, operand))
	}
	s, ok := value.(string)
	if !ok {
		return false, nil
	}

	re, err := compilePattern(pattern)
	if err != nil {
		return false, domain.NewOperatorError("$regex", "",
			fmt.Errorf("%w: invalid pattern %q: %v", domain.ErrInvalidOperand, pattern, err))
	}
	return re.MatchString(s), nil
}

// compilePattern returns the compiled form of pattern, consulting the
// bounded cache first. Compilation happens outside the cache lock, so a
// concurrent miss on the same pattern compiles twice and the cache
// keeps whichever lands last.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.add(pattern, re)
	return re, nil
}
