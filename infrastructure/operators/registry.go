// Package operators provides the built-in MongoDB-style operator
// handlers and the extensible registry that dispatches them for the
// json-rules evaluation engine.
package operators

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/thekitchencoder/json-rules/internal/domain"
	"github.com/thekitchencoder/json-rules/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.OperatorRegistry = (*Registry)(nil)

// Registry is a thread-safe dispatch table mapping operator names to
// handlers. It is constructed with every built-in operator registered
// and accepts custom registrations before first use. Lookups are
// read-only after construction in the common case, so concurrent
// predicate evaluation contends only on an RWMutex read lock.
type Registry struct {
	// handlers maps operator name (with $ prefix) to its handler.
	handlers map[string]ports.OperatorHandler
	// mu protects concurrent access to the handlers map.
	mu sync.RWMutex
}

// NewRegistry creates a registry with every built-in operator family
// registered: comparison, range, collection, existence, pattern,
// structural, logical, date, string, similarity, and expression
// operators. Names returns the full list of registered operators.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]ports.OperatorHandler)}
	r.registerBuiltins()
	return r
}

// registerBuiltins installs the standard operator set.
func (r *Registry) registerBuiltins() {
	builtins := map[string]ports.OperatorHandler{
		"$eq":         matchEq,
		"$ne":         matchNe,
		"$gt":         matchGt,
		"$gte":        matchGte,
		"$lt":         matchLt,
		"$lte":        matchLte,
		"$between":    matchBetween,
		"$in":         matchIn,
		"$nin":        matchNin,
		"$all":        matchAll,
		"$size":       matchSize,
		"$exists":     matchExists,
		"$type":       matchType,
		"$regex":      matchRegex,
		"$elemMatch":  matchElemMatch,
		"$and":        matchAnd,
		"$or":         matchOr,
		"$not":        matchNot,
		"$dateBefore": matchDateBefore,
		"$dateAfter":  matchDateAfter,
		"$contains":   matchContains,
		"$startsWith": matchStartsWith,
		"$endsWith":   matchEndsWith,
		"$fuzzy":      newFuzzyHandler(),
		"$cel":        newCELHandler(),
	}
	for name, handler := range builtins {
		r.handlers[name] = handler
	}
}

// Lookup returns the handler registered under name, or false when the
// operator is unknown. Safe for concurrent use.
func (r *Registry) Lookup(name string) (ports.OperatorHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[name]
	return handler, ok
}

// Register adds or replaces a handler for the given operator name.
// Names must start with the $ prefix following MongoDB conventions.
func (r *Registry) Register(name string, handler ports.OperatorHandler) error {
	if !strings.HasPrefix(name, domain.OperatorPrefix) {
		return fmt.Errorf("operator name %q must start with %s", name, domain.OperatorPrefix)
	}
	if handler == nil {
		return fmt.Errorf("handler for operator %q cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[name] = handler
	return nil
}

// Names returns the sorted list of registered operator names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
