// Package ports defines the core interfaces that form the contract
// between the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the engine
// testable and extensible.
package ports

// ValueMatcher is the recursive evaluation entry point handed to
// operator handlers. It lets composite operators such as $elemMatch,
// $and, $or, and $not evaluate nested operator maps against a current
// value without duplicating matching logic.
//
// Implementations must be safe for concurrent use: predicate
// evaluations run in parallel and share a single matcher.
type ValueMatcher interface {
	// MatchValue evaluates an operator map against a single resolved
	// value. It returns whether every operator clause matched, or an
	// error wrapping one of the domain sentinels when evaluation could
	// not be determined (unknown operator, invalid operand, type
	// mismatch under an undetermined policy, internal failure).
	MatchValue(value any, operators map[string]any) (bool, error)
}

// OperatorHandler implements one operator's matching policy.
//
// A handler receives the resolved document value, the operand from the
// query, and the matcher for recursive evaluation of nested operator
// maps. Pure handlers ignore the matcher. Handlers must be stateless or
// internally synchronized, must never panic by contract (the predicate
// evaluator still contains panics as a last line of defense), and
// signal undetermined conditions by returning an error rather than
// false.
type OperatorHandler func(m ValueMatcher, value, operand any) (bool, error)

// OperatorRegistry is the extensible dispatch table mapping operator
// names to handlers. The built-in table is constructed once at startup;
// custom handlers may be registered before first use. Lookup must be
// safe for concurrent use.
type OperatorRegistry interface {
	// Lookup returns the handler for an operator name, or false when no
	// handler is registered. Absence is distinguished from a handler
	// returning false: an unknown operator makes the whole predicate
	// UNDETERMINED.
	Lookup(name string) (OperatorHandler, bool)

	// Register adds or replaces a handler for the given operator name.
	// Names must carry the $ prefix. Registration after evaluation has
	// begun is legal but handlers observed mid-run are unspecified.
	Register(name string, handler OperatorHandler) error

	// Names returns the registered operator names, for introspection
	// and diagnostics.
	Names() []string
}
