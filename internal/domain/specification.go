// Package domain contains pure, dependency-free domain models and types
// for the predicate evaluation engine.
package domain

// OperatorPrefix is the leading character of every operator name in a
// query, following MongoDB conventions (e.g. "$gte", "$regex").
const OperatorPrefix = "$"

// Query maps dot-separated field paths to operator maps. An operator map
// associates operator names with their operands, where an operand may be
// a scalar, a list, or a nested operator map depending on the operator.
//
// Example:
//
//	Query{
//	    "age":    {"$gte": 18, "$lt": 65},
//	    "status": {"$in": []any{"ACTIVE", "TRIAL"}},
//	}
type Query map[string]map[string]any

// Predicate is a single named condition over one or more document field
// paths. All operator clauses across all fields combine with implicit
// AND: the predicate matches only when every clause matches.
//
// Predicates are immutable once constructed and safe to share across
// goroutines and evaluation runs.
type Predicate struct {
	// ID uniquely identifies this predicate within a specification.
	ID string `yaml:"id" json:"id" validate:"required,min=1,max=255"`

	// Query holds the field-path to operator-map conditions. An empty
	// query is legal only for group members that reference a predicate
	// declared at specification scope.
	Query Query `yaml:"query" json:"query"`
}

// NewPredicate creates a predicate with the given id and query.
func NewPredicate(id string, query Query) Predicate {
	return Predicate{ID: id, Query: query}
}

// Ref creates a query-less predicate referencing a predicate declared
// elsewhere by id, for use inside group member lists.
func Ref(id string) Predicate {
	return Predicate{ID: id}
}

// Junction is the boolean logic used to combine the members of a
// predicate group.
type Junction string

const (
	// JunctionAnd requires every member predicate to have state MATCHED.
	JunctionAnd Junction = "AND"

	// JunctionOr requires at least one member predicate to have state
	// MATCHED.
	JunctionOr Junction = "OR"
)

// PredicateGroup is a named AND/OR composition of predicates by
// reference. Members usually reference predicates declared at
// specification scope via their id; a member carrying its own query is
// evaluated on demand when no specification-scope result exists for it.
type PredicateGroup struct {
	// ID uniquely identifies this group within a specification.
	ID string `yaml:"id" json:"id" validate:"required,min=1,max=255"`

	// Junction selects AND or OR combination of the member results.
	Junction Junction `yaml:"junction" json:"junction" validate:"required,oneof=AND OR"`

	// Members is the ordered list of predicates combined by Junction.
	Members []Predicate `yaml:"members" json:"members" validate:"required,min=1,dive"`
}

// Specification is the complete set of predicates and predicate groups
// evaluated together against one document. It is immutable once
// constructed, owned by the caller, and may be reused across many
// documents and concurrent evaluation runs.
type Specification struct {
	// ID identifies the specification in outcomes and diagnostics.
	ID string `yaml:"id" json:"id" validate:"required,min=1,max=255"`

	// Predicates are the top-level predicates evaluated concurrently in
	// phase 1 of a run. Ids are expected to be unique.
	Predicates []Predicate `yaml:"predicates" json:"predicates" validate:"dive"`

	// Groups are evaluated in phase 2 from the cached phase-1 results.
	Groups []PredicateGroup `yaml:"groups" json:"groups" validate:"dive"`
}
