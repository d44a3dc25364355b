package application

import (
	"github.com/thekitchencoder/json-rules/internal/domain"
)

// PredicateBuilder assembles a predicate fluently, field by field.
//
//	predicate := NewPredicateBuilder("adult").
//	    Field("age").Gte(18).
//	    Field("status").Eq("ACTIVE").
//	    Build()
type PredicateBuilder struct {
	id    string
	query domain.Query
	field string
}

// NewPredicateBuilder starts a predicate with the given id.
func NewPredicateBuilder(id string) *PredicateBuilder {
	return &PredicateBuilder{id: id, query: domain.Query{}}
}

// Field selects the dot-separated path the following operator calls
// apply to.
func (b *PredicateBuilder) Field(path string) *PredicateBuilder {
	b.field = path
	if _, ok := b.query[path]; !ok {
		b.query[path] = map[string]any{}
	}
	return b
}

// Op attaches an arbitrary operator clause to the current field,
// supporting custom registered operators.
func (b *PredicateBuilder) Op(name string, operand any) *PredicateBuilder {
	if b.field != "" {
		b.query[b.field][name] = operand
	}
	return b
}

// Eq adds an $eq clause to the current field.
func (b *PredicateBuilder) Eq(operand any) *PredicateBuilder { return b.Op("$eq", operand) }

// Ne adds a $ne clause to the current field.
func (b *PredicateBuilder) Ne(operand any) *PredicateBuilder { return b.Op("$ne", operand) }

// Gt adds a $gt clause to the current field.
func (b *PredicateBuilder) Gt(operand any) *PredicateBuilder { return b.Op("$gt", operand) }

// Gte adds a $gte clause to the current field.
func (b *PredicateBuilder) Gte(operand any) *PredicateBuilder { return b.Op("$gte", operand) }

// Lt adds a $lt clause to the current field.
func (b *PredicateBuilder) Lt(operand any) *PredicateBuilder { return b.Op("$lt", operand) }

// Lte adds a $lte clause to the current field.
func (b *PredicateBuilder) Lte(operand any) *PredicateBuilder { return b.Op("$lte", operand) }

// In adds an $in clause to the current field.
func (b *PredicateBuilder) In(operands ...any) *PredicateBuilder { return b.Op("$in", operands) }

// Nin adds a $nin clause to the current field.
func (b *PredicateBuilder) Nin(operands ...any) *PredicateBuilder { return b.Op("$nin", operands) }

// All adds an $all clause to the current field.
func (b *PredicateBuilder) All(operands ...any) *PredicateBuilder { return b.Op("$all", operands) }

// Size adds a $size clause to the current field.
func (b *PredicateBuilder) Size(n int) *PredicateBuilder { return b.Op("$size", n) }

// Exists adds an $exists clause to the current field.
func (b *PredicateBuilder) Exists(want bool) *PredicateBuilder { return b.Op("$exists", want) }

// Type adds a $type clause to the current field.
func (b *PredicateBuilder) Type(name string) *PredicateBuilder { return b.Op("$type", name) }

// Regex adds a $regex clause to the current field.
func (b *PredicateBuilder) Regex(pattern string) *PredicateBuilder { return b.Op("$regex", pattern) }

// Between adds a $between clause to the current field.
func (b *PredicateBuilder) Between(low, high any) *PredicateBuilder {
	return b.Op("$between", []any{low, high})
}

// DateBefore adds a $dateBefore clause to the current field.
func (b *PredicateBuilder) DateBefore(instant any) *PredicateBuilder {
	return b.Op("$dateBefore", instant)
}

// DateAfter adds a $dateAfter clause to the current field.
func (b *PredicateBuilder) DateAfter(instant any) *PredicateBuilder {
	return b.Op("$dateAfter", instant)
}

// Contains adds a $contains clause to the current field.
func (b *PredicateBuilder) Contains(operand any) *PredicateBuilder {
	return b.Op("$contains", operand)
}

// StartsWith adds a $startsWith clause to the current field.
func (b *PredicateBuilder) StartsWith(prefix string) *PredicateBuilder {
	return b.Op("$startsWith", prefix)
}

// EndsWith adds an $endsWith clause to the current field.
func (b *PredicateBuilder) EndsWith(suffix string) *PredicateBuilder {
	return b.Op("$endsWith", suffix)
}

// Not wraps a single operator clause in $not on the current field.
func (b *PredicateBuilder) Not(name string, operand any) *PredicateBuilder {
	return b.Op("$not", map[string]any{name: operand})
}

// ElemMatch adds an $elemMatch clause to the current field.
func (b *PredicateBuilder) ElemMatch(query map[string]any) *PredicateBuilder {
	return b.Op("$elemMatch", query)
}

// Build returns the immutable predicate.
func (b *PredicateBuilder) Build() domain.Predicate {
	return domain.NewPredicate(b.id, b.query)
}

// SpecificationBuilder assembles a specification from predicates and
// groups.
//
//	spec := NewSpecificationBuilder("user-checks").
//	    AddPredicate(adult).
//	    AddGroup("eligibility", domain.JunctionAnd, "adult", "active").
//	    Build()
type SpecificationBuilder struct {
	id         string
	predicates []domain.Predicate
	groups     []domain.PredicateGroup
}

// NewSpecificationBuilder starts a specification with the given id.
func NewSpecificationBuilder(id string) *SpecificationBuilder {
	return &SpecificationBuilder{id: id}
}

// AddPredicate appends a top-level predicate.
func (b *SpecificationBuilder) AddPredicate(p domain.Predicate) *SpecificationBuilder {
	b.predicates = append(b.predicates, p)
	return b
}

// AddGroup appends a group whose members reference predicates by id.
func (b *SpecificationBuilder) AddGroup(id string, junction domain.Junction, memberIDs ...string) *SpecificationBuilder {
	members := make([]domain.Predicate, len(memberIDs))
	for i, memberID := range memberIDs {
		members[i] = domain.Ref(memberID)
	}
	b.groups = append(b.groups, domain.PredicateGroup{ID: id, Junction: junction, Members: members})
	return b
}

// Build returns the immutable specification.
func (b *SpecificationBuilder) Build() domain.Specification {
	return domain.Specification{ID: b.id, Predicates: b.predicates, Groups: b.groups}
}
