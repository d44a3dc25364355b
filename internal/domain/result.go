package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// EvaluationState is the tri-state outcome of evaluating one predicate.
//
// The UNDETERMINED state is what makes degradation graceful: missing
// data, unknown operators, and internal failures in one predicate never
// abort evaluation of its siblings, they surface as a third state with
// diagnostic detail instead.
type EvaluationState string

const (
	// StateMatched means the predicate evaluated successfully and the
	// condition is true. All required data was present and valid.
	StateMatched EvaluationState = "MATCHED"

	// StateNotMatched means the predicate evaluated successfully and the
	// condition is false.
	StateNotMatched EvaluationState = "NOT_MATCHED"

	// StateUndetermined means the predicate could not be evaluated
	// definitively: missing document data, an unknown operator, an
	// invalid operand, or an internal failure.
	StateUndetermined EvaluationState = "UNDETERMINED"
)

// PredicateResult is the immutable outcome of evaluating a single
// predicate against a document.
type PredicateResult struct {
	// PredicateID identifies the evaluated predicate.
	PredicateID string `yaml:"predicate_id" json:"predicate_id"`

	// State is the tri-state verdict.
	State EvaluationState `yaml:"state" json:"state"`

	// MissingPaths lists the field paths that did not resolve in the
	// document, sorted for stable output. Populated only when State is
	// UNDETERMINED due to missing data.
	MissingPaths []string `yaml:"missing_paths,omitempty" json:"missing_paths,omitempty"`

	// FailureReason describes why evaluation could not be determined
	// (unknown operator, invalid operand, internal error). Empty unless
	// State is UNDETERMINED.
	FailureReason string `yaml:"failure_reason,omitempty" json:"failure_reason,omitempty"`

	// Query echoes the predicate's query for diagnostics on NOT_MATCHED.
	Query Query `yaml:"-" json:"-"`
}

// Matched reports whether the result state is exactly MATCHED.
// NOT_MATCHED and UNDETERMINED both report false.
func (r PredicateResult) Matched() bool { return r.State == StateMatched }

// Determined reports whether the evaluation reached a boolean verdict,
// i.e. the state is MATCHED or NOT_MATCHED.
func (r PredicateResult) Determined() bool { return r.State != StateUndetermined }

// Reason returns a human-readable explanation of a non-match, or the
// empty string when the result matched.
func (r PredicateResult) Reason() string {
	switch r.State {
	case StateMatched:
		return ""
	case StateUndetermined:
		if r.FailureReason != "" {
			return r.FailureReason
		}
		if len(r.MissingPaths) == 0 {
			return "evaluation failed"
		}
		return "missing data at: " + strings.Join(r.MissingPaths, ", ")
	default:
		if len(r.MissingPaths) > 0 {
			return "missing data at: " + strings.Join(r.MissingPaths, ", ")
		}
		return fmt.Sprintf("non-matching values at %v", r.Query)
	}
}

// MissingPredicateResult creates the deterministic UNDETERMINED result
// for a group member whose predicate definition is absent from the
// specification scope and which carries no query of its own.
func MissingPredicateResult(id string) PredicateResult {
	return PredicateResult{
		PredicateID:   id,
		State:         StateUndetermined,
		MissingPaths:  []string{"predicate definition"},
		FailureReason: "predicate definition not found",
	}
}

// UndeterminedResult creates an UNDETERMINED result carrying a failure
// reason and the missing paths observed before the failure, if any.
func UndeterminedResult(id string, missing []string, reason string) PredicateResult {
	sort.Strings(missing)
	return PredicateResult{
		PredicateID:   id,
		State:         StateUndetermined,
		MissingPaths:  missing,
		FailureReason: reason,
	}
}

// GroupResult is the outcome of evaluating one predicate group.
type GroupResult struct {
	// GroupID identifies the evaluated group.
	GroupID string `yaml:"group_id" json:"group_id"`

	// Junction is the boolean logic that produced Matched.
	Junction Junction `yaml:"junction" json:"junction"`

	// MemberResults holds one result per group member, in member order.
	MemberResults []PredicateResult `yaml:"member_results" json:"member_results"`

	// Matched is true when the junction logic is satisfied. Only member
	// results with state MATCHED contribute a true; UNDETERMINED is
	// never promoted to true by group evaluation.
	Matched bool `yaml:"matched" json:"matched"`
}

// Reason returns the combined non-match reasons of all members,
// comma-separated. Matched members contribute nothing.
func (g GroupResult) Reason() string {
	reasons := make([]string, 0, len(g.MemberResults))
	for _, r := range g.MemberResults {
		if reason := r.Reason(); reason != "" {
			reasons = append(reasons, reason)
		}
	}
	return strings.Join(reasons, ", ")
}

// EvaluationSummary aggregates the per-predicate states of one run.
// Group results are excluded from all counts.
type EvaluationSummary struct {
	// Total is the number of individual predicate results.
	Total int `yaml:"total" json:"total"`

	// Matched counts results with state MATCHED.
	Matched int `yaml:"matched" json:"matched"`

	// NotMatched counts results with state NOT_MATCHED.
	NotMatched int `yaml:"not_matched" json:"not_matched"`

	// Undetermined counts results with state UNDETERMINED.
	Undetermined int `yaml:"undetermined" json:"undetermined"`

	// FullyDetermined is true when no predicate was UNDETERMINED.
	// Partial determinism is a queryable property, not a failure.
	FullyDetermined bool `yaml:"fully_determined" json:"fully_determined"`
}

// SummarizeResults computes the summary over a set of predicate results.
func SummarizeResults(results []PredicateResult) EvaluationSummary {
	s := EvaluationSummary{Total: len(results)}
	for _, r := range results {
		switch r.State {
		case StateMatched:
			s.Matched++
		case StateNotMatched:
			s.NotMatched++
		default:
			s.Undetermined++
		}
	}
	s.FullyDetermined = s.Undetermined == 0
	return s
}

// EvaluationOutcome is the sole return value of an evaluation run.
// It is immutable and safe to share across goroutines after
// construction. No ordering is guaranteed for PredicateResults within a
// single run.
type EvaluationOutcome struct {
	// SpecificationID identifies the evaluated specification.
	SpecificationID string `yaml:"specification_id" json:"specification_id"`

	// EvaluationID uniquely identifies this run for tracing and
	// correlation.
	EvaluationID string `yaml:"evaluation_id" json:"evaluation_id"`

	// PredicateResults holds one result per top-level predicate.
	PredicateResults []PredicateResult `yaml:"predicate_results" json:"predicate_results"`

	// GroupResults holds one result per predicate group.
	GroupResults []GroupResult `yaml:"group_results" json:"group_results"`

	// Summary aggregates PredicateResults only.
	Summary EvaluationSummary `yaml:"summary" json:"summary"`

	// Timestamp records when the outcome was produced.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
}

// Result returns the predicate result with the given id, if present.
func (o EvaluationOutcome) Result(predicateID string) (PredicateResult, bool) {
	for _, r := range o.PredicateResults {
		if r.PredicateID == predicateID {
			return r, true
		}
	}
	return PredicateResult{}, false
}

// Group returns the group result with the given id, if present.
func (o EvaluationOutcome) Group(groupID string) (GroupResult, bool) {
	for _, g := range o.GroupResults {
		if g.GroupID == groupID {
			return g, true
		}
	}
	return GroupResult{}, false
}
