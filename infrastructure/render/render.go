// Package render formats evaluation outcomes for human and machine
// consumers. The engine itself defines no wire format; these renderers
// are the collaborators that layer one on top of the outcome value
// tree.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/thekitchencoder/json-rules/internal/domain"
)

// Format selects an outcome rendering.
type Format string

const (
	// FormatText renders an indented human-readable report.
	FormatText Format = "text"
	// FormatJSON renders the outcome as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders the outcome as YAML.
	FormatYAML Format = "yaml"
)

// Outcome writes the outcome to w in the requested format.
func Outcome(w io.Writer, outcome domain.EvaluationOutcome, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(outcome)
	case FormatText:
		return renderText(w, outcome)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// renderText writes the human-readable report: summary first, then each
// predicate with its reason when it did not match, then each group with
// its member states.
func renderText(w io.Writer, outcome domain.EvaluationOutcome) error {
	p := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}

	if err := p("specification: %s\n", outcome.SpecificationID); err != nil {
		return err
	}
	s := outcome.Summary
	if err := p("summary: total=%d matched=%d not_matched=%d undetermined=%d fully_determined=%t\n",
		s.Total, s.Matched, s.NotMatched, s.Undetermined, s.FullyDetermined); err != nil {
		return err
	}

	if len(outcome.PredicateResults) > 0 {
		if err := p("predicates:\n"); err != nil {
			return err
		}
		for _, r := range outcome.PredicateResults {
			if err := p("  - %s: %s\n", r.PredicateID, r.State); err != nil {
				return err
			}
			if reason := r.Reason(); reason != "" {
				if err := p("    reason: %s\n", reason); err != nil {
					return err
				}
			}
		}
	}

	if len(outcome.GroupResults) > 0 {
		if err := p("groups:\n"); err != nil {
			return err
		}
		for _, g := range outcome.GroupResults {
			if err := p("  - %s: match=%t junction=%s\n", g.GroupID, g.Matched, g.Junction); err != nil {
				return err
			}
			for _, member := range g.MemberResults {
				if err := p("      %s: %s\n", member.PredicateID, member.State); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
