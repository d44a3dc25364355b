package application

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/thekitchencoder/json-rules/internal/domain"
)

// Package-level validator instance for specification model validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// SpecLoader deserializes YAML specifications into the immutable domain
// model, validating structure and id uniqueness before any evaluation
// can observe a malformed specification.
//
// Example document:
//
//	id: user-checks
//	predicates:
//	  - id: adult
//	    query:
//	      age: {"$gte": 18}
//	groups:
//	  - id: eligibility
//	    junction: AND
//	    members:
//	      - id: adult
type SpecLoader struct{}

// NewSpecLoader creates a specification loader.
func NewSpecLoader() *SpecLoader { return &SpecLoader{} }

// Load reads and validates a specification from YAML text.
func (l *SpecLoader) Load(r io.Reader) (domain.Specification, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Specification{}, fmt.Errorf("reading specification: %w", err)
	}

	var spec domain.Specification
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return domain.Specification{}, fmt.Errorf("parsing specification: %w", err)
	}
	if err := l.Validate(spec); err != nil {
		return domain.Specification{}, err
	}
	return spec, nil
}

// LoadFile reads and validates a specification from a YAML file.
func (l *SpecLoader) LoadFile(path string) (domain.Specification, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Specification{}, fmt.Errorf("opening specification: %w", err)
	}
	defer f.Close()
	return l.Load(f)
}

// Validate checks structural constraints and id uniqueness. Group
// members may be query-less references, so only top-level predicate and
// group ids must be unique.
func (l *SpecLoader) Validate(spec domain.Specification) error {
	if err := validate.Struct(spec); err != nil {
		return fmt.Errorf("specification %q failed validation: %w", spec.ID, err)
	}

	predicateIDs := make(map[string]struct{}, len(spec.Predicates))
	for _, p := range spec.Predicates {
		if _, exists := predicateIDs[p.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePredicateID, p.ID)
		}
		predicateIDs[p.ID] = struct{}{}
	}

	groupIDs := make(map[string]struct{}, len(spec.Groups))
	for _, g := range spec.Groups {
		if _, exists := groupIDs[g.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateGroupID, g.ID)
		}
		groupIDs[g.ID] = struct{}{}
	}
	return nil
}
