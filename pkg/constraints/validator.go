package constraints

import (
	"time"

	"github.com/patmonardo/gds-kernel/pkg/graphstore"
)

// ValidationResult is the outcome of running a Validator's constraints against a Graph.
type ValidationResult struct {
	Valid      bool
	Violations []Violation
	CheckedAt  time.Time
}

func (vr *ValidationResult) ViolationsBySeverity(severity Severity) []Violation {
	var filtered []Violation
	for _, v := range vr.Violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func (vr *ValidationResult) ViolationsByType(violationType ViolationType) []Violation {
	var filtered []Violation
	for _, v := range vr.Violations {
		if v.Type == violationType {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Validator runs a fixed set of Constraints against a Graph (spec.md's schema-violation
// reporting, generalized beyond the single-property checks graphstore.Graph itself
// raises at mutation time into a composable, caller-assembled rule set).
type Validator struct {
	constraints []Constraint
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) AddConstraint(c Constraint) {
	v.constraints = append(v.constraints, c)
}

func (v *Validator) AddConstraints(cs []Constraint) {
	v.constraints = append(v.constraints, cs...)
}

func (v *Validator) Validate(graph *graphstore.Graph) (*ValidationResult, error) {
	result := &ValidationResult{Valid: true, CheckedAt: time.Now()}

	for _, c := range v.constraints {
		violations, err := c.Validate(graph)
		if err != nil {
			return nil, err
		}
		if len(violations) > 0 {
			result.Valid = false
			result.Violations = append(result.Violations, violations...)
		}
	}

	return result, nil
}

func (v *Validator) Constraints() []Constraint { return v.constraints }
