package constraints

import (
	"fmt"

	"github.com/patmonardo/gds-kernel/pkg/graphstore"
)

// PropertyConstraint validates a Double node property column: presence and, when Min/Max
// are set, that every value falls within [Min, Max].
type PropertyConstraint struct {
	Labels       graphstore.LabelSetKey
	PropertyName string
	Required     bool
	Min          *float64
	Max          *float64
}

func (pc *PropertyConstraint) Name() string {
	return fmt.Sprintf("PropertyConstraint(%s.%s)", pc.Labels, pc.PropertyName)
}

func (pc *PropertyConstraint) Validate(graph *graphstore.Graph) ([]Violation, error) {
	col, err := graph.NodeProperties(pc.Labels, pc.PropertyName)
	if err != nil {
		if !pc.Required {
			return nil, nil
		}
		return []Violation{{
			Type:       MissingProperty,
			Severity:   Error,
			Constraint: pc.Name(),
			Message:    fmt.Sprintf("property %q is not declared for label set %q", pc.PropertyName, pc.Labels),
		}}, nil
	}

	if pc.Min == nil && pc.Max == nil {
		return nil, nil
	}

	var violations []Violation
	for id := int64(0); id < col.Len(); id++ {
		value, err := col.DoubleValue(id)
		if err != nil {
			violations = append(violations, Violation{
				Type:       InvalidType,
				Severity:   Error,
				NodeID:     &id,
				Constraint: pc.Name(),
				Message:    fmt.Sprintf("node %d property %q is not numeric: %v", id, pc.PropertyName, err),
			})
			continue
		}

		nodeID := id
		if pc.Min != nil && value < *pc.Min {
			violations = append(violations, Violation{
				Type:       OutOfRange,
				Severity:   Error,
				NodeID:     &nodeID,
				Constraint: pc.Name(),
				Message:    fmt.Sprintf("node %d property %q value %g is below minimum %g", id, pc.PropertyName, value, *pc.Min),
			})
		}
		if pc.Max != nil && value > *pc.Max {
			violations = append(violations, Violation{
				Type:       OutOfRange,
				Severity:   Error,
				NodeID:     &nodeID,
				Constraint: pc.Name(),
				Message:    fmt.Sprintf("node %d property %q value %g is above maximum %g", id, pc.PropertyName, value, *pc.Max),
			})
		}
	}
	return violations, nil
}
