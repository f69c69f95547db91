package constraints

import (
	"fmt"
	"strconv"

	"github.com/patmonardo/gds-kernel/pkg/graphstore"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

// UniquePropertyConstraint ensures a Long or Double node property column has no
// duplicate values across every node in Labels — useful for external ids, slugs, and
// similar natural keys.
type UniquePropertyConstraint struct {
	Labels       graphstore.LabelSetKey
	PropertyName string
}

func (c *UniquePropertyConstraint) Name() string {
	return fmt.Sprintf("Unique(%s.%s)", c.Labels, c.PropertyName)
}

func (c *UniquePropertyConstraint) Validate(graph *graphstore.Graph) ([]Violation, error) {
	col, err := graph.NodeProperties(c.Labels, c.PropertyName)
	if err != nil {
		return nil, nil
	}

	firstSeen := make(map[string]int64, col.Len())
	var violations []Violation

	for id := int64(0); id < col.Len(); id++ {
		key, ok := valueKey(col, id)
		if !ok {
			continue
		}
		if first, dup := firstSeen[key]; dup {
			nodeID := id
			violations = append(violations, Violation{
				Type:       UniquenessViolation,
				Severity:   Error,
				NodeID:     &nodeID,
				Constraint: c.Name(),
				Message:    fmt.Sprintf("node %d duplicates property %q value %s already held by node %d", id, c.PropertyName, key, first),
			})
			continue
		}
		firstSeen[key] = id
	}

	return violations, nil
}

// valueKey renders a scalar property value as a comparable string, or false for array
// types this constraint does not support.
func valueKey(col values.PropertyValues, id int64) (string, bool) {
	switch col.ValueType() {
	case values.Long:
		v, err := col.LongValue(id)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(v, 10), true
	case values.Double:
		v, err := col.DoubleValue(id)
		if err != nil {
			return "", false
		}
		return strconv.FormatFloat(v, 'g', -1, 64), true
	default:
		return "", false
	}
}
