package constraints

import (
	"fmt"

	"github.com/patmonardo/gds-kernel/pkg/graphstore"
)

// Direction selects which side of a relationship a CardinalityConstraint counts.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
	Any
)

func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "Outgoing"
	case Incoming:
		return "Incoming"
	case Any:
		return "Any"
	default:
		return "Unknown"
	}
}

// CardinalityConstraint bounds the degree every mapped node must have for RelType
// (Min == 0 means no floor, Max == 0 means no ceiling).
type CardinalityConstraint struct {
	RelType   graphstore.RelationshipType
	Direction Direction
	Min       int
	Max       int
}

func (cc *CardinalityConstraint) Name() string {
	return fmt.Sprintf("CardinalityConstraint(%s,%s,[%d,%d])", cc.RelType, cc.Direction, cc.Min, cc.Max)
}

func (cc *CardinalityConstraint) Validate(graph *graphstore.Graph) ([]Violation, error) {
	var violations []Violation

	for _, node := range graph.Iter() {
		degree := cc.degree(graph, node)

		if cc.Min > 0 && degree < cc.Min {
			nodeID := node
			violations = append(violations, Violation{
				Type:       CardinalityViolation,
				Severity:   Error,
				NodeID:     &nodeID,
				Constraint: cc.Name(),
				Message:    fmt.Sprintf("node %d has %d %s edge(s) of type %q, minimum is %d", node, degree, cc.Direction, cc.RelType, cc.Min),
			})
		}
		if cc.Max > 0 && degree > cc.Max {
			nodeID := node
			violations = append(violations, Violation{
				Type:       CardinalityViolation,
				Severity:   Error,
				NodeID:     &nodeID,
				Constraint: cc.Name(),
				Message:    fmt.Sprintf("node %d has %d %s edge(s) of type %q, maximum is %d", node, degree, cc.Direction, cc.RelType, cc.Max),
			})
		}
	}

	return violations, nil
}

func (cc *CardinalityConstraint) degree(graph *graphstore.Graph, node int64) int {
	count := 0
	if cc.Direction == Outgoing || cc.Direction == Any {
		count += graph.Degree(node, &cc.RelType)
	}
	if cc.Direction == Incoming || cc.Direction == Any {
		count += graph.InDegree(node, cc.RelType)
	}
	return count
}
