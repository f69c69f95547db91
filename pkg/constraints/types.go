// Package constraints validates a loaded Graph against declared data-quality rules
// (property ranges, relationship cardinality bounds, property uniqueness), surfacing
// violations a caller can act on before trusting a graph for algorithm execution.
//
// Adapted from the teacher's property/cardinality/uniqueness constraint suite
// (pkg/constraints/property.go, cardinality.go, uniqueness.go, validator.go), re-pointed
// from map[uint64]*Node/*Edge storage at pkg/graphstore's columnar PropertyValues and
// Topology-backed degree, which graphstore.Graph itself raises as kernelerrors.SchemaViolation
// when a declared column is missing.
package constraints

import "github.com/patmonardo/gds-kernel/pkg/graphstore"

// Severity indicates the importance of a violation.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationType categorizes the kind of constraint violation.
type ViolationType int

const (
	MissingProperty ViolationType = iota
	InvalidType
	OutOfRange
	CardinalityViolation
	UniquenessViolation
)

func (vt ViolationType) String() string {
	switch vt {
	case MissingProperty:
		return "MissingProperty"
	case InvalidType:
		return "InvalidType"
	case OutOfRange:
		return "OutOfRange"
	case CardinalityViolation:
		return "CardinalityViolation"
	case UniquenessViolation:
		return "UniquenessViolation"
	default:
		return "Unknown"
	}
}

// Violation is one constraint failure found while validating a Graph.
type Violation struct {
	Type       ViolationType
	Severity   Severity
	NodeID     *int64
	Constraint string
	Message    string
}

// Constraint validates some property of a Graph, returning every violation it finds.
type Constraint interface {
	Validate(graph *graphstore.Graph) ([]Violation, error)
	Name() string
}
