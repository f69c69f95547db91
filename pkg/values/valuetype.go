// Package values implements the canonical value-type table and the PropertyValues
// contract (spec.md §3.1, §3.3): a typed columnar column of length n, backed by one of
// a plain slice, a HugeArray, or a sparse paged array.
//
// Grounded on pkg/storage/types.go's ValueType/Value enum, generalized from a
// byte-encoded Value struct to typed columnar PropertyValues backends because the
// kernel needs bulk columnar access (cursor iteration over a whole property column),
// not just single-value encode/decode.
package values

// ValueType is the closed enum of value kinds the system supports (spec.md §3.1). This
// table is the single source of truth: storage adapters and runtime value accessors are
// both derived from it, mirroring how pkg/storage/types.go's ValueType constants drive
// every Value constructor and accessor in that file.
type ValueType uint8

const (
	Long ValueType = iota
	Double
	LongArray
	DoubleArray
	FloatArray
)

func (t ValueType) String() string {
	switch t {
	case Long:
		return "Long"
	case Double:
		return "Double"
	case LongArray:
		return "LongArray"
	case DoubleArray:
		return "DoubleArray"
	case FloatArray:
		return "FloatArray"
	default:
		return "Unknown"
	}
}

// IsArray reports whether the value type is one of the array variants.
func (t ValueType) IsArray() bool {
	switch t {
	case LongArray, DoubleArray, FloatArray:
		return true
	default:
		return false
	}
}

// GdsValue is a boxed, polymorphic single-value view (spec.md §3.3 "get_u64(id) ->
// Option<GdsValue>"), used where callers need to hold one property value without
// knowing its concrete type up front.
type GdsValue struct {
	Type        ValueType
	LongVal     int64
	DoubleVal   float64
	LongArr     []int64
	DoubleArr   []float64
	FloatArr    []float32
}
