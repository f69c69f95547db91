package values

import (
	"github.com/patmonardo/gds-kernel/pkg/collections"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
)

// PropertyValues is the typed columnar column contract (spec.md §3.3). Reading the
// wrong type returns an error rather than silently coercing. id < Len() for all defined
// accessors; out-of-range never panics.
type PropertyValues interface {
	ValueType() ValueType
	Len() int64
	LongValue(id int64) (int64, error)
	DoubleValue(id int64) (float64, error)
	LongArrayValue(id int64) ([]int64, error)
	DoubleArrayValue(id int64) ([]float64, error)
	FloatArrayValue(id int64) ([]float32, error)
	GetValue(id int64) (GdsValue, error)
}

func typeMismatch(op string, want, got ValueType) error {
	return kernelerrors.New(kernelerrors.TypeMismatch, op).
		ValidRange(want.String()).
		Cause(errUnexpectedType(got)).
		Build()
}

type errUnexpectedType ValueType

func (e errUnexpectedType) Error() string {
	return "actual type is " + ValueType(e).String()
}

// --- HugeArray-backed long column -----------------------------------------------------

// LongColumn is a Long PropertyValues backed by a collections.HugeArray[int64] — the
// default, dense backend for mandatory node/relationship id-like or scalar properties.
type LongColumn struct {
	data *collections.HugeArray[int64]
}

func NewLongColumn(data *collections.HugeArray[int64]) *LongColumn {
	return &LongColumn{data: data}
}

func (c *LongColumn) ValueType() ValueType { return Long }
func (c *LongColumn) Len() int64           { return c.data.Len() }

func (c *LongColumn) LongValue(id int64) (int64, error) {
	return c.data.GetChecked(id)
}
func (c *LongColumn) DoubleValue(int64) (float64, error) {
	return 0, typeMismatch("DoubleValue", Double, Long)
}
func (c *LongColumn) LongArrayValue(int64) ([]int64, error) {
	return nil, typeMismatch("LongArrayValue", LongArray, Long)
}
func (c *LongColumn) DoubleArrayValue(int64) ([]float64, error) {
	return nil, typeMismatch("DoubleArrayValue", DoubleArray, Long)
}
func (c *LongColumn) FloatArrayValue(int64) ([]float32, error) {
	return nil, typeMismatch("FloatArrayValue", FloatArray, Long)
}
func (c *LongColumn) GetValue(id int64) (GdsValue, error) {
	v, err := c.LongValue(id)
	if err != nil {
		return GdsValue{}, err
	}
	return GdsValue{Type: Long, LongVal: v}, nil
}

// --- HugeArray-backed double column ----------------------------------------------------

// DoubleColumn is a Double PropertyValues backed by a collections.HugeArray[float64].
type DoubleColumn struct {
	data *collections.HugeArray[float64]
}

func NewDoubleColumn(data *collections.HugeArray[float64]) *DoubleColumn {
	return &DoubleColumn{data: data}
}

func (c *DoubleColumn) ValueType() ValueType { return Double }
func (c *DoubleColumn) Len() int64           { return c.data.Len() }

func (c *DoubleColumn) LongValue(int64) (int64, error) {
	return 0, typeMismatch("LongValue", Long, Double)
}
func (c *DoubleColumn) DoubleValue(id int64) (float64, error) {
	return c.data.GetChecked(id)
}
func (c *DoubleColumn) LongArrayValue(int64) ([]int64, error) {
	return nil, typeMismatch("LongArrayValue", LongArray, Double)
}
func (c *DoubleColumn) DoubleArrayValue(int64) ([]float64, error) {
	return nil, typeMismatch("DoubleArrayValue", DoubleArray, Double)
}
func (c *DoubleColumn) FloatArrayValue(int64) ([]float32, error) {
	return nil, typeMismatch("FloatArrayValue", FloatArray, Double)
}
func (c *DoubleColumn) GetValue(id int64) (GdsValue, error) {
	v, err := c.DoubleValue(id)
	if err != nil {
		return GdsValue{}, err
	}
	return GdsValue{Type: Double, DoubleVal: v}, nil
}

// --- plain-slice array columns (LongArray / DoubleArray / FloatArray) -----------------

// ArrayColumn is the generic array-valued PropertyValues backend: a plain Go slice of
// per-entity arrays. Array-valued properties are typically small and numerous (one
// embedding per node), so a HugeArray of arrays would add indirection without the bulk
// page-cursor benefit HugeArray gives scalar columns — a plain []T slice, as the spec
// allows ("backed by one of: a Vec<T>..."), is the right fit here.
type ArrayColumn[T any] struct {
	valueType ValueType
	data      [][]T
}

func newArrayColumn[T any](vt ValueType, data [][]T) *ArrayColumn[T] {
	return &ArrayColumn[T]{valueType: vt, data: data}
}

func NewLongArrayColumn(data [][]int64) *ArrayColumn[int64] {
	return newArrayColumn(LongArray, data)
}
func NewDoubleArrayColumn(data [][]float64) *ArrayColumn[float64] {
	return newArrayColumn(DoubleArray, data)
}
func NewFloatArrayColumn(data [][]float32) *ArrayColumn[float32] {
	return newArrayColumn(FloatArray, data)
}

func (c *ArrayColumn[T]) ValueType() ValueType { return c.valueType }
func (c *ArrayColumn[T]) Len() int64           { return int64(len(c.data)) }

func (c *ArrayColumn[T]) checked(id int64) ([]T, error) {
	if id < 0 || id >= int64(len(c.data)) {
		return nil, kernelerrors.IndexRange("ArrayColumn", id, int64(len(c.data)))
	}
	return c.data[id], nil
}

func (c *ArrayColumn[T]) LongValue(int64) (int64, error) {
	return 0, typeMismatch("LongValue", Long, c.valueType)
}
func (c *ArrayColumn[T]) DoubleValue(int64) (float64, error) {
	return 0, typeMismatch("DoubleValue", Double, c.valueType)
}
func (c *ArrayColumn[T]) LongArrayValue(id int64) ([]int64, error) {
	if c.valueType != LongArray {
		return nil, typeMismatch("LongArrayValue", LongArray, c.valueType)
	}
	v, err := c.checked(id)
	if err != nil {
		return nil, err
	}
	return any(v).([]int64), nil
}
func (c *ArrayColumn[T]) DoubleArrayValue(id int64) ([]float64, error) {
	if c.valueType != DoubleArray {
		return nil, typeMismatch("DoubleArrayValue", DoubleArray, c.valueType)
	}
	v, err := c.checked(id)
	if err != nil {
		return nil, err
	}
	return any(v).([]float64), nil
}
func (c *ArrayColumn[T]) FloatArrayValue(id int64) ([]float32, error) {
	if c.valueType != FloatArray {
		return nil, typeMismatch("FloatArrayValue", FloatArray, c.valueType)
	}
	v, err := c.checked(id)
	if err != nil {
		return nil, err
	}
	return any(v).([]float32), nil
}
func (c *ArrayColumn[T]) GetValue(id int64) (GdsValue, error) {
	v, err := c.checked(id)
	if err != nil {
		return GdsValue{}, err
	}
	out := GdsValue{Type: c.valueType}
	switch c.valueType {
	case LongArray:
		out.LongArr = any(v).([]int64)
	case DoubleArray:
		out.DoubleArr = any(v).([]float64)
	case FloatArray:
		out.FloatArr = any(v).([]float32)
	}
	return out, nil
}

// --- sparse-backed long column (default-filled gaps) ----------------------------------

// SparseLongColumn is a Long PropertyValues backed by collections.SparseArray[int64],
// used for node properties that are defined for only a minority of a large label set.
type SparseLongColumn struct {
	data   *collections.SparseArray[int64]
	length int64
}

func NewSparseLongColumn(data *collections.SparseArray[int64], length int64) *SparseLongColumn {
	return &SparseLongColumn{data: data, length: length}
}

func (c *SparseLongColumn) ValueType() ValueType { return Long }
func (c *SparseLongColumn) Len() int64           { return c.length }

func (c *SparseLongColumn) LongValue(id int64) (int64, error) {
	if id < 0 || id >= c.length {
		return 0, kernelerrors.IndexRange("SparseLongColumn.LongValue", id, c.length)
	}
	return c.data.Get(id), nil
}
func (c *SparseLongColumn) DoubleValue(int64) (float64, error) {
	return 0, typeMismatch("DoubleValue", Double, Long)
}
func (c *SparseLongColumn) LongArrayValue(int64) ([]int64, error) {
	return nil, typeMismatch("LongArrayValue", LongArray, Long)
}
func (c *SparseLongColumn) DoubleArrayValue(int64) ([]float64, error) {
	return nil, typeMismatch("DoubleArrayValue", DoubleArray, Long)
}
func (c *SparseLongColumn) FloatArrayValue(int64) ([]float32, error) {
	return nil, typeMismatch("FloatArrayValue", FloatArray, Long)
}
func (c *SparseLongColumn) GetValue(id int64) (GdsValue, error) {
	v, err := c.LongValue(id)
	if err != nil {
		return GdsValue{}, err
	}
	return GdsValue{Type: Long, LongVal: v}, nil
}
