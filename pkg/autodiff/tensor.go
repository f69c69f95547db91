// Package autodiff implements the kernel's reverse-mode automatic differentiation
// engine (spec.md §3.7, §4.6): composed tensor kinds over a shared flat-data store, a
// Variable computation graph evaluated by a ComputationContext, and the
// sampling/subgraph machinery GNN-style algorithms build batches with.
//
// Grounded on the teacher's composition idiom (a shared base struct embedded by value,
// concrete types adding their own methods — the same shape as pkg/storage/errors.go's
// StorageError/ErrorBuilder pairing) and other_examples' tensor field naming
// (`Dimensions []int`, `Data []float64`) for a Go-native rendition of the Rust-shaped
// tensor-kind hierarchy named in the spec. No third-party tensor/autograd library
// appears anywhere in the example pack as an actually-imported dependency (gonum shows
// up only as an unused transitive entry in one repo's go.sum), so this subsystem is
// built on stdlib math + plain []float64 — the one part of the kernel without a
// wired third-party dependency, documented here as the required justification.
package autodiff

import (
	"fmt"

	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
)

// Tensor is the minimal capability every concrete tensor kind exposes, enough to box
// heterogeneous ranks in a computation graph (spec.md §3.7 "a minimal Tensor/Variable
// capability trait exists only to allow boxing").
type Tensor interface {
	Shape() []int
	Flat() []float64
}

// TensorData is the canonical storage shared by every composed tensor kind (spec.md
// §3.7): a flat []float64 plus a shape vector.
type TensorData struct {
	Values []float64
	shape  []int
}

func (t TensorData) Shape() []int    { return t.shape }
func (t TensorData) Flat() []float64 { return t.Values }

func newTensorData(shape []int, values []float64) TensorData {
	return TensorData{Values: values, shape: shape}
}

// Scalar is a rank-0 tensor.
type Scalar struct{ TensorData }

func NewScalar(v float64) *Scalar {
	return &Scalar{newTensorData([]int{1}, []float64{v})}
}

func (s *Scalar) Value() float64 { return s.Values[0] }

// Vector is a rank-1 tensor of length N.
type Vector struct{ TensorData }

func NewVector(values []float64) *Vector {
	return &Vector{newTensorData([]int{len(values)}, values)}
}

func (v *Vector) Len() int { return len(v.Values) }

// Matrix is a rank-2 tensor, row-major: element (r, c) lives at Values[r*Cols+c].
type Matrix struct {
	TensorData
	Rows, Cols int
}

func NewMatrix(rows, cols int, values []float64) *Matrix {
	return &Matrix{TensorData: newTensorData([]int{rows, cols}, values), Rows: rows, Cols: cols}
}

func NewZeroMatrix(rows, cols int) *Matrix {
	return NewMatrix(rows, cols, make([]float64, rows*cols))
}

func (m *Matrix) At(r, c int) float64    { return m.Values[r*m.Cols+c] }
func (m *Matrix) Set(r, c int, v float64) { m.Values[r*m.Cols+c] = v }

// SetRow overwrites row r with vec (spec.md §4.6 "set_row").
func (m *Matrix) SetRow(r int, vec []float64) {
	copy(m.Values[r*m.Cols:(r+1)*m.Cols], vec)
}

// --- downcasting helpers (spec.md §3.7 "downcasting from dyn Tensor for generic storage") ---

func typeMismatch(op, want string, got Tensor) error {
	return kernelerrors.New(kernelerrors.TypeMismatch, op).
		ValidRange(want).
		Cause(fmt.Errorf("actual shape %v", got.Shape())).
		Build()
}

func AsMatrix(t Tensor) (*Matrix, error) {
	m, ok := t.(*Matrix)
	if !ok {
		return nil, typeMismatch("AsMatrix", "Matrix", t)
	}
	return m, nil
}

func AsVector(t Tensor) (*Vector, error) {
	v, ok := t.(*Vector)
	if !ok {
		return nil, typeMismatch("AsVector", "Vector", t)
	}
	return v, nil
}

func AsScalar(t Tensor) (*Scalar, error) {
	s, ok := t.(*Scalar)
	if !ok {
		return nil, typeMismatch("AsScalar", "Scalar", t)
	}
	return s, nil
}

// newLike reconstructs a concrete Tensor of the same rank as shape, wrapping data —
// used by elementwise ops that need to return "the same kind of tensor the inputs were".
func newLike(shape []int, data []float64) Tensor {
	switch len(shape) {
	case 1:
		if shape[0] == 1 {
			return NewScalar(data[0])
		}
		return NewVector(data)
	case 2:
		return NewMatrix(shape[0], shape[1], data)
	default:
		return TensorData{Values: data, shape: shape}
	}
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func shapeMismatch(op string, a, b Tensor) error {
	return kernelerrors.New(kernelerrors.TypeMismatch, op).
		ValidRange(fmt.Sprintf("%v", a.Shape())).
		Cause(fmt.Errorf("other operand has shape %v", b.Shape())).
		Build()
}

// addTensors returns the elementwise sum of a and b, which must share a shape (spec.md
// §4.6 "elementwise: add"). Unexported: the capitalized Add name is the Variable kind
// that composes this (spec.md §4.6's Variable op list), not the raw tensor op.
func addTensors(a, b Tensor) (Tensor, error) {
	if !shapeEqual(a.Shape(), b.Shape()) {
		return nil, shapeMismatch("Add", a, b)
	}
	af, bf := a.Flat(), b.Flat()
	out := make([]float64, len(af))
	for i := range af {
		out[i] = af[i] + bf[i]
	}
	return newLike(a.Shape(), out), nil
}

// addInplace adds b into a's own backing storage (spec.md §4.6 "add_inplace").
func addInplace(a, b Tensor) error {
	if !shapeEqual(a.Shape(), b.Shape()) {
		return shapeMismatch("addInplace", a, b)
	}
	af, bf := a.Flat(), b.Flat()
	for i := range af {
		af[i] += bf[i]
	}
	return nil
}

// mapTensor applies f elementwise, returning a new tensor of the same shape.
func mapTensor(a Tensor, f func(float64) float64) Tensor {
	af := a.Flat()
	out := make([]float64, len(af))
	for i, v := range af {
		out[i] = f(v)
	}
	return newLike(a.Shape(), out)
}

// elementwiseProduct returns the Hadamard product of a and b.
func elementwiseProduct(a, b Tensor) (Tensor, error) {
	if !shapeEqual(a.Shape(), b.Shape()) {
		return nil, shapeMismatch("elementwiseProduct", a, b)
	}
	af, bf := a.Flat(), b.Flat()
	out := make([]float64, len(af))
	for i := range af {
		out[i] = af[i] * bf[i]
	}
	return newLike(a.Shape(), out), nil
}

// ScalarMultiply scales every element of a by s.
func ScalarMultiply(a Tensor, s float64) Tensor {
	return mapTensor(a, func(v float64) float64 { return v * s })
}

// Zeros returns a zero tensor shaped like a, used to seed gradient accumulators.
func Zeros(a Tensor) Tensor {
	return newLike(a.Shape(), make([]float64, len(a.Flat())))
}

// Ones returns a tensor shaped like a, every element 1 (spec.md §4.7 "seed
// grad(root) = ones(root.shape)").
func Ones(a Tensor) Tensor {
	data := make([]float64, len(a.Flat()))
	for i := range data {
		data[i] = 1
	}
	return newLike(a.Shape(), data)
}

// --- matrix-specific operations (spec.md §4.6) ---

// Multiply performs standard matrix multiplication A × B.
func (m *Matrix) Multiply(other *Matrix) (*Matrix, error) {
	if m.Cols != other.Rows {
		return nil, kernelerrors.New(kernelerrors.TypeMismatch, "Matrix.Multiply").
			ValidRange(fmt.Sprintf("cols == %d", other.Rows)).
			Cause(fmt.Errorf("got cols=%d rows=%d", m.Cols, other.Rows)).
			Build()
	}
	out := NewZeroMatrix(m.Rows, other.Cols)
	for i := 0; i < m.Rows; i++ {
		for k := 0; k < m.Cols; k++ {
			aik := m.At(i, k)
			if aik == 0 {
				continue
			}
			for j := 0; j < other.Cols; j++ {
				out.Set(i, j, out.At(i, j)+aik*other.At(k, j))
			}
		}
	}
	return out, nil
}

// MultiplyTransA computes Aᵀ × B, treating the receiver as A.
func (m *Matrix) MultiplyTransA(b *Matrix) (*Matrix, error) {
	if m.Rows != b.Rows {
		return nil, kernelerrors.New(kernelerrors.TypeMismatch, "Matrix.MultiplyTransA").
			ValidRange(fmt.Sprintf("rows == %d", b.Rows)).
			Cause(fmt.Errorf("got rows=%d other rows=%d", m.Rows, b.Rows)).
			Build()
	}
	out := NewZeroMatrix(m.Cols, b.Cols)
	for i := 0; i < m.Cols; i++ {
		for k := 0; k < m.Rows; k++ {
			aki := m.At(k, i)
			if aki == 0 {
				continue
			}
			for j := 0; j < b.Cols; j++ {
				out.Set(i, j, out.At(i, j)+aki*b.At(k, j))
			}
		}
	}
	return out, nil
}

// MultiplyTransB computes A × Bᵀ, treating the receiver as A.
func (m *Matrix) MultiplyTransB(b *Matrix) (*Matrix, error) {
	if m.Cols != b.Cols {
		return nil, kernelerrors.New(kernelerrors.TypeMismatch, "Matrix.MultiplyTransB").
			ValidRange(fmt.Sprintf("cols == %d", b.Cols)).
			Cause(fmt.Errorf("got cols=%d other cols=%d", m.Cols, b.Cols)).
			Build()
	}
	out := NewZeroMatrix(m.Rows, b.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < b.Rows; j++ {
			var sum float64
			for k := 0; k < m.Cols; k++ {
				sum += m.At(i, k) * b.At(j, k)
			}
			out.Set(i, j, sum)
		}
	}
	return out, nil
}

// SumPerColumn returns a length-Cols Vector, each entry the sum of that column
// (spec.md §4.6).
func (m *Matrix) SumPerColumn() *Vector {
	sums := make([]float64, m.Cols)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			sums[c] += m.At(r, c)
		}
	}
	return NewVector(sums)
}

// SumBroadcastColumnWise returns a new Matrix with vec added to every row (spec.md §4.6
// "broadcast-add a vector to every row").
func (m *Matrix) SumBroadcastColumnWise(vec *Vector) (*Matrix, error) {
	if vec.Len() != m.Cols {
		return nil, kernelerrors.New(kernelerrors.TypeMismatch, "Matrix.SumBroadcastColumnWise").
			ValidRange(fmt.Sprintf("len == %d", m.Cols)).
			Cause(fmt.Errorf("got len=%d", vec.Len())).
			Build()
	}
	out := NewZeroMatrix(m.Rows, m.Cols)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			out.Set(r, c, m.At(r, c)+vec.Values[c])
		}
	}
	return out, nil
}

// BroadcastRows tiles vec into every row of a new rows×len(vec) Matrix — the gradient
// shape of SumPerColumn's forward pass.
func BroadcastRows(rows int, vec *Vector) *Matrix {
	out := NewZeroMatrix(rows, vec.Len())
	for r := 0; r < rows; r++ {
		out.SetRow(r, vec.Values)
	}
	return out
}
