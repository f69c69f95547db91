package autodiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixMultiply(t *testing.T) {
	a := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewMatrix(3, 2, []float64{7, 8, 9, 10, 11, 12})
	out, err := a.Multiply(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{58, 64, 139, 154}, out.Values)
}

func TestMatrixMultiplyTransA(t *testing.T) {
	// a is 3x2, treated as Aᵀ (2x3) × b (3x2) = 2x2
	a := NewMatrix(3, 2, []float64{1, 2, 3, 4, 5, 6})
	b := NewMatrix(3, 2, []float64{1, 0, 0, 1, 1, 1})
	out, err := a.MultiplyTransA(b)
	require.NoError(t, err)
	// Aᵀ = [[1,3,5],[2,4,6]]; Aᵀ×b = [[1+0+5, 0+3+5],[2+0+6,0+4+6]] = [[6,8],[8,10]]
	assert.Equal(t, []float64{6, 8, 8, 10}, out.Values)
}

func TestMatrixMultiplyTransB(t *testing.T) {
	a := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	b := NewMatrix(2, 2, []float64{5, 6, 7, 8}) // Bᵀ = [[5,7],[6,8]]
	out, err := a.MultiplyTransB(b)
	require.NoError(t, err)
	// a × Bᵀ = [[1*5+2*6, 1*7+2*8],[3*5+4*6,3*7+4*8]] = [[17,23],[39,53]]
	assert.Equal(t, []float64{17, 23, 39, 53}, out.Values)
}

func TestMatrixSumPerColumnAndBroadcast(t *testing.T) {
	m := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	sums := m.SumPerColumn()
	assert.Equal(t, []float64{5, 7, 9}, sums.Values)

	broadcast := BroadcastRows(2, sums)
	assert.Equal(t, []float64{5, 7, 9, 5, 7, 9}, broadcast.Values)
}

func TestMatrixSumBroadcastColumnWise(t *testing.T) {
	m := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	v := NewVector([]float64{10, 100})
	out, err := m.SumBroadcastColumnWise(v)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 102, 13, 104}, out.Values)
}

func TestShapeMismatchIsTypedError(t *testing.T) {
	a := NewVector([]float64{1, 2})
	b := NewVector([]float64{1, 2, 3})
	_, err := addTensors(a, b)
	require.Error(t, err)
}

func TestDowncastHelpers(t *testing.T) {
	m := NewMatrix(1, 1, []float64{1})
	_, err := AsVector(m)
	assert.Error(t, err)

	v := NewVector([]float64{1, 2})
	mm, err := AsMatrix(v)
	assert.Nil(t, mm)
	assert.Error(t, err)
}
