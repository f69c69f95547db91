package autodiff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSigmoidSumPerColumnGradient is the S5 scenario: x = Weights([[0,1],[2,3]]),
// y = Sigmoid(x), L = SumPerColumn(y). grad(x)[0][0] must equal sigmoid'(0) = 0.25 and
// grad(x)[1][1] must equal sigmoid'(3) ~= 0.0451766.
func TestSigmoidSumPerColumnGradient(t *testing.T) {
	x := NewWeights(NewMatrix(2, 2, []float64{0, 1, 2, 3}))
	y := NewSigmoid(x)
	l := NewSumPerColumn(y)

	ctx := NewComputationContext()
	ctx.Forward(l)
	ctx.Backward(l)

	grad, err := AsMatrix(ctx.Gradient(x))
	require.NoError(t, err)

	s00 := sigmoid(0.0)
	want00 := s00 * (1 - s00)
	s11 := sigmoid(3.0)
	want11 := s11 * (1 - s11)

	assert.InDelta(t, 0.25, want00, 1e-9)
	assert.InDelta(t, want00, grad.At(0, 0), 1e-12)
	assert.InDelta(t, 0.0451766, want11, 1e-6)
	assert.InDelta(t, want11, grad.At(1, 1), 1e-12)
}

// gradientCheck verifies node.Gradient(x, ctx) against the numerical Jacobian
// (f(x+e) - f(x-e)) / 2e per spec.md §8 invariant 8, where f(x) sums every output
// element of root after perturbing a single element of x's value.
func gradientCheck(t *testing.T, build func(x *Weights) Variable, xShape []int, xData []float64, eps float64) {
	t.Helper()

	eval := func(data []float64) float64 {
		w := NewWeights(newLike(xShape, append([]float64(nil), data...)))
		root := build(w)
		ctx := NewComputationContext()
		out := ctx.Forward(root)
		var sum float64
		for _, v := range out.Flat() {
			sum += v
		}
		return sum
	}

	x := NewWeights(newLike(xShape, append([]float64(nil), xData...)))
	root := build(x)
	ctx := NewComputationContext()
	ctx.Forward(root)
	ctx.Backward(root)
	analytic := ctx.Gradient(x).Flat()

	for i := range xData {
		plus := append([]float64(nil), xData...)
		plus[i] += eps
		minus := append([]float64(nil), xData...)
		minus[i] -= eps
		numeric := (eval(plus) - eval(minus)) / (2 * eps)
		assert.InDelta(t, numeric, analytic[i], 1e-4, "element %d", i)
	}
}

func TestGradientCheckSigmoidSumPerColumn(t *testing.T) {
	gradientCheck(t, func(x *Weights) Variable {
		return NewSumPerColumn(NewSigmoid(x))
	}, []int{2, 2}, []float64{0, 1, 2, 3}, 1e-5)
}

func TestGradientCheckReLU(t *testing.T) {
	gradientCheck(t, func(x *Weights) Variable {
		return NewSumPerColumn(NewReLU(x))
	}, []int{2, 2}, []float64{-1, 2, 0.5, -3}, 1e-5)
}

func TestGradientCheckMatrixMultiply(t *testing.T) {
	b := NewConstant(NewMatrix(2, 2, []float64{5, 6, 7, 8}))
	gradientCheck(t, func(x *Weights) Variable {
		return NewSumPerColumn(NewMatrixMultiply(x, b))
	}, []int{2, 2}, []float64{1, 2, 3, 4}, 1e-5)
}

func TestGradientCheckElementWiseProduct(t *testing.T) {
	b := NewConstant(NewMatrix(2, 2, []float64{2, 3, 4, 5}))
	gradientCheck(t, func(x *Weights) Variable {
		return NewSumPerColumn(NewElementWiseProduct(x, b))
	}, []int{2, 2}, []float64{1, -2, 3, -4}, 1e-5)
}

func TestWeightsRequireGradientTrueByConstruction(t *testing.T) {
	w := NewWeights(NewScalar(1))
	assert.True(t, w.RequireGradient())

	c := NewConstant(NewScalar(1))
	assert.False(t, c.RequireGradient())

	sum := NewAdd(w, c)
	assert.True(t, sum.RequireGradient())

	sumOfConstants := NewAdd(c, NewConstant(NewScalar(2)))
	assert.False(t, sumOfConstants.RequireGradient())
}

func TestSoftmaxRowsSumToOne(t *testing.T) {
	x := NewConstant(NewMatrix(2, 3, []float64{1, 2, 3, 0, 0, 10}))
	sm := NewSoftmax(x)
	ctx := NewComputationContext()
	out, err := AsMatrix(ctx.Forward(sm))
	require.NoError(t, err)
	for r := 0; r < out.Rows; r++ {
		var sum float64
		for c := 0; c < out.Cols; c++ {
			sum += out.At(r, c)
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
	assert.False(t, math.IsNaN(out.At(1, 2)))
}
