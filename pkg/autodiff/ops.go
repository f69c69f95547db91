package autodiff

import "math"

// Add is the elementwise-sum Variable kind (spec.md §4.6). Gradient is the identity:
// upstream flows unchanged to both operands.
type Add struct {
	VariableBase
	a, b Variable
}

func NewAdd(a, b Variable) *Add {
	return &Add{VariableBase: newVariableBase(a.Dimensions(), []Variable{a, b}), a: a, b: b}
}

func (n *Add) Apply(ctx *ComputationContext) Tensor {
	sum, err := addTensors(ctx.Data(n.a), ctx.Data(n.b))
	if err != nil {
		panic(err)
	}
	return sum
}

func (n *Add) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	return ctx.Gradient(n)
}

// ElementWiseProduct is the Hadamard-product Variable kind. d/da = upstream ⊙ b,
// d/db = upstream ⊙ a (spec.md §4.6).
type ElementWiseProduct struct {
	VariableBase
	a, b Variable
}

func NewElementWiseProduct(a, b Variable) *ElementWiseProduct {
	return &ElementWiseProduct{VariableBase: newVariableBase(a.Dimensions(), []Variable{a, b}), a: a, b: b}
}

func (n *ElementWiseProduct) Apply(ctx *ComputationContext) Tensor {
	p, err := elementwiseProduct(ctx.Data(n.a), ctx.Data(n.b))
	if err != nil {
		panic(err)
	}
	return p
}

func (n *ElementWiseProduct) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream := ctx.Gradient(n)
	var other Variable
	if parent == n.a {
		other = n.b
	} else {
		other = n.a
	}
	g, err := elementwiseProduct(upstream, ctx.Data(other))
	if err != nil {
		panic(err)
	}
	return g
}

// MatrixMultiply computes A × B. d/dA = upstream × Bᵀ, d/dB = Aᵀ × upstream (spec.md §4.6).
type MatrixMultiply struct {
	VariableBase
	a, b Variable
}

func NewMatrixMultiply(a, b Variable) *MatrixMultiply {
	aDim, bDim := a.Dimensions(), b.Dimensions()
	return &MatrixMultiply{
		VariableBase: newVariableBase([]int{aDim[0], bDim[1]}, []Variable{a, b}),
		a:            a, b: b,
	}
}

func (n *MatrixMultiply) Apply(ctx *ComputationContext) Tensor {
	a, err := AsMatrix(ctx.Data(n.a))
	if err != nil {
		panic(err)
	}
	b, err := AsMatrix(ctx.Data(n.b))
	if err != nil {
		panic(err)
	}
	out, err := a.Multiply(b)
	if err != nil {
		panic(err)
	}
	return out
}

func (n *MatrixMultiply) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream, err := AsMatrix(ctx.Gradient(n))
	if err != nil {
		panic(err)
	}
	if parent == n.a {
		b, err := AsMatrix(ctx.Data(n.b))
		if err != nil {
			panic(err)
		}
		out, err := upstream.MultiplyTransB(b)
		if err != nil {
			panic(err)
		}
		return out
	}
	a, err := AsMatrix(ctx.Data(n.a))
	if err != nil {
		panic(err)
	}
	out, err := a.MultiplyTransA(upstream)
	if err != nil {
		panic(err)
	}
	return out
}

// MatrixVectorSum broadcast-adds a Vector to every row of a Matrix (spec.md §4.6). d/dmatrix
// is the identity; d/dvector is the column-sum of upstream.
type MatrixVectorSum struct {
	VariableBase
	matrix, vector Variable
}

func NewMatrixVectorSum(matrix, vector Variable) *MatrixVectorSum {
	return &MatrixVectorSum{
		VariableBase: newVariableBase(matrix.Dimensions(), []Variable{matrix, vector}),
		matrix:       matrix, vector: vector,
	}
}

func (n *MatrixVectorSum) Apply(ctx *ComputationContext) Tensor {
	m, err := AsMatrix(ctx.Data(n.matrix))
	if err != nil {
		panic(err)
	}
	v, err := AsVector(ctx.Data(n.vector))
	if err != nil {
		panic(err)
	}
	out, err := m.SumBroadcastColumnWise(v)
	if err != nil {
		panic(err)
	}
	return out
}

func (n *MatrixVectorSum) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream, err := AsMatrix(ctx.Gradient(n))
	if err != nil {
		panic(err)
	}
	if parent == n.matrix {
		return upstream
	}
	return upstream.SumPerColumn()
}

// SumPerColumn reduces a Matrix to a Vector of column sums (spec.md §4.6). Its gradient
// broadcasts the length-Cols upstream Vector back out over every row.
type SumPerColumn struct {
	VariableBase
	matrix Variable
}

func NewSumPerColumn(matrix Variable) *SumPerColumn {
	cols := matrix.Dimensions()[1]
	return &SumPerColumn{VariableBase: newVariableBase([]int{cols}, []Variable{matrix}), matrix: matrix}
}

func (n *SumPerColumn) Apply(ctx *ComputationContext) Tensor {
	m, err := AsMatrix(ctx.Data(n.matrix))
	if err != nil {
		panic(err)
	}
	return m.SumPerColumn()
}

func (n *SumPerColumn) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream, err := AsVector(ctx.Gradient(n))
	if err != nil {
		panic(err)
	}
	rows := n.matrix.Dimensions()[0]
	return BroadcastRows(rows, upstream)
}

func sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) }

// Sigmoid applies the logistic function elementwise. d/dx = upstream ⊙ σ(x)(1-σ(x))
// (spec.md §4.6).
type Sigmoid struct {
	VariableBase
	x Variable
}

func NewSigmoid(x Variable) *Sigmoid {
	return &Sigmoid{VariableBase: newVariableBase(x.Dimensions(), []Variable{x}), x: x}
}

func (n *Sigmoid) Apply(ctx *ComputationContext) Tensor {
	return mapTensor(ctx.Data(n.x), sigmoid)
}

func (n *Sigmoid) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream := ctx.Gradient(n)
	out := ctx.Data(n)
	deriv := mapTensor(out, func(s float64) float64 { return s * (1 - s) })
	g, err := elementwiseProduct(upstream, deriv)
	if err != nil {
		panic(err)
	}
	return g
}

// ReLU applies max(0, x) elementwise. d/dx = upstream where x > 0, else 0 (spec.md §4.6).
type ReLU struct {
	VariableBase
	x Variable
}

func NewReLU(x Variable) *ReLU {
	return &ReLU{VariableBase: newVariableBase(x.Dimensions(), []Variable{x}), x: x}
}

func (n *ReLU) Apply(ctx *ComputationContext) Tensor {
	return mapTensor(ctx.Data(n.x), func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

func (n *ReLU) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream := ctx.Gradient(n)
	x := ctx.Data(n.x)
	uf, xf := upstream.Flat(), x.Flat()
	out := make([]float64, len(xf))
	for i := range xf {
		if xf[i] > 0 {
			out[i] = uf[i]
		}
	}
	return newLike(x.Shape(), out)
}

// Softmax applies row-wise softmax to a Matrix (spec.md §4.6), one probability
// distribution per row.
type Softmax struct {
	VariableBase
	x Variable
}

func NewSoftmax(x Variable) *Softmax {
	return &Softmax{VariableBase: newVariableBase(x.Dimensions(), []Variable{x}), x: x}
}

func softmaxRows(m *Matrix) *Matrix {
	out := NewZeroMatrix(m.Rows, m.Cols)
	for r := 0; r < m.Rows; r++ {
		max := math.Inf(-1)
		for c := 0; c < m.Cols; c++ {
			if v := m.At(r, c); v > max {
				max = v
			}
		}
		var sum float64
		row := make([]float64, m.Cols)
		for c := 0; c < m.Cols; c++ {
			e := math.Exp(m.At(r, c) - max)
			row[c] = e
			sum += e
		}
		for c := 0; c < m.Cols; c++ {
			row[c] /= sum
		}
		out.SetRow(r, row)
	}
	return out
}

func (n *Softmax) Apply(ctx *ComputationContext) Tensor {
	m, err := AsMatrix(ctx.Data(n.x))
	if err != nil {
		panic(err)
	}
	return softmaxRows(m)
}

// Gradient uses the standard softmax-Jacobian identity applied row-wise:
// d/dx_j = s_j * (upstream_j - sum_k(upstream_k * s_k)).
func (n *Softmax) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	s, err := AsMatrix(ctx.Data(n))
	if err != nil {
		panic(err)
	}
	upstream, err := AsMatrix(ctx.Gradient(n))
	if err != nil {
		panic(err)
	}
	out := NewZeroMatrix(s.Rows, s.Cols)
	for r := 0; r < s.Rows; r++ {
		var dot float64
		for c := 0; c < s.Cols; c++ {
			dot += upstream.At(r, c) * s.At(r, c)
		}
		for c := 0; c < s.Cols; c++ {
			out.Set(r, c, s.At(r, c)*(upstream.At(r, c)-dot))
		}
	}
	return out
}

// CrossEntropyLoss computes mean categorical cross-entropy between predicted
// probabilities and one-hot-encoded targets, both Matrix-shaped rows×classes (spec.md
// §4.6). Gradient w.r.t. predictions: upstream ⊙ (-targets / predictions) / rows.
type CrossEntropyLoss struct {
	VariableBase
	predictions, targets Variable
}

func NewCrossEntropyLoss(predictions, targets Variable) *CrossEntropyLoss {
	return &CrossEntropyLoss{
		VariableBase: newVariableBase([]int{1}, []Variable{predictions, targets}),
		predictions:  predictions, targets: targets,
	}
}

const crossEntropyEpsilon = 1e-12

func (n *CrossEntropyLoss) Apply(ctx *ComputationContext) Tensor {
	p, err := AsMatrix(ctx.Data(n.predictions))
	if err != nil {
		panic(err)
	}
	y, err := AsMatrix(ctx.Data(n.targets))
	if err != nil {
		panic(err)
	}
	var sum float64
	for i := range p.Values {
		sum -= y.Values[i] * math.Log(p.Values[i]+crossEntropyEpsilon)
	}
	return NewScalar(sum / float64(p.Rows))
}

func (n *CrossEntropyLoss) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream := ctx.Gradient(n).Flat()[0]
	p, err := AsMatrix(ctx.Data(n.predictions))
	if err != nil {
		panic(err)
	}
	y, err := AsMatrix(ctx.Data(n.targets))
	if err != nil {
		panic(err)
	}
	if parent == n.targets {
		return Zeros(y) // targets never require gradient in practice, but stay total
	}
	out := NewZeroMatrix(p.Rows, p.Cols)
	scale := upstream / float64(p.Rows)
	for i := range p.Values {
		out.Values[i] = -scale * y.Values[i] / (p.Values[i] + crossEntropyEpsilon)
	}
	return out
}

// LogisticLoss is binary cross-entropy between a scalar-per-row prediction and a
// scalar-per-row target, both Vector-shaped (spec.md §4.6).
type LogisticLoss struct {
	VariableBase
	predictions, targets Variable
}

func NewLogisticLoss(predictions, targets Variable) *LogisticLoss {
	return &LogisticLoss{
		VariableBase: newVariableBase([]int{1}, []Variable{predictions, targets}),
		predictions:  predictions, targets: targets,
	}
}

func (n *LogisticLoss) Apply(ctx *ComputationContext) Tensor {
	p, err := AsVector(ctx.Data(n.predictions))
	if err != nil {
		panic(err)
	}
	y, err := AsVector(ctx.Data(n.targets))
	if err != nil {
		panic(err)
	}
	var sum float64
	for i := range p.Values {
		sum -= y.Values[i]*math.Log(p.Values[i]+crossEntropyEpsilon) +
			(1-y.Values[i])*math.Log(1-p.Values[i]+crossEntropyEpsilon)
	}
	return NewScalar(sum / float64(len(p.Values)))
}

func (n *LogisticLoss) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream := ctx.Gradient(n).Flat()[0]
	p, err := AsVector(ctx.Data(n.predictions))
	if err != nil {
		panic(err)
	}
	y, err := AsVector(ctx.Data(n.targets))
	if err != nil {
		panic(err)
	}
	if parent == n.targets {
		return Zeros(y)
	}
	n_ := float64(len(p.Values))
	out := make([]float64, len(p.Values))
	for i := range p.Values {
		out[i] = upstream / n_ * (-y.Values[i]/(p.Values[i]+crossEntropyEpsilon) +
			(1-y.Values[i])/(1-p.Values[i]+crossEntropyEpsilon))
	}
	return NewVector(out)
}

// L2Norm computes the squared L2 norm of its input, summed over all elements (spec.md
// §4.6), commonly used as a weight-decay regularizer. d/dx = upstream * 2x.
type L2Norm struct {
	VariableBase
	x Variable
}

func NewL2Norm(x Variable) *L2Norm {
	return &L2Norm{VariableBase: newVariableBase([]int{1}, []Variable{x}), x: x}
}

func (n *L2Norm) Apply(ctx *ComputationContext) Tensor {
	x := ctx.Data(n.x)
	var sum float64
	for _, v := range x.Flat() {
		sum += v * v
	}
	return NewScalar(sum)
}

func (n *L2Norm) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream := ctx.Gradient(n).Flat()[0]
	x := ctx.Data(n.x)
	return mapTensor(x, func(v float64) float64 { return upstream * 2 * v })
}

// Slice extracts a contiguous row range [start, start+length) from a Matrix (spec.md
// §4.6), used to carve per-batch input out of a full node-feature matrix. Gradient
// scatters upstream back into the corresponding rows of a zero matrix shaped like x.
type Slice struct {
	VariableBase
	x            Variable
	start, length int
}

func NewSlice(x Variable, start, length int) *Slice {
	cols := x.Dimensions()[1]
	return &Slice{
		VariableBase: newVariableBase([]int{length, cols}, []Variable{x}),
		x:            x, start: start, length: length,
	}
}

func (n *Slice) Apply(ctx *ComputationContext) Tensor {
	x, err := AsMatrix(ctx.Data(n.x))
	if err != nil {
		panic(err)
	}
	out := NewZeroMatrix(n.length, x.Cols)
	for r := 0; r < n.length; r++ {
		out.SetRow(r, x.Values[(n.start+r)*x.Cols:(n.start+r+1)*x.Cols])
	}
	return out
}

func (n *Slice) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	upstream, err := AsMatrix(ctx.Gradient(n))
	if err != nil {
		panic(err)
	}
	x := n.x.Dimensions()
	out := NewZeroMatrix(x[0], x[1])
	for r := 0; r < n.length; r++ {
		out.SetRow(n.start+r, upstream.Values[r*upstream.Cols:(r+1)*upstream.Cols])
	}
	return out
}
