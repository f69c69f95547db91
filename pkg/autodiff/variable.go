package autodiff

// Variable is a node in a computation graph (spec.md §3.7): every concrete op composes
// a VariableBase and implements Apply/Gradient.
type Variable interface {
	Dimensions() []int
	RequireGradient() bool
	Parents() []Variable
	Apply(ctx *ComputationContext) Tensor
	Gradient(parent Variable, ctx *ComputationContext) Tensor
}

// VariableBase composes the identity shared by every concrete variable: its shape, its
// parent list, and whether it requires gradient (spec.md §3.7 "computed as
// any_parent_requires_gradient" unless a leaf overrides it, e.g. Weights).
type VariableBase struct {
	dimensions []int
	parents    []Variable
	requireGrad bool
}

func newVariableBase(dimensions []int, parents []Variable) VariableBase {
	requireGrad := false
	for _, p := range parents {
		if p.RequireGradient() {
			requireGrad = true
			break
		}
	}
	return VariableBase{dimensions: dimensions, parents: parents, requireGrad: requireGrad}
}

func (b VariableBase) Dimensions() []int      { return b.dimensions }
func (b VariableBase) Parents() []Variable    { return b.parents }
func (b VariableBase) RequireGradient() bool  { return b.requireGrad }

// Constant is a leaf Variable holding a fixed Tensor that never requires gradient
// (spec.md §4.6).
type Constant struct {
	VariableBase
	value Tensor
}

func NewConstant(value Tensor) *Constant {
	return &Constant{VariableBase: newVariableBase(value.Shape(), nil), value: value}
}

func (c *Constant) Apply(ctx *ComputationContext) Tensor { return c.value }

func (c *Constant) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	panic("Constant has no parents; Gradient should never be called on it")
}

// Weights is a leaf Variable that always requires gradient — the trainable parameter
// kind named in spec.md §3.7 "explicitly a trainable Weights".
type Weights struct {
	VariableBase
	value Tensor
}

func NewWeights(value Tensor) *Weights {
	w := &Weights{VariableBase: newVariableBase(value.Shape(), nil), value: value}
	w.requireGrad = true
	return w
}

func (w *Weights) Apply(ctx *ComputationContext) Tensor { return w.value }

func (w *Weights) Gradient(parent Variable, ctx *ComputationContext) Tensor {
	panic("Weights has no parents; Gradient should never be called on it")
}
