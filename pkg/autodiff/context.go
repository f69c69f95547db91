package autodiff

// ComputationContext is the scratch store for one forward/backward round (spec.md
// §3.7, §4.6): cached forward values plus accumulated gradients, keyed by Variable
// identity. Scoped to a single round and discarded after (spec.md §5 "ComputationContext
// is scoped to a single forward/backward round and dropped immediately after").
type ComputationContext struct {
	cache map[Variable]Tensor
	grad  map[Variable]Tensor
	order []Variable // topological order (parents before children), built by Forward
}

func NewComputationContext() *ComputationContext {
	return &ComputationContext{cache: map[Variable]Tensor{}, grad: map[Variable]Tensor{}}
}

// Forward topologically evaluates and caches every node reachable from root; each
// node's Apply is invoked exactly once per call (spec.md §4.6).
func (ctx *ComputationContext) Forward(root Variable) Tensor {
	return ctx.visit(root)
}

func (ctx *ComputationContext) visit(v Variable) Tensor {
	if t, ok := ctx.cache[v]; ok {
		return t
	}
	for _, p := range v.Parents() {
		ctx.visit(p)
	}
	t := v.Apply(ctx)
	ctx.cache[v] = t
	ctx.order = append(ctx.order, v)
	return t
}

// Backward seeds grad(root) = ones(root.shape), then visits nodes in reverse
// topological order, accumulating each parent's gradient contribution (spec.md §4.6).
// Forward must have been called on root first.
func (ctx *ComputationContext) Backward(root Variable) {
	ctx.grad = map[Variable]Tensor{}
	ctx.grad[root] = Ones(ctx.cache[root])

	for i := len(ctx.order) - 1; i >= 0; i-- {
		node := ctx.order[i]
		upstream, hasUpstream := ctx.grad[node]
		if !hasUpstream {
			continue // node not on any path from root; nothing flows through it
		}
		_ = upstream
		for _, p := range node.Parents() {
			if !p.RequireGradient() {
				continue
			}
			contribution := node.Gradient(p, ctx)
			if existing, ok := ctx.grad[p]; ok {
				summed, err := addTensors(existing, contribution)
				if err != nil {
					panic(err) // a Gradient implementation returned the wrong shape for its parent
				}
				ctx.grad[p] = summed
			} else {
				ctx.grad[p] = contribution
			}
		}
	}
}

// Data returns v's cached forward value, or nil if Forward has not reached v. No error
// is returned: reading out of a round that never ran is a programmer error, not a
// recoverable runtime condition.
func (ctx *ComputationContext) Data(v Variable) Tensor { return ctx.cache[v] }

// Gradient returns v's accumulated gradient after Backward, or nil if v required no
// gradient or was unreached.
func (ctx *ComputationContext) Gradient(v Variable) Tensor { return ctx.grad[v] }
