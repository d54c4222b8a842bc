package series

// applyNode maps the coefficients of a series, possibly living in another
// engine, through a pure function. Indices below the approximate valuation
// of the source stay zero.
type applyNode[S, T any] struct {
	lazy[T]
	x    node[S]
	f    func(S) (T, error)
	name string
}

func newApply[S, T any](e *Engine[T], x node[S], f func(S) (T, error), name string) *applyNode[S, T] {
	n := &applyNode[S, T]{lazy: newLazy(e, x.approx(), x.sparse()), x: x, f: f, name: name}
	n.formula = n.compute
	return n
}

func (n *applyNode[S, T]) kind() Kind { return KindApply }

// operands is empty: the source may be typed over another ring.
func (n *applyNode[S, T]) operands() []node[T] { return nil }

func (n *applyNode[S, T]) compute(k int) (T, error) {
	c, err := n.x.coefficient(k)
	if err != nil {
		var zero T
		return zero, err
	}
	return n.f(c)
}

func infallible[T any](f func(T) T) func(T) (T, error) {
	return func(c T) (T, error) { return f(c), nil }
}
