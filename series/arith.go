package series

type negNode[T any] struct {
	lazy[T]
	x node[T]
}

func (e *Engine[T]) newNeg(x node[T]) *negNode[T] {
	n := &negNode[T]{lazy: newLazy(e, x.approx(), x.sparse()), x: x}
	n.formula = n.compute
	return n
}

func (n *negNode[T]) kind() Kind          { return KindNegate }
func (n *negNode[T]) operands() []node[T] { return []node[T]{n.x} }

func (n *negNode[T]) compute(k int) (T, error) {
	c, err := n.x.coefficient(k)
	if err != nil {
		return c, err
	}
	return n.eng.ring.Neg(c), nil
}

type scaleNode[T any] struct {
	lazy[T]
	x      node[T]
	scalar T
}

func (e *Engine[T]) newScale(x node[T], s T) *scaleNode[T] {
	n := &scaleNode[T]{lazy: newLazy(e, x.approx(), x.sparse()), x: x, scalar: s}
	n.formula = n.compute
	return n
}

func (n *scaleNode[T]) kind() Kind          { return KindScale }
func (n *scaleNode[T]) operands() []node[T] { return []node[T]{n.x} }

func (n *scaleNode[T]) compute(k int) (T, error) {
	c, err := n.x.coefficient(k)
	if err != nil {
		return c, err
	}
	return n.eng.ring.Mul(c, n.scalar), nil
}

// addNode is the termwise sum, or difference when subtract is set.
type addNode[T any] struct {
	lazy[T]
	l, r     node[T]
	subtract bool
}

func (e *Engine[T]) newAdd(l, r node[T], subtract bool) *addNode[T] {
	n := &addNode[T]{lazy: newLazy(e, min(l.approx(), r.approx()), l.sparse()), l: l, r: r, subtract: subtract}
	n.formula = n.compute
	return n
}

func (n *addNode[T]) kind() Kind {
	if n.subtract {
		return KindSubtract
	}
	return KindAdd
}

func (n *addNode[T]) operands() []node[T] { return []node[T]{n.l, n.r} }

func (n *addNode[T]) compute(k int) (T, error) {
	a, err := n.l.coefficient(k)
	if err != nil {
		return a, err
	}
	b, err := n.r.coefficient(k)
	if err != nil {
		return b, err
	}
	if n.subtract {
		return n.eng.ring.Sub(a, b), nil
	}
	return n.eng.ring.Add(a, b), nil
}

type mulNode[T any] struct {
	lazy[T]
	l, r node[T]
}

func (e *Engine[T]) newMul(l, r node[T]) *mulNode[T] {
	n := &mulNode[T]{lazy: newLazy(e, l.approx()+r.approx(), l.sparse()), l: l, r: r}
	n.formula = n.compute
	return n
}

func (n *mulNode[T]) kind() Kind          { return KindMultiply }
func (n *mulNode[T]) operands() []node[T] { return []node[T]{n.l, n.r} }

func (n *mulNode[T]) compute(k int) (T, error) {
	if p, ok := isPolynomial(n.r); ok {
		return n.convolvePolynomial(n.l, p, k)
	}
	if p, ok := isPolynomial(n.l); ok {
		return n.convolvePolynomial(n.r, p, k)
	}
	rg := n.eng.ring
	sum := rg.Zero()
	vl, vr := n.l.approx(), n.r.approx()
	for i := vl; i <= k-vr; i++ {
		a, err := n.l.coefficient(i)
		if err != nil {
			return a, err
		}
		if rg.IsZero(a) {
			continue
		}
		b, err := n.r.coefficient(k - i)
		if err != nil {
			return b, err
		}
		sum = rg.Add(sum, rg.Mul(a, b))
	}
	return sum, nil
}

// convolvePolynomial only touches the support of the polynomial factor.
func (n *mulNode[T]) convolvePolynomial(other node[T], p *exactNode[T], k int) (T, error) {
	rg := n.eng.ring
	sum := rg.Zero()
	for i, c := range p.p.Coeffs {
		if rg.IsZero(c) {
			continue
		}
		b, err := other.coefficient(k - p.p.Shift - i)
		if err != nil {
			return b, err
		}
		sum = rg.Add(sum, rg.Mul(c, b))
	}
	return sum, nil
}
