package series

// composeNode is f(g) for g of positive valuation. Powers of g, and of 1/g
// when f has negative exponents, are built on first use and kept.
type composeNode[T any] struct {
	lazy[T]
	f, g node[T]
	// gv is the exact valuation of g when f starts below zero, otherwise a
	// positive lower bound of it.
	gv   int
	ginv node[T]
	pos  []node[T]
	neg  []node[T]
}

func (e *Engine[T]) newCompose(f, g node[T], gv int, ginv node[T]) *composeNode[T] {
	n := &composeNode[T]{lazy: newLazy(e, f.approx()*gv, f.sparse()), f: f, g: g, gv: gv, ginv: ginv}
	n.formula = n.compute
	return n
}

func (n *composeNode[T]) kind() Kind          { return KindCompose }
func (n *composeNode[T]) operands() []node[T] { return []node[T]{n.f, n.g} }

// power returns g^i, i >= 1.
func (n *composeNode[T]) power(i int) node[T] {
	for len(n.pos) < i {
		if len(n.pos) == 0 {
			n.pos = append(n.pos, n.g)
			continue
		}
		n.pos = append(n.pos, n.eng.mul(n.pos[len(n.pos)-1], n.g))
	}
	return n.pos[i-1]
}

// inversePower returns g^-i, i >= 1.
func (n *composeNode[T]) inversePower(i int) node[T] {
	if n.ginv == nil {
		n.ginv = n.eng.newInv(n.g, n.gv)
	}
	for len(n.neg) < i {
		if len(n.neg) == 0 {
			n.neg = append(n.neg, n.ginv)
			continue
		}
		n.neg = append(n.neg, n.eng.mul(n.neg[len(n.neg)-1], n.ginv))
	}
	return n.neg[i-1]
}

func (n *composeNode[T]) compute(k int) (T, error) {
	rg := n.eng.ring
	sum := rg.Zero()
	term := func(i int, p node[T]) error {
		a, err := n.f.coefficient(i)
		if err != nil || rg.IsZero(a) {
			return err
		}
		b, err := p.coefficient(k)
		if err != nil {
			return err
		}
		sum = rg.Add(sum, rg.Mul(a, b))
		return nil
	}

	fv := n.f.approx()
	for i := fv; i < 0; i++ {
		if i*n.gv > k {
			continue
		}
		if err := term(i, n.inversePower(-i)); err != nil {
			return sum, err
		}
	}
	if k == 0 && fv <= 0 {
		a, err := n.f.coefficient(0)
		if err != nil {
			return a, err
		}
		sum = rg.Add(sum, a)
	}
	step := max(n.gv, n.g.approx())
	for i := max(1, fv); i*step <= k; i++ {
		if err := term(i, n.power(i)); err != nil {
			return sum, err
		}
	}
	return sum, nil
}
