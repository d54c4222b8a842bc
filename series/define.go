package series

import (
	"fmt"

	"go.uber.org/zap"
)

// Define binds a placeholder to its defining expression, which may refer to
// the placeholder itself. Every such self-reference must pass through an
// operator that raises the valuation, e.g. multiplication by z; otherwise
// coefficient requests fail with ErrNonProductive.
func (s *Series[T]) Define(expr *Series[T]) error {
	s.eng.owns(expr)
	p, ok := s.node.(*placeholderNode[T])
	if !ok {
		return fmt.Errorf("%w: %s series", ErrAlreadyDefined, s.node.kind())
	}
	if p.target != nil {
		return fmt.Errorf("%w: placeholder %s", ErrAlreadyDefined, p.ident)
	}
	p.target = expr.node
	s.eng.logger.Debug("placeholder defined",
		zap.String("id", p.ident),
		zap.String("target", expr.node.id()),
		zap.String("kind", string(expr.node.kind())),
	)
	return nil
}

// Defined reports whether s is not an unbound placeholder.
func (s *Series[T]) Defined() bool {
	p, ok := s.node.(*placeholderNode[T])
	return !ok || p.target != nil
}
