package series

import (
	"fmt"

	"github.com/on-the-ground/lazy_series_go/internal/cache"
)

var (
	ErrDivisionByZero       = fmt.Errorf("division by the zero series")
	ErrInvalidComposition   = fmt.Errorf("invalid composition")
	ErrAlreadyDefined       = fmt.Errorf("series already defined")
	ErrUndecidable          = fmt.Errorf("undecidable")
	ErrUnsupportedOperation = fmt.Errorf("unsupported operation")
	ErrNotAPolynomial       = fmt.Errorf("not a polynomial")
	ErrUndefined            = fmt.Errorf("series is not defined yet")
	ErrInvalidDegree        = fmt.Errorf("invalid degree")
	ErrNotSerializable      = fmt.Errorf("series is not serializable")
	ErrUnknownFunction      = fmt.Errorf("unknown function")
	ErrRingMismatch         = fmt.Errorf("coefficient ring mismatch")
	ErrInvalidSnapshot      = fmt.Errorf("invalid snapshot")

	// ErrDepthExceeded is returned when more than Config.MaxDepth lazy
	// evaluations are nested. The definition may still be productive: warm
	// the cache with lower coefficients first or raise MaxDepth.
	ErrDepthExceeded = fmt.Errorf("evaluation depth exceeded")

	// ErrNonProductive is returned when a coefficient depends on itself.
	ErrNonProductive = cache.ErrNonProductive
)
