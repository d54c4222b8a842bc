package series

import (
	"go.uber.org/zap"
)

const (
	defaultEqualityLookahead = 50
	defaultMaxDepth          = 1 << 16
)

// Config tunes an Engine. Zero or negative fields fall back to defaults.
type Config struct {
	// EqualityLookahead is how many coefficients past the larger approximate
	// valuation Equal and NonZero inspect before giving up with ErrUndecidable.
	EqualityLookahead int
	// MaxValuationScan bounds the coefficient scan of Valuation. Zero means
	// unbounded: the valuation of a lazily defined zero series never returns.
	MaxValuationScan int
	// MaxDepth bounds the number of nested lazy coefficient evaluations.
	// Deeper requests fail with ErrDepthExceeded.
	MaxDepth int
	// InternCapacity enables sharing of structurally identical operator nodes
	// when positive.
	InternCapacity int64
	// MapTableSize enables memoization of coefficient map functions when positive.
	MapTableSize uint32
	Logger       *zap.Logger
}

func DefaultConfig() Config {
	return Config{}.normalized()
}

func (c Config) normalized() Config {
	if c.EqualityLookahead <= 0 {
		c.EqualityLookahead = defaultEqualityLookahead
	}
	if c.MaxValuationScan < 0 {
		c.MaxValuationScan = 0
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	}
	if c.InternCapacity < 0 {
		c.InternCapacity = 0
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
