package pure

import (
	"sync"
)

// Table is a bounded memo of two generations. When the head generation is
// full the older one is dropped and a fresh head starts, so recently stored
// results survive at least one rotation.
type Table[O any] struct {
	mu      sync.Mutex
	gens    [2]map[ComparableOrString]O
	headIdx int
	maxSize int
}

func NewTable[O any](maxSize uint32) *Table[O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	return &Table[O]{
		gens:    [2]map[ComparableOrString]O{{}, {}},
		maxSize: int(maxSize),
	}
}

// Load panics when key is not comparable.
func (t *Table[O]) Load(key ComparableOrString) (O, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.gens[t.headIdx][key]; ok {
		return v, true
	}
	v, ok := t.gens[1-t.headIdx][key]
	return v, ok
}

func (t *Table[O]) Store(key ComparableOrString, value O) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.gens[t.headIdx]) >= t.maxSize {
		t.headIdx = 1 - t.headIdx
		t.gens[t.headIdx] = map[ComparableOrString]O{}
	}
	t.gens[t.headIdx][key] = value
}

// Len counts the entries of both generations.
func (t *Table[O]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.gens[0]) + len(t.gens[1])
}
