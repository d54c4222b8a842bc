package series

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/on-the-ground/lazy_series_go/internal/cache"
)

// Snapshot is the serialized node graph of a series. Operands precede the
// nodes using them; placeholder targets may appear anywhere and are bound
// once every node exists, so self-referential definitions round-trip.
type Snapshot struct {
	Ring  string       `json:"ring"`
	Root  string       `json:"root"`
	Nodes []NodeRecord `json:"nodes"`
}

// NodeRecord serializes one node. Ring elements are stored in their Format
// text. Only sparse nodes carry their cache; dense caches restart empty.
type NodeRecord struct {
	ID           string         `json:"id"`
	Kind         Kind           `json:"kind"`
	Sparse       bool           `json:"sparse,omitempty"`
	Valuation    int            `json:"valuation"`
	Operands     []string       `json:"operands,omitempty"`
	Shift        int            `json:"shift,omitempty"`
	Coefficients []string       `json:"coefficients,omitempty"`
	Constant     string         `json:"constant,omitempty"`
	Degree       int            `json:"degree,omitempty"`
	Scalar       string         `json:"scalar,omitempty"`
	Function     string         `json:"function,omitempty"`
	Target       string         `json:"target,omitempty"`
	Aux          int            `json:"aux,omitempty"`
	Cache        map[int]string `json:"cache,omitempty"`
}

// Marshal encodes the node graph of s as JSON.
func Marshal[T any](s *Series[T]) ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

// Unmarshal rebuilds a series encoded by Marshal. Node identities are kept.
func (e *Engine[T]) Unmarshal(data []byte) (*Series[T], error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return e.Restore(snap)
}

func (s *Series[T]) Snapshot() (Snapshot, error) {
	enc := encoder[T]{eng: s.eng, seen: map[string]bool{}}
	if err := enc.visit(s.node); err != nil {
		return Snapshot{}, err
	}
	for len(enc.pending) > 0 {
		next := enc.pending[0]
		enc.pending = enc.pending[1:]
		if err := enc.visit(next); err != nil {
			return Snapshot{}, err
		}
	}
	s.eng.logger.Debug("series encoded", zap.String("root", s.node.id()), zap.Int("nodes", len(enc.records)))
	return Snapshot{Ring: s.eng.ring.Name(), Root: s.node.id(), Nodes: enc.records}, nil
}

type encoder[T any] struct {
	eng     *Engine[T]
	seen    map[string]bool
	pending []node[T]
	records []NodeRecord
}

func (enc *encoder[T]) visit(n node[T]) error {
	if enc.seen[n.id()] {
		return nil
	}
	enc.seen[n.id()] = true
	operands := n.operands()
	if a, ok := n.(*applyNode[T, T]); ok {
		operands = []node[T]{a.x}
	}
	for _, op := range operands {
		if err := enc.visit(op); err != nil {
			return err
		}
	}
	rec, err := enc.record(n, operands)
	if err != nil {
		return err
	}
	enc.records = append(enc.records, rec)
	if p, ok := n.(*placeholderNode[T]); ok && p.target != nil {
		enc.pending = append(enc.pending, p.target)
	}
	return nil
}

func (enc *encoder[T]) record(n node[T], operands []node[T]) (NodeRecord, error) {
	r := enc.eng.ring
	rec := NodeRecord{ID: n.id(), Kind: n.kind(), Sparse: n.sparse()}
	for _, op := range operands {
		rec.Operands = append(rec.Operands, op.id())
	}
	switch v := n.(type) {
	case *zeroNode[T]:
		return rec, nil
	case *exactNode[T]:
		rec.Valuation = v.valuation()
		rec.Shift = v.p.Shift
		for _, c := range v.p.Coeffs {
			rec.Coefficients = append(rec.Coefficients, r.Format(c))
		}
		rec.Constant = r.Format(v.constant)
		rec.Degree = v.degree
		return rec, nil
	case *funcNode[T]:
		if v.name == "" {
			return rec, fmt.Errorf("%w: unnamed coefficient function", ErrNotSerializable)
		}
		rec.Function = v.name
	case *placeholderNode[T]:
		if v.target != nil {
			rec.Target = v.target.id()
		}
	case *scaleNode[T]:
		rec.Scalar = r.Format(v.scalar)
	case *divNode[T]:
		rec.Aux = v.rv
	case *invNode[T]:
		rec.Aux = v.xv
	case *composeNode[T]:
		rec.Aux = v.gv
	case *applyNode[T, T]:
		if v.name == "" {
			return rec, fmt.Errorf("%w: unnamed coefficient map", ErrNotSerializable)
		}
		rec.Function = v.name
	case *negNode[T], *addNode[T], *mulNode[T]:
	default:
		return rec, fmt.Errorf("%w: %s node across rings", ErrNotSerializable, n.kind())
	}

	l := n.(lazyNode[T]).base()
	rec.Valuation = l.lo
	if sparse, ok := l.memo.(*cache.Sparse[T]); ok && sparse.Len() > 0 {
		rec.Cache = make(map[int]string, sparse.Len())
		sparse.Range(func(k int, c T) bool {
			rec.Cache[k] = r.Format(c)
			return true
		})
	}
	return rec, nil
}

// Restore rebuilds the series described by snap.
func (e *Engine[T]) Restore(snap Snapshot) (*Series[T], error) {
	if snap.Ring != e.ring.Name() {
		return nil, fmt.Errorf("%w: snapshot over %s, engine over %s", ErrRingMismatch, snap.Ring, e.ring.Name())
	}
	dec := decoder[T]{eng: e, built: make(map[string]node[T], len(snap.Nodes))}
	for _, rec := range snap.Nodes {
		n, err := dec.decode(rec)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", rec.ID, err)
		}
		dec.built[rec.ID] = n
	}
	for p, id := range dec.bindings {
		target, ok := dec.built[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown placeholder target %s", ErrInvalidSnapshot, id)
		}
		p.target = target
	}
	root, ok := dec.built[snap.Root]
	if !ok {
		return nil, fmt.Errorf("%w: unknown root %s", ErrInvalidSnapshot, snap.Root)
	}
	e.logger.Debug("series decoded", zap.String("root", snap.Root), zap.Int("nodes", len(snap.Nodes)))
	return e.wrap(root), nil
}

type decoder[T any] struct {
	eng      *Engine[T]
	built    map[string]node[T]
	bindings map[*placeholderNode[T]]string
}

func (dec *decoder[T]) operand(rec NodeRecord, i int) (node[T], error) {
	if i >= len(rec.Operands) {
		return nil, fmt.Errorf("%w: %s node needs %d operands", ErrInvalidSnapshot, rec.Kind, i+1)
	}
	n, ok := dec.built[rec.Operands[i]]
	if !ok {
		return nil, fmt.Errorf("%w: operand %s is not defined before use", ErrInvalidSnapshot, rec.Operands[i])
	}
	return n, nil
}

func (dec *decoder[T]) operands(rec NodeRecord, k int) ([]node[T], error) {
	ops := make([]node[T], k)
	for i := range ops {
		op, err := dec.operand(rec, i)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

func (dec *decoder[T]) decode(rec NodeRecord) (node[T], error) {
	e := dec.eng
	switch rec.Kind {
	case KindZero:
		return &zeroNode[T]{ident: rec.ID, eng: e, isSparse: rec.Sparse}, nil
	case KindExact:
		return dec.exact(rec)
	}

	var n lazyNode[T]
	switch rec.Kind {
	case KindFunction:
		f, ok := e.functions[rec.Function]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, rec.Function)
		}
		n = e.newFunc(f, rec.Function, rec.Valuation, rec.Sparse)
	case KindPlaceholder:
		p := e.newPlaceholder(rec.Valuation, rec.Sparse)
		if rec.Target != "" {
			if dec.bindings == nil {
				dec.bindings = map[*placeholderNode[T]]string{}
			}
			dec.bindings[p] = rec.Target
		}
		n = p
	case KindApply:
		f, ok := e.maps[rec.Function]
		if !ok {
			return nil, fmt.Errorf("%w: map %q", ErrUnknownFunction, rec.Function)
		}
		x, err := dec.operand(rec, 0)
		if err != nil {
			return nil, err
		}
		n = newApply(e, x, infallible(e.tableized(f)), rec.Function)
	case KindScale:
		x, err := dec.operand(rec, 0)
		if err != nil {
			return nil, err
		}
		s, err := e.ring.Parse(rec.Scalar)
		if err != nil {
			return nil, err
		}
		n = e.newScale(x, s)
	case KindNegate, KindInvert:
		x, err := dec.operand(rec, 0)
		if err != nil {
			return nil, err
		}
		if rec.Kind == KindNegate {
			n = e.newNeg(x)
		} else {
			n = e.newInv(x, rec.Aux)
		}
	case KindAdd, KindSubtract, KindMultiply, KindDivide, KindCompose:
		ops, err := dec.operands(rec, 2)
		if err != nil {
			return nil, err
		}
		switch rec.Kind {
		case KindAdd, KindSubtract:
			n = e.newAdd(ops[0], ops[1], rec.Kind == KindSubtract)
		case KindMultiply:
			n = e.newMul(ops[0], ops[1])
		case KindDivide:
			n = e.newDiv(ops[0], ops[1], rec.Aux)
		default:
			n = e.newCompose(ops[0], ops[1], rec.Aux, nil)
		}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidSnapshot, rec.Kind)
	}

	l := n.base()
	l.ident = rec.ID
	l.raise(rec.Valuation)
	if len(rec.Cache) > 0 {
		sparse, ok := l.memo.(*cache.Sparse[T])
		if !ok {
			return nil, fmt.Errorf("%w: cache stored for a dense node", ErrInvalidSnapshot)
		}
		entries := make(map[int]T, len(rec.Cache))
		for k, text := range rec.Cache {
			c, err := e.ring.Parse(text)
			if err != nil {
				return nil, err
			}
			entries[k] = c
		}
		sparse.Restore(entries)
	}
	return n, nil
}

func (dec *decoder[T]) exact(rec NodeRecord) (node[T], error) {
	e := dec.eng
	coeffs := make([]T, len(rec.Coefficients))
	for i, text := range rec.Coefficients {
		c, err := e.ring.Parse(text)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	constant := e.ring.Zero()
	if rec.Constant != "" {
		c, err := e.ring.Parse(rec.Constant)
		if err != nil {
			return nil, err
		}
		constant = c
	}
	p := e.ops.Normalize(rec.Shift, coeffs)
	if !e.ring.IsZero(constant) && !p.IsZero() && p.Degree() >= rec.Degree {
		return nil, fmt.Errorf("%w: %w: polynomial of degree %d reaches into the tail at %d",
			ErrInvalidSnapshot, ErrInvalidDegree, p.Degree(), rec.Degree)
	}
	x, ok := asExact(e.exact(p, constant, rec.Degree, rec.Sparse))
	if !ok {
		return nil, fmt.Errorf("%w: exact node without coefficients", ErrInvalidSnapshot)
	}
	x.ident = rec.ID
	return x, nil
}
