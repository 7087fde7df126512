package twic

import (
	"errors"
	"fmt"
)

// stepKind distinguishes the two ways a Path can address into a container.
type stepKind uint8

const (
	stepKey stepKind = iota
	stepIndex
)

// PathStep is one step of a Path: either a map key or a vector index.
// Construct with Key or Index.
type PathStep struct {
	kind stepKind
	key  string
	idx  int
}

// Key constructs a map-key path step.
func Key(k string) PathStep {
	return PathStep{kind: stepKey, key: k}
}

// Index constructs a vector-index path step.
func Index(i int) PathStep {
	return PathStep{kind: stepIndex, idx: i}
}

func (s PathStep) String() string {
	if s.kind == stepKey {
		return fmt.Sprintf(".%s", s.key)
	}
	return fmt.Sprintf("[%d]", s.idx)
}

// Path is a sequence of PathSteps addressing a sub-value of a Value tree.
type Path []PathStep

func (p Path) String() string {
	s := ""
	for _, step := range p {
		s += step.String()
	}
	return s
}

// IndexError is the error family returned by Value.At and Value.AtMut. It
// wraps one of KeyMissing, IndexOutOfRange, KindMismatch, or
// TraverseThroughLeaf, recording which step of the path failed and the
// remaining (unconsumed) steps — the same "position-carrying wrapper around
// a specific cause" shape used for DecodeError, just indexed by path step
// rather than by byte offset.
type IndexError struct {
	Step      int
	Remaining Path
	Err       error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("twic: at path step %d (%s): %v", e.Step, e.Remaining, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// KeyMissing indicates a map step referenced a key that is not present.
type KeyMissing struct {
	Key string
}

func (e KeyMissing) Error() string {
	return fmt.Sprintf("key %q not found", e.Key)
}

// IndexOutOfRange indicates a vector step referenced an index >= length.
type IndexOutOfRange struct {
	Index int
	Len   int
}

func (e IndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range (len %d)", e.Index, e.Len)
}

// KindMismatch indicates a key step was taken against a non-map, or an
// index step was taken against a non-vector.
type KindMismatch struct {
	Expected ValueKind
	Actual   ValueKind
}

func (e KindMismatch) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

// TraverseThroughLeaf indicates a step was taken after the path already
// arrived at a non-container (null, bool, number, or string) value.
type TraverseThroughLeaf struct {
	Kind ValueKind
}

func (e TraverseThroughLeaf) Error() string {
	return fmt.Sprintf("cannot traverse through a %s value", e.Kind)
}

// At resolves path against v, returning the addressed sub-value. Steps are
// consumed left-to-right, resolving one level per step; on failure the
// returned *IndexError reports the step that failed and the steps that
// remained unconsumed.
func (v Value) At(path Path) (Value, error) {
	cur := v
	for i, step := range path {
		next, err := stepInto(cur, step)
		if err != nil {
			return Value{}, &IndexError{Step: i, Remaining: path[i:], Err: err}
		}
		cur = next
	}
	return cur, nil
}

// AtMut resolves path against v, returning a pointer into v's storage for
// the addressed sub-value so the caller can assign through it. The pointer
// is valid until the next structural mutation (MapSet/MapDelete/
// AppendVector/SetVectorIndex) performed on any ancestor container along
// the path.
func (v *Value) AtMut(path Path) (*Value, error) {
	cur := v
	for i, step := range path {
		next, err := stepIntoMut(cur, step)
		if err != nil {
			return nil, &IndexError{Step: i, Remaining: path[i:], Err: err}
		}
		cur = next
	}
	return cur, nil
}

func stepInto(cur Value, step PathStep) (Value, error) {
	switch step.kind {
	case stepKey:
		switch cur.kind {
		case KindMap:
			val, ok := cur.MapGet(step.key)
			if !ok {
				return Value{}, KeyMissing{Key: step.key}
			}
			return val, nil
		case KindVector:
			return Value{}, KindMismatch{Expected: KindMap, Actual: cur.kind}
		default:
			return Value{}, TraverseThroughLeaf{Kind: cur.kind}
		}
	case stepIndex:
		switch cur.kind {
		case KindVector:
			if step.idx < 0 || step.idx >= len(cur.vec) {
				return Value{}, IndexOutOfRange{Index: step.idx, Len: len(cur.vec)}
			}
			return cur.vec[step.idx], nil
		case KindMap:
			return Value{}, KindMismatch{Expected: KindVector, Actual: cur.kind}
		default:
			return Value{}, TraverseThroughLeaf{Kind: cur.kind}
		}
	default:
		return Value{}, errors.New("twic: invalid path step")
	}
}

func stepIntoMut(cur *Value, step PathStep) (*Value, error) {
	switch step.kind {
	case stepKey:
		switch cur.kind {
		case KindMap:
			ptr, ok := cur.m.entryPtr(step.key)
			if !ok {
				return nil, KeyMissing{Key: step.key}
			}
			return ptr, nil
		case KindVector:
			return nil, KindMismatch{Expected: KindMap, Actual: cur.kind}
		default:
			return nil, TraverseThroughLeaf{Kind: cur.kind}
		}
	case stepIndex:
		switch cur.kind {
		case KindVector:
			if step.idx < 0 || step.idx >= len(cur.vec) {
				return nil, IndexOutOfRange{Index: step.idx, Len: len(cur.vec)}
			}
			return &cur.vec[step.idx], nil
		case KindMap:
			return nil, KindMismatch{Expected: KindVector, Actual: cur.kind}
		default:
			return nil, TraverseThroughLeaf{Kind: cur.kind}
		}
	default:
		return nil, errors.New("twic: invalid path step")
	}
}

// MustAt is a convenience wrapper around At that panics on error. It exists
// only for tests and package-init-time constants where a path is known by
// construction to resolve; production code should use At and handle the
// error.
func (v Value) MustAt(path Path) Value {
	val, err := v.At(path)
	if err != nil {
		panic(err)
	}
	return val
}
