package twic

// ValueKind identifies which of Twic's six variants a Value holds.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindVector
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindVector:
		return "vector"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a Twic value: a tagged union over Null, Bool, Number, String,
// Vector, and Map. Each Value exclusively owns its children; the grammar
// is tree-shaped, so no sharing or cycles are possible. A decoded Value
// owns its own strings (the decoder never borrows from the input buffer),
// so the source text backing a decode may be freed immediately after
// decoding returns.
//
// The zero Value is Null.
type Value struct {
	kind ValueKind
	b    bool
	n    Number
	s    string
	vec  []Value
	m    *orderedMap
}

// Null returns the Null value.
func Null() Value {
	return Value{kind: KindNull}
}

// NewBool constructs a Bool value.
func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NewNumber constructs a Number value.
func NewNumber(n Number) Value {
	return Value{kind: KindNumber, n: n}
}

// NewInt constructs an integer Number value. For a float Number value use
// NewNumber(NewFloat(f)).
func NewInt(i int64) Value {
	return NewNumber(NewInteger(i))
}

// NewString constructs a String value. s is treated as an opaque byte
// container: it need not be valid UTF-8, since \xXX escapes in Twic
// source can introduce arbitrary bytes (see decode's string-literal
// scanner).
func NewString(s string) Value {
	return Value{kind: KindString, s: s}
}

// NewVector constructs a Vector value from xs. The slice is copied; the
// caller's slice may be reused afterward.
func NewVector(xs ...Value) Value {
	vec := make([]Value, len(xs))
	copy(vec, xs)
	return Value{kind: KindVector, vec: vec}
}

// NewMap constructs an empty Map value. Use MapSet to populate it.
func NewMap() Value {
	return Value{kind: KindMap, m: newOrderedMap()}
}

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether v is Null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns v's bool payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsNumber returns v's Number payload and whether v is a Number.
func (v Value) AsNumber() (Number, bool) {
	if v.kind != KindNumber {
		return Number{}, false
	}
	return v.n, true
}

// AsString returns v's string payload and whether v is a String.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsVector returns v's element slice and whether v is a Vector. The
// returned slice aliases v's storage; callers must not mutate it in place
// (use AppendVector/SetVectorIndex instead).
func (v Value) AsVector() ([]Value, bool) {
	if v.kind != KindVector {
		return nil, false
	}
	return v.vec, true
}

// Len returns the number of elements (Vector) or live entries (Map) in v,
// or 0 for any other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindVector:
		return len(v.vec)
	case KindMap:
		if v.m == nil {
			return 0
		}
		return v.m.Len()
	default:
		return 0
	}
}

// MapKeys returns v's live map keys in insertion order, or nil if v is not
// a Map.
func (v Value) MapKeys() []string {
	if v.kind != KindMap || v.m == nil {
		return nil
	}
	return v.m.Keys()
}

// MapGet returns the value stored under key and whether it is present, if
// v is a Map.
func (v Value) MapGet(key string) (Value, bool) {
	if v.kind != KindMap || v.m == nil {
		return Value{}, false
	}
	return v.m.Get(key)
}

// MapIterate calls fn for every live (key, value) pair of v in insertion
// order, if v is a Map. It is a no-op for any other kind.
func (v Value) MapIterate(fn func(key string, val Value) bool) {
	if v.kind != KindMap || v.m == nil {
		return
	}
	v.m.Iterate(fn)
}

// MapSet inserts or overwrites key's value in place, if v is a Map.
// Reports ErrNotAContainer if v is not a Map.
func (v Value) MapSet(key string, val Value) error {
	if v.kind != KindMap || v.m == nil {
		return ErrNotAContainer{Expected: KindMap, Actual: v.kind}
	}
	v.m.Set(key, val)
	return nil
}

// MapDelete removes key from v, if v is a Map, leaving a tombstone that
// preserves the positions of surviving keys. Reports whether key was
// present.
func (v Value) MapDelete(key string) (bool, error) {
	if v.kind != KindMap || v.m == nil {
		return false, ErrNotAContainer{Expected: KindMap, Actual: v.kind}
	}
	return v.m.Delete(key), nil
}

// AppendVector appends val to v's elements, if v is a Vector.
func (v *Value) AppendVector(val Value) error {
	if v.kind != KindVector {
		return ErrNotAContainer{Expected: KindVector, Actual: v.kind}
	}
	v.vec = append(v.vec, val)
	return nil
}

// SetVectorIndex overwrites the element at i, if v is a Vector and i is in
// range.
func (v *Value) SetVectorIndex(i int, val Value) error {
	if v.kind != KindVector {
		return ErrNotAContainer{Expected: KindVector, Actual: v.kind}
	}
	if i < 0 || i >= len(v.vec) {
		return IndexOutOfRange{Index: i, Len: len(v.vec)}
	}
	v.vec[i] = val
	return nil
}

// Clone returns a deep copy of v; no Value returned from Clone shares
// mutable storage with v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindVector:
		vec := make([]Value, len(v.vec))
		for i, e := range v.vec {
			vec[i] = e.Clone()
		}
		return Value{kind: KindVector, vec: vec}
	case KindMap:
		var m *orderedMap
		if v.m != nil {
			m = v.m.clone()
		}
		return Value{kind: KindMap, m: m}
	default:
		return v
	}
}

// Equal reports whether v and other are structurally equal: same kind,
// and (recursively) equal payloads. Numbers compare per Number.Equal, so
// NaN is equal to NaN and Integer(1) is unequal to Float(1.0). Map
// equality is order-sensitive, per the insertion-order contract.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n.Equal(other.n)
	case KindString:
		return v.s == other.s
	case KindVector:
		if len(v.vec) != len(other.vec) {
			return false
		}
		for i := range v.vec {
			if !v.vec[i].Equal(other.vec[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(other.m)
	default:
		return false
	}
}

// ErrNotAContainer is returned by the untyped mutation helpers (MapSet,
// MapDelete, AppendVector, SetVectorIndex) when called against a Value of
// the wrong kind.
type ErrNotAContainer struct {
	Expected ValueKind
	Actual   ValueKind
}

func (e ErrNotAContainer) Error() string {
	return "twic: expected " + e.Expected.String() + ", got " + e.Actual.String()
}
