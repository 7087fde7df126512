package twic

import (
	art "github.com/plar/go-adaptive-radix-tree"
)

// mapEntry is one (key, value) pair held by an orderedMap. A deleted entry
// is left in place as a tombstone (Deleted == true) so that indices already
// recorded in the radix tree never need renumbering.
type mapEntry struct {
	Key     string
	Value   Value
	Deleted bool
}

// orderedMap is Twic's Map representation: an insertion-ordered sequence of
// entries backed by a radix tree that maps each key to its entry's position
// in entries.
// Twic maps are typically small, flat bags of configuration keys, which is
// exactly the access pattern an adaptive radix tree is efficient for
// (lexicographically clustered, short keys), and it gives the decoder and
// the path indexer sub-linear lookup without discarding insertion order the
// way a plain Go map would.
//
// The duplicate-key rule from the Twic grammar ("last value wins, first
// position wins") falls directly out of this structure: Set on an existing
// key overwrites entries[idx].Value in place rather than appending.
type orderedMap struct {
	entries []mapEntry
	index   art.Tree
}

func newOrderedMap() *orderedMap {
	return &orderedMap{index: art.New()}
}

func (m *orderedMap) clone() *orderedMap {
	cloned := &orderedMap{
		entries: make([]mapEntry, len(m.entries)),
		index:   art.New(),
	}
	for i, e := range m.entries {
		e.Value = e.Value.Clone()
		cloned.entries[i] = e
		if !e.Deleted {
			cloned.index.Insert(art.Key(e.Key), i)
		}
	}
	return cloned
}

// Len returns the number of live (non-deleted) entries.
func (m *orderedMap) Len() int {
	n := 0
	for _, e := range m.entries {
		if !e.Deleted {
			n++
		}
	}
	return n
}

// Get returns the value for key and whether it was present and live.
func (m *orderedMap) Get(key string) (Value, bool) {
	v, found := m.index.Search(art.Key(key))
	if !found {
		return Value{}, false
	}
	idx := v.(int)
	e := m.entries[idx]
	if e.Deleted {
		return Value{}, false
	}
	return e.Value, true
}

// indexOf returns the slice index of the live entry for key, or -1.
func (m *orderedMap) indexOf(key string) int {
	v, found := m.index.Search(art.Key(key))
	if !found {
		return -1
	}
	idx := v.(int)
	if m.entries[idx].Deleted {
		return -1
	}
	return idx
}

// entryPtr returns a pointer into the backing slice for key's value, for
// use by Value.AtMut. The pointer is valid until the next Set/Delete on m.
func (m *orderedMap) entryPtr(key string) (*Value, bool) {
	idx := m.indexOf(key)
	if idx < 0 {
		return nil, false
	}
	return &m.entries[idx].Value, true
}

// Set inserts or overwrites the value for key. On an existing key the
// value is overwritten in place, keeping the key's original position;
// this is the grammar's "later pair overwrites the earlier one's value
// while keeping the earlier key's position" rule.
func (m *orderedMap) Set(key string, val Value) {
	if idx := m.indexOf(key); idx >= 0 {
		m.entries[idx].Value = val
		return
	}
	idx := len(m.entries)
	m.entries = append(m.entries, mapEntry{Key: key, Value: val})
	m.index.Insert(art.Key(key), idx)
}

// Delete removes key, leaving a tombstone. Reports whether key was present.
func (m *orderedMap) Delete(key string) bool {
	idx := m.indexOf(key)
	if idx < 0 {
		return false
	}
	m.entries[idx].Deleted = true
	m.index.Delete(art.Key(key))
	return true
}

// Keys returns the live keys in insertion order.
func (m *orderedMap) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if !e.Deleted {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Iterate calls fn for every live entry in insertion order, stopping early
// if fn returns false.
func (m *orderedMap) Iterate(fn func(key string, val Value) bool) {
	for _, e := range m.entries {
		if e.Deleted {
			continue
		}
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// Equal reports whether m and other hold the same live entries in the same
// order (Map equality is order-sensitive, matching the insertion-order
// contract of the data model).
func (m *orderedMap) Equal(other *orderedMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	a, b := m.Keys(), other.Keys()
	if len(a) != len(b) {
		return false
	}
	for i, k := range a {
		if k != b[i] {
			return false
		}
		av, _ := m.Get(k)
		bv, _ := other.Get(k)
		if !av.Equal(bv) {
			return false
		}
	}
	return true
}
