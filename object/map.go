package object

import "math"

// UnhashableKeyError reports an attempt to use a non-hashable value (List,
// Map, Script, Function, Fiber, or User) as a Map key, which spec §3 calls
// a fatal invariant violation.
type UnhashableKeyError struct {
	Kind string
}

func (e UnhashableKeyError) Error() string {
	return "unhashable map key of kind " + e.Kind
}

type mapEntry struct {
	key   Value
	value Value
}

// mapLoadFactorNum/Den express the 75% load factor cap as integers so the
// growth check never depends on float rounding at the boundary.
const (
	mapLoadFactorNum = 3
	mapLoadFactorDen = 4
	mapInitialSize   = 8
)

// Map is an open-addressed, linear-probing hash table of {key, value}
// entries, per spec §3. An empty slot is key==undefined, value==false; a
// tombstone (a deleted slot that must still be traversed during probing) is
// key==undefined, value==true — spec §3 invariant 6 and §8's S7 scenario.
type Map struct {
	Header
	entries []mapEntry
	count   int // live (non-empty, non-tombstone) entries
}

// NewMap allocates an empty Map.
func NewMap(a Allocator) *Map {
	m := &Map{}
	m.kind = KindMap
	m.setSelf(m)
	a.Track(&m.Header)
	return m
}

// Len reports the number of live entries.
func (m *Map) Len() int { return m.count }

// Each calls f for every live {key, value} pair, for the collector's mark
// phase to walk the table without exposing its tombstone-laden backing
// array.
func (m *Map) Each(f func(key, value Value)) {
	for _, e := range m.entries {
		if e.key.tag == TagUndefined {
			continue
		}
		f(e.key, e.value)
	}
}

// Get looks up key, reporting whether it was present.
func (m *Map) Get(key Value) (Value, bool, error) {
	if !isHashable(key) {
		return Value{}, false, UnhashableKeyError{Kind: key.TypeName()}
	}
	if len(m.entries) == 0 {
		return Value{}, false, nil
	}
	idx, found := m.find(key)
	if !found {
		return Value{}, false, nil
	}
	return m.entries[idx].value, true, nil
}

// Set inserts or overwrites key's value, growing the table first if the
// load factor would exceed 75%.
func (m *Map) Set(a Allocator, key, value Value) error {
	if !isHashable(key) {
		return UnhashableKeyError{Kind: key.TypeName()}
	}
	if len(m.entries) == 0 {
		m.resize(a, mapInitialSize)
	} else if (m.count+1)*mapLoadFactorDen > len(m.entries)*mapLoadFactorNum {
		m.resize(a, len(m.entries)*2)
	}
	idx, found := m.find(key)
	if !found {
		m.count++
	}
	m.entries[idx] = mapEntry{key: key, value: value}
	return nil
}

// Delete removes key, replacing its slot with a tombstone so later probes
// still traverse it. Reports whether key was present.
func (m *Map) Delete(key Value) (bool, error) {
	if !isHashable(key) {
		return false, UnhashableKeyError{Kind: key.TypeName()}
	}
	if len(m.entries) == 0 {
		return false, nil
	}
	idx, found := m.find(key)
	if !found {
		return false, nil
	}
	m.entries[idx] = mapEntry{key: Undefined(), value: Bool(true)}
	m.count--
	return true, nil
}

// find locates key's slot: an exact match if present, otherwise the first
// reusable slot encountered while probing (preferring the first tombstone
// seen over the terminating empty slot, so deletions get reused — spec
// §8's S7 tombstone-reuse scenario).
func (m *Map) find(key Value) (idx int, found bool) {
	n := len(m.entries)
	start := int(hashValue(key) % uint64(n))
	tombstone := -1
	for i := 0; i < n; i++ {
		j := (start + i) % n
		e := &m.entries[j]
		if e.key.tag == TagUndefined {
			if b, _ := e.value.AsBool(); !b {
				if tombstone >= 0 {
					return tombstone, false
				}
				return j, false
			}
			if tombstone < 0 {
				tombstone = j
			}
			continue
		}
		if Equal(e.key, key) {
			return j, true
		}
	}
	if tombstone >= 0 {
		return tombstone, false
	}
	return 0, false
}

func (m *Map) resize(a Allocator, newSize int) {
	old := m.entries
	oldCap := len(old)
	entries := make([]mapEntry, newSize)
	for i := range entries {
		entries[i] = mapEntry{key: Undefined(), value: Bool(false)}
	}
	m.entries = entries
	m.count = 0
	for _, e := range old {
		if e.key.tag == TagUndefined {
			continue
		}
		idx, _ := m.find(e.key)
		m.entries[idx] = e
		m.count++
	}
	a.AddBytes((newSize - oldCap) * mapEntrySize)
}

const mapEntrySize = valueSize * 2

func isHashable(v Value) bool {
	switch v.tag {
	case TagNull, TagBool, TagNumber:
		return true
	case TagObject:
		k := v.obj.header().kind
		return k == KindString || k == KindRange
	default:
		return false
	}
}

func hashValue(v Value) uint64 {
	switch v.tag {
	case TagNumber:
		return math.Float64bits(v.num)
	case TagBool:
		if v.b {
			return 1
		}
		return 0
	case TagNull:
		return 0x9e3779b97f4a7c15
	case TagObject:
		switch o := v.obj.(type) {
		case *String:
			return uint64(o.hash)
		case *Range:
			return math.Float64bits(o.From) ^ math.Float64bits(o.To)
		}
	}
	return 0
}
