package object

// NameTable is a growable array of interned *String pointers, used by
// Script for its global-name and generic-identifier pools. Grounded on
// gothird/symbols.go's symbols.symbolicate: "look up by content, or
// allocate and remember the index" is the identical shape, generalized
// from a Go map[string]uint over plain strings to heap-allocated *String
// values so the returned index also satisfies spec §3 invariant 3 (every
// literal/global index fits in 16 bits — callers check that at the call
// site, see MaxConstants).
//
// Dedup is by Go string-content equality, which realizes spec §4.1's
// "hash + length + memcmp" rule: Go's map hashes the key and compares it
// byte-wise on collision, which is exactly hash+length+memcmp in different
// clothing.
type NameTable struct {
	strings []*String
	index   map[string]int
}

// Add returns name's existing index if already interned, otherwise
// allocates a new String, appends it, and returns the new index together
// with true to signal it is new.
func (nt *NameTable) Add(a Allocator, name string) (idx int, isNew bool) {
	if nt.index == nil {
		nt.index = make(map[string]int)
	}
	if idx, ok := nt.index[name]; ok {
		return idx, false
	}
	s := NewStringFromString(a, name)
	idx = len(nt.strings)
	nt.strings = append(nt.strings, s)
	nt.index[name] = idx
	return idx, true
}

// Get returns the interned String at idx. Pointer identity of the result
// is stable for the table's lifetime: Add never relocates an existing
// entry.
func (nt *NameTable) Get(idx int) *String { return nt.strings[idx] }

// Lookup returns the index of name if already interned.
func (nt *NameTable) Lookup(name string) (int, bool) {
	idx, ok := nt.index[name]
	return idx, ok
}

// Len reports the number of interned names.
func (nt *NameTable) Len() int { return len(nt.strings) }

// Each calls f for every interned String, for the collector's mark phase.
func (nt *NameTable) Each(f func(*String)) {
	for _, s := range nt.strings {
		f(s)
	}
}
