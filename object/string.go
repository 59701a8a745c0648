package object

import "hash/fnv"

// String is an immutable byte sequence with a precomputed FNV-1a hash, per
// spec §3. The payload carries a trailing NUL not counted in length, so the
// type can hand a C-compatible buffer to the (out-of-scope) embedder API
// without a copy.
type String struct {
	Header
	data   []byte // data[length] == 0 always (spec §3 invariant 7)
	length int
	hash   uint32
}

// NewString copies data into a new heap String (no deduplication), computing its
// FNV-1a hash once via stdlib hash/fnv — spec §8 invariant 2 requires
// hash(s) == FNV1a(s.data, s.length) exactly, which is stdlib's New32a()
// by name, so this is the one place this module deliberately uses the
// standard library over an ecosystem hash package: no hash library in the
// corpus implements anything other than FNV for this, and hash/fnv is the
// canonical Go implementation of the named algorithm — see DESIGN.md.
func NewString(a Allocator, data []byte) *String {
	buf := make([]byte, len(data)+1)
	copy(buf, data)
	h := fnv.New32a()
	h.Write(data)
	s := &String{data: buf, length: len(data), hash: h.Sum32()}
	s.kind = KindString
	s.setSelf(s)
	a.Track(&s.Header)
	a.AddBytes(len(buf))
	return s
}

// NewStringFromString is NewString for a Go string.
func NewStringFromString(a Allocator, s string) *String {
	return NewString(a, []byte(s))
}

// Bytes returns the string's content, excluding the trailing NUL.
func (s *String) Bytes() []byte { return s.data[:s.length] }

// String returns the string's content as a Go string.
func (s *String) String() string { return string(s.data[:s.length]) }

// Len returns the byte length, excluding the trailing NUL.
func (s *String) Len() int { return s.length }

// Hash returns the precomputed FNV-1a hash.
func (s *String) Hash() uint32 { return s.hash }
