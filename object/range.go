package object

// Range is two doubles {from, to}, per spec §3.
type Range struct {
	Header
	From, To float64
}

// NewRange allocates a Range.
func NewRange(a Allocator, from, to float64) *Range {
	r := &Range{From: from, To: to}
	r.kind = KindRange
	r.setSelf(r)
	a.Track(&r.Header)
	return r
}
