package object_test

import "github.com/jcorbin/miniscript/object"

// heapStub is a minimal object.Allocator for tests that only need object
// construction, not a full collector-managed heap.
type heapStub struct {
	bytes int
	head  *object.Header
}

func (h *heapStub) Track(o *object.Header) {
	o.SetNext(h.head)
	h.head = o
}

func (h *heapStub) AddBytes(n int) { h.bytes += n }
