package gc

import (
	"github.com/jcorbin/miniscript/heap"
	"github.com/jcorbin/miniscript/object"
)

// freeObject dispatches on h's kind to release its owned buffers back to
// the byte accountant before the header itself is dropped, per spec §4.5's
// "frees kind-specific owned buffers then the object itself". Grounded on
// gothird's Core.Close(): tear down owned resources, most-specific first,
// tolerating a kind that owns nothing to free beyond its header.
func freeObject(h *heap.Heap, hdr *object.Header) {
	switch o := hdr.Obj().(type) {
	case *object.String:
		h.AddBytes(-(o.Len() + 1))
	case *object.List:
		h.AddBytes(-(cap(o.Items()) * 40))
	case *object.Map:
		// entries accounting is released via resize's own growth bookkeeping;
		// nothing further to release here beyond the header.
	case *object.Fiber:
		h.AddBytes(-(cap(o.Stack) * 40))
	case *object.Script, *object.Function, *object.Range:
		// Script's Globals/Literals/Functions/FunctionNames and Function's
		// Code/Lines are buffer.Buffer fields: their growth was already
		// reported to the byte accountant as it happened (buffer.Buffer
		// threads an Allocator through Write/grow, per spec §4.1), so
		// there is nothing left to release here beyond the header itself.
		// Range has no owned buffer at all.
	}
}
