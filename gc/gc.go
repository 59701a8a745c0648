// Package gc implements the mark/sweep tracing collector spec §4.5
// describes: gray the root set, propagate by blackening each gray object's
// referenced values, sweep the all-objects list and free anything left
// unmarked. Grounded on gothird's Core.Close() reverse-order-teardown
// idiom for freeObject, and on package buffer's generic growable array for
// the gray work list itself (spec §4.5: "itself an exponentially-growing
// buffer resized via the host allocator").
package gc

import (
	"github.com/jcorbin/miniscript/buffer"
	"github.com/jcorbin/miniscript/heap"
	"github.com/jcorbin/miniscript/object"
)

// Collector runs mark/sweep cycles over a Heap. It keeps its gray work list
// across calls so repeated collections don't repay the buffer's growth cost
// every time.
type Collector struct {
	h    *heap.Heap
	gray buffer.Buffer[*object.Header]
}

// New returns a Collector operating over h.
func New(h *heap.Heap) *Collector {
	return &Collector{h: h}
}

// Collect performs one full mark/sweep cycle: gray the roots, propagate
// until the work list is empty, then sweep the all-objects list, freeing
// anything left unmarked and clearing the mark bit on every survivor.
func (c *Collector) Collect() (freed, live int) {
	c.gray.Clear()
	c.grayRoots()
	for c.gray.Len() > 0 {
		h := c.popGray()
		c.blacken(h)
	}
	return c.sweep()
}

func (c *Collector) grayRoots() {
	for _, s := range c.h.Roots {
		c.grayObj(s)
	}
	for _, f := range c.h.Fibers {
		c.grayObj(f)
	}
	c.h.TempRoots.Each(c.grayHeader)
}

// grayHeader marks h and, the first time it is marked, enqueues it on the
// gray work list for later blackening. Objects already marked (already gray
// or already black) are skipped, which is what makes the collector
// terminate on a cyclic graph.
func (c *Collector) grayHeader(h *object.Header) {
	if h == nil || h.Marked() {
		return
	}
	h.SetMarked(true)
	c.gray.Write(c.h, h)
}

// grayValue grays v's header if v holds an object reference; non-object
// tags (null, bool, number, undefined) carry nothing to trace.
func (c *Collector) grayValue(v object.Value) {
	if hdr, ok := v.ObjHeader(); ok {
		c.grayHeader(hdr)
	}
}

func (c *Collector) popGray() *object.Header {
	n := c.gray.Len()
	h := c.gray.At(n - 1)
	c.gray.Truncate(n - 1)
	return h
}

// blacken scans h's referenced values per spec §4.5's per-kind field list.
// Range's endpoints are plain floats (non-object) and Function's owned Code
// and Lines buffers are capacity-only for accounting, so neither kind adds
// anything here beyond what Owner already covers.
func (c *Collector) blacken(h *object.Header) {
	switch o := h.Obj().(type) {
	case *object.List:
		for _, v := range o.Items() {
			c.grayValue(v)
		}
	case *object.Map:
		o.Each(func(key, value object.Value) {
			c.grayValue(key)
			c.grayValue(value)
		})
	case *object.Script:
		for _, v := range o.Globals.Items() {
			c.grayValue(v)
		}
		o.GlobalNames.Each(func(s *object.String) { c.grayObj(s) })
		for _, v := range o.Literals.Items() {
			c.grayValue(v)
		}
		for _, fn := range o.Functions.Items() {
			c.grayObj(fn)
		}
		for _, s := range o.FunctionNames.Items() {
			c.grayObj(s)
		}
		o.Names.Each(func(s *object.String) { c.grayObj(s) })
		if o.Body != nil {
			c.grayObj(o.Body)
		}
	case *object.Function:
		if o.Owner != nil {
			c.grayObj(o.Owner)
		}
	case *object.Fiber:
		for _, v := range o.Stack {
			c.grayValue(v)
		}
		for _, fr := range o.Frames {
			if fr.Fn != nil {
				c.grayObj(fr.Fn)
			}
		}
	case *object.String, *object.Range:
		// leaf kinds: nothing object-valued to trace.
	}
}

// grayObj grays the header backing a concrete object reference.
func (c *Collector) grayObj(o object.Obj) {
	c.grayHeader(object.HeaderOf(o))
}

// sweep walks the all-objects list, unlinking and freeing anything left
// unmarked, and clears the mark bit on every survivor for the next cycle.
func (c *Collector) sweep() (freed, live int) {
	var headKept *object.Header
	var tailKept *object.Header

	h := c.h.AllObjects()
	for h != nil {
		next := h.Next()
		if h.Marked() {
			h.SetMarked(false)
			h.SetNext(nil)
			if tailKept == nil {
				headKept = h
			} else {
				tailKept.SetNext(h)
			}
			tailKept = h
			live++
		} else {
			freeObject(c.h, h)
			freed++
		}
		h = next
	}
	c.h.SetAllObjects(headKept)
	return freed, live
}
