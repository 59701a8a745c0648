// Package heap is the VM-equivalent home for the all-objects list, the
// temp-roots stack, and byte accounting. The collector's gray work list is
// not held here: gc.Collector keeps its own. It implements object.Allocator so
// every object constructor in package object routes through it, per spec
// §3's construction discipline.
package heap

import (
	"github.com/jcorbin/miniscript/internal/logging"
	"github.com/jcorbin/miniscript/object"
)

// Heap owns the object graph a single embedder session allocates into.
// Grounded on gothird.VM: one struct holding every piece of shared mutable
// state (there, mem/stack/memLimit; here, the object list/roots/byte
// count), configured through the same functional-options shape as
// gothird/api.go's VMOption.
type Heap struct {
	logging.Logging

	config Config

	allObjects     *object.Header
	bytesAllocated int

	// TempRoots is the LIFO of spec §3 (with no fixed capacity limit; it
	// grows as roots are pushed): any code that allocates
	// while holding an otherwise-unreachable object must Push it first and
	// Pop after, strictly LIFO.
	TempRoots TempRoots

	// Roots holds every Script currently reachable as a VM-level root
	// (spec §3 invariant 1's "VM globals/roots"), e.g. the Script a
	// Compile call is building. A front-end-only build never populates
	// Fibers; the field exists so the collector's root set matches spec
	// §4.5 exactly once fiber execution is wired in by the (out-of-scope)
	// interpreter.
	Roots  []*object.Script
	Fibers []*object.Fiber
}

// New constructs a Heap, applying opts over the defaults.
func New(opts ...Option) *Heap {
	h := &Heap{}
	defaultOptions.apply(h)
	Options(opts...).apply(h)
	return h
}

// Track implements object.Allocator: it splices h onto the front of the
// all-objects list, the instant after a constructor finishes initialising
// its fields.
func (vm *Heap) Track(h *object.Header) {
	h.SetNext(vm.allObjects)
	vm.allObjects = h
	vm.Log(".", "track %v", h.Kind())
}

// AddBytes implements object.Allocator, routing every buffer grow/shrink
// through the configured Reallocator's byte accounting, per spec §6: "MUST
// be called for every byte the VM tracks."
func (vm *Heap) AddBytes(n int) {
	vm.bytesAllocated += n
	if vm.config.Reallocate != nil && n != 0 {
		vm.config.Reallocate(nil, n)
	}
}

// BytesAllocated reports the live byte count the allocator is tracking.
func (vm *Heap) BytesAllocated() int { return vm.bytesAllocated }

// AllObjects returns the head of the all-objects list, for the collector.
func (vm *Heap) AllObjects() *object.Header { return vm.allObjects }

// SetAllObjects replaces the all-objects list head; only the collector's
// sweep phase should call this.
func (vm *Heap) SetAllObjects(h *object.Header) { vm.allObjects = h }

// AddRoot registers script as reachable from the VM's root set.
func (vm *Heap) AddRoot(script *object.Script) {
	vm.Roots = append(vm.Roots, script)
}

// RemoveRoot unregisters script, e.g. once a Compile call has handed it
// back to the embedder and it is reachable some other way (or not at all).
func (vm *Heap) RemoveRoot(script *object.Script) {
	for i, s := range vm.Roots {
		if s == script {
			vm.Roots = append(vm.Roots[:i], vm.Roots[i+1:]...)
			return
		}
	}
}

// Write routes a print-facility byte sequence through the configured
// Write callback, flushing per spec §5's "host's loader callback is
// invoked synchronously" ordering discipline (out flushed before it could
// interleave with a subsequent read).
func (vm *Heap) Write(p []byte) (int, error) {
	if vm.config.Write == nil {
		return len(p), nil
	}
	n, err := vm.config.Write.Write(p)
	if ferr := vm.config.Write.Flush(); err == nil {
		err = ferr
	}
	return n, err
}

// ReportError routes a compile/runtime/stacktrace diagnostic through the
// configured error sink, per spec §6/§7.
func (vm *Heap) ReportError(kind ErrorKind, file string, line int, msg string) {
	if vm.config.ErrorSink != nil {
		vm.config.ErrorSink(kind, file, line, msg)
	}
}

// ResolvePath resolves an import name relative to from, via the
// configured host callback, per spec §6.
func (vm *Heap) ResolvePath(from, name string) (string, error) {
	if vm.config.ResolvePath == nil {
		return name, nil
	}
	return vm.config.ResolvePath(from, name)
}

// LoadScript loads source text for path via the configured host callback,
// per spec §6. The returned done func, if non-nil, must be called exactly
// once after the VM is finished with the source text.
func (vm *Heap) LoadScript(path string) (source string, done func(), err error) {
	if vm.config.LoadScript == nil {
		return "", nil, ErrNoLoader
	}
	return vm.config.LoadScript(path)
}
