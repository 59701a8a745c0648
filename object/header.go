package object

// Kind tags a heap object's concrete type, per spec §3's object header.
type Kind uint8

const (
	KindString Kind = iota
	KindList
	KindMap
	KindRange
	KindScript
	KindFunction
	KindFiber
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindRange:
		return "Range"
	case KindScript:
		return "Script"
	case KindFunction:
		return "Function"
	case KindFiber:
		return "Fiber"
	case KindUser:
		return "User"
	default:
		return "?"
	}
}

// Allocator routes every heap allocation through the owning VM, per spec
// §3's construction discipline: allocate, initialise the header, splice
// into the all-objects list. It is implemented by package heap; object
// constructors take one so this package never imports heap (which itself
// needs to hold and trace object values, and would otherwise cycle back).
type Allocator interface {
	// Track splices a freshly-constructed object's header into the
	// all-objects list, the instant after its fields are initialised.
	Track(h *Header)
	// AddBytes updates the allocator's byte accounting for size bytes of
	// newly-owned (or released, if negative) buffer storage.
	AddBytes(size int)
}

// Header is embedded at the front of every heap object kind: a Kind tag, a
// mark bit for the tracing collector, the intrusive link threading the
// object into the VM's all-objects list, and a self-reference back to the
// concrete object. The self-reference exists because Go has no safe
// "container_of" to recover *List from *Header the way a C collector would
// pointer-arithmetic back to the struct start; every constructor sets it
// once, right alongside the Kind tag, so the collector's sweep/blacken
// passes can type-switch on Obj() instead.
type Header struct {
	kind   Kind
	marked bool
	next   *Header
	self   Obj
}

func (h *Header) header() *Header { return h }

// Obj returns the concrete object this header is embedded in, for the
// collector to type-switch on during blackening.
func (h *Header) Obj() Obj { return h.self }

// setSelf records the concrete object owning this header. Called once by
// every constructor, immediately after the Kind tag is set.
func (h *Header) setSelf(o Obj) { h.self = o }

// Kind reports the concrete kind of the object owning this header.
func (h *Header) Kind() Kind { return h.kind }

// Marked reports the collector's mark bit for this object.
func (h *Header) Marked() bool { return h.marked }

// SetMarked sets the collector's mark bit.
func (h *Header) SetMarked(m bool) { h.marked = m }

// Next returns the next header in the all-objects list.
func (h *Header) Next() *Header { return h.next }

// SetNext splices h into the all-objects list ahead of next.
func (h *Header) SetNext(next *Header) { h.next = next }
