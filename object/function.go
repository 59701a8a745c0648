package object

import "github.com/jcorbin/miniscript/buffer"

// NativeFn is the host-provided body of a native function. Its marshalling
// to and from VM values is part of the (out-of-scope) interpreter/embedder
// API; this module only needs a place to hang the pointer.
type NativeFn func(args []Value) (Value, error)

// Function is {owner-Script or null, name, arity, is-native flag, payload},
// per spec §3. Payload is either Native (for a native function) or the
// bytecode/line-table/stack-size triple a compiled Fn carries.
type Function struct {
	Header

	// Owner is a non-owning back reference: it is traced during marking
	// (so a live Function keeps its Script's identity visible to the
	// collector) but never followed for destruction, per spec §3's
	// "Lifecycles" and §9's cycle-breaking note. Nil only for a Function
	// constructed without an owning Script; NewScript sets it on the body
	// Function from construction.
	Owner *Script
	Name  string
	Arity int // -1 denotes variadic, per the GLOSSARY

	IsNative bool
	Native   NativeFn

	Code      buffer.Buffer[byte]
	Lines     buffer.Buffer[int] // one entry per byte of Code, spec §4.4
	StackSize int                // peak operand-stack depth, spec §4.4
}

// NewFunction allocates a Function. A native function has isNative set and
// no bytecode is ever written to it.
func NewFunction(a Allocator, owner *Script, name string, arity int, isNative bool) *Function {
	fn := &Function{Owner: owner, Name: name, Arity: arity, IsNative: isNative}
	fn.kind = KindFunction
	fn.setSelf(fn)
	a.Track(&fn.Header)
	return fn
}
