package object

import "github.com/jcorbin/miniscript/buffer"

// BodyFunctionName is the synthetic name of a Script's top-level Function,
// per spec §3.
const BodyFunctionName = "@(ScriptLevel)"

// Script owns everything a compilation produces, per spec §3: a flat
// globals buffer with a parallel name table, a literal constant pool, a
// function buffer with a parallel (purely positional, non-deduping)
// function-name table, a names pool of interned identifiers, and the body
// Function whose bytecode runs top-level statements.
type Script struct {
	Header

	Globals     buffer.Buffer[Value]
	GlobalNames NameTable

	Literals buffer.Buffer[Value]

	Functions     buffer.Buffer[*Function]
	FunctionNames buffer.Buffer[*String] // parallel to Functions, index-for-index

	Names NameTable // generic interned-identifier pool

	Body *Function
}

// NewScript allocates a Script together with its top-level body Function.
func NewScript(a Allocator) *Script {
	s := &Script{}
	s.kind = KindScript
	s.setSelf(s)
	a.Track(&s.Header)
	s.Body = NewFunction(a, s, BodyFunctionName, 0, false)
	return s
}

// Global interns name in GlobalNames, growing the parallel Globals slot
// buffer the first time a name is seen, and returns its index.
func (s *Script) Global(a Allocator, name string) (int, error) {
	idx, isNew := s.GlobalNames.Add(a, name)
	if isNew {
		if idx >= MaxConstants {
			return 0, OverflowError{What: "globals", Limit: MaxConstants}
		}
		s.Globals.Write(a, Null())
	}
	return idx, nil
}

// AddConstant searches the literal pool for a Same value, returning its
// index if found; otherwise it appends v and returns the new index, per
// spec §4.3's addConstant and §8 invariant 4.
func (s *Script) AddConstant(a Allocator, v Value) (int, error) {
	for i, existing := range s.Literals.Items() {
		if Same(v, existing) {
			return i, nil
		}
	}
	if s.Literals.Len() >= MaxConstants {
		return 0, OverflowError{What: "constants", Limit: MaxConstants}
	}
	return s.Literals.Write(a, v), nil
}

// AddFunction appends fn to Functions and appends a new String of its name
// at the same index in FunctionNames, satisfying spec §3 invariant 2.
func (s *Script) AddFunction(a Allocator, fn *Function) (int, error) {
	if s.Functions.Len() >= MaxConstants {
		return 0, OverflowError{What: "functions", Limit: MaxConstants}
	}
	idx := s.Functions.Write(a, fn)
	nameIdx := s.FunctionNames.Write(a, NewStringFromString(a, fn.Name))
	if nameIdx != idx {
		panic("object: Functions/FunctionNames index mismatch")
	}
	return idx, nil
}
