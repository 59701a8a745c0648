// Package opcode holds the bytecode instruction set emitted by package
// compiler, split into its own package (per spec §4.4) so compiler and any
// future interpreter share one source of truth without an import cycle —
// the same separation `1e1972b8_Dev-Dami-DYMS-Lang` and
// `eb8d370d_KTStephano-GVM` use for their own opcode tables.
package opcode

// Code is a single bytecode instruction. Every Code is one byte on the
// wire, per spec §4.4.
type Code byte

const (
	CONSTANT Code = iota
	PUSH_NULL
	POP
	JUMP
	JUMP_IF_NOT
	RETURN

	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	MOD
	RANGE
	BIT_AND
	BIT_OR
	BIT_XOR
	BIT_LSHIFT
	BIT_RSHIFT
	GT
	LT
	EQEQ
	NOTEQ
	GTEQ
	LTEQ
	IS
	IN
	AND
	OR

	NEGATIVE
	NOT
	BIT_NOT

	// The opcodes below this line are the extension set SPEC_FULL.md's
	// compiler module requires to compile the full grammar (locals,
	// globals, calls, attributes, subscripts, list/map literals); spec
	// §4.4 calls these "expected but stubbed in the reference" and
	// requires the emitter accept them "without structural change".
	LOAD_LOCAL
	STORE_LOCAL
	LOAD_GLOBAL
	STORE_GLOBAL
	CALL
	GET_ATTRIB
	SET_ATTRIB
	GET_SUBSCRIPT
	SET_SUBSCRIPT
	BUILD_LIST
	BUILD_MAP
)

// info is the {Name, StackDelta} entry for an opcode with a fixed stack
// effect, independent of its operand. CALL/BUILD_LIST/BUILD_MAP are
// operand-count-dependent and handled by StackDelta, not this table.
type info struct {
	name  string
	delta int
}

var table = map[Code]info{
	CONSTANT:    {"CONSTANT", +1},
	PUSH_NULL:   {"PUSH_NULL", +1},
	POP:         {"POP", -1},
	JUMP:        {"JUMP", 0},
	JUMP_IF_NOT: {"JUMP_IF_NOT", -1},
	RETURN:      {"RETURN", -1},

	ADD:        {"ADD", -1},
	SUBTRACT:   {"SUBTRACT", -1},
	MULTIPLY:   {"MULTIPLY", -1},
	DIVIDE:     {"DIVIDE", -1},
	MOD:        {"MOD", -1},
	RANGE:      {"RANGE", -1},
	BIT_AND:    {"BIT_AND", -1},
	BIT_OR:     {"BIT_OR", -1},
	BIT_XOR:    {"BIT_XOR", -1},
	BIT_LSHIFT: {"BIT_LSHIFT", -1},
	BIT_RSHIFT: {"BIT_RSHIFT", -1},
	GT:         {"GT", -1},
	LT:         {"LT", -1},
	EQEQ:       {"EQEQ", -1},
	NOTEQ:      {"NOTEQ", -1},
	GTEQ:       {"GTEQ", -1},
	LTEQ:       {"LTEQ", -1},
	IS:         {"IS", -1},
	IN:         {"IN", -1},
	AND:        {"AND", -1},
	OR:         {"OR", -1},

	NEGATIVE: {"NEGATIVE", 0},
	NOT:      {"NOT", 0},
	BIT_NOT:  {"BIT_NOT", 0},

	LOAD_LOCAL:    {"LOAD_LOCAL", +1},
	STORE_LOCAL:   {"STORE_LOCAL", 0},
	LOAD_GLOBAL:   {"LOAD_GLOBAL", +1},
	STORE_GLOBAL:  {"STORE_GLOBAL", 0},
	GET_ATTRIB:    {"GET_ATTRIB", 0},
	SET_ATTRIB:    {"SET_ATTRIB", -1},
	GET_SUBSCRIPT: {"GET_SUBSCRIPT", -1},
	SET_SUBSCRIPT: {"SET_SUBSCRIPT", -2},
}

// OperandWidth reports how many bytes of operand follow c in the
// instruction stream (0, 1, or 2), per spec §4.4 / DESIGN.md's operand-
// width convention, so a disassembler or any other code walking raw
// bytecode can skip an instruction without special-casing every Code.
func OperandWidth(c Code) int {
	switch c {
	case CONSTANT, LOAD_GLOBAL, STORE_GLOBAL, JUMP, JUMP_IF_NOT,
		GET_ATTRIB, SET_ATTRIB, BUILD_LIST, BUILD_MAP:
		return 2
	case LOAD_LOCAL, STORE_LOCAL, CALL:
		return 1
	default:
		return 0
	}
}

// Name returns the opcode's mnemonic, for disassembly and diagnostics.
func (c Code) Name() string {
	if e, ok := table[c]; ok {
		return e.name
	}
	switch c {
	case CALL:
		return "CALL"
	case BUILD_LIST:
		return "BUILD_LIST"
	case BUILD_MAP:
		return "BUILD_MAP"
	default:
		return "?"
	}
}

// StackDelta reports the net operand-stack effect of emitting c with the
// given operand. CALL's operand is its argument count (pops argc+1,
// callee included, pushes one result); BUILD_LIST's is its element count;
// BUILD_MAP's is its pair count (twice as many stack slots as pairs).
// Every other opcode's delta is independent of operand.
func StackDelta(c Code, operand int) int {
	switch c {
	case CALL:
		return -operand
	case BUILD_LIST:
		if operand == 0 {
			return 1
		}
		return -(operand - 1)
	case BUILD_MAP:
		n := operand * 2
		if n == 0 {
			return 1
		}
		return -(n - 1)
	default:
		if e, ok := table[c]; ok {
			return e.delta
		}
		return 0
	}
}
