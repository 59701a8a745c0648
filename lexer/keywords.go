package lexer

// keywords is the exact-length, bytewise-match table spec §4.2 specifies,
// ported directly from original_source's compiler.c _keywords table.
var keywords = map[string]Kind{
	"import": Import,
	"def":    Def,
	"native": Native,
	"end":    End,

	"null": Null,
	"self": Self,
	"is":   Is,
	"in":   In,
	"and":  And,
	"or":   Or,
	"not":  Not,
	"true": True,

	"false": False,

	"do":       Do,
	"while":    While,
	"for":      For,
	"if":       If,
	"elif":     Elif,
	"else":     Else,
	"break":    Break,
	"continue": Continue,
	"return":   Return,

	"Bool":     BoolType,
	"Num":      NumType,
	"String":   StringType,
	"Array":    ArrayType,
	"Map":      MapType,
	"Range":    RangeType,
	"Object":   ObjType,
	"Function": FuncType,
}

// lookupKeyword reports whether name is a keyword, and if so its Kind.
// Matching is plain Go map lookup (hash+length+memcmp in different
// clothing, per object/nametable.go's identical justification).
func lookupKeyword(name string) (Kind, bool) {
	k, ok := keywords[name]
	return k, ok
}
