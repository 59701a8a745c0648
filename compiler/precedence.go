package compiler

// precedence is the Pratt precedence ladder, lowest to highest, ported
// directly from original_source's compiler.c Precedence enum (spec §4.3).
type precedence int

const (
	precNone precedence = iota
	precLowest
	precAssignment // = += -= *= /=
	precLogicalOr  // or
	precLogicalAnd // and
	precLogicalNot // not (prefix)
	precEquality   // == !=
	precIn         // in
	precIs         // is
	precComparison // < > <= >=
	precBitwiseOr  // |
	precBitwiseXor // ^
	precBitwiseAnd // &
	precBitwiseShift // << >>
	precRange      // ..
	precTerm       // + -
	precFactor     // * / %
	precUnary      // prefix - ~ not
	precCall       // (
	precSubscript  // [
	precAttrib     // .
	precPrimary
)
