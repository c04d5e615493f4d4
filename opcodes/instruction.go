package opcodes

import "github.com/ipp23/interpret/values"

// Arg is one decoded instruction argument: a literal value, a variable
// reference, a label name, or a type name (§4.1).
type Arg struct {
	Kind    ArgKind
	Literal values.Value // valid when Kind == ArgLiteral
	Frame   FrameTag      // valid when Kind == ArgVar
	Name    string        // variable name, label name, or type name
}

// Instruction is one decoded, order-sorted program instruction as delivered
// by the source loader.
type Instruction struct {
	Opcode Opcode
	Args   []Arg
	Order  int // original XML order attribute, kept for diagnostics
}
