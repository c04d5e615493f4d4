package vm

import (
	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// execConcat implements CONCAT dst, s1, s2: both operands Str (§4.4).
func (vm *VM) execConcat(pc int, instr opcodes.Instruction) error {
	s1, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	s2, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	if !s1.IsString() || !s2.IsString() {
		return fault(pc, ErrWrongType, "CONCAT requires two Str operands")
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.String(s1.Str()+s2.Str()))
}

// execStrLen implements STRLEN dst, s: s Str; length counts Unicode scalar
// values, not bytes (§9).
func (vm *VM) execStrLen(pc int, instr opcodes.Instruction) error {
	s, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	if !s.IsString() {
		return fault(pc, ErrWrongType, "STRLEN requires a Str operand")
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.Int(int64(len([]rune(s.Str())))))
}

// execGetChar implements GETCHAR dst, s, i: s Str, i Int, 0 <= i < len(s);
// bounds violation is a string-op fault (§4.4).
func (vm *VM) execGetChar(pc int, instr opcodes.Instruction) error {
	s, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	idx, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	if !s.IsString() || !idx.IsInt() {
		return fault(pc, ErrWrongType, "GETCHAR requires (Str, Int) operands")
	}
	runes := []rune(s.Str())
	i := idx.Int()
	if i < 0 || i >= int64(len(runes)) {
		return fault(pc, ErrStringIndexRange, "GETCHAR index %d, length %d", i, len(runes))
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.String(string(runes[i])))
}

// execSetChar implements SETCHAR v, i, s: v resolves to Str, i Int, s Str
// non-empty; replaces code point i of v with s's first code point and
// writes the result back into v (§4.4).
func (vm *VM) execSetChar(pc int, instr opcodes.Instruction) error {
	dstFrame, dstName := vm.varArg(instr.Args[0])
	current, err := vm.Frames.Load(dstFrame, dstName)
	if err != nil {
		return fault(pc, err, "SETCHAR %s@%s", dstFrame, dstName)
	}
	if current.IsUnset() {
		return fault(pc, ErrUnsetVariable, "SETCHAR %s@%s", dstFrame, dstName)
	}
	if !current.IsString() {
		return fault(pc, ErrWrongType, "SETCHAR requires v to hold a Str")
	}

	idx, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	repl, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	if !idx.IsInt() || !repl.IsString() {
		return fault(pc, ErrWrongType, "SETCHAR requires (Int, Str) operands")
	}
	if repl.Str() == "" {
		return fault(pc, ErrEmptyReplacement, "SETCHAR")
	}

	runes := []rune(current.Str())
	i := idx.Int()
	if i < 0 || i >= int64(len(runes)) {
		return fault(pc, ErrStringIndexRange, "SETCHAR index %d, length %d", i, len(runes))
	}
	runes[i] = []rune(repl.Str())[0]
	return vm.storeResult(pc, dstFrame, dstName, values.String(string(runes)))
}
