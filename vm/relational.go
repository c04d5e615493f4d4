package vm

import (
	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// execRelational implements LT/GT: both operands must share a comparable,
// non-nil type; natural ordering applies (§4.4).
func (vm *VM) execRelational(pc int, instr opcodes.Instruction) error {
	a, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	b, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	if !values.SameType(a, b) {
		return fault(pc, ErrWrongType, "%s requires two operands of the same non-nil type", instr.Opcode)
	}

	lt := values.Less(a, b)
	var result bool
	if instr.Opcode == opcodes.OpLt {
		result = lt
	} else {
		gt, _ := values.Equal(a, b)
		result = !lt && !gt
	}

	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.Bool(result))
}

// execEq implements EQ: Nil equals only Nil; otherwise types must match and
// value equality applies (§4.4).
func (vm *VM) execEq(pc int, instr opcodes.Instruction) error {
	a, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	b, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	eq, ok := values.Equal(a, b)
	if !ok {
		return fault(pc, ErrWrongType, "EQ requires matching types or Nil")
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.Bool(eq))
}

// execLogicalBinary implements AND/OR: both operands must be Bool.
func (vm *VM) execLogicalBinary(pc int, instr opcodes.Instruction) error {
	a, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	b, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	if !a.IsBool() || !b.IsBool() {
		return fault(pc, ErrWrongType, "%s requires two Bool operands", instr.Opcode)
	}
	var result bool
	if instr.Opcode == opcodes.OpAnd {
		result = a.Bool() && b.Bool()
	} else {
		result = a.Bool() || b.Bool()
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.Bool(result))
}

// execNot implements NOT: one Bool operand.
func (vm *VM) execNot(pc int, instr opcodes.Instruction) error {
	a, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	if !a.IsBool() {
		return fault(pc, ErrWrongType, "NOT requires a Bool operand")
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.Bool(!a.Bool()))
}

// execJumpIf implements JUMPIFEQ/JUMPIFNEQ: same type, or either Nil;
// mismatched non-nil types is a wrong-type fault (§4.4).
func (vm *VM) execJumpIf(pc int, instr opcodes.Instruction) error {
	a, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	b, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	eq, ok := values.Equal(a, b)
	if !ok {
		return fault(pc, ErrWrongType, "%s requires matching types or Nil", instr.Opcode)
	}
	shouldJump := eq
	if instr.Opcode == opcodes.OpJumpIfNeq {
		shouldJump = !eq
	}
	if shouldJump {
		target, err := vm.Labels.Resolve(instr.Args[0].Name)
		if err != nil {
			return fault(pc, err, "%s %s", instr.Opcode, instr.Args[0].Name)
		}
		vm.pc = target
	}
	return nil
}
