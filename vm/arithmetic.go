package vm

import (
	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// execArith implements ADD/SUB/MUL/IDIV: both operands must be Int;
// IDIV by zero is a wrong-value fault (§4.4). IDIV is pinned to floor
// division (§9 Open Question), not Go's truncating /.
func (vm *VM) execArith(pc int, instr opcodes.Instruction) error {
	a, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	b, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	if !a.IsInt() || !b.IsInt() {
		return fault(pc, ErrWrongType, "%s requires two Int operands", instr.Opcode)
	}

	var result int64
	switch instr.Opcode {
	case opcodes.OpAdd:
		result = a.Int() + b.Int()
	case opcodes.OpSub:
		result = a.Int() - b.Int()
	case opcodes.OpMul:
		result = a.Int() * b.Int()
	case opcodes.OpIDiv:
		if b.Int() == 0 {
			return fault(pc, ErrDivisionByZero, "IDIV")
		}
		result = floorDiv(a.Int(), b.Int())
	}

	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.Int(result))
}

// floorDiv implements floor division on signed 64-bit integers: truncation
// toward negative infinity rather than Go's native truncation toward zero.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
