package vm

import (
	"unicode/utf8"

	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// execInt2Char implements INT2CHAR dst, n: n must be a valid Unicode scalar
// value, else a string-op fault (§4.4).
func (vm *VM) execInt2Char(pc int, instr opcodes.Instruction) error {
	n, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	if !n.IsInt() {
		return fault(pc, ErrWrongType, "INT2CHAR requires an Int operand")
	}
	code := n.Int()
	if code < 0 || code > utf8.MaxRune || !utf8.ValidRune(rune(code)) {
		return fault(pc, ErrInvalidCodePoint, "INT2CHAR %d", code)
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.String(string(rune(code))))
}

// execStri2Int implements STRI2INT dst, s, i: s is Str, i is Int, fault if
// i is outside [0, len(s)) where len counts Unicode scalar values (§4.4).
func (vm *VM) execStri2Int(pc int, instr opcodes.Instruction) error {
	s, err := vm.resolveSymbol(pc, instr.Args[1])
	if err != nil {
		return err
	}
	idx, err := vm.resolveSymbol(pc, instr.Args[2])
	if err != nil {
		return err
	}
	if !s.IsString() || !idx.IsInt() {
		return fault(pc, ErrWrongType, "STRI2INT requires (Str, Int) operands")
	}
	runes := []rune(s.Str())
	i := idx.Int()
	if i < 0 || i >= int64(len(runes)) {
		return fault(pc, ErrStringIndexRange, "STRI2INT index %d, length %d", i, len(runes))
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.Int(int64(runes[i])))
}
