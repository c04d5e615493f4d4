package vm

import (
	"strconv"
	"strings"

	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// execRead implements READ v, type: one blocking line read; empty-or-
// unreadable input yields Nil, otherwise the line is parsed per type
// (§4.4). The input itself never causes a fault — malformed input simply
// yields Nil for "int" and "bool" always succeeds on some value; only the
// store into v can fault (undefined variable, unallocated frame).
func (vm *VM) execRead(pc int, instr opcodes.Instruction) error {
	typeName := instr.Args[1].Name

	line, ok := vm.In.ReadLine()
	var result values.Value
	if !ok {
		result = values.Nil()
	} else {
		switch typeName {
		case "int":
			n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
			if err != nil {
				result = values.Nil()
			} else {
				result = values.Int(n)
			}
		case "bool":
			result = values.Bool(strings.EqualFold(line, "true"))
		case "string":
			result = values.String(line)
		default:
			result = values.Nil()
		}
	}

	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, result)
}

// execWrite implements WRITE sym: formats per §6.3 and writes unbuffered
// to standard out, no trailing newline.
func (vm *VM) execWrite(pc int, instr opcodes.Instruction) error {
	v, err := vm.resolveSymbol(pc, instr.Args[0])
	if err != nil {
		return err
	}
	if err := vm.Out.WriteString(v.Format()); err != nil {
		return fault(pc, ErrWrongType, "WRITE: %v", err)
	}
	return nil
}

// execExit implements EXIT n: n is Int in [0,49]; out of range is a
// wrong-value fault (§4.4).
func (vm *VM) execExit(pc int, instr opcodes.Instruction) (int, bool, error) {
	n, err := vm.resolveSymbol(pc, instr.Args[0])
	if err != nil {
		return 0, false, err
	}
	if !n.IsInt() {
		return 0, false, fault(pc, ErrWrongType, "EXIT requires an Int operand")
	}
	code := n.Int()
	if code < 0 || code > 49 {
		return 0, false, fault(pc, ErrExitOutOfRange, "EXIT %d", code)
	}
	return int(code), true, nil
}
