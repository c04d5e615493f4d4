// Package vm implements the IPPcode23 execution model: frame store,
// operand/call stacks, label index and the fetch-decode-execute dispatcher
// (§4.4), grounded on the teacher's vm package (call stack manager,
// variable manager, VMError, and the ExecutionResult{ShouldAdvanceIP,
// JumpTo} handler-return shape of its instruction executors).
package vm

import (
	"github.com/ipp23/interpret/ioadapter"
	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// buildLabelIndex walks instrs once, recording every LABEL's ordinal.
func buildLabelIndex(instrs []opcodes.Instruction) (*LabelIndex, error) {
	idx := &LabelIndex{ordinals: make(map[string]int)}
	for pc, instr := range instrs {
		if instr.Opcode != opcodes.OpLabel {
			continue
		}
		name := instr.Args[0].Name
		if _, exists := idx.ordinals[name]; exists {
			return nil, fault(pc, ErrDuplicateLabel, "label %q", name)
		}
		idx.ordinals[name] = pc
	}
	return idx, nil
}

// VM is the IPPcode23 virtual machine: a program, a program counter, the
// frame store, both stacks, the label index, and the I/O adapter.
type VM struct {
	Program []opcodes.Instruction
	pc      int

	Frames  *FrameStore
	Operand OperandStack
	Calls   CallStack
	Labels  *LabelIndex

	In     *ioadapter.Reader
	Out    *ioadapter.Writer
	Errout *ioadapter.Writer

	instructionsExecuted uint64
}

// New constructs a VM ready to run program against the given I/O adapter.
// The label pre-pass runs here, before any instruction executes, matching
// §4.4's "pre-pass: before the loop begins" ordering.
func New(program []opcodes.Instruction, in *ioadapter.Reader, out, errout *ioadapter.Writer) (*VM, error) {
	labels, err := buildLabelIndex(program)
	if err != nil {
		return nil, err
	}
	return &VM{
		Program: program,
		Frames:  NewFrameStore(),
		Labels:  labels,
		In:      in,
		Out:     out,
		Errout:  errout,
	}, nil
}

// Run executes the program to completion and returns the process exit
// code: 0 on falling off the end, n for a program-supplied EXIT(n) with n
// in 0..49, or a *Fault for any of §6.4's 52-58 runtime faults. Exactly one outcome is
// ever returned, matching §7's "exit code must match the first error
// encountered along the executed control-flow path."
func (vm *VM) Run() (int, error) {
	for {
		if vm.pc >= len(vm.Program) {
			return 0, nil
		}
		instr := vm.Program[vm.pc]
		current := vm.pc
		vm.pc++ // §4.4: PC already points at the next instruction during execution
		vm.instructionsExecuted++

		code, halted, err := vm.execute(current, instr)
		if err != nil {
			return 0, err
		}
		if halted {
			return code, nil
		}
	}
}

// execute runs one instruction's semantics. halted reports whether EXIT was
// reached, in which case code is the process exit code.
func (vm *VM) execute(pc int, instr opcodes.Instruction) (code int, halted bool, err error) {
	switch instr.Opcode {
	case opcodes.OpLabel:
		// no runtime effect; recorded by the pre-pass (§4.4).
		return 0, false, nil

	case opcodes.OpDefVar:
		frame, name := vm.varArg(instr.Args[0])
		if err := vm.Frames.Define(frame, name); err != nil {
			return 0, false, fault(pc, err, "DEFVAR %s@%s", frame, name)
		}
		return 0, false, nil

	case opcodes.OpMove:
		dstFrame, dstName := vm.varArg(instr.Args[0])
		v, err := vm.resolveSymbol(pc, instr.Args[1])
		if err != nil {
			return 0, false, err
		}
		if err := vm.Frames.Store(dstFrame, dstName, v); err != nil {
			return 0, false, fault(pc, err, "MOVE %s@%s", dstFrame, dstName)
		}
		return 0, false, nil

	case opcodes.OpCreateFrame:
		vm.Frames.CreateFrame()
		return 0, false, nil

	case opcodes.OpPushFrame:
		if err := vm.Frames.PushFrame(); err != nil {
			return 0, false, fault(pc, err, "PUSHFRAME")
		}
		return 0, false, nil

	case opcodes.OpPopFrame:
		if err := vm.Frames.PopFrame(); err != nil {
			return 0, false, fault(pc, err, "POPFRAME")
		}
		return 0, false, nil

	case opcodes.OpPushs:
		v, err := vm.resolveSymbol(pc, instr.Args[0])
		if err != nil {
			return 0, false, err
		}
		vm.Operand.Push(v)
		return 0, false, nil

	case opcodes.OpPops:
		v, err := vm.Operand.Pop()
		if err != nil {
			return 0, false, fault(pc, err, "POPS")
		}
		dstFrame, dstName := vm.varArg(instr.Args[0])
		if err := vm.Frames.Store(dstFrame, dstName, v); err != nil {
			return 0, false, fault(pc, err, "POPS %s@%s", dstFrame, dstName)
		}
		return 0, false, nil

	case opcodes.OpAdd, opcodes.OpSub, opcodes.OpMul, opcodes.OpIDiv:
		return 0, false, vm.execArith(pc, instr)

	case opcodes.OpLt, opcodes.OpGt:
		return 0, false, vm.execRelational(pc, instr)

	case opcodes.OpEq:
		return 0, false, vm.execEq(pc, instr)

	case opcodes.OpAnd, opcodes.OpOr:
		return 0, false, vm.execLogicalBinary(pc, instr)

	case opcodes.OpNot:
		return 0, false, vm.execNot(pc, instr)

	case opcodes.OpInt2Char:
		return 0, false, vm.execInt2Char(pc, instr)

	case opcodes.OpStri2Int:
		return 0, false, vm.execStri2Int(pc, instr)

	case opcodes.OpJump:
		target, err := vm.Labels.Resolve(instr.Args[0].Name)
		if err != nil {
			return 0, false, fault(pc, err, "JUMP %s", instr.Args[0].Name)
		}
		vm.pc = target
		return 0, false, nil

	case opcodes.OpJumpIfEq, opcodes.OpJumpIfNeq:
		return 0, false, vm.execJumpIf(pc, instr)

	case opcodes.OpCall:
		target, err := vm.Labels.Resolve(instr.Args[0].Name)
		if err != nil {
			return 0, false, fault(pc, err, "CALL %s", instr.Args[0].Name)
		}
		vm.Calls.Push(vm.pc) // vm.pc was already advanced past CALL: the return address
		vm.pc = target
		return 0, false, nil

	case opcodes.OpReturn:
		ret, err := vm.Calls.Pop()
		if err != nil {
			return 0, false, fault(pc, err, "RETURN")
		}
		vm.pc = ret
		return 0, false, nil

	case opcodes.OpExit:
		return vm.execExit(pc, instr)

	case opcodes.OpConcat:
		return 0, false, vm.execConcat(pc, instr)

	case opcodes.OpStrLen:
		return 0, false, vm.execStrLen(pc, instr)

	case opcodes.OpGetChar:
		return 0, false, vm.execGetChar(pc, instr)

	case opcodes.OpSetChar:
		return 0, false, vm.execSetChar(pc, instr)

	case opcodes.OpRead:
		return 0, false, vm.execRead(pc, instr)

	case opcodes.OpWrite:
		return 0, false, vm.execWrite(pc, instr)

	case opcodes.OpType:
		return 0, false, vm.execType(pc, instr)

	case opcodes.OpDprint:
		return 0, false, vm.execDprint(pc, instr)

	case opcodes.OpBreak:
		vm.execBreak(pc)
		return 0, false, nil

	default:
		return 0, false, fault(pc, ErrWrongType, "unimplemented opcode %s", instr.Opcode)
	}
}

// varArg extracts the frame tag and name of a variable-reference argument.
func (vm *VM) varArg(a opcodes.Arg) (opcodes.FrameTag, string) {
	return a.Frame, a.Name
}

// resolveSymbol resolves a literal-or-variable-reference argument to a
// Value. Resolving a variable currently holding Unset is a missing-value
// fault (§4.1) — the one exception is handled separately by TYPE.
func (vm *VM) resolveSymbol(pc int, a opcodes.Arg) (values.Value, error) {
	switch a.Kind {
	case opcodes.ArgLiteral:
		return a.Literal, nil
	case opcodes.ArgVar:
		v, err := vm.Frames.Load(a.Frame, a.Name)
		if err != nil {
			return values.Value{}, fault(pc, err, "%s@%s", a.Frame, a.Name)
		}
		if v.IsUnset() {
			return values.Value{}, fault(pc, ErrUnsetVariable, "%s@%s", a.Frame, a.Name)
		}
		return v, nil
	default:
		return values.Value{}, fault(pc, ErrWrongType, "argument is not a symbol")
	}
}
