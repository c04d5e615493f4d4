package vm

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// runID stamps every terminal-form BREAK diagnostic from this interpreter
// process, so diagnostics from concurrently-piped interpreter invocations
// can be told apart in a shared log stream.
var runID = uuid.NewString()

// execType implements TYPE dst, sym: writes sym's type-name string. Unlike
// every other symbol read, an Unset variable here yields "" rather than
// faulting — a deliberate carve-out (§9), so TYPE resolves its argument
// itself instead of going through resolveSymbol.
func (vm *VM) execType(pc int, instr opcodes.Instruction) error {
	a := instr.Args[1]
	var typeName string
	switch a.Kind {
	case opcodes.ArgLiteral:
		typeName = a.Literal.TypeName()
	case opcodes.ArgVar:
		v, err := vm.Frames.Load(a.Frame, a.Name)
		if err != nil {
			return fault(pc, err, "TYPE %s@%s", a.Frame, a.Name)
		}
		typeName = v.TypeName() // Unset.TypeName() == "": the carve-out
	default:
		return fault(pc, ErrWrongType, "TYPE argument is not a symbol")
	}
	dstFrame, dstName := vm.varArg(instr.Args[0])
	return vm.storeResult(pc, dstFrame, dstName, values.String(typeName))
}

// execDprint implements DPRINT sym: writes the formatted value to standard
// error.
func (vm *VM) execDprint(pc int, instr opcodes.Instruction) error {
	v, err := vm.resolveSymbol(pc, instr.Args[0])
	if err != nil {
		return err
	}
	_ = vm.Errout.WriteString(v.Format())
	return nil
}

// execBreak implements BREAK: an optional diagnostic no-op that never
// fails (§4.4, §9). Its form depends on whether stderr is a terminal: a
// one-line summary on a pipe/file, a fuller multi-line form with a
// timestamp and run id on a real terminal.
func (vm *VM) execBreak(pc int) {
	count := humanize.Comma(int64(vm.instructionsExecuted))
	if vm.Errout.IsTerminal() {
		ts := time.Now().Format("2006-01-02 15:04:05")
		_ = vm.Errout.WriteString(fmt.Sprintf(
			"--- BREAK (run %s) ---\ninstruction: %d\nexecuted so far: %s\nat: %s\ncall depth: %d\noperand stack depth: %d\n",
			runID, pc, count, ts, len(vm.Calls.items), len(vm.Operand.items),
		))
		return
	}
	_ = vm.Errout.WriteString(fmt.Sprintf("BREAK at %d, executed %s instructions\n", pc, count))
}
