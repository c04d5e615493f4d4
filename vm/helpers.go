package vm

import (
	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// storeResult writes a computed value into a destination variable,
// wrapping any frame/variable fault with the given instruction's context.
func (vm *VM) storeResult(pc int, frame opcodes.FrameTag, name string, v values.Value) error {
	if err := vm.Frames.Store(frame, name, v); err != nil {
		return fault(pc, err, "%s@%s", frame, name)
	}
	return nil
}
