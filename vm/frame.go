package vm

import (
	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// frame is a mapping from variable name to Value (§3). Grounded on the
// teacher's vm/variable_manager.go split of storage into independent
// global/local/temporary maps; here each frame owns one such map, and an
// unallocated TF or LF is represented in FrameStore by a nil TF pointer or
// an empty frame stack.
type frame struct {
	slots map[string]values.Value
}

func newFrame() *frame {
	return &frame{slots: make(map[string]values.Value)}
}

// FrameStore holds GF (always allocated), TF (nilable) and the stack of
// pushed frames whose top is aliased as LF (§4.2).
type FrameStore struct {
	global *frame
	temp   *frame   // nil when unallocated
	stack  []*frame // top of stack is LF; empty means LF unallocated
}

// NewFrameStore allocates GF and leaves TF/LF unallocated, per §3's
// lifecycle rules.
func NewFrameStore() *FrameStore {
	return &FrameStore{global: newFrame()}
}

func (fs *FrameStore) resolve(tag opcodes.FrameTag) (*frame, error) {
	switch tag {
	case opcodes.FrameGF:
		return fs.global, nil
	case opcodes.FrameTF:
		if fs.temp == nil {
			return nil, ErrUnallocatedFrame
		}
		return fs.temp, nil
	case opcodes.FrameLF:
		if len(fs.stack) == 0 {
			return nil, ErrUnallocatedFrame
		}
		return fs.stack[len(fs.stack)-1], nil
	default:
		return nil, ErrUnallocatedFrame
	}
}

// CreateFrame unconditionally replaces TF with a new empty frame.
func (fs *FrameStore) CreateFrame() {
	fs.temp = newFrame()
}

// PushFrame requires TF allocated; it becomes the new LF and TF becomes
// unallocated.
func (fs *FrameStore) PushFrame() error {
	if fs.temp == nil {
		return ErrUnallocatedFrame
	}
	fs.stack = append(fs.stack, fs.temp)
	fs.temp = nil
	return nil
}

// PopFrame requires the frame stack non-empty; its top becomes the new TF
// and is removed from the stack.
func (fs *FrameStore) PopFrame() error {
	if len(fs.stack) == 0 {
		return ErrUnallocatedFrame
	}
	last := len(fs.stack) - 1
	fs.temp = fs.stack[last]
	fs.stack = fs.stack[:last]
	return nil
}

// Define creates a new Unset binding for name in the given frame. Requires
// the frame allocated and the name absent.
func (fs *FrameStore) Define(tag opcodes.FrameTag, name string) error {
	f, err := fs.resolve(tag)
	if err != nil {
		return err
	}
	if _, exists := f.slots[name]; exists {
		return ErrRedefinedVariable
	}
	f.slots[name] = values.Unset()
	return nil
}

// Load reads name's current value. Requires the frame allocated and the
// name present; the caller decides whether an Unset result is itself a
// fault (every opcode but TYPE treats it as one).
func (fs *FrameStore) Load(tag opcodes.FrameTag, name string) (values.Value, error) {
	f, err := fs.resolve(tag)
	if err != nil {
		return values.Value{}, err
	}
	v, exists := f.slots[name]
	if !exists {
		return values.Value{}, ErrUndefinedVariable
	}
	return v, nil
}

// Store writes value into name. Requires the frame allocated and the name
// present.
func (fs *FrameStore) Store(tag opcodes.FrameTag, name string, value values.Value) error {
	f, err := fs.resolve(tag)
	if err != nil {
		return err
	}
	if _, exists := f.slots[name]; !exists {
		return ErrUndefinedVariable
	}
	f.slots[name] = value
	return nil
}
