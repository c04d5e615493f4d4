package vm

import "github.com/ipp23/interpret/values"

// OperandStack is the LIFO of Values manipulated by PUSHS/POPS (§4.3).
type OperandStack struct {
	items []values.Value
}

func (s *OperandStack) Push(v values.Value) {
	s.items = append(s.items, v)
}

func (s *OperandStack) Pop() (values.Value, error) {
	if len(s.items) == 0 {
		return values.Value{}, ErrEmptyOperandStack
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items = s.items[:last]
	return v, nil
}

// CallStack is the LIFO of return ordinals manipulated by CALL/RETURN
// (§4.3).
type CallStack struct {
	items []int
}

func (s *CallStack) Push(pc int) {
	s.items = append(s.items, pc)
}

func (s *CallStack) Pop() (int, error) {
	if len(s.items) == 0 {
		return 0, ErrEmptyCallStack
	}
	last := len(s.items) - 1
	pc := s.items[last]
	s.items = s.items[:last]
	return pc, nil
}

// LabelIndex maps a label name to the instruction ordinal it names,
// populated once in a pre-pass over the program (§4.4).
type LabelIndex struct {
	ordinals map[string]int
}

// Resolve looks up a label's ordinal; unknown labels are a semantic fault.
func (l *LabelIndex) Resolve(name string) (int, error) {
	if pc, ok := l.ordinals[name]; ok {
		return pc, nil
	}
	return 0, ErrUndefinedLabel
}
