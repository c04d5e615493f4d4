// Package source loads an IPPcode23 XML program document into an
// order-sorted instruction sequence for the VM (§6.2).
package source

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ipp23/interpret/opcodes"
	"github.com/ipp23/interpret/values"
)

// ErrorCode distinguishes a malformed-XML document (31) from a well-formed
// document that violates the IPPcode23 schema (32), per §6.4.
type ErrorCode int

const (
	ErrMalformedXML  ErrorCode = 31
	ErrInvalidSchema ErrorCode = 32
)

// LoadError is the structural-fault type the loader raises; cmd/interpret
// maps its Code directly to the process exit code.
type LoadError struct {
	Code ErrorCode
	Msg  string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("source: %s", e.Msg)
}

func malformed(format string, args ...interface{}) error {
	return &LoadError{Code: ErrMalformedXML, Msg: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &LoadError{Code: ErrInvalidSchema, Msg: fmt.Sprintf(format, args...)}
}

// xmlProgram / xmlInstruction / xmlArg mirror the document shape in §6.2
// closely enough for encoding/xml to decode directly; validation against
// the IPPcode23 schema happens after unmarshalling.
type xmlProgram struct {
	XMLName     xml.Name        `xml:"program"`
	Language    string          `xml:"language,attr"`
	Instruction []xmlInstruction `xml:"instruction"`
}

type xmlInstruction struct {
	Order  string   `xml:"order,attr"`
	Opcode string   `xml:"opcode,attr"`
	Args   []xmlArg `xml:",any"`
}

type xmlArg struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

// slotKind names what an argument position must decode to, independent of
// which concrete XML type attribute supplies it.
type slotKind byte

const (
	slotVar    slotKind = iota // must be a variable reference
	slotSymbol                 // literal or variable reference
	slotLabel                  // a label name
	slotType                   // one of the four type-name strings
)

// argShape names, in positional order, exactly which arg slots each opcode
// requires (§4.4). An opcode missing from this table takes none.
var argShape = map[opcodes.Opcode][]slotKind{
	opcodes.OpMove:        {slotVar, slotSymbol},
	opcodes.OpCreateFrame: {},
	opcodes.OpPushFrame:   {},
	opcodes.OpPopFrame:    {},
	opcodes.OpDefVar:      {slotVar},
	opcodes.OpPushs:       {slotSymbol},
	opcodes.OpPops:        {slotVar},
	opcodes.OpAdd:         {slotVar, slotSymbol, slotSymbol},
	opcodes.OpSub:         {slotVar, slotSymbol, slotSymbol},
	opcodes.OpMul:         {slotVar, slotSymbol, slotSymbol},
	opcodes.OpIDiv:        {slotVar, slotSymbol, slotSymbol},
	opcodes.OpLt:          {slotVar, slotSymbol, slotSymbol},
	opcodes.OpGt:          {slotVar, slotSymbol, slotSymbol},
	opcodes.OpEq:          {slotVar, slotSymbol, slotSymbol},
	opcodes.OpAnd:         {slotVar, slotSymbol, slotSymbol},
	opcodes.OpOr:          {slotVar, slotSymbol, slotSymbol},
	opcodes.OpNot:         {slotVar, slotSymbol},
	opcodes.OpInt2Char:    {slotVar, slotSymbol},
	opcodes.OpStri2Int:    {slotVar, slotSymbol, slotSymbol},
	opcodes.OpLabel:       {slotLabel},
	opcodes.OpJump:        {slotLabel},
	opcodes.OpJumpIfEq:    {slotLabel, slotSymbol, slotSymbol},
	opcodes.OpJumpIfNeq:   {slotLabel, slotSymbol, slotSymbol},
	opcodes.OpCall:        {slotLabel},
	opcodes.OpReturn:      {},
	opcodes.OpExit:        {slotSymbol},
	opcodes.OpConcat:      {slotVar, slotSymbol, slotSymbol},
	opcodes.OpStrLen:      {slotVar, slotSymbol},
	opcodes.OpGetChar:     {slotVar, slotSymbol, slotSymbol},
	opcodes.OpSetChar:     {slotVar, slotSymbol, slotSymbol},
	opcodes.OpRead:        {slotVar, slotType},
	opcodes.OpWrite:       {slotSymbol},
	opcodes.OpType:        {slotVar, slotSymbol},
	opcodes.OpDprint:      {slotSymbol},
	opcodes.OpBreak:       {},
}

func slotAccepts(kind slotKind, arg opcodes.Arg) bool {
	switch kind {
	case slotVar:
		return arg.Kind == opcodes.ArgVar
	case slotSymbol:
		return arg.Kind == opcodes.ArgVar || arg.Kind == opcodes.ArgLiteral
	case slotLabel:
		return arg.Kind == opcodes.ArgLabel
	case slotType:
		return arg.Kind == opcodes.ArgType
	default:
		return false
	}
}

// Load parses r as an IPPcode23 program document and returns its
// instructions in ascending `order`, ready for the VM's label pre-pass.
func Load(r io.Reader) ([]opcodes.Instruction, error) {
	var doc xmlProgram
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, malformed("%v", err)
	}
	if doc.Language != "IPPcode23" {
		return nil, invalid("unsupported language %q, expected IPPcode23", doc.Language)
	}

	type ordered struct {
		order int
		seq   int // original document position; the sort below does not read it
		inst  opcodes.Instruction
	}
	items := make([]ordered, 0, len(doc.Instruction))
	seen := make(map[int]bool, len(doc.Instruction))

	for i, xi := range doc.Instruction {
		order, err := strconv.Atoi(xi.Order)
		if err != nil || order <= 0 {
			return nil, invalid("instruction %d: order %q must be a positive integer", i, xi.Order)
		}
		if seen[order] {
			return nil, invalid("duplicate order %d", order)
		}
		seen[order] = true

		op, ok := opcodes.Lookup(xi.Opcode)
		if !ok {
			return nil, invalid("instruction order %d: unknown opcode %q", order, xi.Opcode)
		}

		shape := argShape[op]
		if len(xi.Args) != len(shape) {
			return nil, invalid("instruction order %d (%s): expected %d argument(s), got %d", order, op, len(shape), len(xi.Args))
		}

		args := make([]opcodes.Arg, len(shape))
		for j, xa := range xi.Args {
			wantTag := fmt.Sprintf("arg%d", j+1)
			if xa.XMLName.Local != wantTag {
				return nil, invalid("instruction order %d: argument %d must be <%s>, got <%s>", order, j+1, wantTag, xa.XMLName.Local)
			}
			arg, err := decodeArg(xa)
			if err != nil {
				return nil, invalid("instruction order %d, argument %d: %v", order, j+1, err)
			}
			if !slotAccepts(shape[j], arg) {
				return nil, invalid("instruction order %d (%s): argument %d has the wrong kind", order, op, j+1)
			}
			args[j] = arg
		}

		items = append(items, ordered{
			order: order,
			seq:   i,
			inst:  opcodes.Instruction{Opcode: op, Args: args, Order: order},
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].order < items[j].order })

	out := make([]opcodes.Instruction, len(items))
	for i, it := range items {
		out[i] = it.inst
	}
	return out, nil
}

func decodeArg(xa xmlArg) (opcodes.Arg, error) {
	switch xa.Type {
	case "var":
		frame, name, err := splitVarRef(xa.Text)
		if err != nil {
			return opcodes.Arg{}, err
		}
		return opcodes.Arg{Kind: opcodes.ArgVar, Frame: frame, Name: name}, nil
	case "label":
		return opcodes.Arg{Kind: opcodes.ArgLabel, Name: xa.Text}, nil
	case "type":
		switch xa.Text {
		case "int", "bool", "string", "nil":
			return opcodes.Arg{Kind: opcodes.ArgType, Name: xa.Text}, nil
		default:
			return opcodes.Arg{}, fmt.Errorf("invalid type name %q", xa.Text)
		}
	case "int":
		n, err := strconv.ParseInt(xa.Text, 10, 64)
		if err != nil {
			return opcodes.Arg{}, fmt.Errorf("invalid int literal %q: %w", xa.Text, err)
		}
		return opcodes.Arg{Kind: opcodes.ArgLiteral, Literal: values.Int(n)}, nil
	case "bool":
		switch xa.Text {
		case "true":
			return opcodes.Arg{Kind: opcodes.ArgLiteral, Literal: values.Bool(true)}, nil
		case "false":
			return opcodes.Arg{Kind: opcodes.ArgLiteral, Literal: values.Bool(false)}, nil
		default:
			return opcodes.Arg{}, fmt.Errorf("invalid bool literal %q", xa.Text)
		}
	case "string":
		if strings.TrimSpace(xa.Text) == "" {
			return opcodes.Arg{Kind: opcodes.ArgLiteral, Literal: values.String("")}, nil
		}
		decoded, err := values.DecodeEscapes(xa.Text)
		if err != nil {
			return opcodes.Arg{}, err
		}
		return opcodes.Arg{Kind: opcodes.ArgLiteral, Literal: values.String(decoded)}, nil
	case "nil":
		return opcodes.Arg{Kind: opcodes.ArgLiteral, Literal: values.Nil()}, nil
	default:
		return opcodes.Arg{}, fmt.Errorf("unknown argument type %q", xa.Type)
	}
}

func splitVarRef(text string) (opcodes.FrameTag, string, error) {
	if len(text) < 4 || text[2] != '@' {
		return 0, "", fmt.Errorf("malformed variable reference %q", text)
	}
	name := text[3:]
	if name == "" {
		return 0, "", fmt.Errorf("malformed variable reference %q: empty name", text)
	}
	switch text[:2] {
	case "GF":
		return opcodes.FrameGF, name, nil
	case "LF":
		return opcodes.FrameLF, name, nil
	case "TF":
		return opcodes.FrameTF, name, nil
	default:
		return 0, "", fmt.Errorf("malformed variable reference %q: unknown frame tag", text)
	}
}
