package opcodes

import "testing"

func TestLookupCaseInsensitive(t *testing.T) {
	cases := []string{"move", "MOVE", "Move", "mOvE"}
	for _, c := range cases {
		op, ok := Lookup(c)
		if !ok || op != OpMove {
			t.Fatalf("Lookup(%q) = %v, %v; want OpMove, true", c, op, ok)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("NOSUCHOP"); ok {
		t.Fatalf("Lookup(NOSUCHOP) = ok, want not found")
	}
}

func TestStringRoundTrip(t *testing.T) {
	for op, name := range names {
		if op.String() != name {
			t.Fatalf("Opcode(%d).String() = %q, want %q", op, op.String(), name)
		}
		got, ok := Lookup(name)
		if !ok || got != op {
			t.Fatalf("Lookup(%q) = %v, %v; want %v, true", name, got, ok, op)
		}
	}
}

func TestInvalidOpcodeString(t *testing.T) {
	if got := OpInvalid.String(); got != "INVALID" {
		t.Fatalf("OpInvalid.String() = %q, want INVALID", got)
	}
	if got := opMax.String(); got != "INVALID" {
		t.Fatalf("opMax.String() = %q, want INVALID", got)
	}
}

func TestFrameTagString(t *testing.T) {
	cases := []struct {
		tag  FrameTag
		want string
	}{
		{FrameGF, "GF"},
		{FrameLF, "LF"},
		{FrameTF, "TF"},
	}
	for _, c := range cases {
		if got := c.tag.String(); got != c.want {
			t.Fatalf("FrameTag(%d).String() = %q, want %q", c.tag, got, c.want)
		}
	}
}

func TestEveryOpcodeHasAName(t *testing.T) {
	for op := OpMove; op < opMax; op++ {
		if _, ok := names[op]; !ok {
			t.Fatalf("opcode %d has no entry in names", op)
		}
	}
}
