package values

import "testing"

func TestDecodeEscapes(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"a\\032b", "a b"},
		{"\\010\\013", "\n\r"},
	}
	for _, c := range cases {
		got, err := DecodeEscapes(c.in)
		if err != nil {
			t.Fatalf("DecodeEscapes(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("DecodeEscapes(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDecodeEscapesTruncated(t *testing.T) {
	if _, err := DecodeEscapes("abc\\12"); err == nil {
		t.Fatal("expected error for truncated escape")
	}
}

func TestEqualNilRules(t *testing.T) {
	if eq, ok := Equal(Nil(), Nil()); !eq || !ok {
		t.Fatal("nil should equal nil")
	}
	if eq, ok := Equal(Nil(), Int(0)); eq || !ok {
		t.Fatal("nil should not equal int 0, but comparison is still valid")
	}
	if _, ok := Equal(Int(1), String("1")); ok {
		t.Fatal("mismatched non-nil types should not be comparable")
	}
}

func TestLessOrdering(t *testing.T) {
	if !Less(Int(1), Int(2)) {
		t.Error("1 < 2")
	}
	if !Less(Bool(false), Bool(true)) {
		t.Error("false < true")
	}
	if !Less(String("abc"), String("abd")) {
		t.Error("lexicographic string order")
	}
}

func TestFormat(t *testing.T) {
	if Int(-7).Format() != "-7" {
		t.Error("negative int formatting")
	}
	if Bool(true).Format() != "true" || Bool(false).Format() != "false" {
		t.Error("bool formatting")
	}
	if Nil().Format() != "" {
		t.Error("nil formats as empty string")
	}
}

func TestTypeNameUnsetCarveOut(t *testing.T) {
	if Unset().TypeName() != "" {
		t.Error("Unset's type name must be empty, matching TYPE's carve-out")
	}
}
