package grade

import (
	"errors"
	"testing"
)

func TestInverseLaw(t *testing.T) {
	t.Parallel()

	for v := MinValue; v <= MaxValue; v++ {
		g, err := FromValue(v)
		if err != nil {
			t.Fatalf("FromValue(%d): %v", v, err)
		}
		back, err := ToValue(g)
		if err != nil {
			t.Fatalf("ToValue(%q): %v", g, err)
		}
		if back != v {
			t.Fatalf("ToValue(FromValue(%d)) = %d", v, back)
		}
	}
	for _, g := range Labels {
		v, err := ToValue(g)
		if err != nil {
			t.Fatalf("ToValue(%q): %v", g, err)
		}
		back, err := FromValue(v)
		if err != nil {
			t.Fatalf("FromValue(%d): %v", v, err)
		}
		if back != g {
			t.Fatalf("FromValue(ToValue(%q)) = %q", g, back)
		}
	}
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	if g, _ := FromValue(1); g != "F" {
		t.Fatalf("FromValue(1) = %q, want F", g)
	}
	if g, _ := FromValue(20); g != "Z" {
		t.Fatalf("FromValue(20) = %q, want Z", g)
	}
	if v, _ := ToValue("C"); v != 9 {
		t.Fatalf("ToValue(C) = %d, want 9", v)
	}
}

func TestFromValueRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, v := range []int{-1, 0, 21, 100} {
		if _, err := FromValue(v); !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("FromValue(%d) error = %v, want ErrInvalidValue", v, err)
		}
	}
}

func TestToValueRejectsUnknownLabel(t *testing.T) {
	t.Parallel()

	for _, g := range []Grade{"", "G", "a+", "A++", " A"} {
		if _, err := ToValue(g); !errors.Is(err, ErrInvalidGrade) {
			t.Fatalf("ToValue(%q) error = %v, want ErrInvalidGrade", g, err)
		}
	}
}

func TestParseNormalizesInput(t *testing.T) {
	t.Parallel()

	tests := map[string]Grade{"a+": "A+", "  s- ": "S-", "z": "Z", "F": "F"}
	for input, want := range tests {
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := Parse("B++"); !errors.Is(err, ErrInvalidGrade) {
		t.Fatalf("Parse(B++) error = %v, want ErrInvalidGrade", err)
	}
}
