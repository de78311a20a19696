package numfmt

import (
	"errors"
	"math"
	"testing"
)

func TestParseReal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5707", 1.5707},
		{"-0.5", -0.5},
		{"3.14e-2", 0.0314},
		{"pi", math.Pi},
		{"PI/2", math.Pi / 2},
		{"3*pi/4", 3 * math.Pi / 4},
		{"2pi", 2 * math.Pi},
		{"-pi/8", -math.Pi / 8},
		{" pi / 3 ", math.Pi / 3},
	}
	for _, tt := range tests {
		got, err := ParseReal(tt.in)
		if err != nil {
			t.Errorf("ParseReal(%q): %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("ParseReal(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRealRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "pi/0", "pi*2", "1..2"} {
		if _, err := ParseReal(in); !errors.Is(err, ErrSyntax) {
			t.Errorf("ParseReal(%q): expected ErrSyntax, got %v", in, err)
		}
	}
}

func TestParseAmplitudes(t *testing.T) {
	got, err := ParseAmplitudes("1, 0.5+0.5i, -1i, pi/4,")
	if err != nil {
		t.Fatalf("ParseAmplitudes: %v", err)
	}
	want := []complex128{1, 0.5 + 0.5i, -1i, complex(math.Pi/4, 0)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := ParseAmplitudes("1, 2+i+3"); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

func TestParseIndices(t *testing.T) {
	got, err := ParseIndices("0, 0b101, 0x3, 7")
	if err != nil {
		t.Fatalf("ParseIndices: %v", err)
	}
	want := []int{0, 5, 3, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %d, want %d", i, got[i], want[i])
		}
	}
	if _, err := ParseIndices("1,two"); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

func TestFormatPhase(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1e-12, "0"},
		{math.Pi, "pi"},
		{-math.Pi / 2, "-pi/2"},
		{math.Pi / 4, "pi/4"},
		{3 * math.Pi / 4, "3*pi/4"},
		{1.0, "1"},
		{0.123456, "0.1235"},
	}
	for _, tt := range tests {
		if got := FormatPhase(tt.in); got != tt.want {
			t.Errorf("FormatPhase(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
