// Package numfmt parses and prints the numeric literals used on the command
// line and in the terminal UI.
package numfmt

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrSyntax is returned for a literal that is neither a number nor a pi
// expression.
var ErrSyntax = errors.New("invalid numeric literal")

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseReal parses a plain number or a pi expression.
//
// Supported formats:
//   - Plain numbers: "1.5707", "-0.5", "3.14e-2"
//   - Pi fractions: "pi", "pi/2", "3*pi/4", "2pi", "-pi/8"
func ParseReal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrSyntax)
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, nil
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	coeff := 1.0
	if m[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}
	result := coeff * math.Pi
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		result /= denom
	}
	if m[1] == "-" {
		result = -result
	}
	return result, nil
}

// ParseAmplitude parses a complex literal ("0.5+0.5i", "-1i", "(1+2i)") or
// falls back to ParseReal.
func ParseAmplitude(s string) (complex128, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "iI") && !strings.Contains(strings.ToLower(s), "pi") {
		z, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		return z, nil
	}
	r, err := ParseReal(s)
	if err != nil {
		return 0, err
	}
	return complex(r, 0), nil
}

// ParseAmplitudes splits a comma-separated list and parses each entry.
func ParseAmplitudes(s string) ([]complex128, error) {
	var out []complex128
	for i, part := range splitList(s) {
		z, err := ParseAmplitude(part)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, z)
	}
	return out, nil
}

// ParseIndices splits a comma-separated list of basis indices. Entries may be
// decimal or carry a 0b / 0x prefix.
func ParseIndices(s string) ([]int, error) {
	var out []int
	for i, part := range splitList(s) {
		v, err := strconv.ParseInt(part, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w: %q", i, ErrSyntax, part)
		}
		out = append(out, int(v))
	}
	return out, nil
}

func splitList(s string) []string {
	var parts []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// piForms lists the phase angles printed symbolically.
var piForms = []struct {
	value   float64
	display string
}{
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{2 * math.Pi / 3, "2*pi/3"},
	{5 * math.Pi / 6, "5*pi/6"},
	{3 * math.Pi / 8, "3*pi/8"},
	{5 * math.Pi / 8, "5*pi/8"},
	{7 * math.Pi / 8, "7*pi/8"},
}

// FormatPhase prints an angle in radians, using pi notation for common
// fractions and %.4g otherwise. Zero prints as "0".
func FormatPhase(rad float64) string {
	if math.Abs(rad) < 1e-10 {
		return "0"
	}
	for _, pf := range piForms {
		if math.Abs(rad-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(rad+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return fmt.Sprintf("%.4g", rad)
}
