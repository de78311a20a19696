package qasm

import (
	"fmt"
	"strings"
)

// QASM renders the program as OpenQASM 2.0 that Parse reads back to the same
// ops. A classical register of matching width is declared for measurements.
func (p *Program) QASM() string {
	reg := p.Register
	if reg == "" {
		reg = "q"
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg %s[%d];\n", reg, p.NumQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", p.NumQubits)

	for _, o := range p.Ops {
		switch {
		case o.Measure:
			fmt.Fprintf(&sb, "measure %s -> c;\n", reg)
		case o.Gate.Kind().Arity() == 2:
			fmt.Fprintf(&sb, "%s %s[%d], %s[%d];\n", o.Gate.Kind(), reg, o.Gate.Control(), reg, o.Gate.Target())
		default:
			fmt.Fprintf(&sb, "%s %s[%d];\n", o.Gate.Kind(), reg, o.Gate.Target())
		}
	}
	return sb.String()
}
