package qasm

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"qtermsim/gate"
)

// Pre-compiled regexps for the accepted statements.
var (
	qregRegex     = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]\s*;?$`)
	singleRegex   = regexp.MustCompile(`^(\w+)\s+(\w+)\s*\[\s*(\d+)\s*\]\s*;?$`)
	twoQubitRegex = regexp.MustCompile(`^(\w+)\s+(\w+)\s*\[\s*(\d+)\s*\]\s*,\s*(\w+)\s*\[\s*(\d+)\s*\]\s*;?$`)
	measureRegex  = regexp.MustCompile(`^measure\s+(\w+)\s*->\s*(\w+)\s*;?$`)
)

// ignoredKeywords open statements that carry no simulation meaning here.
var ignoredKeywords = []string{"OPENQASM", "include", "creg", "barrier"}

// Parse reads QASM source into a scheduled Program. The first rejected
// statement is returned as a *ParseError.
func Parse(src string) (*Program, error) {
	p := &Program{}
	declared := false

	for i, raw := range strings.Split(src, "\n") {
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || isIgnored(line) {
			continue
		}
		fail := func(err error) error {
			return &ParseError{Line: i + 1, Text: strings.TrimSpace(raw), Err: err}
		}

		if strings.HasPrefix(line, "qreg") {
			m := qregRegex.FindStringSubmatch(line)
			if m == nil {
				return nil, fail(fmt.Errorf("%w: malformed qreg", ErrUnsupported))
			}
			if declared {
				return nil, fail(fmt.Errorf("%w: only one qreg is supported", ErrUnsupported))
			}
			n, err := strconv.Atoi(m[2])
			if err != nil || n < 1 {
				return nil, fail(fmt.Errorf("%w: register size %q", gate.ErrPreconditionViolation, m[2]))
			}
			p.Register, p.NumQubits, declared = m[1], n, true
			continue
		}

		if !declared {
			return nil, fail(ErrNoRegister)
		}

		op, err := p.parseOp(line)
		if err != nil {
			return nil, fail(err)
		}
		p.Ops = append(p.Ops, op)
	}

	if !declared {
		return nil, ErrNoRegister
	}
	Schedule(p)
	return p, nil
}

// isIgnored matches the statement's first token, so "cregx" is not "creg".
func isIgnored(line string) bool {
	keyword := strings.TrimRight(strings.Fields(line)[0], ";")
	return slices.Contains(ignoredKeywords, keyword)
}

func (p *Program) parseOp(line string) (Op, error) {
	if m := measureRegex.FindStringSubmatch(line); m != nil {
		if err := p.checkRegister(m[1]); err != nil {
			return Op{}, err
		}
		return MeasureOp(), nil
	}
	if strings.HasPrefix(line, "measure") {
		return Op{}, fmt.Errorf("%w: only whole-register measurement is supported", ErrUnsupported)
	}

	var (
		name   string
		qubits []int
	)
	if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
		a, err := p.operand(m[2], m[3])
		if err != nil {
			return Op{}, err
		}
		b, err := p.operand(m[4], m[5])
		if err != nil {
			return Op{}, err
		}
		name, qubits = m[1], []int{a, b}
	} else if m := singleRegex.FindStringSubmatch(line); m != nil {
		a, err := p.operand(m[2], m[3])
		if err != nil {
			return Op{}, err
		}
		name, qubits = m[1], []int{a}
	} else {
		return Op{}, ErrUnsupported
	}

	kind, err := gate.ParseKind(name)
	if err != nil {
		return Op{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if kind.Arity() != len(qubits) {
		return Op{}, fmt.Errorf("%w: %s takes %d operand(s)", ErrUnsupported, kind, kind.Arity())
	}
	g, err := gate.New(kind, qubits...)
	if err != nil {
		return Op{}, err
	}
	if err := p.check(g); err != nil {
		return Op{}, err
	}
	return GateOp(g), nil
}

func (p *Program) operand(reg, index string) (int, error) {
	if err := p.checkRegister(reg); err != nil {
		return 0, err
	}
	q, err := strconv.Atoi(index)
	if err != nil {
		return 0, fmt.Errorf("%w: qubit index %q", gate.ErrPreconditionViolation, index)
	}
	return q, nil
}

func (p *Program) checkRegister(name string) error {
	if name != p.Register {
		return fmt.Errorf("%w: unknown register %q", ErrUnsupported, name)
	}
	return nil
}
