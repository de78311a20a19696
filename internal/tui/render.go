package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"qtermsim/circuit"
	"qtermsim/gate"
	"qtermsim/internal/numfmt"
	"qtermsim/qasm"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// gateLabel is the short name drawn inside a gate box.
func gateLabel(k gate.Kind) string {
	if k == gate.Identity {
		return "I"
	}
	return strings.ToUpper(k.String())
}

// controlSymbol returns the wire symbol for the control qubit of a two-qubit gate.
func controlSymbol(k gate.Kind) string {
	if k == gate.Swap {
		return "×"
	}
	return "●"
}

// targetSymbol returns the wire symbol for the target qubit of a two-qubit gate.
func targetSymbol(k gate.Kind) string {
	switch k {
	case gate.ControlledZ:
		return "●"
	case gate.ControlledY:
		return "Y"
	case gate.Swap:
		return "×"
	default:
		return "⊕"
	}
}

// ──────────────────────────── Cell model ────────────────────────────

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	op          *qasm.Op
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
	applied     bool
	next        bool
}

// cellAt returns rendering information for the cell at (step, qubit).
// applied is the number of ops already run by the session.
func cellAt(p *qasm.Program, step, qubit, applied int) cellInfo {
	var info cellInfo
	idx := p.OpAt(step, qubit)
	if idx < 0 {
		return info
	}
	op := &p.Ops[idx]
	info.op = op
	info.applied = idx < applied
	info.next = idx == applied

	lo, hi := op.Range(p.NumQubits)
	info.vertAbove = qubit > lo
	info.vertBelow = qubit < hi-1
	if op.Measure || op.Gate.Kind().Arity() == 1 {
		return info
	}
	info.isControl = qubit == op.Gate.Control()
	info.isTarget = qubit == op.Gate.Target()
	info.passThrough = !info.isControl && !info.isTarget
	return info
}

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// renderCell returns 3 lines (top, mid, bot) for a single cell, each cellW
// visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	style := gateStyle
	switch {
	case info.next:
		style = cursorStyle
	case info.applied:
		style = appliedStyle
	}

	wireSymbol := func(sym string) {
		top, bot = emptyRow, emptyRow
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}
		mid = strings.Repeat("─", dashL) + sym + strings.Repeat("─", dashR)
	}
	box := func(name string) {
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		top = strings.Repeat(" ", margin) + style.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + style.Render("┤"+padCenter(name, gateNameW)+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + style.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	}

	switch {
	case info.op == nil:
		wireSymbol("─")
	case info.op.Measure:
		box("M")
	case info.isControl:
		wireSymbol(style.Render(controlSymbol(info.op.Gate.Kind())))
	case info.isTarget:
		wireSymbol(style.Render(targetSymbol(info.op.Gate.Kind())))
	case info.passThrough:
		wireSymbol("┼")
	default:
		box(gateLabel(info.op.Gate.Kind()))
	}

	if hl != hlNone {
		bdr := cursorStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")
		mid = bdr.Render("║") + ansi.Truncate(ansi.TruncateLeft(mid, 1, ""), innerW, "") + bdr.Render("║")
	}
	return top, mid, bot
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel. The column after the
// last step is where appended gates land and carries the cursor.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder
	p := m.session.Program()

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	if m.file != "" {
		sb.WriteString(dimStyle.Render("  " + m.file))
	}
	sb.WriteString("\n\n")

	appendStep := p.Depth()
	focusStep := appendStep
	if next, ok := m.session.Next(); ok && m.focus != focusSelectTarget {
		focusStep = next.Step
	}

	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)
	startStep := 0
	if focusStep >= maxSteps {
		startStep = focusStep - maxSteps + 1
	}
	endStep := min(startStep+maxSteps, appendStep+1)

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, endStep-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < endStep; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := range p.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", qubit))) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < endStep; step++ {
			info := cellAt(p, step, qubit, m.session.Position())

			hl := hlNone
			if step == appendStep {
				switch {
				case qubit == m.cursorQubit && (m.focus == focusCircuit || m.focus == focusSelectTarget || m.focus == focusMenu):
					hl = hlCursor
				case qubit == m.targetQubit && m.focus == focusSelectTarget:
					hl = hlTargetSelect
				}
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	if m.focus == focusSelectTarget {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeStyle.Render(m.pendingKind.String()))
		sb.WriteString("  Select target qubit: ")
		sb.WriteString(targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	} else {
		fmt.Fprintf(&sb, "\n  Applied %d/%d ops, cursor q[%d]", m.session.Position(), len(p.Ops), m.cursorQubit)
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())
	if m.parseErr != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(ansi.Truncate(m.parseErr.Error(), width-4, "…")))
	}

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatePanel shows the live amplitudes and per-qubit marginals.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder
	c := m.session.State()

	sb.WriteString(titleStyle.Render("State"))
	sb.WriteString("\n")

	lines := 0
	budget := max(height-6, 1)
	for _, term := range c.Support(supportTol) {
		if lines == budget {
			sb.WriteString(dimStyle.Render("  …") + "\n")
			break
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n",
			qubitLabelStyle.Render("|"+c.Bits(term.Index)+"⟩"),
			barStyle.Render(probabilityBar(term.Prob, barW/2)),
			fmt.Sprintf("%.*f", m.precision, term.Prob),
			dimStyle.Render("φ="+numfmt.FormatPhase(term.Phase)),
		)
		lines++
	}

	sb.WriteString("\n")
	for q, pr := range c.QubitProbabilities() {
		fmt.Fprintf(&sb, "%s P(1)=%.*f  ", qubitLabelStyle.Render(fmt.Sprintf("q%d", q)), 2, pr.Prob1)
	}
	if outs := m.session.Outcomes(); len(outs) > 0 {
		sb.WriteString("\n")
		labels := make([]string, len(outs))
		for i, o := range outs {
			labels[i] = circuit.BasisLabel(o, c.NumQubits())
		}
		sb.WriteString(activeStyle.Render("measured: " + strings.Join(labels, ", ")))
	}

	return stateStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeStyle.Render("Step:    "))
	sb.WriteString("→/l Forward  ←/h Back  r Reset  v Matrix of next op")
	sb.WriteString("\n")
	sb.WriteString(activeStyle.Render("Edit:    "))
	sb.WriteString("↑↓/jk Cursor  a Append gate  m Measure  Bksp Remove last  +/- Qubits")
	sb.WriteString("\n")
	sb.WriteString(activeStyle.Render("Actions: "))
	sb.WriteString("Tab Switch focus  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// renderMatrixOverlay shows the local unitary of the next op.
func (m Model) renderMatrixOverlay() string {
	var sb strings.Builder
	op, ok := m.session.Next()
	switch {
	case !ok:
		sb.WriteString(titleStyle.Render("End of program"))
	case op.Measure:
		sb.WriteString(titleStyle.Render("measure"))
		sb.WriteString("\n\nSamples a basis state with probability |a|²\nand collapses the register onto it.")
	default:
		sb.WriteString(titleStyle.Render(op.Gate.String()))
		sb.WriteString("\n")
		u, err := gate.MatrixOf(op.Gate)
		if err != nil {
			sb.WriteString(errorStyle.Render(err.Error()))
			break
		}
		sb.WriteString(MatrixTable(u, op.Gate.Span(), 2, true))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Esc/v Close"))
	return menuBorderStyle.Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y), counting visible cells and skipping ANSI sequences.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, ov := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		line := bgLines[row]
		if w := ansi.StringWidth(line); w < x {
			line += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(ov), "")
		bgLines[row] = left + "\x1b[0m" + ov + "\x1b[0m" + right
	}
	return strings.Join(bgLines, "\n")
}
