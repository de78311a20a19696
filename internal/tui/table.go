package tui

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"qtermsim/circuit"
	"qtermsim/gate"
	"qtermsim/internal/numfmt"
)

// support cut-off below which a basis state is not listed
const supportTol = 1e-10

// MatrixTable renders m with row and column basis labels. Plain output has
// no border colors and no emphasis, for pipes and files.
func MatrixTable(m gate.Matrix, numQubits, prec int, styled bool) string {
	headers := []string{""}
	for j := range m.Cols() {
		headers = append(headers, "|"+circuit.BasisLabel(j, numQubits)+"⟩")
	}
	rows := make([][]string, m.Rows())
	for i := range m.Rows() {
		row := []string{"⟨" + circuit.BasisLabel(i, numQubits) + "|"}
		for j := range m.Cols() {
			row = append(row, gate.FormatComplex(m.At(i, j), prec))
		}
		rows[i] = row
	}

	t := newTable(styled).Headers(headers...).Rows(rows...)
	if styled {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow || col == 0:
				return base.Inherit(qubitLabelStyle)
			case m.At(row, col-1) == 0:
				return base.Inherit(dimStyle)
			default:
				return base.Inherit(gateStyle)
			}
		})
	}
	return t.String()
}

// StateTable lists the non-negligible amplitudes of c with probability bars.
func StateTable(c *circuit.QuantumCircuit, prec int, styled bool) string {
	terms := c.Support(supportTol)
	rows := make([][]string, 0, len(terms))
	for _, term := range terms {
		rows = append(rows, []string{
			"|" + c.Bits(term.Index) + "⟩",
			gate.FormatComplex(term.Amplitude, prec),
			fmt.Sprintf("%.*f", prec, cmplx.Abs(term.Amplitude)),
			numfmt.FormatPhase(term.Phase),
			fmt.Sprintf("%.*f", prec, term.Prob),
			probabilityBar(term.Prob, barW),
		})
	}

	t := newTable(styled).
		Headers("basis", "amplitude", "|a|", "phase", "prob", "").
		Rows(rows...)
	if styled {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(titleStyle)
			case col == 0:
				return base.Inherit(qubitLabelStyle)
			case col == 5:
				return base.Inherit(barStyle)
			default:
				return base
			}
		})
	}
	return t.String()
}

// CountsTable renders a shot histogram.
func CountsTable(counts map[int]int, outcomes []int, numQubits, shots int, styled bool) string {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		frac := float64(counts[o]) / float64(shots)
		rows = append(rows, []string{
			circuit.BasisLabel(o, numQubits),
			fmt.Sprintf("%d", counts[o]),
			fmt.Sprintf("%.4f", frac),
			probabilityBar(frac, barW),
		})
	}
	t := newTable(styled).Headers("outcome", "count", "freq", "").Rows(rows...)
	if styled {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(titleStyle)
			case col == 3:
				return base.Inherit(barStyle)
			default:
				return base
			}
		})
	}
	return t.String()
}

func newTable(styled bool) *table.Table {
	t := table.New()
	if !styled {
		return t.Border(lipgloss.HiddenBorder())
	}
	return t.Border(lipgloss.RoundedBorder()).BorderStyle(dimStyle)
}

// probabilityBar draws p in [0,1] as a horizontal bar of the given width.
func probabilityBar(p float64, width int) string {
	filled := int(p*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
