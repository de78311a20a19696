package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtermsim/gate"
	"qtermsim/qasm"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func newTestModel(t *testing.T, src string) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit.qasm")
	if src != "" {
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	m, err := New(Options{File: path, Qubits: 3, MaxQubits: 4, Seed: 1})
	require.NoError(t, err)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return next.(Model)
}

func TestNewLoadsExistingFile(t *testing.T) {
	m := newTestModel(t, "qreg q[2];\nh q[0];")
	p := m.session.Program()
	assert.Equal(t, 2, p.NumQubits)
	require.Len(t, p.Ops, 1)
	assert.Contains(t, m.qasmEditor.Value(), "h q[0];")
}

func TestNewRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.qasm")
	require.NoError(t, os.WriteFile(path, []byte("qreg q[1];\nrx(pi) q[0];"), 0o644))
	_, err := New(Options{File: path, Qubits: 1, MaxQubits: 4})
	assert.ErrorIs(t, err, qasm.ErrUnsupported)

	require.NoError(t, os.WriteFile(path, []byte("qreg q[6];"), 0o644))
	_, err = New(Options{File: path, Qubits: 1, MaxQubits: 4})
	assert.ErrorIs(t, err, gate.ErrPreconditionViolation)
}

func TestAppendGatesFromMenu(t *testing.T) {
	m := newTestModel(t, "")

	// Hadamard is the first item of the first category
	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusCircuit, m.focus)

	// CNOT from q[0] to the default target q[1], then move it to q[2]
	m = press(t, m,
		runes("a"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter},
	)
	require.Equal(t, focusSelectTarget, m.focus)
	assert.Equal(t, 1, m.targetQubit)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	ops := m.session.Program().Ops
	require.Len(t, ops, 2)
	assert.Equal(t, gate.H(0), ops[0].Gate)
	assert.Equal(t, gate.CX(0, 2), ops[1].Gate)
	assert.Contains(t, m.qasmEditor.Value(), "cx q[0], q[2];")

	m = press(t, m, runes("m"))
	assert.True(t, m.session.Program().HasMeasure())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, m.session.Program().HasMeasure())
}

func TestSteppingUpdatesState(t *testing.T) {
	m := newTestModel(t, "qreg q[1];\nx q[0];")
	m = press(t, m, runes("l"))
	assert.Equal(t, 1, m.session.Position())
	assert.InDelta(t, 1, m.session.State().Probabilities()[1], 1e-12)

	m = press(t, m, runes("l"))
	assert.Equal(t, "End of program", m.statusMsg)

	m = press(t, m, runes("h"))
	assert.Equal(t, 0, m.session.Position())
	m = press(t, m, runes("l"), runes("r"))
	assert.Equal(t, 0, m.session.Position())
}

func TestQubitCountLimits(t *testing.T) {
	m := newTestModel(t, "")
	m = press(t, m, runes("+"))
	assert.Equal(t, 4, m.session.Program().NumQubits)
	m = press(t, m, runes("+"))
	assert.Equal(t, 4, m.session.Program().NumQubits)
	assert.Contains(t, m.statusMsg, "max_qubits")

	m.cursorQubit = 3
	m = press(t, m, runes("-"))
	assert.Equal(t, 3, m.session.Program().NumQubits)
	assert.Equal(t, 2, m.cursorQubit)
	assert.Equal(t, 3, m.session.State().NumQubits())
}

func TestEditorReparse(t *testing.T) {
	m := newTestModel(t, "qreg q[2];")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusQASM, m.focus)

	m.qasmEditor.SetValue("qreg q[2];\nswap q[0], q[1];")
	m.parseQASMInput()
	require.NoError(t, m.parseErr)
	require.Len(t, m.session.Program().Ops, 1)

	m.qasmEditor.SetValue("qreg q[2];\nbogus;")
	m.parseQASMInput()
	assert.ErrorIs(t, m.parseErr, qasm.ErrUnsupported)
	assert.Len(t, m.session.Program().Ops, 1, "previous program is kept")
}

func TestSaveWritesFile(t *testing.T) {
	m := newTestModel(t, "")
	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Saved "+m.file, m.statusMsg)

	data, err := os.ReadFile(m.file)
	require.NoError(t, err)
	p, err := qasm.Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, m.session.Program().Ops, p.Ops)
}

func TestFileChangeReloads(t *testing.T) {
	m := newTestModel(t, "qreg q[1];")
	next, _ := m.Update(fileChangedMsg{content: "qreg q[2];\ncz q[1], q[0];"})
	m = next.(Model)
	assert.Equal(t, 2, m.session.Program().NumQubits)
	assert.Contains(t, m.statusMsg, "Reloaded")
}

func TestViewRendersPanels(t *testing.T) {
	m := newTestModel(t, "qreg q[3];\nh q[0];\ncx q[0], q[2];\nmeasure q -> c;")
	m = press(t, m, runes("l"))
	out := ansi.Strip(m.View())
	for _, want := range []string{"Quantum Circuit", "QASM Editor", "State", "q[2]", "Applied 1/3"} {
		assert.Contains(t, out, want)
	}

	m = press(t, m, runes("v"))
	assert.Equal(t, focusMatrix, m.focus)
	assert.Contains(t, ansi.Strip(m.View()), "cx(0,2)")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusCircuit, m.focus)
}

func TestCellAtMarksConnectors(t *testing.T) {
	p, err := qasm.Parse("qreg q[3];\ncx q[2], q[0];")
	require.NoError(t, err)

	top := cellAt(p, 0, 0, 0)
	assert.True(t, top.isTarget)
	assert.True(t, top.vertBelow)
	assert.False(t, top.vertAbove)
	assert.True(t, top.next)

	middle := cellAt(p, 0, 1, 0)
	assert.True(t, middle.passThrough)

	bottom := cellAt(p, 0, 2, 1)
	assert.True(t, bottom.isControl)
	assert.True(t, bottom.applied)
	assert.False(t, bottom.vertBelow)

	assert.Nil(t, cellAt(p, 1, 0, 0).op)
}

func TestRenderCellWidth(t *testing.T) {
	p, _ := qasm.Parse("qreg q[2];\nh q[0];\ncx q[0], q[1];\nmeasure q -> c;")
	for step := range p.Depth() + 1 {
		for q := range 2 {
			for _, hl := range []cellHighlight{hlNone, hlCursor} {
				top, mid, bot := renderCell(cellAt(p, step, q, 0), hl)
				for _, line := range []string{top, mid, bot} {
					assert.Equal(t, cellW, ansi.StringWidth(line), "step %d qubit %d: %q", step, q, line)
				}
			}
		}
	}
}

func TestOverlayAt(t *testing.T) {
	bg := strings.Join([]string{"aaaaaaaa", "bbbbbbbb", "cc"}, "\n")
	out := ansi.Strip(overlayAt(bg, "XY\nZW", 3, 1))
	assert.Equal(t, "aaaaaaaa\nbbbXYbbb\ncc ZW", out)
}
