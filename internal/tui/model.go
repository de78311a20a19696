// Package tui is the interactive terminal front end: a circuit grid, a QASM
// editor and a live view of the register as the program is stepped.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qtermsim/gate"
	"qtermsim/qasm"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusMatrix
)

// Options configures a Model.
type Options struct {
	File      string // QASM file to load and save; empty uses circuit.qasm
	Qubits    int    // register width when File does not exist
	MaxQubits int
	Seed      uint64
	Precision int
	Watch     bool
	Logger    *slog.Logger
}

// Model represents the TUI application state.
type Model struct {
	session     *Session
	qasmEditor  textarea.Model
	focus       focus
	cursorQubit int
	width       int
	height      int
	lastQASM    string
	parseErr    error
	statusMsg   string // transient status message (e.g. save confirmation)

	file      string
	maxQubits int
	precision int
	watcher   *fileWatcher
	logger    *slog.Logger

	// Menu state
	menuCat  int
	menuItem int

	// Target-selection state (for two-qubit gates)
	pendingKind gate.Kind
	targetQubit int
}

// New loads opts.File when it exists, or starts an empty program.
func New(opts Options) (Model, error) {
	if opts.File == "" {
		opts.File = "circuit.qasm"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxQubits < 1 {
		opts.MaxQubits = max(opts.Qubits, 1)
	}

	p := qasm.NewProgram(max(opts.Qubits, 1))
	data, err := os.ReadFile(opts.File)
	switch {
	case err == nil:
		if p, err = qasm.Parse(string(data)); err != nil {
			return Model{}, fmt.Errorf("load %s: %w", opts.File, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Model{}, fmt.Errorf("load %s: %w", opts.File, err)
	}
	if p.NumQubits > opts.MaxQubits {
		return Model{}, fmt.Errorf("load %s: %w: %d qubits exceeds max_qubits %d",
			opts.File, gate.ErrPreconditionViolation, p.NumQubits, opts.MaxQubits)
	}

	session, err := NewSession(p, opts.Seed, opts.Logger)
	if err != nil {
		return Model{}, err
	}

	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		session:    session,
		qasmEditor: ta,
		focus:      focusCircuit,
		file:       opts.File,
		maxQubits:  opts.MaxQubits,
		precision:  max(opts.Precision, 2),
		logger:     opts.Logger,
	}
	if opts.Watch {
		if m.watcher, err = newFileWatcher(opts.File); err != nil {
			return Model{}, err
		}
	}
	m.syncEditor()
	return m, nil
}

// Run starts the full-screen program and blocks until the user quits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	if m.watcher != nil {
		defer m.watcher.Close()
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// syncEditor rewrites the editor from the program.
func (m *Model) syncEditor() {
	src := m.session.Program().QASM()
	m.qasmEditor.SetValue(src)
	m.lastQASM = src
	m.parseErr = nil
}

// parseQASMInput reparses the editor after a keystroke. A program that does
// not parse leaves the previous one in place.
func (m *Model) parseQASMInput() {
	src := m.qasmEditor.Value()
	if src == m.lastQASM {
		return
	}
	m.lastQASM = src
	m.loadSource(src)
}

func (m *Model) loadSource(src string) {
	p, err := qasm.Parse(src)
	if err == nil && p.NumQubits > m.maxQubits {
		err = fmt.Errorf("%d qubits exceeds max_qubits %d", p.NumQubits, m.maxQubits)
	}
	if err != nil {
		m.parseErr = err
		return
	}
	m.parseErr = nil
	if err := m.session.SetProgram(p); err != nil {
		m.parseErr = err
		return
	}
	m.cursorQubit = min(m.cursorQubit, p.NumQubits-1)
}

// edited resyncs the session and editor after a structural change made from
// the circuit panel.
func (m *Model) edited() {
	if err := m.session.SetProgram(m.session.Program()); err != nil {
		m.statusMsg = err.Error()
	}
	m.syncEditor()
}

// appendGate adds a gate built from the cursor (and target) to the end of
// the program.
func (m *Model) appendGate(kind gate.Kind, qubits ...int) {
	g, err := gate.New(kind, qubits...)
	if err == nil {
		err = m.session.Program().Add(g)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("Cannot append: %v", err)
		return
	}
	m.logger.Debug("appended gate", slog.String("gate", g.String()))
	m.edited()
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.wait()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qasmEditor.SetWidth(max(msg.Width/3-6, 20))
		m.qasmEditor.SetHeight(max(msg.Height/2-6, 4))

	case fileChangedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Watch error: %v", msg.err)
		} else if msg.content != m.qasmEditor.Value() {
			m.qasmEditor.SetValue(msg.content)
			m.lastQASM = msg.content
			m.loadSource(msg.content)
			m.statusMsg = "Reloaded " + m.file
		}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.wait())
		}

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			if quit := m.handleCircuitKey(key); quit {
				return m, tea.Quit
			}

		case focusMenu:
			m.handleMenuKey(key)

		case focusSelectTarget:
			p := m.session.Program()
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < p.NumQubits; next++ {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				m.appendGate(m.pendingKind, m.cursorQubit, m.targetQubit)
				m.focus = focusCircuit
			}

		case focusMatrix:
			switch key {
			case "esc", "v", "q", "enter":
				m.focus = focusCircuit
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// handleCircuitKey applies a key pressed with the circuit panel focused and
// reports whether the program should quit.
func (m *Model) handleCircuitKey(key string) bool {
	p := m.session.Program()
	switch key {
	case "q":
		return true
	case "tab":
		m.focus = focusQASM
		m.qasmEditor.Focus()
	case "ctrl+s":
		if err := os.WriteFile(m.file, []byte(p.QASM()), 0o644); err != nil {
			m.statusMsg = fmt.Sprintf("Save error: %v", err)
		} else {
			m.statusMsg = "Saved " + m.file
		}
	case "up", "k":
		if m.cursorQubit > 0 {
			m.cursorQubit--
		}
	case "down", "j":
		if m.cursorQubit < p.NumQubits-1 {
			m.cursorQubit++
		}
	case "right", "l":
		if ok, err := m.session.Forward(); err != nil {
			m.statusMsg = err.Error()
		} else if !ok {
			m.statusMsg = "End of program"
		}
	case "left", "h":
		if _, err := m.session.Back(); err != nil {
			m.statusMsg = err.Error()
		}
	case "r":
		if err := m.session.Reset(); err != nil {
			m.statusMsg = err.Error()
		}
	case "+", "=":
		if p.NumQubits >= m.maxQubits {
			m.statusMsg = fmt.Sprintf("max_qubits is %d", m.maxQubits)
			break
		}
		p.Resize(p.NumQubits + 1)
		m.edited()
	case "-":
		if p.NumQubits > 1 {
			p.Resize(p.NumQubits - 1)
			m.cursorQubit = min(m.cursorQubit, p.NumQubits-1)
			m.edited()
		}
	case "a":
		m.focus = focusMenu
		m.menuCat = 0
		m.menuItem = 0
	case "m":
		p.AddMeasure()
		m.edited()
	case "backspace", "delete":
		if p.RemoveLast() {
			m.edited()
		}
	case "v":
		m.focus = focusMatrix
	}
	return false
}

func (m *Model) handleMenuKey(key string) {
	switch key {
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case "right", "l":
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case "enter":
		item := gateMenu[m.menuCat].items[m.menuItem]
		p := m.session.Program()
		switch {
		case item.measure:
			p.AddMeasure()
			m.edited()
			m.focus = focusCircuit
		case item.needsTarget():
			if p.NumQubits < 2 {
				m.statusMsg = "Two-qubit gates need at least 2 qubits"
				m.focus = focusCircuit
				return
			}
			m.pendingKind = item.kind
			m.focus = focusSelectTarget
			m.targetQubit = m.cursorQubit + 1
			if m.targetQubit >= p.NumQubits {
				m.targetQubit = m.cursorQubit - 1
			}
		default:
			m.appendGate(item.kind, m.cursorQubit)
			m.focus = focusCircuit
		}
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	circuitWidth := m.width - sideWidth - 4
	controlsHeight := 5
	topHeight := max(m.height-controlsHeight-2, 8)
	qasmHeight := topHeight / 2
	stateHeight := topHeight - qasmHeight - 2

	circuitPanel := m.renderCircuitPanel(circuitWidth, topHeight)
	qasmPanel := m.renderQASMPanel(sideWidth, qasmHeight)
	statePanel := m.renderStatePanel(sideWidth, stateHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	side := lipgloss.JoinVertical(lipgloss.Left, qasmPanel, statePanel)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, side)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusMatrix:
		frame = overlayAt(frame, m.renderMatrixOverlay(), 2, 2)
	}
	return frame
}
