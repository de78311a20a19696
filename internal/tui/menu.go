package tui

import (
	"fmt"
	"strings"

	"qtermsim/gate"
)

// menuItem represents a single choice in the gate picker.
type menuItem struct {
	name    string
	kind    gate.Kind
	symbol  string
	measure bool
}

func (it menuItem) needsTarget() bool {
	return !it.measure && it.kind.Arity() == 2
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", kind: gate.Hadamard, symbol: "H"},
			{name: "Pauli-X (NOT)", kind: gate.PauliX, symbol: "X"},
			{name: "Pauli-Y", kind: gate.PauliY, symbol: "Y"},
			{name: "Pauli-Z", kind: gate.PauliZ, symbol: "Z"},
			{name: "Identity", kind: gate.Identity, symbol: "I"},
			{name: "Phase (S)", kind: gate.PhaseS, symbol: "S"},
			{name: "T Gate", kind: gate.PhaseT, symbol: "T"},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{name: "CNOT", kind: gate.ControlledX, symbol: "●─⊕"},
			{name: "Controlled-Y", kind: gate.ControlledY, symbol: "●─Y"},
			{name: "Controlled-Z", kind: gate.ControlledZ, symbol: "●─●"},
			{name: "SWAP", kind: gate.Swap, symbol: "×─×"},
		},
	},
	{
		name: "Measurement",
		items: []menuItem{
			{name: "Measure all", measure: true, symbol: "M"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Append Gate"))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 38)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget() {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
