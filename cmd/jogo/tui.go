package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Escribaup/jogo-empresarial/internal/game"
)

var (
	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	formInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	formErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	formHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1)
)

var decisionFields = []struct {
	label   string
	initial string
	whole   bool
}{
	{"Unit price", "35", false},
	{"Production volume", "1000", true},
	{"Marketing spend", "5000", false},
	{"Capacity investment", "0", false},
	{"R&D spend", "0", false},
	{"Donations", "0", false},
}

type decisionModel struct {
	snap      game.Snapshot
	inputs    []textinput.Model
	focused   int
	errMsg    string
	confirmed bool
	done      bool
}

func newDecisionModel(snap game.Snapshot) decisionModel {
	inputs := make([]textinput.Model, len(decisionFields))
	for i, f := range decisionFields {
		ti := textinput.New()
		ti.Placeholder = f.initial
		ti.CharLimit = 12
		ti.Width = 14
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return decisionModel{snap: snap, inputs: inputs}
}

func (m decisionModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m decisionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.focused == len(m.inputs)-1 {
				if _, err := m.decisions(); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
				m.confirmed = true
				m.done = true
				return m, tea.Quit
			}
			m.focusNext()
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			m.focusNext()
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.focusPrev()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	m.errMsg = ""
	return m, cmd
}

func (m *decisionModel) focusNext() {
	m.inputs[m.focused].Blur()
	m.focused = (m.focused + 1) % len(m.inputs)
	m.inputs[m.focused].Focus()
}

func (m *decisionModel) focusPrev() {
	m.inputs[m.focused].Blur()
	m.focused = (m.focused - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focused].Focus()
}

func (m decisionModel) View() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(fmt.Sprintf("Quarter %d decisions", m.snap.Quarter)))
	b.WriteString("\n")
	b.WriteString(formInfoStyle.Render(fmt.Sprintf(
		"Balance %.2f | Capacity %.0f | Market share %.2f%% | Market %s",
		m.snap.Balance, m.snap.Capacity, m.snap.MarketShare, m.snap.MarketCondition,
	)))
	b.WriteString("\n\n")
	for i, f := range decisionFields {
		cursor := "  "
		if i == m.focused {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-20s %s\n", cursor, f.label, m.inputs[i].View())
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(formErrStyle.Render(m.errMsg))
	}
	b.WriteString(formHelpStyle.Render("tab/enter next field, enter on last field submits, esc cancels"))
	b.WriteString("\n")
	return b.String()
}

// decisions parses the form. Empty fields fall back to placeholders, so
// hitting enter through the form plays a sane default quarter.
func (m decisionModel) decisions() (game.Decisions, error) {
	values := make([]float64, len(m.inputs))
	for i, f := range decisionFields {
		text := strings.TrimSpace(m.inputs[i].Value())
		if text == "" {
			text = f.initial
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return game.Decisions{}, fmt.Errorf("%s: enter a number", f.label)
		}
		if v < 0 {
			return game.Decisions{}, fmt.Errorf("%s: must be >= 0", f.label)
		}
		if f.whole && v != float64(int(v)) {
			return game.Decisions{}, fmt.Errorf("%s: must be a whole number", f.label)
		}
		values[i] = v
	}
	return game.Decisions{
		Price:              values[0],
		Production:         int(values[1]),
		Marketing:          values[2],
		CapacityInvestment: values[3],
		Research:           values[4],
		Donations:          values[5],
	}, nil
}

// decisionForm runs the interactive quarter form. When the terminal cannot
// host the form it falls back to line prompts.
func decisionForm(snap game.Snapshot) (game.Decisions, bool, error) {
	final, err := tea.NewProgram(newDecisionModel(snap)).Run()
	if err != nil {
		return promptDecisions(snap)
	}
	m, ok := final.(decisionModel)
	if !ok || !m.confirmed {
		return game.Decisions{}, false, nil
	}
	d, err := m.decisions()
	if err != nil {
		return game.Decisions{}, false, err
	}
	return d, true, nil
}
