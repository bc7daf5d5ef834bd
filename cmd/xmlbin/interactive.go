package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/xmlbin/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type wizardState int

const (
	stateEditing wizardState = iota
	stateRunning
	stateDone
)

// prompt is one wizard input bound to a session field.
type prompt struct {
	label string
	field func(*config.Session) *string
}

var prompts = []prompt{
	{"XSD file", func(s *config.Session) *string { return &s.XSD }},
	{"XML file", func(s *config.Session) *string { return &s.XML }},
	{"Root element", func(s *config.Session) *string { return &s.Root }},
	{"Namespace URI", func(s *config.Session) *string { return &s.Namespace }},
	{"Namespace prefix", func(s *config.Session) *string { return &s.Prefix }},
	{"Output directory", func(s *config.Session) *string { return &s.OutDir }},
}

type wizardModel struct {
	err     error
	convert func(*config.Session) (result, error)
	session config.Session
	result  result
	inputs  []textinput.Model
	focus   int
	state   wizardState
}

type convertedMsg struct {
	err error
	res result
}

func newWizardModel(s config.Session, convert func(*config.Session) (result, error)) *wizardModel {
	m := &wizardModel{session: s, convert: convert, state: stateEditing}
	m.inputs = make([]textinput.Model, len(prompts))
	for i, p := range prompts {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-18s", p.label+":")
		ti.Width = 50
		ti.SetValue(*p.field(&m.session))
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	return m
}

func (m *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "q":
			if m.state == stateDone {
				return m, tea.Quit
			}

		case "tab", "down":
			if m.state == stateEditing {
				m.move(1)
				return m, nil
			}

		case "shift+tab", "up":
			if m.state == stateEditing {
				m.move(-1)
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateEditing:
				if m.focus < len(m.inputs)-1 {
					m.move(1)
					return m, nil
				}
				m.state = stateRunning
				return m, m.run
			case stateDone:
				m.state = stateEditing
				m.err = nil
				return m, nil
			}
		}

	case convertedMsg:
		m.err = msg.err
		m.result = msg.res
		m.state = stateDone
		return m, nil
	}

	if m.state == stateEditing {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *wizardModel) move(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// collect copies the inputs into the session.
func (m *wizardModel) collect() *config.Session {
	s := m.session
	for i, p := range prompts {
		*p.field(&s) = strings.TrimSpace(m.inputs[i].Value())
	}
	return &s
}

func (m *wizardModel) run() tea.Msg {
	res, err := m.convert(m.collect())
	return convertedMsg{err: err, res: res}
}

func (m *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("xmlbin"))
	b.WriteString(" XML to binary record\n\n")

	switch m.state {
	case stateEditing:
		for i := range m.inputs {
			b.WriteString(labelStyle.Render(m.inputs[i].View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab/↑/↓ move • enter next/convert • esc quit"))

	case stateRunning:
		b.WriteString("Converting...")

	case stateDone:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(fmt.Sprintf("header: %s\nrecord: %s (%d bytes)",
				m.result.HeaderPath, m.result.BinaryPath, m.result.Size)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit again • q quit"))
	}

	return b.String()
}

func (a *app) runInteractive() error {
	p := tea.NewProgram(newWizardModel(*a.session, a.convert), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
