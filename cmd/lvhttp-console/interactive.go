package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nominal-io/lvhttp"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	verbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var verbs = []verbInfo{
	{name: "GET", hasBody: false},
	{name: "POST", hasBody: true},
	{name: "PUT", hasBody: true},
	{name: "PATCH", hasBody: true},
	{name: "DELETE", hasBody: false},
}

type verbInfo struct {
	name    string
	hasBody bool
}

type fieldInfo struct {
	prompt      string
	placeholder string
}

type interactiveModel struct {
	err      error
	lib      *lvhttp.Library
	status   uint32
	body     string
	inputs   []textinput.Model
	fields   []fieldInfo
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectVerb modelState = iota
	stateInputFields
	stateShowResult
)

type requestResultMsg struct {
	err    error
	status uint32
	body   string
}

func newInteractiveModel() *interactiveModel {
	return &interactiveModel{
		lib:   lvhttp.New(),
		state: stateSelectVerb,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.lib.Shutdown()
			return m, tea.Quit

		case "q":
			if m.state != stateInputFields {
				m.lib.Shutdown()
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectVerb && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectVerb && m.selected < len(verbs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectVerb:
				m.prepareInputs()
				m.state = stateInputFields

			case stateInputFields:
				return m, m.performRequest

			case stateShowResult:
				m.state = stateSelectVerb
				m.body = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputFields && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputFields:
				m.state = stateSelectVerb
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectVerb
				m.body = ""
				m.err = nil
			}
		}

	case requestResultMsg:
		m.status = msg.status
		m.body = msg.body
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputFields {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	v := verbs[m.selected]
	m.fields = []fieldInfo{
		{prompt: "url: ", placeholder: "https://example.com/api"},
		{prompt: "headers: ", placeholder: `{"Accept": "application/json"}`},
	}
	if v.hasBody {
		m.fields = append(m.fields, fieldInfo{prompt: "body: ", placeholder: "request body"})
	}
	m.fields = append(m.fields, fieldInfo{prompt: "timeout: ", placeholder: "30000 (ms)"})

	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.Prompt = f.prompt
		ti.Width = 60
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) performRequest() tea.Msg {
	v := verbs[m.selected]
	tok := lvhttp.Token(1)

	url := m.inputs[0].Value()
	headers := m.inputs[1].Value()
	body := ""
	timeoutIdx := 2
	if v.hasBody {
		body = m.inputs[2].Value()
		timeoutIdx = 3
	}

	timeoutMS := int64(30000)
	if raw := strings.TrimSpace(m.inputs[timeoutIdx].Value()); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return requestResultMsg{err: fmt.Errorf("invalid timeout %q", raw)}
		}
		timeoutMS = parsed
	}

	res, err := dispatch(m.lib, tok, v.name, url, headers, body, int32(timeoutMS))
	if err != nil {
		return requestResultMsg{err: fmt.Errorf("%s", slotMessage(m.lib, tok))}
	}

	var b strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := m.lib.ReadResponse(tok, res.Handle, buf)
		if err != nil {
			return requestResultMsg{err: err}
		}
		if n == 0 {
			break
		}
		b.Write(buf[:n])
	}
	if err := m.lib.FreeResponse(tok, res.Handle); err != nil {
		return requestResultMsg{err: err}
	}

	return requestResultMsg{status: res.Status, body: b.String()}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("lvhttp console"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectVerb:
		b.WriteString("Select a method:\n\n")
		for i, v := range verbs {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + v.name))
			} else {
				b.WriteString(cursor + verbStyle.Render(v.name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputFields:
		b.WriteString(fmt.Sprintf("%s request\n\n", verbStyle.Render(verbs[m.selected].name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter send • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("%s result:\n\n", verbStyle.Render(verbs[m.selected].name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(statusStyle.Render(fmt.Sprintf("Status: %d", m.status)))
			b.WriteString("\n\n")
			b.WriteString(resultStyle.Render(m.body))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
