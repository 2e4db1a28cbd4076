package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"iws/internal/infra/output"
)

var ErrPromptCanceled = errors.New("prompt canceled")

// Choice is one selectable entry; Description is shown muted next to the id.
type Choice struct {
	ID          string
	Description string
}

// PromptSelect shows a filterable single-select list and returns the chosen
// id.
func PromptSelect(title, label string, choices []Choice, theme Theme, useColor bool) (string, error) {
	model := newSelectModel(title, label, choices, theme, useColor)
	out, err := runProgram(model)
	if err != nil {
		return "", err
	}
	final := out.(selectModel)
	if final.err != nil {
		return "", final.err
	}
	return final.selected, nil
}

// PromptInput reads one required free-text value.
func PromptInput(title, label string, theme Theme, useColor bool) (string, error) {
	model := newInputModel(title, label, theme, useColor)
	out, err := runProgram(model)
	if err != nil {
		return "", err
	}
	final := out.(inputModel)
	if final.err != nil {
		return "", final.err
	}
	return strings.TrimSpace(final.input.Value()), nil
}

// PromptConfirm asks a y/n question, defaulting to no.
func PromptConfirm(label string, theme Theme, useColor bool) (bool, error) {
	model := newConfirmModel(label, theme, useColor)
	out, err := runProgram(model)
	if err != nil {
		return false, err
	}
	final := out.(confirmModel)
	if final.err != nil {
		return false, final.err
	}
	return final.value, nil
}

func runProgram(model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model).Run()
}

type selectModel struct {
	title    string
	label    string
	choices  []Choice
	theme    Theme
	useColor bool

	search   textinput.Model
	filtered []Choice
	cursor   int
	selected string
	err      error
}

func newSelectModel(title, label string, choices []Choice, theme Theme, useColor bool) selectModel {
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "search"
	search.Focus()
	if useColor {
		search.PlaceholderStyle = theme.Muted
	}
	m := selectModel{
		title:    title,
		label:    label,
		choices:  choices,
		theme:    theme,
		useColor: useColor,
		search:   search,
	}
	m.filtered = m.filterChoices()
	return m
}

func (m selectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrPromptCanceled
			return m, tea.Quit
		case tea.KeyEnter:
			if len(m.filtered) == 0 {
				return m, nil
			}
			m.selected = m.filtered[m.cursor].ID
			return m, tea.Quit
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filtered = m.filterChoices()
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	return m, cmd
}

func (m selectModel) View() string {
	var b strings.Builder
	header := m.title
	if m.useColor {
		header = m.theme.Header.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	prefix := promptPrefix(m.theme, m.useColor)
	label := promptLabel(m.theme, m.useColor, m.label)
	fmt.Fprintf(&b, "%s%s %s: %s\n", output.Indent, prefix, label, m.search.View())

	if len(m.filtered) == 0 {
		msg := "no matches"
		if m.useColor {
			msg = m.theme.Muted.Render(msg)
		}
		fmt.Fprintf(&b, "%s%s %s\n", output.Indent+output.Indent, mutedToken(m.theme, m.useColor, output.LogConnector), msg)
		return b.String()
	}
	for i, choice := range m.filtered {
		display := choice.ID
		if desc := strings.TrimSpace(choice.Description); desc != "" {
			if m.useColor {
				display += m.theme.Muted.Render(" - " + desc)
			} else {
				display += " - " + desc
			}
		}
		if i == m.cursor && m.useColor {
			display = lipgloss.NewStyle().Bold(true).Render(choice.ID) + strings.TrimPrefix(display, choice.ID)
		}
		fmt.Fprintf(&b, "%s%s %s\n", output.Indent+output.Indent, mutedToken(m.theme, m.useColor, output.LogConnector), display)
	}
	return b.String()
}

func (m selectModel) filterChoices() []Choice {
	q := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if q == "" {
		return append([]Choice(nil), m.choices...)
	}
	var out []Choice
	for _, choice := range m.choices {
		if strings.Contains(strings.ToLower(choice.ID), q) || strings.Contains(strings.ToLower(choice.Description), q) {
			out = append(out, choice)
		}
	}
	return out
}

type inputModel struct {
	title    string
	label    string
	theme    Theme
	useColor bool

	input     textinput.Model
	errorLine string
	err       error
}

func newInputModel(title, label string, theme Theme, useColor bool) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type here"
	ti.Focus()
	if useColor {
		ti.PlaceholderStyle = theme.Muted
	}
	return inputModel{title: title, label: label, theme: theme, useColor: useColor, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrPromptCanceled
			return m, tea.Quit
		case tea.KeyEnter:
			if strings.TrimSpace(m.input.Value()) == "" {
				m.errorLine = "required"
				return m, nil
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if strings.TrimSpace(m.input.Value()) != "" {
		m.errorLine = ""
	}
	return m, cmd
}

func (m inputModel) View() string {
	var b strings.Builder
	header := m.title
	if m.useColor {
		header = m.theme.Header.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n\n")
	prefix := promptPrefix(m.theme, m.useColor)
	label := promptLabel(m.theme, m.useColor, m.label)
	fmt.Fprintf(&b, "%s%s %s: %s\n", output.Indent, prefix, label, m.input.View())
	if m.errorLine != "" {
		msg := m.errorLine
		if m.useColor {
			msg = m.theme.Error.Render(msg)
		}
		fmt.Fprintf(&b, "%s%s %s\n", output.Indent+output.Indent, mutedToken(m.theme, m.useColor, output.LogConnector), msg)
	}
	return b.String()
}

type confirmModel struct {
	label    string
	theme    Theme
	useColor bool

	input textinput.Model
	value bool
	err   error
}

func newConfirmModel(label string, theme Theme, useColor bool) confirmModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "y/N"
	ti.Focus()
	if useColor {
		ti.PlaceholderStyle = theme.Muted
	}
	return confirmModel{label: label, theme: theme, useColor: useColor, input: ti}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrPromptCanceled
			return m, tea.Quit
		case tea.KeyEnter:
			answer := strings.ToLower(strings.TrimSpace(m.input.Value()))
			m.value = answer == "y" || answer == "yes"
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	prefix := promptPrefix(m.theme, m.useColor)
	label := promptLabel(m.theme, m.useColor, m.label)
	return fmt.Sprintf("%s%s %s: %s\n", output.Indent, prefix, label, m.input.View())
}

func promptPrefix(theme Theme, useColor bool) string {
	if useColor {
		return theme.Accent.Render(output.StepPrefix)
	}
	return output.StepPrefix
}

func promptLabel(theme Theme, useColor bool, label string) string {
	if useColor {
		return theme.SectionTitle.Render(label)
	}
	return label
}

func mutedToken(theme Theme, useColor bool, token string) string {
	if useColor {
		return theme.Muted.Render(token)
	}
	return token
}
