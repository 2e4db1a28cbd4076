package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSelectModelFiltersAndSelects(t *testing.T) {
	choices := []Choice{
		{ID: "web-app", Description: "storefront"},
		{ID: "billing", Description: "invoices"},
		{ID: "web-admin"},
	}
	m := newSelectModel("iws new", "project", choices, DefaultTheme(), false)

	for _, r := range "web" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(selectModel)
	}
	if len(m.filtered) != 2 {
		t.Fatalf("filtered = %d, want 2", len(m.filtered))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(selectModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(selectModel)
	if m.selected != "web-admin" {
		t.Fatalf("selected = %q, want web-admin", m.selected)
	}
}

func TestSelectModelCancel(t *testing.T) {
	m := newSelectModel("iws new", "project", []Choice{{ID: "a"}}, DefaultTheme(), false)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(selectModel)
	if m.err != ErrPromptCanceled {
		t.Fatalf("err = %v, want ErrPromptCanceled", m.err)
	}
}

func TestInputModelRequiresValue(t *testing.T) {
	m := newInputModel("iws new", "issue id", DefaultTheme(), false)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(inputModel)
	if m.errorLine == "" {
		t.Fatalf("empty submit should set error line")
	}
	if !strings.Contains(m.View(), "required") {
		t.Fatalf("view should show the error line:\n%s", m.View())
	}

	for _, r := range "SHOP-456" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(inputModel)
	}
	if m.errorLine != "" {
		t.Fatalf("error line should clear after typing")
	}
}

func TestConfirmModelAnswers(t *testing.T) {
	cases := []struct {
		typed string
		want  bool
	}{
		{typed: "y", want: true},
		{typed: "yes", want: true},
		{typed: "n", want: false},
		{typed: "", want: false},
		{typed: "whatever", want: false},
	}
	for _, tc := range cases {
		m := newConfirmModel("delete branches?", DefaultTheme(), false)
		for _, r := range tc.typed {
			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			m = next.(confirmModel)
		}
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = next.(confirmModel)
		if m.value != tc.want {
			t.Fatalf("typed %q: value = %v, want %v", tc.typed, m.value, tc.want)
		}
	}
}
