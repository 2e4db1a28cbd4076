package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"iws/internal/infra/output"
)

// Renderer writes the styled section/step/bullet lines the CLI prints.
// It also satisfies output.StepLogger so orchestration steps share the same
// styling.
type Renderer struct {
	out      io.Writer
	theme    Theme
	useColor bool
}

func NewRenderer(out io.Writer, theme Theme, useColor bool) *Renderer {
	return &Renderer{out: out, theme: theme, useColor: useColor}
}

func (r *Renderer) Header(text string) {
	r.writeLine(r.style(text, r.theme.Header))
}

func (r *Renderer) Blank() {
	fmt.Fprintln(r.out)
}

func (r *Renderer) Section(title string) {
	r.writeLine(r.style(title, r.theme.SectionTitle))
}

func (r *Renderer) Step(text string) {
	r.bullet(text)
}

func (r *Renderer) Log(text string) {
	r.writeWithPrefix(output.Indent+output.Indent+output.LogConnector+" ", r.style(text, r.theme.Muted))
}

func (r *Renderer) LogOutput(text string) {
	r.writeWithPrefix(output.LogOutputPrefix(), r.style(text, r.theme.Muted))
}

func (r *Renderer) Result(text string) {
	r.bullet(text)
}

func (r *Renderer) Bullet(text string) {
	r.bullet(text)
}

// BulletWithDescription renders "id - description suffix" with the
// description and suffix muted.
func (r *Renderer) BulletWithDescription(id, description, suffix string) {
	prefix := output.StepPrefix + " "
	if r.useColor {
		prefix = r.theme.Muted.Render(prefix)
	}
	line := id
	if desc := strings.TrimSpace(description); desc != "" {
		line += r.style(" - "+desc, r.theme.Muted)
	}
	if s := strings.TrimSpace(suffix); s != "" {
		line += r.style(" "+s, r.theme.Muted)
	}
	r.writeWithPrefix(output.Indent+prefix, line)
}

func (r *Renderer) BulletError(text string) {
	prefix := output.StepPrefix + " "
	if r.useColor {
		prefix = r.theme.Error.Render(prefix)
		text = r.theme.Error.Render(text)
	}
	r.writeWithPrefix(output.Indent+prefix, text)
}

func (r *Renderer) BulletSuccess(text string) {
	prefix := output.StepPrefix + " "
	if r.useColor {
		prefix = r.theme.Success.Render(prefix)
	}
	r.writeWithPrefix(output.Indent+prefix, text)
}

func (r *Renderer) Warn(text string) {
	r.writeWithPrefix(output.Indent, r.style(text, r.theme.Warn))
}

func (r *Renderer) bullet(text string) {
	r.writeWithPrefix(output.Indent+output.StepPrefix+" ", text)
}

func (r *Renderer) style(text string, style lipgloss.Style) string {
	if !r.useColor {
		return text
	}
	return style.Render(text)
}

func (r *Renderer) writeLine(text string) {
	fmt.Fprintln(r.out, text)
}

func (r *Renderer) writeWithPrefix(prefix, text string) {
	fmt.Fprintf(r.out, "%s%s\n", prefix, text)
}
