package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/d-kuro/todo-mcp/internal/todo"
)

const descriptionPreview = 60

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.state {
	case stateIdle, stateLoading:
		b.WriteString(m.spinner.View() + " Loading todos...")
	case stateCreating:
		b.WriteString(m.center(m.formView()))
	case stateDetail:
		b.WriteString(m.center(m.detailView()))
	case stateEditing:
		if m.editingDetail() {
			b.WriteString(m.center(m.editorView()))
		} else {
			b.WriteString(m.mainView())
		}
	default:
		b.WriteString(m.mainView())
	}

	if m.notice.text != "" {
		style := m.theme.Success
		prefix := "✔ "
		if m.notice.isErr {
			style = m.theme.Error
			prefix = "✖ "
		}
		b.WriteString("\n\n" + style.Render(prefix+m.notice.text))
	}

	b.WriteString("\n\n" + m.help.View(m.keys))
	return m.theme.Panel.Render(b.String())
}

func (m Model) header() string {
	done, pending := Counts(m.todos)
	t := m.theme
	counts := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render("✔"), done,
		t.Pending.Render("•"), pending,
		t.Accent.Render("Total"), len(m.todos),
	)
	status := t.Muted.Render(fmt.Sprintf("filter: %s  sort: %s", m.prefs.Filter, m.prefs.Sort))
	return counts + "\n" + status
}

func (m Model) mainView() string {
	if m.searching || m.query != "" {
		return m.search.View() + "\n\n" + m.listView()
	}
	return m.listView()
}

func (m Model) listView() string {
	visible := m.Visible()
	if len(visible) == 0 {
		if len(m.todos) == 0 {
			return m.theme.Muted.Render("No todos found. Press n to add one.")
		}
		return m.theme.Muted.Render("No todos match.")
	}

	rows := make([]string, 0, len(visible))
	for i, td := range visible {
		rows = append(rows, m.row(i, td))
	}
	sep := "\n"
	if m.prefs.Layout == LayoutComfortable {
		sep = "\n\n"
	}
	return strings.Join(rows, sep)
}

func (m Model) row(i int, td todo.Todo) string {
	t := m.theme
	prefix := "  "
	if i == m.cursor {
		prefix = t.Selected.Render(">") + " "
	}

	if m.state == stateEditing && td.ID == m.editID {
		return prefix + m.edit.View()
	}

	box := t.Muted.Render(t.BoxUnchecked)
	title := td.Title
	if td.Completed {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}
	line := prefix + box + " " + title

	if m.prefs.Layout == LayoutComfortable && td.Description != "" {
		line += "\n    " + t.Muted.Render(preview(td.Description, descriptionPreview))
	}
	return line
}

func (m Model) formView() string {
	hint := "enter save • tab switch field • esc keep draft"
	if m.form.submitting {
		hint = "saving..."
	}
	return m.formBox("New todo", m.form, hint)
}

func (m Model) editorView() string {
	return m.formBox("Edit todo", m.editor, "enter save • tab switch field • esc cancel")
}

func (m Model) formBox(heading string, f createForm, hint string) string {
	t := m.theme
	lines := []string{
		t.Title.Render(heading),
		"",
		f.title.View(),
		f.description.View(),
	}
	if f.err != "" {
		lines = append(lines, "", t.Error.Render(f.err))
	}
	lines = append(lines, "", t.Help.Render(hint))
	return t.Modal.Render(strings.Join(lines, "\n"))
}

func (m Model) detailView() string {
	t := m.theme
	td, ok := m.find(m.detailID)
	if !ok {
		return t.Modal.Render(t.Muted.Render("Todo no longer exists."))
	}

	status := t.Pending.Render("○ Pending")
	if td.Completed {
		status = t.Success.Render("✓ Completed")
	}
	desc := td.Description
	if desc == "" {
		desc = t.Muted.Render("No description")
	}

	lines := []string{
		t.Title.Render(td.Title),
		"",
		"Status:  " + status,
		"Created: " + td.CreatedAt.Local().Format(time.DateTime),
		"ID:      " + t.Muted.Render(td.ID),
		"",
		desc,
		"",
		t.Help.Render("space toggle • e edit • d delete • esc back"),
	}
	return t.Modal.Render(strings.Join(lines, "\n"))
}

func (m Model) center(s string) string {
	if m.width == 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width-4, lipgloss.Center, s)
}

// preview returns the first line of s cut to n runes.
func preview(s string, n int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
