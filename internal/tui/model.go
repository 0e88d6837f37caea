// Package tui is a terminal client for the todo REST API.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/d-kuro/todo-mcp/internal/todo"
)

const (
	noticeDuration       = 3 * time.Second
	maxConcurrentDeletes = 8
	titleCharLimit       = 200
)

// API is the part of the REST client the UI calls.
type API interface {
	List(ctx context.Context) ([]todo.Todo, error)
	Create(ctx context.Context, in todo.CreateInput) (todo.Todo, error)
	Update(ctx context.Context, id string, patch todo.Patch) (todo.Todo, error)
	Delete(ctx context.Context, id string) error
}

type state int

const (
	stateIdle state = iota
	stateLoading
	stateList
	stateCreating
	stateEditing
	stateDetail
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateLoading:
		return "loading"
	case stateList:
		return "viewing-list"
	case stateCreating:
		return "creating"
	case stateEditing:
		return "editing"
	case stateDetail:
		return "viewing-detail"
	default:
		return "unknown"
	}
}

type refreshMsg struct{}

type noticeExpiredMsg struct{ seq int }

type (
	loadedMsg struct {
		todos []todo.Todo
		err   error
	}
	createdMsg struct {
		todo todo.Todo
		err  error
	}
	updatedMsg struct {
		todo todo.Todo
		err  error
	}
	toggledMsg struct {
		id   string
		prev bool
		todo todo.Todo
		err  error
	}
	deletedMsg struct {
		id  string
		err error
	}
	clearedMsg struct {
		requested int
		failed    int
		err       error
	}
)

type notice struct {
	text  string
	isErr bool
	seq   int
}

type createForm struct {
	title       textinput.Model
	description textinput.Model
	focus       int
	err         string
	submitting  bool
}

func newCreateForm() createForm {
	title := textinput.New()
	title.Prompt = "Title: "
	title.Placeholder = "What needs doing?"
	title.CharLimit = titleCharLimit

	desc := textinput.New()
	desc.Prompt = "Notes: "
	desc.Placeholder = "Optional description"

	return createForm{title: title, description: desc}
}

func (f *createForm) focusField(i int) tea.Cmd {
	f.focus = i
	if i == 0 {
		f.description.Blur()
		return f.title.Focus()
	}
	f.title.Blur()
	return f.description.Focus()
}

func (f createForm) draft() Draft {
	return Draft{Title: f.title.Value(), Description: f.description.Value()}
}

// Model is the bubbletea model for the todo UI.
type Model struct {
	ctx  context.Context
	api  API
	keys keyMap
	help help.Model

	state   state
	todos   []todo.Todo
	cursor  int
	prefs   Prefs
	theme   Theme
	spinner spinner.Model

	query     string
	searching bool
	search    textinput.Model

	edit   textinput.Model
	editID string
	editor createForm

	form     createForm
	detailID string

	notice notice
	width  int
	height int
}

// New creates a model that talks to api and starts with prefs.
func New(ctx context.Context, api API, prefs Prefs) Model {
	prefs = prefs.normalized()

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title or description"

	edit := textinput.New()
	edit.Prompt = "> "
	edit.CharLimit = titleCharLimit

	return Model{
		ctx:     ctx,
		api:     api,
		keys:    defaultKeyMap(),
		help:    help.New(),
		state:   stateIdle,
		todos:   []todo.Todo{},
		prefs:   prefs,
		theme:   ThemeByName(prefs.Theme),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:  search,
		edit:    edit,
		form:    newCreateForm(),
		editor:  newCreateForm(),
	}
}

// Prefs returns the current preferences including any saved draft.
func (m Model) Prefs() Prefs { return m.prefs }

// Todos returns the last fetched list.
func (m Model) Todos() []todo.Todo { return m.todos }

// Visible returns the filtered, searched and sorted list on screen.
func (m Model) Visible() []todo.Todo {
	return Visible(m.todos, m.prefs.Filter, m.query, m.prefs.Sort)
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return refresh
}

func refresh() tea.Msg { return refreshMsg{} }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshMsg:
		if m.state == stateIdle || m.state == stateList {
			m.state = stateLoading
		}
		return m, tea.Batch(m.fetch(), m.spinner.Tick)

	case loadedMsg:
		if m.state == stateLoading {
			m.state = stateList
		}
		if msg.err != nil {
			cmd := m.notify("Failed to load todos: "+msg.err.Error(), true)
			return m, cmd
		}
		m.todos = msg.todos
		m.clampCursor()
		return m, nil

	case createdMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.form.err = msg.err.Error()
			cmd := m.notify("Failed to create todo", true)
			return m, cmd
		}
		m.todos = append(slices.Clone(m.todos), msg.todo)
		m.prefs.Draft = Draft{}
		m.form = newCreateForm()
		m.state = stateList
		m.selectID(msg.todo.ID)
		cmd := m.notify("Created: "+msg.todo.Title, false)
		return m, cmd

	case updatedMsg:
		if msg.err != nil {
			cmd := m.notify("Failed to update todo: "+msg.err.Error(), true)
			return m, cmd
		}
		m.replace(msg.todo)
		m.clampCursor()
		cmd := m.notify("Updated: "+msg.todo.Title, false)
		return m, cmd

	case toggledMsg:
		if msg.err != nil {
			m.setCompleted(msg.id, msg.prev)
			m.clampCursor()
			cmd := m.notify("Failed to update todo: "+msg.err.Error(), true)
			return m, cmd
		}
		m.replace(msg.todo)
		m.clampCursor()
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			cmd := m.notify("Failed to delete todo: "+msg.err.Error(), true)
			return m, cmd
		}
		m.todos = slices.DeleteFunc(slices.Clone(m.todos), func(t todo.Todo) bool { return t.ID == msg.id })
		if m.state == stateDetail && m.detailID == msg.id {
			m.state = stateList
			m.detailID = ""
		}
		m.clampCursor()
		cmd := m.notify("Todo deleted", false)
		return m, cmd

	case clearedMsg:
		var note tea.Cmd
		if msg.failed > 0 {
			note = m.notify(fmt.Sprintf("Failed to delete %d of %d completed todos", msg.failed, msg.requested), true)
		} else {
			note = m.notify(fmt.Sprintf("Cleared %d completed %s", msg.requested, plural(msg.requested, "todo", "todos")), false)
		}
		return m, tea.Batch(note, refresh)

	case noticeExpiredMsg:
		if msg.seq == m.notice.seq {
			m.notice = notice{seq: m.notice.seq}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.state == stateCreating {
				m.prefs.Draft = m.form.draft()
			}
			return m, tea.Quit
		}
		switch m.state {
		case stateCreating:
			return m.updateForm(msg)
		case stateEditing:
			if m.editingDetail() {
				return m.updateEditor(msg)
			}
			return m.updateEdit(msg)
		case stateDetail:
			return m.updateDetail(msg)
		case stateList:
			if m.searching {
				return m.updateSearch(msg)
			}
			return m.updateList(msg)
		default:
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards non-key messages such as cursor blinks to the
// input that has focus.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.state == stateCreating && m.form.focus == 0:
		m.form.title, cmd = m.form.title.Update(msg)
	case m.state == stateCreating:
		m.form.description, cmd = m.form.description.Update(msg)
	case m.editingDetail() && m.editor.focus == 0:
		m.editor.title, cmd = m.editor.title.Update(msg)
	case m.editingDetail():
		m.editor.description, cmd = m.editor.description.Update(msg)
	case m.state == stateEditing:
		m.edit, cmd = m.edit.Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		if m.query != "" {
			m.query = ""
			m.search.SetValue("")
			m.clampCursor()
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.Visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m.toggle(t.ID)
		}
	case key.Matches(msg, m.keys.New):
		return m.startCreate()
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.Detail):
		if t, ok := m.selected(); ok {
			m.state = stateDetail
			m.detailID = t.ID
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			return m, m.delete(t.ID)
		}
	case key.Matches(msg, m.keys.ClearDone):
		return m.clearCompleted()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		m.prefs.Filter = m.prefs.Filter.Next()
		m.clampCursor()
	case key.Matches(msg, m.keys.Sort):
		m.prefs.Sort = m.prefs.Sort.Next()
		m.clampCursor()
	case key.Matches(msg, m.keys.Theme):
		m.prefs.Theme = nextTheme(m.prefs.Theme)
		m.theme = ThemeByName(m.prefs.Theme)
	case key.Matches(msg, m.keys.Layout):
		if m.prefs.Layout == LayoutCompact {
			m.prefs.Layout = LayoutComfortable
		} else {
			m.prefs.Layout = LayoutCompact
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, refresh
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
		m.search.SetValue("")
		m.search.Blur()
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query = m.search.Value()
	m.cursor = 0
	return m, cmd
}

func (m Model) startCreate() (tea.Model, tea.Cmd) {
	m.state = stateCreating
	m.form = newCreateForm()
	m.form.title.SetValue(m.prefs.Draft.Title)
	m.form.description.SetValue(m.prefs.Draft.Description)
	cmd := m.form.focusField(0)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.prefs.Draft = m.form.draft()
		m.form.title.Blur()
		m.form.description.Blur()
		m.state = stateList
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		cmd := m.form.focusField(1 - m.form.focus)
		return m, cmd
	case tea.KeyEnter:
		title := strings.TrimSpace(m.form.title.Value())
		if title == "" {
			m.form.err = "Title cannot be empty"
			return m, nil
		}
		m.form.err = ""
		m.form.submitting = true
		in := todo.CreateInput{Title: title, Description: strings.TrimSpace(m.form.description.Value())}
		ctx, api := m.ctx, m.api
		return m, func() tea.Msg {
			t, err := api.Create(ctx, in)
			return createdMsg{todo: t, err: err}
		}
	}

	var cmd tea.Cmd
	if m.form.focus == 0 {
		m.form.title, cmd = m.form.title.Update(msg)
	} else {
		m.form.description, cmd = m.form.description.Update(msg)
	}
	return m, cmd
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.state = stateEditing
	m.editID = t.ID
	m.edit.SetValue(t.Title)
	m.edit.CursorEnd()
	cmd := m.edit.Focus()
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = stateList
		m.edit.Blur()
		m.editID = ""
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.edit.Value())
		if title == "" {
			cmd := m.notify("Title cannot be empty", true)
			return m, cmd
		}
		id := m.editID
		m.state = stateList
		m.edit.Blur()
		m.editID = ""
		if cur, ok := m.find(id); ok && cur.Title == title {
			return m, nil
		}
		ctx, api := m.ctx, m.api
		return m, func() tea.Msg {
			t, err := api.Update(ctx, id, todo.Patch{Title: &title})
			return updatedMsg{todo: t, err: err}
		}
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

// editingDetail reports whether the full editor opened from the detail view
// is active. Inline edits start from the list, where detailID is empty.
func (m Model) editingDetail() bool {
	return m.state == stateEditing && m.detailID != ""
}

func (m Model) startDetailEdit() (tea.Model, tea.Cmd) {
	t, ok := m.find(m.detailID)
	if !ok {
		return m, nil
	}
	m.state = stateEditing
	m.editID = t.ID
	m.editor = newCreateForm()
	m.editor.title.SetValue(t.Title)
	m.editor.description.SetValue(t.Description)
	cmd := m.editor.focusField(0)
	return m, cmd
}

// updateEditor sends only the fields that changed.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = stateDetail
		m.editID = ""
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		cmd := m.editor.focusField(1 - m.editor.focus)
		return m, cmd
	case tea.KeyEnter:
		title := strings.TrimSpace(m.editor.title.Value())
		if title == "" {
			m.editor.err = "Title cannot be empty"
			return m, nil
		}
		description := strings.TrimSpace(m.editor.description.Value())
		id := m.editID
		m.state = stateDetail
		m.editID = ""
		m.editor.err = ""

		cur, ok := m.find(id)
		if !ok {
			return m, nil
		}
		var patch todo.Patch
		if title != cur.Title {
			patch.Title = &title
		}
		if description != cur.Description {
			patch.Description = &description
		}
		if patch.Title == nil && patch.Description == nil {
			return m, nil
		}
		ctx, api := m.ctx, m.api
		return m, func() tea.Msg {
			t, err := api.Update(ctx, id, patch)
			return updatedMsg{todo: t, err: err}
		}
	}

	var cmd tea.Cmd
	if m.editor.focus == 0 {
		m.editor.title, cmd = m.editor.title.Update(msg)
	} else {
		m.editor.description, cmd = m.editor.description.Update(msg)
	}
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keys.Detail), key.Matches(msg, m.keys.Quit):
		m.state = stateList
		m.detailID = ""
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle(m.detailID)
	case key.Matches(msg, m.keys.Edit):
		return m.startDetailEdit()
	case key.Matches(msg, m.keys.Delete):
		return m, m.delete(m.detailID)
	}
	return m, nil
}

// toggle flips completion locally and reverts if the server rejects it.
func (m Model) toggle(id string) (tea.Model, tea.Cmd) {
	t, ok := m.find(id)
	if !ok {
		return m, nil
	}
	prev := t.Completed
	completed := !prev
	m.setCompleted(id, completed)
	m.clampCursor()

	ctx, api := m.ctx, m.api
	return m, func() tea.Msg {
		updated, err := api.Update(ctx, id, todo.Patch{Completed: &completed})
		return toggledMsg{id: id, prev: prev, todo: updated, err: err}
	}
}

func (m Model) delete(id string) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		return deletedMsg{id: id, err: api.Delete(ctx, id)}
	}
}

func (m Model) clearCompleted() (tea.Model, tea.Cmd) {
	var ids []string
	for _, t := range m.todos {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		cmd := m.notify("No completed todos", false)
		return m, cmd
	}
	ctx, api := m.ctx, m.api
	return m, func() tea.Msg {
		return deleteAll(ctx, api, ids)
	}
}

// deleteAll issues independent deletes. Failures do not stop or undo the
// others.
func deleteAll(ctx context.Context, api API, ids []string) clearedMsg {
	var (
		g      errgroup.Group
		failed atomic.Int64
	)
	g.SetLimit(maxConcurrentDeletes)
	for _, id := range ids {
		g.Go(func() error {
			if err := api.Delete(ctx, id); err != nil {
				failed.Add(1)
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	return clearedMsg{requested: len(ids), failed: int(failed.Load()), err: err}
}

func (m Model) fetch() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		todos, err := api.List(ctx)
		return loadedMsg{todos: todos, err: err}
	}
}

// notify shows text until noticeDuration passes or another notice replaces it.
func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.notice = notice{text: text, isErr: isErr, seq: m.notice.seq + 1}
	seq := m.notice.seq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m Model) selected() (todo.Todo, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todo.Todo{}, false
	}
	return visible[m.cursor], true
}

func (m Model) find(id string) (todo.Todo, bool) {
	i := slices.IndexFunc(m.todos, func(t todo.Todo) bool { return t.ID == id })
	if i < 0 {
		return todo.Todo{}, false
	}
	return m.todos[i], true
}

func (m *Model) replace(t todo.Todo) {
	i := slices.IndexFunc(m.todos, func(cur todo.Todo) bool { return cur.ID == t.ID })
	if i < 0 {
		return
	}
	m.todos = slices.Clone(m.todos)
	m.todos[i] = t
}

func (m *Model) setCompleted(id string, completed bool) {
	if t, ok := m.find(id); ok {
		t.Completed = completed
		m.replace(t)
	}
}

func (m *Model) selectID(id string) {
	if i := slices.IndexFunc(m.Visible(), func(t todo.Todo) bool { return t.ID == id }); i >= 0 {
		m.cursor = i
	}
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
