package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// Run starts the UI and saves preferences when it exits. A prefs file
// that cannot be read is replaced with defaults.
func Run(ctx context.Context, api API, store *PrefsStore, opts ...tea.ProgramOption) error {
	prefs, err := store.Load()
	if err != nil {
		prefs = DefaultPrefs()
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, api, prefs), opts...)

	final, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "run tui")
	}
	if fm, ok := final.(Model); ok {
		return store.Save(fm.Prefs())
	}
	return nil
}
