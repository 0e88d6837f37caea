package tui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

const prefsFileName = "tui.json"

// Layout controls row spacing in the list.
type Layout string

const (
	LayoutComfortable Layout = "comfortable"
	LayoutCompact     Layout = "compact"
)

// Draft is an unsubmitted create form.
type Draft struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsEmpty reports whether the draft holds no text.
func (d Draft) IsEmpty() bool { return d.Title == "" && d.Description == "" }

// Prefs are the locally persisted UI settings.
type Prefs struct {
	Theme  string    `json:"theme"`
	Layout Layout    `json:"layout"`
	Filter Filter    `json:"filter"`
	Sort   SortOrder `json:"sort"`
	Draft  Draft     `json:"draft,omitempty"`
}

// DefaultPrefs returns the settings used when nothing is stored.
func DefaultPrefs() Prefs {
	return Prefs{
		Theme:  ThemeClassic,
		Layout: LayoutComfortable,
		Filter: FilterAll,
		Sort:   SortDate,
	}
}

func (p Prefs) normalized() Prefs {
	d := DefaultPrefs()
	if _, ok := themes[p.Theme]; !ok {
		p.Theme = d.Theme
	}
	if p.Layout != LayoutCompact && p.Layout != LayoutComfortable {
		p.Layout = d.Layout
	}
	switch p.Filter {
	case FilterAll, FilterActive, FilterCompleted:
	default:
		p.Filter = d.Filter
	}
	switch p.Sort {
	case SortDate, SortTitle, SortStatus:
	default:
		p.Sort = d.Sort
	}
	return p
}

// PrefsStore reads and writes Prefs as a JSON file.
type PrefsStore struct {
	path string
}

// NewPrefsStore stores prefs at path.
func NewPrefsStore(path string) *PrefsStore {
	return &PrefsStore{path: path}
}

// DefaultPrefsPath is tui.json under the user config directory.
func DefaultPrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "user config dir")
	}
	return filepath.Join(dir, "todo-mcp", prefsFileName), nil
}

// Path returns the file location.
func (s *PrefsStore) Path() string { return s.path }

// Load returns stored prefs, or defaults when the file does not exist.
func (s *PrefsStore) Load() (Prefs, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPrefs(), nil
		}
		return DefaultPrefs(), errors.Wrap(err, "read prefs")
	}
	var p Prefs
	if err := json.Unmarshal(b, &p); err != nil {
		return DefaultPrefs(), errors.Wrap(err, "decode prefs")
	}
	return p.normalized(), nil
}

// Save writes prefs, creating the parent directory if needed.
func (s *PrefsStore) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create prefs dir")
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode prefs")
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return errors.Wrap(err, "write prefs")
	}
	return nil
}
