package tui

import "github.com/charmbracelet/lipgloss"

// Theme names.
const (
	ThemeClassic = "classic"
	ThemeNeon    = "neon"
	ThemeMono    = "mono"
)

var themeOrder = []string{ThemeClassic, ThemeNeon, ThemeMono}

// Theme bundles the styles and symbols the views render with.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Success  lipgloss.Style
	Pending  lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Help     lipgloss.Style
	Panel    lipgloss.Style
	Modal    lipgloss.Style

	BoxChecked   string
	BoxUnchecked string
}

var themes = map[string]Theme{
	ThemeClassic: {
		Name:         ThemeClassic,
		Title:        lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Muted:        lipgloss.NewStyle().Faint(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:         lipgloss.NewStyle().Faint(true),
		Panel:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		Modal:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2),
		BoxChecked:   "☑",
		BoxUnchecked: "☐",
	},
	ThemeNeon: {
		Name:         ThemeNeon,
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),
		Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
		Help:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Panel:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 1),
		Modal:        lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("14")).Padding(1, 2),
		BoxChecked:   "◼",
		BoxUnchecked: "◻",
	},
	ThemeMono: {
		Name:         ThemeMono,
		Title:        lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle(),
		Pending:      lipgloss.NewStyle(),
		Accent:       lipgloss.NewStyle(),
		Muted:        lipgloss.NewStyle(),
		Error:        lipgloss.NewStyle().Bold(true),
		Selected:     lipgloss.NewStyle().Reverse(true),
		Done:         lipgloss.NewStyle().Strikethrough(true),
		Help:         lipgloss.NewStyle(),
		Panel:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Modal:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2),
		BoxChecked:   "[x]",
		BoxUnchecked: "[ ]",
	},
}

// ThemeByName falls back to classic for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[ThemeClassic]
}

func nextTheme(name string) string { return next(themeOrder, name) }
