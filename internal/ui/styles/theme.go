package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // active tab, focused items
	Secondary lipgloss.Color // badges, new-media dot

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Backgrounds
	BgBase   lipgloss.Color // toolbar background when shown
	BgCursor lipgloss.Color // cursor/selection highlight

	Border lipgloss.Color

	// Status colors
	Error    lipgloss.Color
	Disabled lipgloss.Color // menu items blocked by driving restrictions

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base      lipgloss.Style
	Muted     lipgloss.Style
	Subtle    lipgloss.Style
	Title     lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	Cursor    lipgloss.Style
	Badge     lipgloss.Style
	Error     lipgloss.Style
	Disabled  lipgloss.Style
	Button    lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#5fafff"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#d0d0d0"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBase:   lipgloss.Color("#1c1c1c"),
	BgCursor: lipgloss.Color("#303030"),

	Border: lipgloss.Color("#585858"),

	Error:    lipgloss.Color("#ff5f5f"),
	Disabled: lipgloss.Color("#444444"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Underline(true),
		Tab: lipgloss.NewStyle().Foreground(t.FgMuted),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Badge:    lipgloss.NewStyle().Foreground(t.Secondary),
		Error:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Disabled: lipgloss.NewStyle().Foreground(t.Disabled).Strikethrough(true),
		Button: lipgloss.NewStyle().
			Foreground(t.BgBase).
			Background(t.Primary).
			Padding(0, 2),
	}
}

// PanelStyle returns the bordered panel style used by content regions.
func PanelStyle(focused bool) lipgloss.Style {
	border := defaultTheme.Border
	if focused {
		border = defaultTheme.Primary
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
