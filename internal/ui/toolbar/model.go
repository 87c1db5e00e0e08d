package toolbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/render"
	"github.com/llehouerou/mediacenter/internal/ui/styles"
)

var _ Controller = (*Toolbar)(nil)

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Submit  key.Binding
}

var keys = keyMap{
	NextTab: key.NewBinding(key.WithKeys("tab", "right")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left")),
	Back:    key.NewBinding(key.WithKeys("esc", "backspace")),
	Submit:  key.NewBinding(key.WithKeys("enter")),
}

// Toolbar is the terminal rendition of Controller.
type Toolbar struct {
	title      string
	logo       media.Icon
	searchIcon media.Icon
	tabs       []Tab
	selected   int
	items      []*MenuItem

	searchMode   SearchMode
	navMode      NavButtonMode
	bgShown      bool
	searchConfig SearchConfig
	caps         SearchCapabilities
	input        textinput.Model

	restrictions UxRestrictions

	searchListeners    []func(string)
	completedListeners []func()
	backListeners      []func()

	// dirty is set by any change that affects rendering.
	dirty bool
}

// New creates an empty toolbar.
func New() *Toolbar {
	in := textinput.New()
	in.Prompt = "/ "
	in.CharLimit = 256
	return &Toolbar{input: in, selected: -1, bgShown: true}
}

func (t *Toolbar) SetTitle(title string) {
	t.title = render.Sanitize(title)
	t.dirty = true
}

// Title returns the current title.
func (t *Toolbar) Title() string { return t.title }

func (t *Toolbar) SetLogo(logo media.Icon) {
	t.logo = logo
	t.dirty = true
}

func (t *Toolbar) Logo() media.Icon { return t.logo }

func (t *Toolbar) SetSearchIcon(icon media.Icon) {
	t.searchIcon = icon
	t.dirty = true
}

// SearchIcon returns the icon drawn inside the search box.
func (t *Toolbar) SearchIcon() media.Icon { return t.searchIcon }

func (t *Toolbar) SetTabs(tabs []Tab, selected int) {
	t.tabs = append([]Tab(nil), tabs...)
	t.selected = -1
	if selected >= 0 && selected < len(t.tabs) {
		t.selected = selected
	}
	t.dirty = true
}

// Tabs returns a copy of the tab row.
func (t *Toolbar) Tabs() []Tab { return append([]Tab(nil), t.tabs...) }

// SelectedTab returns the highlighted tab index, or -1.
func (t *Toolbar) SelectedTab() int { return t.selected }

func (t *Toolbar) SelectTab(index int) {
	if index < 0 || index >= len(t.tabs) {
		return
	}
	t.selected = index
	t.dirty = true
}

func (t *Toolbar) SetMenuItems(items []*MenuItem) {
	for _, it := range t.items {
		it.setChangeListener(nil)
	}
	t.items = append([]*MenuItem(nil), items...)
	for _, it := range t.items {
		it.setChangeListener(func() { t.dirty = true })
	}
	t.dirty = true
}

func (t *Toolbar) MenuItems() []*MenuItem { return append([]*MenuItem(nil), t.items...) }

func (t *Toolbar) SetSearchMode(mode SearchMode) {
	t.searchMode = mode
	if mode == SearchModeDisabled {
		t.input.Blur()
	} else {
		t.input.Focus()
	}
	t.dirty = true
}

func (t *Toolbar) SearchMode() SearchMode { return t.searchMode }

func (t *Toolbar) SetNavButtonMode(mode NavButtonMode) {
	t.navMode = mode
	t.dirty = true
}

func (t *Toolbar) NavButtonMode() NavButtonMode { return t.navMode }

func (t *Toolbar) SetSearchQuery(query string) {
	t.input.SetValue(query)
	t.dirty = true
}

// SearchQuery returns the text in the search box.
func (t *Toolbar) SearchQuery() string { return t.input.Value() }

func (t *Toolbar) SetBackgroundShown(shown bool) {
	t.bgShown = shown
	t.dirty = true
}

func (t *Toolbar) SetSearchConfig(cfg SearchConfig) {
	t.searchConfig = cfg
	t.input.Placeholder = cfg.Hint
}

func (t *Toolbar) SearchCapabilities() SearchCapabilities { return t.caps }

// SetSearchCapabilities overrides what the search box reports it can show.
func (t *Toolbar) SetSearchCapabilities(c SearchCapabilities) { t.caps = c }

func (t *Toolbar) RegisterSearchListener(fn func(string)) {
	t.searchListeners = append(t.searchListeners, fn)
}

func (t *Toolbar) RegisterSearchCompletedListener(fn func()) {
	t.completedListeners = append(t.completedListeners, fn)
}

// RegisterBackListener is called when the navigation button is pressed.
func (t *Toolbar) RegisterBackListener(fn func()) {
	t.backListeners = append(t.backListeners, fn)
}

// SetActiveUxRestrictions updates the active driving restrictions.
func (t *Toolbar) SetActiveUxRestrictions(r UxRestrictions) {
	t.restrictions = r
	t.dirty = true
}

// ActiveUxRestrictions returns the active driving restrictions.
func (t *Toolbar) ActiveUxRestrictions() UxRestrictions { return t.restrictions }

// TakeDirty reports whether anything changed since the last call.
func (t *Toolbar) TakeDirty() bool {
	d := t.dirty
	t.dirty = false
	return d
}

// Height returns the number of lines View renders.
func (t *Toolbar) Height() int {
	if t.searchMode != SearchModeDisabled {
		return 2
	}
	return 1
}

// HandleKey processes a key press. It reports whether the key was consumed.
func (t *Toolbar) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if t.searchMode != SearchModeDisabled && t.input.Focused() {
		switch {
		case key.Matches(msg, keys.Submit):
			for _, fn := range t.completedListeners {
				fn()
			}
			return true, nil
		case msg.String() == "esc":
			t.input.Blur()
			t.fireBack()
			return true, nil
		}
		before := t.input.Value()
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		if q := t.input.Value(); q != before {
			for _, fn := range t.searchListeners {
				fn(q)
			}
		}
		t.dirty = true
		return true, cmd
	}

	for _, it := range t.items {
		if it.Key == "" || it.Key != msg.String() || !it.IsVisible() {
			continue
		}
		if it.IsRestricted(t.restrictions) {
			return true, nil
		}
		it.PerformClick()
		return true, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		if t.navMode != NavButtonDisabled {
			t.fireBack()
			return true, nil
		}
	case key.Matches(msg, keys.NextTab):
		return t.cycleTab(1), nil
	case key.Matches(msg, keys.PrevTab):
		return t.cycleTab(-1), nil
	}
	return false, nil
}

func (t *Toolbar) fireBack() {
	for _, fn := range t.backListeners {
		fn()
	}
}

func (t *Toolbar) cycleTab(delta int) bool {
	if t.navMode != NavButtonDisabled || len(t.tabs) == 0 {
		return false
	}
	next := t.selected + delta
	switch {
	case t.selected < 0:
		next = 0
	case next < 0:
		next = len(t.tabs) - 1
	case next >= len(t.tabs):
		next = 0
	}
	t.selected = next
	t.dirty = true
	if fn := t.tabs[next].OnSelected; fn != nil {
		fn()
	}
	return true
}

// View renders the toolbar at the given width.
func (t *Toolbar) View(width int) string {
	if width <= 0 {
		return ""
	}
	s := styles.T().S()

	var left strings.Builder
	switch t.navMode {
	case NavButtonBack:
		left.WriteString(s.Muted.Render("← "))
	case NavButtonClose:
		left.WriteString(s.Muted.Render("✕ "))
	case NavButtonDown:
		left.WriteString(s.Muted.Render("↓ "))
	case NavButtonDisabled:
		if t.logo.Glyph != "" {
			left.WriteString(s.Badge.Render(t.logo.Glyph) + " ")
		}
	}
	if t.title != "" {
		left.WriteString(s.Title.Render(t.title))
	}
	if t.navMode == NavButtonDisabled && len(t.tabs) > 0 {
		if t.title != "" {
			left.WriteString(s.Subtle.Render(" │ "))
		}
		left.WriteString(t.renderTabs())
	}

	line := render.Row(left.String(), t.renderItems(), width)
	if t.bgShown {
		line = lipgloss.NewStyle().Background(styles.T().BgBase).Width(width).Render(line)
	}
	if t.searchMode == SearchModeDisabled {
		return line
	}

	search := t.input.View()
	if t.searchIcon.Glyph != "" {
		search = t.searchIcon.Glyph + " " + search
	}
	return line + "\n" + render.TruncateStyled(search, width)
}

func (t *Toolbar) renderTabs() string {
	s := styles.T().S()
	parts := make([]string, 0, len(t.tabs))
	for i, tab := range t.tabs {
		label := tab.Title
		if tab.Icon != "" {
			label = tab.Icon + " " + label
		}
		if i == t.selected {
			parts = append(parts, s.ActiveTab.Render(label))
		} else {
			parts = append(parts, s.Tab.Render(label))
		}
	}
	return strings.Join(parts, s.Subtle.Render("  "))
}

func (t *Toolbar) renderItems() string {
	s := styles.T().S()
	var parts []string
	for _, it := range t.items {
		if !it.IsVisible() {
			continue
		}
		label := it.Icon().Glyph
		if label == "" || it.ShowsIconAndTitle() {
			label = strings.TrimSpace(label + " " + it.Title)
		}
		if it.Key != "" {
			label = s.Subtle.Render(it.Key) + " " + label
		}
		if it.IsRestricted(t.restrictions) {
			parts = append(parts, s.Disabled.Render(label))
		} else {
			parts = append(parts, s.Muted.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}
