package toolbar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/mediacenter/internal/media"
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestMenuItem_Visibility(t *testing.T) {
	it := NewMenuItem("settings", "Settings", "s", media.Icon{})
	clicks := 0
	it.SetOnClickListener(func(*MenuItem) { clicks++ })

	assert.True(t, it.PerformClick())
	it.SetVisible(false)
	assert.False(t, it.PerformClick())
	assert.Equal(t, 1, clicks)
}

func TestMenuItem_PerformClickWithoutHandler(t *testing.T) {
	it := NewMenuItem("search", "Search", "/", media.Icon{})
	assert.False(t, it.PerformClick())
}

func TestMenuItem_Restrictions(t *testing.T) {
	it := NewMenuItem("settings", "Settings", "s", media.Icon{})

	assert.False(t, it.IsRestricted(UxRestrictionsNoSetup))
	it.SetUxRestrictions(UxRestrictionsNoSetup)
	assert.True(t, it.IsRestricted(UxRestrictionsNoSetup))
	assert.False(t, it.IsRestricted(UxRestrictionsBaseline))
}

func TestSetMenuItems_ChangesMarkDirty(t *testing.T) {
	tb := New()
	it := NewMenuItem("settings", "Settings", "s", media.Icon{})
	tb.SetMenuItems([]*MenuItem{it})
	tb.TakeDirty()

	it.SetVisible(false)
	assert.True(t, tb.TakeDirty())
	assert.False(t, tb.TakeDirty())

	// Items removed from the bar no longer mark it.
	tb.SetMenuItems(nil)
	tb.TakeDirty()
	it.SetVisible(true)
	assert.False(t, tb.TakeDirty())
}

func TestHandleKey_MenuItem(t *testing.T) {
	tb := New()
	it := NewMenuItem("settings", "Settings", "s", media.Icon{})
	clicks := 0
	it.SetOnClickListener(func(*MenuItem) { clicks++ })
	tb.SetMenuItems([]*MenuItem{it})

	used, _ := tb.HandleKey(runeKey('s'))
	assert.True(t, used)
	assert.Equal(t, 1, clicks)

	it.SetUxRestrictions(UxRestrictionsNoSetup)
	tb.SetActiveUxRestrictions(UxRestrictionsNoSetup)
	used, _ = tb.HandleKey(runeKey('s'))
	assert.True(t, used)
	assert.Equal(t, 1, clicks)

	used, _ = tb.HandleKey(runeKey('x'))
	assert.False(t, used)
}

func TestHandleKey_Search(t *testing.T) {
	tb := New()
	var queries []string
	completed, back := 0, 0
	tb.RegisterSearchListener(func(q string) { queries = append(queries, q) })
	tb.RegisterSearchCompletedListener(func() { completed++ })
	tb.RegisterBackListener(func() { back++ })

	tb.SetSearchMode(SearchModeSearch)
	tb.HandleKey(runeKey('j'))
	tb.HandleKey(runeKey('a'))
	assert.Equal(t, []string{"j", "ja"}, queries)
	assert.Equal(t, "ja", tb.SearchQuery())
	assert.Equal(t, 2, tb.Height())

	tb.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, completed)

	tb.HandleKey(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, 1, back)
}

func TestHandleKey_TabCycling(t *testing.T) {
	tb := New()
	var selected []string
	tab := func(title string) Tab {
		return Tab{Title: title, OnSelected: func() { selected = append(selected, title) }}
	}
	tb.SetTabs([]Tab{tab("A"), tab("B")}, 0)

	tb.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	tb.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	tb.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab})

	assert.Equal(t, []string{"B", "A", "B"}, selected)
	assert.Equal(t, 1, tb.SelectedTab())

	tb.SetNavButtonMode(NavButtonBack)
	used, _ := tb.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, used)
}

func TestHandleKey_BackNeedsNavButton(t *testing.T) {
	tb := New()
	back := 0
	tb.RegisterBackListener(func() { back++ })

	used, _ := tb.HandleKey(tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, used)

	tb.SetNavButtonMode(NavButtonBack)
	used, _ = tb.HandleKey(tea.KeyMsg{Type: tea.KeyEscape})
	assert.True(t, used)
	assert.Equal(t, 1, back)
}

func TestSetTabs_ClampsSelection(t *testing.T) {
	tb := New()

	tb.SetTabs([]Tab{{Title: "A"}}, 3)
	assert.Equal(t, -1, tb.SelectedTab())

	tb.SelectTab(0)
	assert.Equal(t, 0, tb.SelectedTab())
	tb.SelectTab(5)
	assert.Equal(t, 0, tb.SelectedTab())
}

func TestView(t *testing.T) {
	tb := New()
	tb.SetBackgroundShown(false)
	tb.SetTitle("Radio")
	tb.SetTabs([]Tab{{Title: "Albums"}, {Title: "Artists"}}, 0)
	it := NewMenuItem("settings", "Settings", "s", media.Icon{})
	tb.SetMenuItems([]*MenuItem{it})

	out := tb.View(80)
	assert.Contains(t, out, "Radio")
	assert.Contains(t, out, "Albums")
	assert.Contains(t, out, "Settings")

	tb.SetNavButtonMode(NavButtonBack)
	out = tb.View(80)
	assert.NotContains(t, out, "Albums")
	assert.Contains(t, out, "←")

	require.Empty(t, tb.View(0))
}
