package app

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

// Layout draws a toolbar above a content view.
type Layout struct {
	toolbar *toolbar.Toolbar
	content host.View
}

func newLayout(content host.View) *Layout {
	return &Layout{toolbar: toolbar.New(), content: content}
}

func (l *Layout) Toolbar() toolbar.Controller { return l.toolbar }

// HandleKey gives the toolbar the first chance at a key.
func (l *Layout) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	return l.toolbar.HandleKey(msg)
}

// Searching reports whether the search box takes text input.
func (l *Layout) Searching() bool {
	return l.toolbar.SearchMode() == toolbar.SearchModeSearch
}

func (l *Layout) Render(width, height int) string {
	bar := l.toolbar.View(width)
	rest := max(height-l.toolbar.Height(), 0)
	if rest == 0 {
		return bar
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, l.content.Render(width, rest))
}

// screen is the container of the controllers' layouts. One of them is
// shown at a time.
type screen struct {
	views   []host.View
	current host.View
}

func (s *screen) AddView(v host.View) {
	s.views = append(s.views, v)
	if s.current == nil {
		s.current = v
	}
}

func (s *screen) RemoveView(v host.View) {
	s.views = slices.DeleteFunc(s.views, func(x host.View) bool { return x == v })
	if s.current == v {
		s.current = nil
		if len(s.views) > 0 {
			s.current = s.views[0]
		}
	}
}

// Show makes v current if it was added.
func (s *screen) Show(v host.View) {
	if slices.Contains(s.views, v) {
		s.current = v
	}
}

func (s *screen) Current() host.View { return s.current }
