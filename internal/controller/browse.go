package controller

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/browse"
	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/render"
	"github.com/llehouerou/mediacenter/internal/ui/styles"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

// BrowseKeys are the list key bindings.
type BrowseKeys struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
}

// DefaultBrowseKeys returns vim-style list bindings.
func DefaultBrowseKeys() BrowseKeys {
	return BrowseKeys{
		Up:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Open: key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open")),
		Back: key.NewBinding(key.WithKeys("backspace", "h", "left"), key.WithHelp("h", "back")),
	}
}

// BrowseController lists the browse tree of the connected source. Root
// browsable items become tabs; the list shows the children of the
// selected tab and of the items opened below it.
type BrowseController struct {
	*Base
	keys BrowseKeys

	source  *media.Source
	browser media.Browser
	state   media.BrowsingState

	// path holds the opened items, path[0] being the tab.
	path  []media.Item
	items []media.Item

	query       string
	filteredIdx []int // indices into items, nil when not searching
	cursor      int
	offset      int

	onPlay func(media.Item)
}

// browseListener adds tab and search handling to the basic listener.
type browseListener struct {
	BasicListener
	c *BrowseController
}

func (l browseListener) OnTabSelected(item media.Item) { l.c.openTab(item) }
func (l browseListener) OnSearch(query string)         { l.c.Search(query) }
func (l browseListener) OnSearchSelection() {
	l.c.appBar.SetSearchMode(toolbar.SearchModeSearch)
}

// NewBrowseController builds the controller and adds its layout to
// container.
func NewBrowseController(deps Deps, container host.Container) (*BrowseController, error) {
	c := &BrowseController{keys: DefaultBrowseKeys()}
	base, err := NewBase(deps, container, c)
	if err != nil {
		return nil, err
	}
	c.Base = base
	c.appBar.ShowSearchIfSupported(true)
	c.appBar.SetListener(c.listener())
	c.setStateHook(c.onBrowsingState)
	return c, nil
}

func (c *BrowseController) listener() browseListener {
	return browseListener{BasicListener: c.NewBasicListener(), c: c}
}

// SetPlayHandler sets what opening a playable item does.
func (c *BrowseController) SetPlayHandler(fn func(media.Item)) { c.onPlay = fn }

// OnMediaSourceChanged resets the browse list for src.
func (c *BrowseController) OnMediaSourceChanged(src *media.Source) {
	c.Base.OnMediaSourceChanged(src)
	c.source = src
	c.appBar.SetListener(c.listener())
	c.appBar.SetTitle(c.AppBarDefaultTitle(src))
	c.appBar.SetSearchMode(toolbar.SearchModeDisabled)
	c.query = ""
	c.reset(nil)
}

func (c *BrowseController) onBrowsingState(state media.BrowsingState) {
	c.state = state
	connected, ok := state.(media.Connected)
	if !ok || connected.Browser == nil {
		c.browser = nil
		c.appBar.SetSearchSupported(false)
		c.appBar.SetItems(nil)
		c.reset(nil)
		return
	}

	c.browser = connected.Browser
	c.appBar.SetSearchSupported(c.browser.SearchSupported())

	root := c.browser.RootItems()
	var tabs []media.Item
	for _, item := range root {
		if item.Browsable {
			tabs = append(tabs, item)
		}
	}
	c.appBar.SetItems(tabs)

	if tabs := c.appBar.Tabs(); len(tabs) > 0 {
		c.openTab(tabs[0].Item())
		return
	}
	c.reset(root)
}

func (c *BrowseController) openTab(tab media.Item) {
	c.appBar.SetActiveItem(&tab)
	c.path = []media.Item{tab}
	c.showChildren(tab.ID)
}

func (c *BrowseController) showChildren(parentID string) {
	var items []media.Item
	if c.browser != nil {
		items = c.browser.Children(parentID)
	}
	c.setList(items)
	c.updateNavButton()
}

// reset drops the opened path and shows items.
func (c *BrowseController) reset(items []media.Item) {
	c.path = nil
	c.setList(items)
	c.updateNavButton()
}

func (c *BrowseController) setList(items []media.Item) {
	c.items = items
	c.cursor = 0
	c.offset = 0
	c.applyFilter()
}

func (c *BrowseController) updateNavButton() {
	mode := toolbar.NavButtonDisabled
	if len(c.path) > 1 {
		mode = toolbar.NavButtonBack
	}
	c.appBar.SetNavButtonMode(mode)
}

// Search filters the current list with query. An empty query shows the
// whole list.
func (c *BrowseController) Search(query string) {
	c.query = query
	c.applyFilter()
}

func (c *BrowseController) applyFilter() {
	if c.query == "" {
		c.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(c.items))
	for i, item := range c.items {
		lowerTitles[i] = strings.ToLower(item.Title)
	}
	matches := fuzzy.Find(strings.ToLower(c.query), lowerTitles)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}
	c.cursor = 0
	c.offset = 0
}

// Visible returns the listed items after filtering.
func (c *BrowseController) Visible() []media.Item {
	if c.filteredIdx == nil {
		return c.items
	}
	out := make([]media.Item, len(c.filteredIdx))
	for i, idx := range c.filteredIdx {
		out[i] = c.items[idx]
	}
	return out
}

// Path returns the opened items, starting with the selected tab.
func (c *BrowseController) Path() []media.Item { return append([]media.Item(nil), c.path...) }

// Cursor returns the index of the highlighted row.
func (c *BrowseController) Cursor() int { return c.cursor }

// Selected returns the highlighted item.
func (c *BrowseController) Selected() (media.Item, bool) {
	visible := c.Visible()
	if c.cursor < 0 || c.cursor >= len(visible) {
		return media.Item{}, false
	}
	return visible[c.cursor], true
}

// HandleKey moves the cursor, opens items and goes back. It reports
// whether the key was used.
func (c *BrowseController) HandleKey(msg tea.KeyMsg) bool {
	count := len(c.Visible())
	switch {
	case key.Matches(msg, c.keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
		return true
	case key.Matches(msg, c.keys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
		return true
	case key.Matches(msg, c.keys.Open):
		c.Open()
		return true
	case key.Matches(msg, c.keys.Back):
		return c.Back()
	}
	return false
}

// Open descends into the highlighted item, or plays it.
func (c *BrowseController) Open() {
	item, ok := c.Selected()
	if !ok {
		return
	}
	if item.Browsable {
		c.path = append(c.path, item)
		c.query = ""
		c.showChildren(item.ID)
		return
	}
	if item.Playable && c.onPlay != nil {
		c.logger.Debug("play item", zap.String("id", item.ID))
		c.onPlay(item)
	}
}

// Back returns to the parent list. It reports false at the tab level.
func (c *BrowseController) Back() bool {
	if len(c.path) < 2 {
		return false
	}
	c.path = c.path[:len(c.path)-1]
	c.query = ""
	c.showChildren(c.path[len(c.path)-1].ID)
	return true
}

// Render draws the list. Satisfies host.View.
func (c *BrowseController) Render(width, height int) string {
	if height <= 0 {
		return ""
	}
	s := styles.T().S()
	visible := c.Visible()
	if len(visible) == 0 {
		return render.Pad(s.Muted.Render(c.emptyText()), width)
	}

	views := make([]*browse.ItemView, len(visible))
	for i, item := range visible {
		v := browse.NewItemView()
		v.Bind(item)
		views[i] = v
	}
	c.ensureVisible(views, height)

	var lines []string
	for i := c.offset; i < len(views); i++ {
		row := strings.Split(views[i].Render(width, i == c.cursor), "\n")
		if len(lines)+len(row) > height {
			break
		}
		lines = append(lines, row...)
	}
	return strings.Join(lines, "\n")
}

// ensureVisible scrolls so that the cursor row fits in height lines.
func (c *BrowseController) ensureVisible(views []*browse.ItemView, height int) {
	c.cursor = min(max(c.cursor, 0), len(views)-1)
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	for c.offset < c.cursor {
		used := 0
		for i := c.offset; i <= c.cursor; i++ {
			used += views[i].Height()
		}
		if used <= height {
			break
		}
		c.offset++
	}
}

func (c *BrowseController) emptyText() string {
	switch c.state.(type) {
	case nil:
		return "No media source"
	case media.Connecting:
		return "Connecting…"
	case media.Rejected:
		return "Connection refused"
	case media.Suspended:
		return "Connection lost"
	}
	if c.query != "" {
		return "No results"
	}
	return "Nothing here"
}
