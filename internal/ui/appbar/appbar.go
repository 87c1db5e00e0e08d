// Package appbar implements the media application bar: tabs for the
// source's root items, the search, settings, equalizer and app selector
// menu items, the logo and the title.
package appbar

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/artwork"
	"github.com/llehouerou/mediacenter/internal/ui/menu"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

// ErrMissingMenuItem is returned when a required menu item is absent.
var ErrMissingMenuItem = errors.New("missing menu item")

const (
	restrictionNone    = toolbar.UxRestrictionsBaseline
	restrictionDefault = toolbar.UxRestrictionsNoSetup
)

// Options configures an AppBar.
type Options struct {
	MaxTabs                     int
	UseSourceLogoForAppSelector bool
	// AppSelector is launched by the app selector item. The item is hidden
	// when nil.
	AppSelector *host.Intent
	MaxArtSize  int
	Loader      artwork.Loader
	Logger      *zap.Logger
}

// AppBar wraps a toolbar with media specific behavior.
type AppBar struct {
	toolbar  toolbar.Controller
	launcher host.Launcher
	logger   *zap.Logger

	maxTabs                     int
	maxArtSize                  int
	loader                      artwork.Loader
	useSourceLogoForAppSelector bool

	search      *toolbar.MenuItem
	settings    *toolbar.MenuItem
	equalizer   *toolbar.MenuItem
	appSelector *toolbar.MenuItem

	listener              Listener
	tabs                  []*TabBinder
	selectedTab           int
	searchSupported       bool
	showSearchIfSupported bool
	searchQuery           string
	logo                  media.Icon
}

// New builds an AppBar around tb from the given menu items. Items not used
// by the bar are kept in the toolbar as they are.
func New(opts Options, tb toolbar.Controller, launcher host.Launcher, items []*toolbar.MenuItem) (*AppBar, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &AppBar{
		toolbar:                     tb,
		launcher:                    launcher,
		logger:                      logger,
		maxTabs:                     max(opts.MaxTabs, 0),
		maxArtSize:                  opts.MaxArtSize,
		loader:                      opts.Loader,
		useSourceLogoForAppSelector: opts.UseSourceLogoForAppSelector,
		listener:                    NopListener{},
		selectedTab:                 -1,
	}

	byID := menu.ByID(items)
	required := func(id string) (*toolbar.MenuItem, error) {
		it, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingMenuItem, id)
		}
		return it, nil
	}

	var err error
	if a.search, err = required(menu.IDSearch); err != nil {
		return nil, err
	}
	if a.settings, err = required(menu.IDSettings); err != nil {
		return nil, err
	}
	if a.equalizer, err = required(menu.IDEqualizer); err != nil {
		return nil, err
	}

	selectorID, unusedID := menu.IDSelector, menu.IDSelectorWithSourceLogo
	if a.useSourceLogoForAppSelector {
		selectorID, unusedID = unusedID, selectorID
	}
	if a.appSelector, err = required(selectorID); err != nil {
		return nil, err
	}

	a.search.SetOnClickListener(func(*toolbar.MenuItem) { a.listener.OnSearchSelection() })
	a.settings.SetOnClickListener(func(*toolbar.MenuItem) { a.listener.OnSettingsSelection() })
	a.equalizer.SetOnClickListener(func(*toolbar.MenuItem) { a.listener.OnEqualizerSelection() })

	selector := opts.AppSelector
	a.appSelector.SetOnClickListener(func(*toolbar.MenuItem) {
		if selector == nil {
			return
		}
		if err := a.launcher.StartActivity(*selector); err != nil {
			a.logger.Error("app selector launch failed", zap.Stringer("intent", selector), zap.Error(err))
		}
	})
	a.appSelector.SetVisible(selector != nil)

	tb.RegisterSearchListener(func(query string) {
		a.searchQuery = query
		a.listener.OnSearch(query)
	})
	tb.RegisterSearchCompletedListener(func() {
		a.listener.OnSearch(a.searchQuery)
	})

	menuItems := make([]*toolbar.MenuItem, 0, len(items))
	for _, it := range items {
		if it.ID != unusedID {
			menuItems = append(menuItems, it)
		}
	}
	tb.SetMenuItems(menuItems)

	return a, nil
}

// SetListener replaces the listener. Nil restores the no-op listener.
func (a *AppBar) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	a.listener = l
}

// Listener returns the current listener.
func (a *AppBar) Listener() Listener { return a.listener }

// SetItems replaces the tabs with at most MaxTabs of items.
func (a *AppBar) SetItems(items []media.Item) {
	for _, t := range a.tabs {
		t.detach()
	}
	a.tabs = nil

	n := min(len(items), a.maxTabs)
	tabs := make([]*TabBinder, 0, n)
	for _, item := range items[:n] {
		t := newTabBinder(a.loader, a.maxArtSize, item, a.onTabSelected)
		t.SetImage(item.Artwork)
		tabs = append(tabs, t)
	}
	a.tabs = tabs

	a.selectedTab = -1
	if len(a.tabs) > 0 {
		a.selectedTab = 0
	}
	for _, t := range a.tabs {
		t.SetUpdateListener(func(*TabBinder) { a.updateTabs() })
	}
	a.updateTabs()
}

func (a *AppBar) onTabSelected(t *TabBinder) {
	a.selectedTab = a.indexOf(t)
	a.listener.OnTabSelected(t.Item())
}

func (a *AppBar) indexOf(t *TabBinder) int {
	for i, tab := range a.tabs {
		if tab == t {
			return i
		}
	}
	return -1
}

// Tabs returns the current tab binders.
func (a *AppBar) Tabs() []*TabBinder { return append([]*TabBinder(nil), a.tabs...) }

// SelectedTab returns the selected tab index, or -1 when there are none.
func (a *AppBar) SelectedTab() int { return a.selectedTab }

func (a *AppBar) updateTabs() {
	if a.toolbar.NavButtonMode() != toolbar.NavButtonDisabled {
		a.toolbar.SetTabs(nil, -1)
		return
	}
	tabs := make([]toolbar.Tab, len(a.tabs))
	for i, t := range a.tabs {
		tabs[i] = t.ToolbarTab()
	}
	a.toolbar.SetTabs(tabs, a.selectedTab)
}

// SetActiveItem selects the tab of the item with the same id.
func (a *AppBar) SetActiveItem(item *media.Item) {
	if item == nil {
		return
	}
	for i, t := range a.tabs {
		if t.Item().ID != item.ID {
			continue
		}
		a.selectedTab = i
		// Tabs are only shown while the nav button is disabled.
		if a.toolbar.NavButtonMode() == toolbar.NavButtonDisabled {
			a.toolbar.SelectTab(i)
		}
		return
	}
}

// SetHasSettings shows or hides the settings item.
func (a *AppBar) SetHasSettings(has bool) { a.settings.SetVisible(has) }

// HasSettings reports whether the settings item is shown.
func (a *AppBar) HasSettings() bool { return a.settings.IsVisible() }

// SetSettingsDistractionOptimized sets whether settings stay usable while
// driving.
func (a *AppBar) SetSettingsDistractionOptimized(optimized bool) {
	if optimized {
		a.settings.SetUxRestrictions(restrictionNone)
	} else {
		a.settings.SetUxRestrictions(restrictionDefault)
	}
}

// SettingsDistractionOptimized reports whether settings stay usable while
// driving.
func (a *AppBar) SettingsDistractionOptimized() bool {
	return a.settings.UxRestrictions() == restrictionNone
}

// SetHasEqualizer shows or hides the equalizer item.
func (a *AppBar) SetHasEqualizer(has bool) { a.equalizer.SetVisible(has) }

// HasEqualizer reports whether the equalizer item is shown.
func (a *AppBar) HasEqualizer() bool { return a.equalizer.IsVisible() }

// SetSearchSupported sets whether the source supports search.
func (a *AppBar) SetSearchSupported(supported bool) {
	a.searchSupported = supported
	a.updateSearchVisibility()
}

// ShowSearchIfSupported sets whether the search item may be shown.
func (a *AppBar) ShowSearchIfSupported(show bool) {
	a.showSearchIfSupported = show
	a.updateSearchVisibility()
}

// SearchVisible reports whether the search item is shown.
func (a *AppBar) SearchVisible() bool { return a.search.IsVisible() }

func (a *AppBar) updateSearchVisibility() {
	a.search.SetVisible(a.showSearchIfSupported && a.searchSupported)
}

// SetLogo sets the source logo.
func (a *AppBar) SetLogo(logo media.Icon) {
	a.logo = logo
	a.updateLogo()
}

func (a *AppBar) updateLogo() {
	if a.toolbar.SearchMode() != toolbar.SearchModeDisabled {
		a.toolbar.SetLogo(media.Icon{})
		return
	}
	if a.useSourceLogoForAppSelector {
		a.appSelector.SetIcon(a.logo)
	} else {
		a.toolbar.SetLogo(a.logo)
	}
}

// SetSearchMode forwards a changed search mode to the toolbar.
func (a *AppBar) SetSearchMode(mode toolbar.SearchMode) {
	if a.toolbar.SearchMode() == mode {
		return
	}
	a.toolbar.SetSearchMode(mode)
	a.updateTabs()
	a.updateLogo()
}

// SetNavButtonMode forwards a changed navigation button mode to the toolbar.
func (a *AppBar) SetNavButtonMode(mode toolbar.NavButtonMode) {
	if a.toolbar.NavButtonMode() == mode {
		return
	}
	a.toolbar.SetNavButtonMode(mode)
	a.updateTabs()
}

func (a *AppBar) SetTitle(title string)                  { a.toolbar.SetTitle(title) }
func (a *AppBar) SetSearchQuery(query string)            { a.toolbar.SetSearchQuery(query) }
func (a *AppBar) SetSearchIcon(icon media.Icon)          { a.toolbar.SetSearchIcon(icon) }
func (a *AppBar) SetBackgroundShown(shown bool)          { a.toolbar.SetBackgroundShown(shown) }
func (a *AppBar) SetSearchConfig(c toolbar.SearchConfig) { a.toolbar.SetSearchConfig(c) }
func (a *AppBar) SetMenuItems(items []*toolbar.MenuItem) { a.toolbar.SetMenuItems(items) }

func (a *AppBar) SearchCapabilities() toolbar.SearchCapabilities {
	return a.toolbar.SearchCapabilities()
}
