// Package toolbar implements the host toolbar drawn at the top of every
// content region: logo, title, tabs, search box and menu items.
package toolbar

import "github.com/llehouerou/mediacenter/internal/media"

// SearchMode is the state of the toolbar's search box.
type SearchMode int

const (
	SearchModeDisabled SearchMode = iota
	SearchModeSearch
	SearchModeEdit
)

// NavButtonMode is the state of the toolbar's navigation button. Tabs are
// only shown while it is disabled.
type NavButtonMode int

const (
	NavButtonDisabled NavButtonMode = iota
	NavButtonBack
	NavButtonClose
	NavButtonDown
)

// SearchCapabilities describes what the toolbar's search box can display.
type SearchCapabilities struct {
	CanShowSearchResultItems bool
	CanShowSearchResultsView bool
}

// SearchConfig customizes the search box.
type SearchConfig struct {
	Hint string
}

// Tab is one entry of the toolbar's tab row.
type Tab struct {
	Title string
	// Icon is pre-rendered terminal content, empty for none.
	Icon       string
	OnSelected func()
}

// Controller is what the application bar needs from a toolbar.
type Controller interface {
	SetTitle(title string)
	SetLogo(logo media.Icon)
	Logo() media.Icon
	SetSearchIcon(icon media.Icon)
	SetTabs(tabs []Tab, selected int)
	SelectTab(index int)
	SetMenuItems(items []*MenuItem)
	MenuItems() []*MenuItem
	SetSearchMode(mode SearchMode)
	SearchMode() SearchMode
	SetNavButtonMode(mode NavButtonMode)
	NavButtonMode() NavButtonMode
	SetSearchQuery(query string)
	SetBackgroundShown(shown bool)
	SetSearchConfig(cfg SearchConfig)
	SearchCapabilities() SearchCapabilities
	// RegisterSearchListener is called on every query edit.
	RegisterSearchListener(fn func(query string))
	// RegisterSearchCompletedListener is called when a query is submitted.
	RegisterSearchCompletedListener(fn func())
}
