package appbar

import "github.com/llehouerou/mediacenter/internal/media"

// Listener receives the user actions of the application bar. Embed
// NopListener to implement only some of them.
type Listener interface {
	// OnTabSelected is called when the user selects a tab.
	OnTabSelected(item media.Item)
	// OnSettingsSelection is called when the settings item is clicked.
	OnSettingsSelection()
	// OnEqualizerSelection is called when the equalizer item is clicked.
	OnEqualizerSelection()
	// OnSearch is called on every query edit and when a query is submitted.
	OnSearch(query string)
	// OnSearchSelection is called when the search item is clicked.
	OnSearchSelection()
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) OnTabSelected(media.Item) {}
func (NopListener) OnSettingsSelection()     {}
func (NopListener) OnEqualizerSelection()    {}
func (NopListener) OnSearch(string)          {}
func (NopListener) OnSearchSelection()       {}
