package appbar

import (
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/artwork"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

// TabBinder couples a root item with its artwork and builds the toolbar
// tab for it.
type TabBinder struct {
	item       media.Item
	binder     *artwork.Binder
	image      *artwork.Image
	onSelected func(*TabBinder)
	onUpdate   func(*TabBinder)
}

func newTabBinder(loader artwork.Loader, maxSize int, item media.Item, onSelected func(*TabBinder)) *TabBinder {
	t := &TabBinder{item: item, onSelected: onSelected}
	t.binder = artwork.NewBinder(loader, artwork.Foreground, maxSize, t.setArtwork)
	return t
}

// Item returns the bound item.
func (t *TabBinder) Item() media.Item { return t.item }

// SetImage binds the tab's artwork. The empty reference clears it.
func (t *TabBinder) SetImage(ref media.ArtworkRef) { t.binder.SetImage(ref) }

// SetUpdateListener sets the function called when the tab content
// changes. Nil removes it.
func (t *TabBinder) SetUpdateListener(fn func(*TabBinder)) { t.onUpdate = fn }

// HasUpdateListener reports whether an update listener is attached.
func (t *TabBinder) HasUpdateListener() bool { return t.onUpdate != nil }

// ToolbarTab returns the tab descriptor for the toolbar.
func (t *TabBinder) ToolbarTab() toolbar.Tab {
	tab := toolbar.Tab{
		Title: t.item.Title,
		OnSelected: func() {
			if t.onSelected != nil {
				t.onSelected(t)
			}
		},
	}
	if t.image != nil {
		tab.Icon = artwork.HalfBlocks(t.image.Pixels, 2, 1)
	}
	return tab
}

func (t *TabBinder) setArtwork(img *artwork.Image) {
	t.image = img
	if t.onUpdate != nil {
		t.onUpdate(t)
	}
}

// detach drops every callback into the owning bar.
func (t *TabBinder) detach() {
	t.onUpdate = nil
	t.SetImage("")
	t.onSelected = nil
}
