package mpris

import (
	"github.com/llehouerou/mediacenter/internal/media"
)

// Root item ids.
const (
	rootPlaylists = "playlists"
	rootTrackList = "tracklist"
)

// browser is an immutable snapshot of a player's browse tree.
type browser struct {
	root     []media.Item
	children map[string][]media.Item
}

var _ media.Browser = (*browser)(nil)

func newBrowser(playlists []playlist, tracks []media.Item) *browser {
	b := &browser{children: make(map[string][]media.Item)}
	if len(playlists) > 0 {
		items := make([]media.Item, len(playlists))
		for i, p := range playlists {
			items[i] = p.item()
		}
		b.root = append(b.root, media.Item{ID: rootPlaylists, Title: "Playlists", Browsable: true})
		b.children[rootPlaylists] = items
	}
	if len(tracks) > 0 {
		b.root = append(b.root, media.Item{ID: rootTrackList, Title: "Up next", Browsable: true})
		b.children[rootTrackList] = tracks
	}
	return b
}

// MPRIS has no settings action; settings come from the desktop entry.
func (b *browser) SettingsAction() media.PendingAction { return nil }

// SearchSupported reports whether there is anything to filter.
func (b *browser) SearchSupported() bool { return len(b.root) > 0 }

func (b *browser) RootItems() []media.Item { return append([]media.Item(nil), b.root...) }

func (b *browser) Children(parentID string) []media.Item {
	return append([]media.Item(nil), b.children[parentID]...)
}
