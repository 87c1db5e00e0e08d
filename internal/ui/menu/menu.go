// Package menu loads the declarative menu resources of the toolbar.
package menu

import (
	_ "embed"
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/mediacenter/internal/icons"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

// Item ids of the browse menu.
const (
	IDSearch                 = "search"
	IDSettings               = "settings"
	IDEqualizer              = "equalizer"
	IDSelector               = "selector"
	IDSelectorWithSourceLogo = "selector-with-source-logo"
)

//go:embed menuitems_browse.toml
var browseMenu []byte

type itemSpec struct {
	ID        string `koanf:"id"`
	Title     string `koanf:"title"`
	Icon      string `koanf:"icon"`
	Key       string `koanf:"key"`
	ShowTitle bool   `koanf:"show_title"`
	Visible   *bool  `koanf:"visible"`
}

// LoadBrowse returns the browse menu items. When path is non-empty the
// menu is read from that file instead of the built-in resource.
func LoadBrowse(path string) ([]*toolbar.MenuItem, error) {
	var p koanf.Provider = rawbytes.Provider(browseMenu)
	if path != "" {
		p = file.Provider(path)
	}
	return load(p)
}

// Parse reads menu items from a TOML document.
func Parse(data []byte) ([]*toolbar.MenuItem, error) {
	return load(rawbytes.Provider(data))
}

func load(p koanf.Provider) ([]*toolbar.MenuItem, error) {
	k := koanf.New(".")
	if err := k.Load(p, toml.Parser()); err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}

	var specs []itemSpec
	if err := k.Unmarshal("items", &specs); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	seen := make(map[string]bool, len(specs))
	items := make([]*toolbar.MenuItem, 0, len(specs))
	for i, s := range specs {
		if s.ID == "" {
			return nil, fmt.Errorf("menu item %d: missing id", i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("menu item %q: duplicate id", s.ID)
		}
		seen[s.ID] = true

		it := toolbar.NewMenuItem(s.ID, s.Title, s.Key, media.Icon{Glyph: icons.Named(s.Icon)})
		it.SetShowIconAndTitle(s.ShowTitle)
		if s.Visible != nil {
			it.SetVisible(*s.Visible)
		}
		items = append(items, it)
	}
	return items, nil
}

// ByID indexes items by id.
func ByID(items []*toolbar.MenuItem) map[string]*toolbar.MenuItem {
	m := make(map[string]*toolbar.MenuItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}
