package mpris

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/mediacenter/internal/media"
)

// ParseMetadata maps an MPRIS metadata map to a playable item. The
// subtitle joins the artists and the album.
func ParseMetadata(metadata map[string]dbus.Variant) media.Item {
	item := media.Item{Playable: true}
	if metadata == nil {
		return item
	}

	item.ID = trackID(metadata["mpris:trackid"])
	item.Title = stringValue(metadata["xesam:title"])

	var parts []string
	if artists := stringsValue(metadata["xesam:artist"]); len(artists) > 0 {
		parts = append(parts, strings.Join(artists, ", "))
	}
	if album := stringValue(metadata["xesam:album"]); album != "" {
		parts = append(parts, album)
	}
	item.Subtitle = strings.Join(parts, " · ")

	trackURL := stringValue(metadata["xesam:url"])
	item.Artwork = artworkFor(stringValue(metadata["mpris:artUrl"]), trackURL)
	item.Extras.Downloaded = strings.HasPrefix(trackURL, "file://")

	if v, ok := metadata["xesam:useCount"]; ok {
		item.Extras.CompletionStatus = media.CompletionNotPlayed
		if n, ok := intValue(v); ok && n > 0 {
			item.Extras.CompletionStatus = media.CompletionFullyPlayed
		}
	}
	return item
}

func trackID(v dbus.Variant) string {
	switch id := v.Value().(type) {
	case dbus.ObjectPath:
		return string(id)
	case string:
		return id
	}
	return ""
}

func stringValue(v dbus.Variant) string {
	s, _ := v.Value().(string)
	return s
}

// stringsValue accepts a string list or, from non-compliant players, a
// single string.
func stringsValue(v dbus.Variant) []string {
	switch s := v.Value().(type) {
	case []string:
		return s
	case string:
		if s != "" {
			return []string{s}
		}
	}
	return nil
}

func intValue(v dbus.Variant) (int64, bool) {
	switch n := v.Value().(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

// playlist is an MPRIS playlist, D-Bus signature (oss).
type playlist struct {
	Path dbus.ObjectPath
	Name string
	Icon string
}

func (p playlist) item() media.Item {
	return media.Item{
		ID:       playlistPrefix + string(p.Path),
		Title:    p.Name,
		Artwork:  artworkFor(p.Icon, ""),
		Playable: true,
	}
}

// Item id prefixes of playable children.
const (
	playlistPrefix = "playlist:"
	trackPrefix    = "track:"
)

func parseItemID(id string) (kind, value string, err error) {
	for _, prefix := range []string{playlistPrefix, trackPrefix} {
		if v, ok := strings.CutPrefix(id, prefix); ok {
			return prefix, v, nil
		}
	}
	return "", "", fmt.Errorf("unknown item id %q", id)
}
