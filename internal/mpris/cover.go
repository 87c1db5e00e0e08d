package mpris

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/mediacenter/internal/media"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindAlbumArt looks for album art in the same directory as the track.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// filePath returns the local path of a file:// URL, or "".
func filePath(raw string) string {
	if !strings.HasPrefix(raw, "file://") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}

// artworkFor picks the artwork of an item: the player's art URL when it
// is local, else a cover next to a local track.
func artworkFor(artURL, trackURL string) media.ArtworkRef {
	if p := filePath(artURL); p != "" {
		return media.ArtworkRef(p)
	}
	if strings.HasPrefix(artURL, "/") {
		return media.ArtworkRef(artURL)
	}
	if p := filePath(trackURL); p != "" {
		if cover := FindAlbumArt(p); cover != "" {
			return media.ArtworkRef(cover)
		}
	}
	return ""
}
