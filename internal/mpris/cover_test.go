package mpris

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/mediacenter/internal/media"
)

func TestFindAlbumArt(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(coverPath, []byte("fake"), 0o600))

	assert.Equal(t, coverPath, FindAlbumArt(filepath.Join(dir, "track.mp3")))
}

func TestFindAlbumArt_NotFound(t *testing.T) {
	dir := t.TempDir()

	assert.Empty(t, FindAlbumArt(filepath.Join(dir, "track.mp3")))
}

func TestFindAlbumArt_Priority(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"folder.jpg", "cover.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("fake"), 0o600))
	}

	// cover.png comes before folder.jpg in the priority list.
	assert.Equal(t, filepath.Join(dir, "cover.png"), FindAlbumArt(filepath.Join(dir, "track.mp3")))
}

func TestArtworkFor(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "front.png")
	require.NoError(t, os.WriteFile(cover, []byte("fake"), 0o600))
	track := "file://" + filepath.Join(dir, "01-track.flac")

	tests := []struct {
		name     string
		artURL   string
		trackURL string
		want     media.ArtworkRef
	}{
		{"file art url", "file:///tmp/a%20b.png", "", "/tmp/a b.png"},
		{"plain path", "/tmp/art.png", "", "/tmp/art.png"},
		{"remote art falls back to cover", "https://example.com/a.png", track, media.ArtworkRef(cover)},
		{"nothing local", "https://example.com/a.png", "https://example.com/t.mp3", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, artworkFor(tt.artURL, tt.trackURL))
		})
	}
}
