package artwork

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	cacheDirName = "mediacenter/artwork"
	cacheMaxAge  = 30 * 24 * time.Hour
)

// Cache stores prepared artwork as PNG files. A nil Cache is valid and
// caches nothing.
type Cache struct {
	dir string
}

// NewCache creates a cache under baseDir, or the XDG cache home when
// baseDir is empty. Stale entries are pruned in the background.
func NewCache(baseDir string) (*Cache, error) {
	if baseDir == "" {
		baseDir = xdg.CacheHome
	}
	dir := filepath.Join(baseDir, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	c := &Cache{dir: dir}
	go c.prune()
	return c, nil
}

func cacheKey(path string, size, kind int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%d", path, size, kind))
	return hex.EncodeToString(sum[:])
}

// Get returns cached PNG data, or nil.
func (c *Cache) Get(path string, size, kind int) []byte {
	if c == nil {
		return nil
	}
	file := filepath.Join(c.dir, cacheKey(path, size, kind)+".png")
	data, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	now := time.Now()
	_ = os.Chtimes(file, now, now) //nolint:errcheck // best-effort
	return data
}

// Put stores PNG data.
func (c *Cache) Put(path string, size, kind int, data []byte) error {
	if c == nil {
		return nil
	}
	return os.WriteFile(filepath.Join(c.dir, cacheKey(path, size, kind)+".png"), data, 0o600)
}

func (c *Cache) prune() {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-cacheMaxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}
