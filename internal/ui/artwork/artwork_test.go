package artwork

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/mediacenter/internal/media"
)

type pendingLoad struct {
	req  Request
	done func(*Image, error)
}

type fakeLoader struct {
	loads []pendingLoad
}

func (f *fakeLoader) Load(req Request, done func(*Image, error)) {
	f.loads = append(f.loads, pendingLoad{req: req, done: done})
}

func TestBinder_DeliversLatestOnly(t *testing.T) {
	loader := &fakeLoader{}
	var got []*Image
	b := NewBinder(loader, Foreground, 64, func(img *Image) { got = append(got, img) })

	b.SetImage("/a.png")
	b.SetImage("/b.png")
	require.Len(t, loader.loads, 2)
	assert.Equal(t, 64, loader.loads[1].req.MaxSize)

	loader.loads[0].done(&Image{Ref: "/a.png"}, nil)
	assert.Empty(t, got, "superseded load must be dropped")

	loader.loads[1].done(&Image{Ref: "/b.png"}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, media.ArtworkRef("/b.png"), got[0].Ref)
}

func TestBinder_EmptyRefDetaches(t *testing.T) {
	loader := &fakeLoader{}
	var got []*Image
	b := NewBinder(loader, Foreground, 64, func(img *Image) { got = append(got, img) })

	b.SetImage("/a.png")
	b.SetImage("")
	require.Len(t, got, 1)
	assert.Nil(t, got[0])

	loader.loads[0].done(&Image{Ref: "/a.png"}, nil)
	assert.Len(t, got, 1)
}

func TestBinder_FailureShowsPlaceholder(t *testing.T) {
	loader := &fakeLoader{}
	var got []*Image
	delivered := false
	b := NewBinder(loader, Background, 64, func(img *Image) {
		delivered = true
		got = append(got, img)
	})

	b.SetImage("/missing.png")
	loader.loads[0].done(nil, errors.New("boom"))

	assert.True(t, delivered)
	assert.Nil(t, got[0])
	assert.Equal(t, 1, b.Failures())
}

func TestBinder_NilLoader(t *testing.T) {
	calls := 0
	b := NewBinder(nil, Foreground, 64, func(img *Image) {
		assert.Nil(t, img)
		calls++
	})
	b.SetImage("/a.png")
	assert.Equal(t, 1, calls)
}

func TestBinder_NilConsumerDropsDelivery(t *testing.T) {
	loader := &fakeLoader{}
	b := NewBinder(loader, Foreground, 64, nil)
	b.SetImage("/a.png")
	assert.NotPanics(t, func() { loader.loads[0].done(&Image{}, nil) })
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPrepare(t *testing.T) {
	src := solid(200, 100, color.RGBA{R: 255, A: 255})

	fg := Prepare(src, 50, Foreground)
	assert.Equal(t, 50, fg.Bounds().Dx())
	assert.Equal(t, 25, fg.Bounds().Dy())

	bg := Prepare(src, 50, Background)
	assert.LessOrEqual(t, bg.Bounds().Dx(), 50)
	assert.LessOrEqual(t, bg.Bounds().Dy(), 50)
}

func TestAverageColor(t *testing.T) {
	avg := AverageColor(solid(4, 4, color.RGBA{R: 255, G: 0, B: 0, A: 255}))
	assert.InDelta(t, 1.0, avg.R, 0.01)
	assert.InDelta(t, 0.0, avg.G, 0.01)
}

func TestLocalPath(t *testing.T) {
	p, err := localPath("/music/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/music/cover.jpg", p)

	p, err = localPath("file:///music/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/music/cover.jpg", p)

	_, err = localPath("https://example.com/cover.jpg")
	assert.ErrorIs(t, err, ErrUnsupportedRef)
}

type chanDispatcher chan func()

func (c chanDispatcher) Post(fn func()) { c <- fn }

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestFileLoader_LoadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cover.png")
	writePNG(t, src, solid(80, 80, color.RGBA{G: 255, A: 255}))

	cache, err := NewCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	posts := make(chanDispatcher, 1)
	l := NewFileLoader(posts, cache, nil)

	for range 2 {
		var got *Image
		var gotErr error
		l.Load(Request{Ref: media.ArtworkRef(src), MaxSize: 16}, func(img *Image, err error) {
			got, gotErr = img, err
		})
		select {
		case fn := <-posts:
			fn()
		case <-time.After(5 * time.Second):
			t.Fatal("load never completed")
		}
		require.NoError(t, gotErr)
		assert.Equal(t, 16, got.Pixels.Bounds().Dx())
		assert.InDelta(t, 1.0, got.Average.G, 0.05)
	}

	assert.NotNil(t, cache.Get(src, 16, int(Foreground)))
}

func TestNilCache(t *testing.T) {
	var c *Cache
	assert.Nil(t, c.Get("/x", 1, 0))
	assert.NoError(t, c.Put("/x", 1, 0, []byte("x")))
}

func TestHalfBlocks(t *testing.T) {
	out := HalfBlocks(solid(8, 8, color.White), 4, 2)
	assert.Contains(t, out, "▀")
	assert.Empty(t, HalfBlocks(nil, 4, 2))
	assert.Empty(t, HalfBlocks(solid(1, 1, color.White), 0, 2))
}

func TestPixelHex(t *testing.T) {
	img := solid(2, 2, color.RGBA{R: 0xff, G: 0x80, A: 0xff})
	assert.Equal(t, "#ff8000", pixelHex(img, 0, 0))
	assert.Equal(t, "#000000", pixelHex(solid(1, 1, color.Transparent), 0, 0))
}

func TestCacheKey(t *testing.T) {
	k := cacheKey("/a.png", 64, 0)
	assert.Len(t, k, 64)
	assert.Equal(t, k, cacheKey("/a.png", 64, 0))
	assert.NotEqual(t, k, cacheKey("/a.png", 64, 1))
}
