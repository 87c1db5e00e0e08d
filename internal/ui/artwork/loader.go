package artwork

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder for artwork
	"image/png"
	"net/url"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/media"
)

// ErrUnsupportedRef is returned for references that are not local files.
var ErrUnsupportedRef = errors.New("unsupported artwork reference")

const blurSigma = 6

// FileLoader decodes local artwork files off the UI goroutine and posts
// the results back through a dispatcher.
type FileLoader struct {
	dispatcher host.Dispatcher
	cache      *Cache
	logger     *zap.Logger
}

// NewFileLoader creates a loader. cache may be nil.
func NewFileLoader(d host.Dispatcher, cache *Cache, logger *zap.Logger) *FileLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileLoader{dispatcher: d, cache: cache, logger: logger}
}

// Load implements Loader.
func (l *FileLoader) Load(req Request, done func(*Image, error)) {
	go func() {
		img, err := l.load(req)
		if err != nil {
			l.logger.Debug("artwork load failed",
				zap.String("ref", string(req.Ref)), zap.Error(err))
		}
		l.dispatcher.Post(func() { done(img, err) })
	}()
}

func (l *FileLoader) load(req Request) (*Image, error) {
	path, err := localPath(req.Ref)
	if err != nil {
		return nil, err
	}

	if data := l.cache.Get(path, req.MaxSize, int(req.Kind)); data != nil {
		if cached, err := png.Decode(bytes.NewReader(data)); err == nil {
			return &Image{Ref: req.Ref, Pixels: cached, Average: AverageColor(cached)}, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artwork: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode artwork: %w", err)
	}

	out := Prepare(src, req.MaxSize, req.Kind)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err == nil {
		if err := l.cache.Put(path, req.MaxSize, int(req.Kind), buf.Bytes()); err != nil {
			l.logger.Debug("artwork cache write failed", zap.Error(err))
		}
	}

	return &Image{Ref: req.Ref, Pixels: out, Average: AverageColor(out)}, nil
}

// Prepare resizes src to fit in maxSize. Background images are blurred.
func Prepare(src image.Image, maxSize int, kind Kind) image.Image {
	if maxSize <= 0 {
		maxSize = max(src.Bounds().Dx(), src.Bounds().Dy())
	}
	size := uint(maxSize) //nolint:gosec // maxSize is positive
	if kind == Background {
		return imaging.Blur(imaging.Fit(src, maxSize, maxSize, imaging.Linear), blurSigma)
	}
	return resize.Thumbnail(size, size, src, resize.Lanczos3)
}

// AverageColor returns the mean color of img.
func AverageColor(img image.Image) colorful.Color {
	b := img.Bounds()
	if b.Empty() {
		return colorful.Color{}
	}
	var r, g, bl float64
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			r += c.R
			g += c.G
			bl += c.B
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: r / float64(n), G: g / float64(n), B: bl / float64(n)}
}

func localPath(ref media.ArtworkRef) (string, error) {
	s := string(ref)
	if strings.HasPrefix(s, "/") {
		return s, nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedRef, s)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedRef, s)
	}
	return u.Path, nil
}
