// Package artwork resolves media artwork references into images and binds
// them to views.
package artwork

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/llehouerou/mediacenter/internal/media"
)

// Kind selects how a loaded image is prepared.
type Kind int

const (
	// Foreground images are thumbnails fit into the requested size.
	Foreground Kind = iota
	// Background images are fit then blurred.
	Background
)

// Image is a decoded and resized artwork.
type Image struct {
	Ref     media.ArtworkRef
	Pixels  image.Image
	Average colorful.Color
}

// Request describes one load.
type Request struct {
	Ref     media.ArtworkRef
	MaxSize int
	Kind    Kind
}

// Loader loads artwork asynchronously. done must be invoked on the UI
// goroutine.
type Loader interface {
	Load(req Request, done func(*Image, error))
}

// Binder delivers the image of the latest reference to a consumer. A nil
// image means the placeholder should be shown. Results of superseded loads
// are dropped.
type Binder struct {
	loader   Loader
	kind     Kind
	maxSize  int
	consumer func(*Image)

	ref        media.ArtworkRef
	generation uint64
	failures   int
}

// NewBinder creates a binder. A nil loader always yields the placeholder.
func NewBinder(loader Loader, kind Kind, maxSize int, consumer func(*Image)) *Binder {
	return &Binder{loader: loader, kind: kind, maxSize: maxSize, consumer: consumer}
}

// SetImage binds ref. The empty reference detaches any pending load and
// shows the placeholder.
func (b *Binder) SetImage(ref media.ArtworkRef) {
	b.generation++
	b.ref = ref
	if ref == "" || b.loader == nil {
		b.deliver(nil)
		return
	}

	gen := b.generation
	b.loader.Load(Request{Ref: ref, MaxSize: b.maxSize, Kind: b.kind}, func(img *Image, err error) {
		if gen != b.generation {
			return
		}
		if err != nil {
			b.failures++
			b.deliver(nil)
			return
		}
		b.deliver(img)
	})
}

// SetConsumer replaces the consumer. Nil drops deliveries.
func (b *Binder) SetConsumer(fn func(*Image)) { b.consumer = fn }

// Ref returns the currently bound reference.
func (b *Binder) Ref() media.ArtworkRef { return b.ref }

// Failures returns the number of loads that ended in an error.
func (b *Binder) Failures() int { return b.failures }

func (b *Binder) deliver(img *Image) {
	if b.consumer != nil {
		b.consumer(img)
	}
}
