// Package minibar renders the now-playing bar shown under the content.
package minibar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/icons"
	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/artwork"
	"github.com/llehouerou/mediacenter/internal/ui/render"
	"github.com/llehouerou/mediacenter/internal/ui/styles"
)

// Height is the number of lines the bar renders when visible.
const Height = 2

// tileCols is the width of the content tile; two rows of half blocks
// make it roughly square.
const tileCols = 4

// Options configure a Bar.
type Options struct {
	Loader artwork.Loader
	// Background draws the current artwork, blurred, behind the bar.
	Background bool
	Logger     *zap.Logger
}

// Bar is the mini playback bar.
type Bar struct {
	loader     artwork.Loader
	background bool
	logger     *zap.Logger

	item    *media.Item
	appIcon media.Icon

	tile      *artwork.Binder
	tileImage *artwork.Image
	// bg is nil when no background is drawn.
	bg      *artwork.Binder
	bgImage *artwork.Image

	visible *lifecycle.Observable[bool]
	subs    []*lifecycle.Subscription
}

// New creates a bar with no model.
func New(opts Options) *Bar {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bar{
		loader:     opts.Loader,
		background: opts.Background,
		logger:     logger,
		visible:    lifecycle.NewObservableOf(false),
	}
}

// Visible reports whether the bar has something to show.
func (b *Bar) Visible() *lifecycle.Observable[bool] { return b.visible }

// SetModel binds the bar to vm for the lifetime of owner. Any previous
// model is released.
func (b *Bar) SetModel(vm media.PlaybackViewModel, owner lifecycle.Owner, maxArtSize int) {
	b.release()

	b.tile = artwork.NewBinder(b.loader, artwork.Foreground, maxArtSize, func(img *artwork.Image) {
		b.tileImage = img
	})
	if b.background {
		b.bg = artwork.NewBinder(b.loader, artwork.Background, maxArtSize, func(img *artwork.Image) {
			b.bgImage = img
		})
	}
	if vm == nil {
		b.onMetadata(nil)
		return
	}

	b.subs = append(b.subs,
		vm.Metadata().Observe(owner, b.onMetadata),
		vm.Source().Observe(owner, b.onSource),
	)
}

func (b *Bar) release() {
	for _, s := range b.subs {
		s.Release()
	}
	b.subs = nil
	if b.tile != nil {
		b.tile.SetConsumer(nil)
	}
	if b.bg != nil {
		b.bg.SetConsumer(nil)
	}
	b.tile, b.bg = nil, nil
	b.tileImage, b.bgImage = nil, nil
}

func (b *Bar) onMetadata(item *media.Item) {
	b.item = item
	var ref media.ArtworkRef
	if item != nil {
		ref = item.Artwork
		b.logger.Debug("now playing", zap.String("id", item.ID))
	}
	b.tile.SetImage(ref)
	if b.bg != nil {
		b.bg.SetImage(ref)
	}
	if v, _ := b.visible.Value(); v != (item != nil) {
		b.visible.Set(item != nil)
	}
}

func (b *Bar) onSource(src *media.Source) {
	b.appIcon = media.Icon{}
	if src != nil {
		b.appIcon = src.RoundIcon
	}
}

// Item returns the playing item, or nil.
func (b *Bar) Item() *media.Item { return b.item }

// AppIcon returns the icon of the source that owns the session.
func (b *Bar) AppIcon() media.Icon { return b.appIcon }

// TileImage returns the content tile artwork, nil for the placeholder.
func (b *Bar) TileImage() *artwork.Image { return b.tileImage }

// BackgroundImage returns the background artwork, nil when none.
func (b *Bar) BackgroundImage() *artwork.Image { return b.bgImage }

// HasBackground reports whether the bar draws a background.
func (b *Bar) HasBackground() bool { return b.bg != nil }

// Render draws the bar. It returns "" when nothing plays.
func (b *Bar) Render(width int) string {
	if b.item == nil || width <= 0 {
		return ""
	}
	s := styles.T().S()

	tile := b.renderTile()
	textWidth := max(width-tileCols-1, 0)

	title := b.item.Title
	if title == "" {
		title = "Unknown"
	}
	icon := b.appIcon.Glyph
	top := render.Row(s.Title.Render(render.Sanitize(title)), s.Muted.Render(icon), textWidth)
	bottom := render.Pad(render.TruncateStyled(s.Muted.Render(render.Sanitize(b.item.Subtitle)), textWidth), textWidth)

	text := top + "\n" + bottom
	out := lipgloss.JoinHorizontal(lipgloss.Top, tile, " ", text)

	if b.bgImage != nil {
		tint := styles.Dim(b.bgImage.Average, 0.7)
		out = lipgloss.NewStyle().Background(tint).Width(width).Render(out)
	}
	return out
}

func (b *Bar) renderTile() string {
	if b.tileImage != nil && b.tileImage.Pixels != nil {
		return artwork.HalfBlocks(b.tileImage.Pixels, tileCols, Height)
	}
	glyph := icons.Music()
	line := render.Pad(" "+glyph, tileCols)
	return strings.Repeat(line+"\n", Height-1) + render.Pad("", tileCols)
}
