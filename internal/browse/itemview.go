package browse

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mediacenter/internal/icons"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/render"
	"github.com/llehouerou/mediacenter/internal/ui/styles"
)

// Indicator is a glyph that is drawn only while visible.
type Indicator struct {
	visible bool
}

func (i *Indicator) SetVisible(visible bool) { i.visible = visible }
func (i *Indicator) Visible() bool           { return i.visible }

// ProgressBar is a one line playback progress bar.
type ProgressBar struct {
	Indicator
	percent int
}

func (b *ProgressBar) SetProgress(percent int) { b.percent = percent }
func (b *ProgressBar) Progress() int           { return b.percent }

// View renders the bar at width cells, or "" when hidden.
func (b *ProgressBar) View(width int) string {
	if !b.visible || width <= 0 {
		return ""
	}
	filled := width * min(max(b.percent, 0), 100) / 100
	t := styles.T()
	return lipgloss.NewStyle().Foreground(t.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(t.FgSubtle).Render(strings.Repeat("━", width-filled))
}

// ItemView is a browse row.
type ItemView struct {
	item media.Item

	// Badges are drawn on the title line when there is no subtitle, and
	// on the subtitle line otherwise.
	ExplicitTitle      Indicator
	ExplicitSubtitle   Indicator
	DownloadedTitle    Indicator
	DownloadedSubtitle Indicator
	NewMedia           Indicator
	Progress           ProgressBar

	subtitleVisible bool
}

// NewItemView creates an empty row.
func NewItemView() *ItemView {
	return &ItemView{}
}

// Bind shows item in the row.
func (v *ItemView) Bind(item media.Item) {
	v.item = item
	v.item.Title = render.Sanitize(item.Title)
	v.item.Subtitle = render.Sanitize(item.Subtitle)
	v.subtitleVisible = v.item.HasSubtitle()
	v.bindExtras(item.Extras)
}

// Update rebinds the extras of item without touching the text.
func (v *ItemView) Update(item media.Item) {
	v.item.Extras = item.Extras
	v.bindExtras(item.Extras)
}

func (v *ItemView) bindExtras(e media.Extras) {
	onTitle := !v.subtitleVisible
	v.ExplicitTitle.SetVisible(e.Explicit && onTitle)
	v.ExplicitSubtitle.SetVisible(e.Explicit && !onTitle)
	v.DownloadedTitle.SetVisible(e.Downloaded && onTitle)
	v.DownloadedSubtitle.SetVisible(e.Downloaded && !onTitle)
	HandleNewMediaIndicator(e.CompletionStatus, &v.NewMedia)
	SetPlaybackProgressIndicator(&v.Progress, e.Progress)
}

// Item returns the bound item.
func (v *ItemView) Item() media.Item { return v.item }

// Title returns the displayed title.
func (v *ItemView) Title() string { return v.item.Title }

// Subtitle returns the displayed subtitle.
func (v *ItemView) Subtitle() string { return v.item.Subtitle }

// SubtitleVisible reports whether the subtitle line is drawn.
func (v *ItemView) SubtitleVisible() bool { return v.subtitleVisible }

// Height returns the number of lines Render produces.
func (v *ItemView) Height() int {
	h := 1
	if v.subtitleVisible {
		h++
	}
	if v.Progress.Visible() {
		h++
	}
	return h
}

// Render draws the row at width cells.
func (v *ItemView) Render(width int, selected bool) string {
	s := styles.T().S()

	lead := icons.Placeholder()
	if v.NewMedia.Visible() {
		lead = s.Badge.Render(icons.NewMedia())
	}
	if lead != "" {
		lead += " "
	}

	title := lead + s.Base.Render(v.item.Title) +
		badges(v.ExplicitTitle.Visible(), v.DownloadedTitle.Visible())
	var arrow string
	if v.item.Browsable {
		arrow = s.Muted.Render(icons.Browse())
	}
	lines := []string{render.Row(title, arrow, width)}

	if v.subtitleVisible {
		sub := "  " + s.Muted.Render(v.item.Subtitle) +
			badges(v.ExplicitSubtitle.Visible(), v.DownloadedSubtitle.Visible())
		lines = append(lines, render.Pad(render.TruncateStyled(sub, width), width))
	}
	if v.Progress.Visible() {
		lines = append(lines, "  "+v.Progress.View(max(width-2, 0)))
	}

	out := strings.Join(lines, "\n")
	if selected {
		return s.Cursor.Render(out)
	}
	return out
}

func badges(explicit, downloaded bool) string {
	s := styles.T().S()
	var b strings.Builder
	if explicit {
		b.WriteString(" " + s.Badge.Render(icons.Explicit()))
	}
	if downloaded {
		b.WriteString(" " + s.Muted.Render(icons.Downloaded()))
	}
	return b.String()
}
