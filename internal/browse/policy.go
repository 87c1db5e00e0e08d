// Package browse maps media item extras to the indicators of browse rows
// and renders those rows.
package browse

import (
	"math"

	"github.com/llehouerou/mediacenter/internal/media"
)

// Visibility is an indicator that can be shown or hidden.
type Visibility interface {
	SetVisible(visible bool)
}

// ProgressIndicator is a bar showing playback progress in percent.
type ProgressIndicator interface {
	Visibility
	SetProgress(percent int)
}

// NewMediaIndicatorVisible reports whether the "new" dot is shown for status.
func NewMediaIndicatorVisible(status media.CompletionStatus) bool {
	return status == media.CompletionNotPlayed
}

// HandleNewMediaIndicator shows indicator iff status is NotPlayed. A nil
// indicator is ignored.
func HandleNewMediaIndicator(status media.CompletionStatus, indicator Visibility) {
	if indicator == nil {
		return
	}
	indicator.SetVisible(NewMediaIndicatorVisible(status))
}

// ProgressValue maps a [0,1] completion fraction to a percentage. Values
// outside the range are not clamped.
func ProgressValue(p float64) int {
	return int(math.Round(p * 100))
}

// ProgressVisible reports whether a partial progress bar is shown for p.
// Zero or less means unplayed and one or more means finished.
func ProgressVisible(p float64) bool {
	return p > 0 && p < 1
}

// SetPlaybackProgressIndicator applies p to bar. A nil bar is ignored.
func SetPlaybackProgressIndicator(bar ProgressIndicator, p float64) {
	if bar == nil {
		return
	}
	bar.SetVisible(ProgressVisible(p))
	bar.SetProgress(ProgressValue(p))
}
