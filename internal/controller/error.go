package controller

import (
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/errorpane"
)

// ErrorController shows playback errors of the selected source.
type ErrorController struct {
	*Base
	pane *errorpane.Pane

	action        media.PendingAction
	canAutoLaunch bool

	controlsSub *lifecycle.Subscription
}

// NewErrorController builds the controller and adds its layout to
// container. miniControlsVisible may be nil.
func NewErrorController(
	deps Deps,
	container host.Container,
	miniControlsVisible *lifecycle.Observable[bool],
) (*ErrorController, error) {
	pane := errorpane.New(deps.Logger)
	base, err := NewBase(deps, container, pane)
	if err != nil {
		return nil, err
	}
	c := &ErrorController{Base: base, pane: pane}
	if miniControlsVisible != nil {
		c.controlsSub = miniControlsVisible.Observe(deps.Activity, c.OnPlaybackControlsChanged)
	}
	return c, nil
}

// Pane returns the error pane.
func (c *ErrorController) Pane() *errorpane.Pane { return c.pane }

// SetError shows message. A button labelled label sends action when both
// are set. With canAutoLaunch the action is also sent right away and on
// every resume.
func (c *ErrorController) SetError(
	message, label string,
	action media.PendingAction,
	canAutoLaunch, distractionOptimized bool,
) {
	c.pane.SetError(message, label, action, distractionOptimized)
	c.action = action
	c.canAutoLaunch = canAutoLaunch
	c.maybeLaunch()
}

// OnResume re-sends the stored action when auto-launch is on.
func (c *ErrorController) OnResume() {
	c.maybeLaunch()
}

func (c *ErrorController) maybeLaunch() {
	if !c.canAutoLaunch || c.action == nil {
		return
	}
	if err := c.action.Send(); err != nil {
		c.logger.Error("error action auto-launch failed", zap.Error(err))
	}
}

// OnMediaSourceChanged resets the title and listener and hides the pane.
func (c *ErrorController) OnMediaSourceChanged(src *media.Source) {
	c.Base.OnMediaSourceChanged(src)
	c.appBar.SetListener(c.NewBasicListener())
	c.appBar.SetTitle(c.AppBarDefaultTitle(src))
	c.pane.HideNoAnim()
}

// OnPlaybackControlsChanged keeps the pane's focus area clear of the mini
// playback bar. Highlight and bounds follow the padding.
func (c *ErrorController) OnPlaybackControlsChanged(visible bool) {
	bottom := 0
	if visible {
		bottom = c.opts.BottomPadding
	}
	focus := c.pane.FocusArea()

	padding := focus.Padding()
	padding.Bottom = bottom
	focus.SetPadding(padding)
	focus.SetHighlightPadding(padding)
	focus.SetBoundsOffset(padding)
}

// Release also stops following the mini controls.
func (c *ErrorController) Release() {
	c.controlsSub.Release()
	c.Base.Release()
}
