// Package errorpane renders a playback error with an optional action
// button.
package errorpane

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/render"
	"github.com/llehouerou/mediacenter/internal/ui/styles"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

// Pane shows an error message and, when the error is actionable, a button.
type Pane struct {
	logger *zap.Logger

	message string
	label   string
	action  media.PendingAction

	messageVisible bool
	buttonVisible  bool
	restrictions   toolbar.UxRestrictions
	active         toolbar.UxRestrictions

	focus FocusArea
}

// New creates a hidden pane.
func New(logger *zap.Logger) *Pane {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pane{logger: logger}
}

// SetError shows message. The button is shown only when both label and
// action are set.
func (p *Pane) SetError(message, label string, action media.PendingAction, distractionOptimized bool) {
	p.message = render.Sanitize(message)
	p.messageVisible = true

	if label == "" || action == nil {
		p.label = ""
		p.action = nil
		p.buttonVisible = false
		return
	}
	p.label = render.Sanitize(label)
	p.action = action
	p.restrictions = toolbar.UxRestrictionsNoSetup
	if distractionOptimized {
		p.restrictions = toolbar.UxRestrictionsBaseline
	}
	p.buttonVisible = true
}

// HideNoAnim hides the message and the button immediately.
func (p *Pane) HideNoAnim() {
	p.messageVisible = false
	p.buttonVisible = false
}

// SetActiveUxRestrictions updates the active driving restrictions.
func (p *Pane) SetActiveUxRestrictions(r toolbar.UxRestrictions) { p.active = r }

// ButtonEnabled reports whether the button can be clicked.
func (p *Pane) ButtonEnabled() bool {
	return p.buttonVisible && p.restrictions&p.active == 0
}

// ClickButton sends the action of a visible, enabled button. A failed send
// is logged and the button stays.
func (p *Pane) ClickButton() {
	if !p.ButtonEnabled() {
		return
	}
	if err := p.action.Send(); err != nil {
		p.logger.Error("error action send failed",
			zap.String("label", p.label),
			zap.String("package", p.action.CreatorPackage()),
			zap.Error(err))
	}
}

func (p *Pane) Message() string                            { return p.message }
func (p *Pane) MessageVisible() bool                       { return p.messageVisible }
func (p *Pane) Label() string                              { return p.label }
func (p *Pane) ButtonVisible() bool                        { return p.buttonVisible }
func (p *Pane) ButtonRestrictions() toolbar.UxRestrictions { return p.restrictions }

// FocusArea returns the pane's focus area.
func (p *Pane) FocusArea() *FocusArea { return &p.focus }

// Render draws the pane centered in width×height, minus the focus area
// padding.
func (p *Pane) Render(width, height int) string {
	pad := p.focus.Padding()
	innerW := max(width-pad.Left-pad.Right, 0)
	innerH := max(height-pad.Top-pad.Bottom, 0)
	if innerW == 0 || innerH == 0 {
		return strings.TrimSuffix(strings.Repeat(render.EmptyLine(width)+"\n", max(height, 0)), "\n")
	}

	s := styles.T().S()
	var parts []string
	if p.messageVisible {
		msg := lipgloss.NewStyle().Width(min(innerW, 60)).Align(lipgloss.Center).Render(p.message)
		parts = append(parts, s.Error.Render(msg))
	}
	if p.buttonVisible {
		btn := s.Button
		if !p.ButtonEnabled() {
			btn = s.Disabled.Padding(0, 2)
		}
		parts = append(parts, "", btn.Render(p.label))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	inner := lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, content)

	return lipgloss.NewStyle().
		Padding(pad.Top, pad.Right, pad.Bottom, pad.Left).
		Render(inner)
}
