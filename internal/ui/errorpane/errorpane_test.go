package errorpane

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

type countingAction struct {
	sent int
	err  error
}

func (a *countingAction) Send() error {
	a.sent++
	return a.err
}

func (a *countingAction) CreatorPackage() string { return "org.example.player" }

func TestSetError_ButtonNeedsLabelAndAction(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		action media.PendingAction
		want   bool
	}{
		{"both", "Retry", &countingAction{}, true},
		{"no label", "", &countingAction{}, false},
		{"no action", "Retry", nil, false},
		{"neither", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(nil)
			p.SetError("no network", tt.label, tt.action, true)
			assert.True(t, p.MessageVisible())
			assert.Equal(t, "no network", p.Message())
			assert.Equal(t, tt.want, p.ButtonVisible())
		})
	}
}

func TestSetError_Restrictions(t *testing.T) {
	p := New(nil)

	p.SetError("x", "Retry", &countingAction{}, false)
	assert.Equal(t, toolbar.UxRestrictionsNoSetup, p.ButtonRestrictions())

	p.SetError("x", "Retry", &countingAction{}, true)
	assert.Equal(t, toolbar.UxRestrictionsBaseline, p.ButtonRestrictions())
}

func TestClickButton(t *testing.T) {
	action := &countingAction{}
	p := New(nil)
	p.SetError("x", "Retry", action, false)

	p.ClickButton()
	assert.Equal(t, 1, action.sent)

	p.SetActiveUxRestrictions(toolbar.UxRestrictionsNoSetup)
	p.ClickButton()
	assert.Equal(t, 1, action.sent, "restricted button must not send")
}

func TestClickButton_SendFailureKeepsButton(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	action := &countingAction{err: errors.New("canceled")}
	p := New(zap.New(core))
	p.SetError("x", "Retry", action, true)

	p.ClickButton()

	assert.True(t, p.ButtonVisible())
	assert.Equal(t, 1, logs.FilterMessage("error action send failed").Len())
}

func TestHideNoAnim(t *testing.T) {
	action := &countingAction{}
	p := New(nil)
	p.SetError("x", "Retry", action, true)
	p.HideNoAnim()

	assert.False(t, p.MessageVisible())
	assert.False(t, p.ButtonVisible())
	p.ClickButton()
	assert.Zero(t, action.sent)
}

func TestRender(t *testing.T) {
	p := New(nil)
	p.SetError("no network", "Retry", &countingAction{}, true)
	p.FocusArea().SetPadding(Insets{Bottom: 2})

	out := p.Render(40, 10)
	assert.Contains(t, out, "no network")
	assert.Contains(t, out, "Retry")
	assert.Len(t, strings.Split(out, "\n"), 10)
}

func TestFocusArea(t *testing.T) {
	var f FocusArea
	in := Insets{Left: 1, Top: 2, Right: 3, Bottom: 4}
	f.SetPadding(in)
	f.SetHighlightPadding(in)
	f.SetBoundsOffset(in)

	assert.Equal(t, in, f.Padding())
	assert.Equal(t, in, f.HighlightPadding())
	assert.Equal(t, in, f.BoundsOffset())
}
