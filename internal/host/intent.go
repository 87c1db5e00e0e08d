// Package host defines what the controllers need from the host runtime:
// intents and their launcher, the package manager, views and the activity.
package host

import (
	"errors"
	"fmt"

	"github.com/llehouerou/mediacenter/internal/media"
)

// Standard intent actions.
const (
	ActionApplicationPreferences         = "mediacenter.intent.action.APPLICATION_PREFERENCES"
	ActionDisplayAudioEffectControlPanel = "mediacenter.intent.action.DISPLAY_AUDIO_EFFECT_CONTROL_PANEL"
	ActionMediaSourceSelector            = "mediacenter.intent.action.MEDIA_SOURCE_SELECTOR"
)

// ErrActivityNotFound is returned when no activity can handle an intent.
var ErrActivityNotFound = errors.New("no activity found to handle intent")

// Intent describes an activity to start. An intent with Class set is
// explicit; otherwise it is resolved from Action and Package.
type Intent struct {
	Action  string
	Package string
	Class   string
}

// IsExplicit reports whether the intent names its target activity.
func (i Intent) IsExplicit() bool {
	return i.Class != ""
}

// String returns a short description for logging.
func (i Intent) String() string {
	if i.IsExplicit() {
		return fmt.Sprintf("Intent{%s/%s}", i.Package, i.Class)
	}
	if i.Package != "" {
		return fmt.Sprintf("Intent{act=%s pkg=%s}", i.Action, i.Package)
	}
	return fmt.Sprintf("Intent{act=%s}", i.Action)
}

// ActivityInfo describes an activity found by the package manager.
type ActivityInfo struct {
	Package              string
	Name                 string
	Exported             bool
	DistractionOptimized bool
}

// ResolveInfo is the result of resolving an intent.
type ResolveInfo struct {
	Activity *ActivityInfo
}

// PackageManager resolves intents to activities.
type PackageManager interface {
	// ResolveActivity returns the best match for intent, or nil.
	ResolveActivity(intent Intent) *ResolveInfo
}

// Launcher starts activities.
type Launcher interface {
	StartActivity(intent Intent) error
	// StartActivityForResult starts the activity so that it can see which
	// package launched it.
	StartActivityForResult(intent Intent, requestCode int) error
}

// DistractionChecker decides whether an activity is safe to use while
// driving.
type DistractionChecker interface {
	IsDistractionOptimized(info *ActivityInfo) bool
}

// AttributeChecker reads the activity's declared distraction-optimization
// attribute.
type AttributeChecker struct{}

// IsDistractionOptimized returns info.DistractionOptimized.
func (AttributeChecker) IsDistractionOptimized(info *ActivityInfo) bool {
	return info != nil && info.DistractionOptimized
}

// PendingIntent is a PendingAction that starts an intent through a
// launcher on behalf of its creator.
type PendingIntent struct {
	Intent   Intent
	launcher Launcher
	canceled bool
}

var _ media.PendingAction = (*PendingIntent)(nil)

// NewPendingIntent creates a pending intent.
func NewPendingIntent(launcher Launcher, intent Intent) *PendingIntent {
	return &PendingIntent{Intent: intent, launcher: launcher}
}

// Send starts the intent.
func (p *PendingIntent) Send() error {
	if p.canceled || p.launcher == nil {
		return media.ErrPendingActionCanceled
	}
	if err := p.launcher.StartActivity(p.Intent); err != nil {
		return fmt.Errorf("send %s: %w", p.Intent, err)
	}
	return nil
}

// CreatorPackage returns the package of the target intent.
func (p *PendingIntent) CreatorPackage() string { return p.Intent.Package }

// Cancel invalidates the pending intent.
func (p *PendingIntent) Cancel() { p.canceled = true }
