// Package media defines the media-center data model: sources, browse
// items, browsing state and the playback view-model.
package media

import "errors"

// ErrPendingActionCanceled is returned by PendingAction.Send when the
// action has been invalidated by its creator.
var ErrPendingActionCanceled = errors.New("pending action canceled")

// Icon is a pre-rendered icon. Glyph is what a terminal shows; Path is an
// optional image file for renderers that can draw pixels.
type Icon struct {
	Glyph string
	Path  string
}

// IsZero reports whether the icon is empty.
func (i Icon) IsZero() bool {
	return i.Glyph == "" && i.Path == ""
}

// Source is an application that provides browsable and playable media.
type Source struct {
	DisplayName string
	PackageName string
	RoundIcon   Icon
	CroppedIcon Icon
}

// ArtworkRef identifies an artwork image (a file path or file:// URI).
// The zero value means no artwork.
type ArtworkRef string

// PendingAction is a deferred, permissioned action created by another
// process. Dispatching it does not require the creator's permissions.
type PendingAction interface {
	// Send dispatches the action. Returns ErrPendingActionCanceled when
	// the creator invalidated it.
	Send() error
	// CreatorPackage returns the package of the application that created it.
	CreatorPackage() string
}

// PendingFunc adapts a function to PendingAction.
type PendingFunc struct {
	Package string
	Fn      func() error
}

// Send calls Fn.
func (p PendingFunc) Send() error {
	if p.Fn == nil {
		return ErrPendingActionCanceled
	}
	return p.Fn()
}

// CreatorPackage returns Package.
func (p PendingFunc) CreatorPackage() string { return p.Package }
