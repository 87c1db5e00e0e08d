package media

import "github.com/llehouerou/mediacenter/internal/lifecycle"

// Browser is the handle of a connected media browser.
type Browser interface {
	// SettingsAction returns the source's own settings action, or nil.
	SettingsAction() PendingAction
	// SearchSupported reports whether the source accepts search queries.
	SearchSupported() bool
	// RootItems returns the top-level browse items, already fetched.
	RootItems() []Item
	// Children returns the cached children of a browsable item.
	Children(parentID string) []Item
}

// BrowsingState is the connection status of the browser transport to a
// source. It is one of Connecting, Connected, Disconnecting, Rejected or
// Suspended. A nil BrowsingState means there is no source at all.
type BrowsingState interface {
	MediaSource() *Source
	isBrowsingState()
}

// Connecting is reported while the transport connects to the source.
type Connecting struct{ Source *Source }

// Connected is reported once the transport holds a browser handle.
type Connected struct {
	Source  *Source
	Browser Browser
}

// Disconnecting is reported while the transport drops the source.
type Disconnecting struct{ Source *Source }

// Rejected is reported when the source refused the connection.
type Rejected struct{ Source *Source }

// Suspended is reported when the connection was lost unexpectedly.
type Suspended struct{ Source *Source }

func (s Connecting) MediaSource() *Source    { return s.Source }
func (s Connected) MediaSource() *Source     { return s.Source }
func (s Disconnecting) MediaSource() *Source { return s.Source }
func (s Rejected) MediaSource() *Source      { return s.Source }
func (s Suspended) MediaSource() *Source     { return s.Source }

func (Connecting) isBrowsingState()    {}
func (Connected) isBrowsingState()     {}
func (Disconnecting) isBrowsingState() {}
func (Rejected) isBrowsingState()      {}
func (Suspended) isBrowsingState()     {}

// StateName returns a short name for logging.
func StateName(s BrowsingState) string {
	switch s.(type) {
	case nil:
		return "none"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	case Rejected:
		return "rejected"
	case Suspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// SourceViewModel exposes the currently selected media source.
type SourceViewModel interface {
	PrimaryMediaSource() *lifecycle.Observable[*Source]
}

// ItemsRepository exposes the browsing state of the selected source.
type ItemsRepository interface {
	BrowsingState() *lifecycle.Observable[BrowsingState]
}

// PlaybackController controls the active session of a source.
type PlaybackController interface {
	// Prepare readies the session for playback without starting it.
	Prepare() error
}

// PlaybackViewModel exposes the now-playing state of the selected source.
type PlaybackViewModel interface {
	// Metadata is the currently playing item, nil when nothing plays.
	Metadata() *lifecycle.Observable[*Item]
	// Controller is nil until the session is ready.
	Controller() *lifecycle.Observable[PlaybackController]
	// Source is the source that owns the session.
	Source() *lifecycle.Observable[*Source]
}
