// Package mpris is the media transport: it follows the MPRIS players on
// the D-Bus session bus and exposes the selected one as a media source.
package mpris

import "github.com/godbus/dbus/v5"

// D-Bus names used by the transport.
const (
	namePrefix = "org.mpris.MediaPlayer2."
	objectPath = "/org/mpris/MediaPlayer2"

	ifaceRoot      = "org.mpris.MediaPlayer2"
	ifacePlayer    = "org.mpris.MediaPlayer2.Player"
	ifacePlaylists = "org.mpris.MediaPlayer2.Playlists"
	ifaceTrackList = "org.mpris.MediaPlayer2.TrackList"
	ifaceProps     = "org.freedesktop.DBus.Properties"

	signalPropertiesChanged = ifaceProps + ".PropertiesChanged"
	signalNameOwnerChanged  = "org.freedesktop.DBus.NameOwnerChanged"
)

// Bus is the part of a D-Bus connection the transport uses.
type Bus interface {
	// Close closes the connection.
	Close() error
	// AddMatchSignal adds a signal match rule.
	AddMatchSignal(options ...dbus.MatchOption) error
	// Signal registers a channel to receive signals.
	Signal(ch chan<- *dbus.Signal)
	// ListNames returns all names on the bus.
	ListNames() ([]string, error)
	// GetNameOwner returns the unique name owning a well-known name.
	GetNameOwner(name string) (string, error)
	// GetProperty reads prop (interface-qualified) of the object at path.
	GetProperty(dest, path, prop string) (dbus.Variant, error)
	// Call invokes method (interface-qualified) on the object at path.
	Call(dest, path, method string, args ...any) *dbus.Call
}

// SessionBus is a Bus on the user's session bus.
type SessionBus struct {
	conn *dbus.Conn
}

// NewSessionBus connects to the session bus.
func NewSessionBus() (*SessionBus, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &SessionBus{conn: conn}, nil
}

// Close closes the connection.
func (b *SessionBus) Close() error {
	return b.conn.Close()
}

// AddMatchSignal adds a signal match rule.
func (b *SessionBus) AddMatchSignal(options ...dbus.MatchOption) error {
	return b.conn.AddMatchSignal(options...)
}

// Signal registers a channel to receive signals.
func (b *SessionBus) Signal(ch chan<- *dbus.Signal) {
	b.conn.Signal(ch)
}

// ListNames returns all names on the bus.
func (b *SessionBus) ListNames() ([]string, error) {
	var names []string
	err := b.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

// GetNameOwner returns the unique name owning a well-known name.
func (b *SessionBus) GetNameOwner(name string) (string, error) {
	var owner string
	err := b.conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, name).Store(&owner)
	return owner, err
}

// GetProperty reads a property.
func (b *SessionBus) GetProperty(dest, path, prop string) (dbus.Variant, error) {
	return b.conn.Object(dest, dbus.ObjectPath(path)).GetProperty(prop)
}

// Call invokes a method.
func (b *SessionBus) Call(dest, path, method string, args ...any) *dbus.Call {
	return b.conn.Object(dest, dbus.ObjectPath(path)).Call(method, 0, args...)
}
