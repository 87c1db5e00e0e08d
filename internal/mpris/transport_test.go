package mpris

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/media"
)

var errNoProperty = errors.New("no such property")

type call struct {
	dest   string
	method string
	args   []any
}

// fakeBus serves properties and method results from maps keyed by
// "dest|name".
type fakeBus struct {
	names   []string
	owners  map[string]string
	props   map[string]dbus.Variant
	results map[string][]any
	calls   []call
	matches int
	signals chan<- *dbus.Signal
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		owners:  make(map[string]string),
		props:   make(map[string]dbus.Variant),
		results: make(map[string][]any),
	}
}

func (b *fakeBus) Close() error                  { return nil }
func (b *fakeBus) Signal(ch chan<- *dbus.Signal) { b.signals = ch }
func (b *fakeBus) ListNames() ([]string, error)  { return b.names, nil }

func (b *fakeBus) AddMatchSignal(...dbus.MatchOption) error {
	b.matches++
	return nil
}

func (b *fakeBus) GetNameOwner(name string) (string, error) {
	owner, ok := b.owners[name]
	if !ok {
		return "", errors.New("name has no owner")
	}
	return owner, nil
}

func (b *fakeBus) GetProperty(dest, _, prop string) (dbus.Variant, error) {
	v, ok := b.props[dest+"|"+prop]
	if !ok {
		return dbus.Variant{}, errNoProperty
	}
	return v, nil
}

func (b *fakeBus) Call(dest, _, method string, args ...any) *dbus.Call {
	b.calls = append(b.calls, call{dest: dest, method: method, args: args})
	body, ok := b.results[dest+"|"+method]
	if !ok {
		return &dbus.Call{}
	}
	return &dbus.Call{Body: body}
}

// addPlayer registers a player with an identity and a playback status.
func (b *fakeBus) addPlayer(id, identity, status string) string {
	name := namePrefix + id
	b.names = append(b.names, name)
	b.owners[name] = ":1." + id
	b.props[name+"|"+ifaceRoot+".Identity"] = dbus.MakeVariant(identity)
	b.props[name+"|"+ifacePlayer+".PlaybackStatus"] = dbus.MakeVariant(status)
	return name
}

func (b *fakeBus) removePlayer(name string) {
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			break
		}
	}
	delete(b.owners, name)
}

type syncDispatcher struct{}

func (syncDispatcher) Post(fn func()) { fn() }

func newTransport(bus *fakeBus) *Transport {
	return New(Options{Bus: bus, Dispatcher: syncDispatcher{}})
}

func value[T any](t *testing.T, o *lifecycle.Observable[T]) T {
	t.Helper()
	v, ok := o.Value()
	require.True(t, ok, "observable never set")
	return v
}

func TestRefresh_NoPlayers(t *testing.T) {
	tr := newTransport(newFakeBus())

	tr.refresh()

	assert.Nil(t, value(t, tr.PrimaryMediaSource()))
	assert.Nil(t, value(t, tr.BrowsingState()))
	assert.Nil(t, value(t, tr.Controller()))
}

func TestRefresh_PrefersPlayingPlayer(t *testing.T) {
	bus := newFakeBus()
	bus.addPlayer("amberol", "Amberol", "Paused")
	bus.addPlayer("spotify", "Spotify", "Playing")
	bus.props[namePrefix+"spotify|"+ifaceRoot+".DesktopEntry"] = dbus.MakeVariant("spotify-client")
	tr := newTransport(bus)

	tr.refresh()

	src := value(t, tr.PrimaryMediaSource())
	require.NotNil(t, src)
	assert.Equal(t, "Spotify", src.DisplayName)
	assert.Equal(t, "spotify-client", src.PackageName)
	assert.Equal(t, "S", src.CroppedIcon.Glyph)
	assert.IsType(t, media.Connected{}, value(t, tr.BrowsingState()))
	assert.NotNil(t, value(t, tr.Controller()))
}

func TestRefresh_FirstPlayerWhenNonePlaying(t *testing.T) {
	bus := newFakeBus()
	bus.addPlayer("vlc", "VLC", "Stopped")
	bus.addPlayer("amberol", "Amberol", "Paused")
	tr := newTransport(bus)

	tr.refresh()

	assert.Equal(t, "Amberol", value(t, tr.PrimaryMediaSource()).DisplayName)
}

func TestRefresh_KeepsCurrentPlayer(t *testing.T) {
	bus := newFakeBus()
	bus.addPlayer("amberol", "Amberol", "Paused")
	tr := newTransport(bus)
	tr.refresh()
	first := value(t, tr.PrimaryMediaSource())

	bus.addPlayer("spotify", "Spotify", "Playing")
	tr.refresh()

	assert.Same(t, first, value(t, tr.PrimaryMediaSource()))
}

func TestRefresh_Rejected(t *testing.T) {
	bus := newFakeBus()
	name := bus.addPlayer("broken.instance42", "", "Stopped")
	delete(bus.props, name+"|"+ifaceRoot+".Identity")
	tr := newTransport(bus)

	tr.refresh()

	state := value(t, tr.BrowsingState())
	require.IsType(t, media.Rejected{}, state)
	assert.Equal(t, "broken", state.MediaSource().DisplayName)
	assert.Nil(t, value(t, tr.Controller()))
}

func TestConnect_BrowseTree(t *testing.T) {
	bus := newFakeBus()
	name := bus.addPlayer("spotify", "Spotify", "Playing")
	bus.props[name+"|"+ifacePlaylists+".PlaylistCount"] = dbus.MakeVariant(uint32(2))
	bus.results[name+"|"+ifacePlaylists+".GetPlaylists"] = []any{[]playlist{
		{Path: "/pl/1", Name: "Focus"},
		{Path: "/pl/2", Name: "Roadtrip"},
	}}
	bus.props[name+"|"+ifaceRoot+".HasTrackList"] = dbus.MakeVariant(true)
	bus.props[name+"|"+ifaceTrackList+".Tracks"] = dbus.MakeVariant([]dbus.ObjectPath{"/t/1"})
	bus.results[name+"|"+ifaceTrackList+".GetTracksMetadata"] = []any{[]map[string]dbus.Variant{
		{
			"mpris:trackid": dbus.MakeVariant(dbus.ObjectPath("/t/1")),
			"xesam:title":   dbus.MakeVariant("So What"),
		},
	}}
	tr := newTransport(bus)

	tr.refresh()

	state, ok := value(t, tr.BrowsingState()).(media.Connected)
	require.True(t, ok)
	b := state.Browser
	assert.Nil(t, b.SettingsAction())
	assert.True(t, b.SearchSupported())

	root := b.RootItems()
	require.Len(t, root, 2)
	assert.Equal(t, rootPlaylists, root[0].ID)
	assert.Equal(t, rootTrackList, root[1].ID)

	playlists := b.Children(rootPlaylists)
	require.Len(t, playlists, 2)
	assert.Equal(t, "Roadtrip", playlists[1].Title)

	tracks := b.Children(rootTrackList)
	require.Len(t, tracks, 1)
	assert.Equal(t, "track:/t/1", tracks[0].ID)
}

func TestConnect_EmptyBrowser(t *testing.T) {
	bus := newFakeBus()
	bus.addPlayer("radio", "Radio", "Playing")
	tr := newTransport(bus)

	tr.refresh()

	state := value(t, tr.BrowsingState()).(media.Connected)
	assert.Empty(t, state.Browser.RootItems())
	assert.False(t, state.Browser.SearchSupported())
}

func TestNowPlaying(t *testing.T) {
	bus := newFakeBus()
	name := bus.addPlayer("spotify", "Spotify", "Playing")
	bus.props[name+"|"+ifacePlayer+".Metadata"] = dbus.MakeVariant(map[string]dbus.Variant{
		"xesam:title": dbus.MakeVariant("So What"),
	})
	tr := newTransport(bus)

	tr.refresh()

	item := value(t, tr.Metadata())
	require.NotNil(t, item)
	assert.Equal(t, "So What", item.Title)
}

func TestSignal_MetadataChanged(t *testing.T) {
	bus := newFakeBus()
	bus.addPlayer("spotify", "Spotify", "Playing")
	tr := newTransport(bus)
	tr.refresh()

	tr.handleSignal(&dbus.Signal{
		Sender: ":1.spotify",
		Name:   signalPropertiesChanged,
		Body: []any{ifacePlayer, map[string]dbus.Variant{
			"Metadata": dbus.MakeVariant(map[string]dbus.Variant{"xesam:title": dbus.MakeVariant("Freddie Freeloader")}),
		}, []string{}},
	})
	require.NotNil(t, value(t, tr.Metadata()))
	assert.Equal(t, "Freddie Freeloader", value(t, tr.Metadata()).Title)

	tr.handleSignal(&dbus.Signal{
		Sender: ":1.spotify",
		Name:   signalPropertiesChanged,
		Body:   []any{ifacePlayer, map[string]dbus.Variant{"Metadata": dbus.MakeVariant(map[string]dbus.Variant{})}, []string{}},
	})
	assert.Nil(t, value(t, tr.Metadata()))
}

func TestSignal_FollowsPlayingPlayer(t *testing.T) {
	bus := newFakeBus()
	bus.addPlayer("amberol", "Amberol", "Playing")
	bus.addPlayer("spotify", "Spotify", "Paused")
	tr := newTransport(bus)
	tr.refresh()
	require.Equal(t, "Amberol", value(t, tr.PrimaryMediaSource()).DisplayName)

	tr.handleSignal(&dbus.Signal{
		Sender: ":1.spotify",
		Name:   signalPropertiesChanged,
		Body:   []any{ifacePlayer, map[string]dbus.Variant{"PlaybackStatus": dbus.MakeVariant("Playing")}, []string{}},
	})

	assert.Equal(t, "Spotify", value(t, tr.PrimaryMediaSource()).DisplayName)
}

func TestSignal_PlayerLeaves(t *testing.T) {
	bus := newFakeBus()
	name := bus.addPlayer("spotify", "Spotify", "Playing")
	tr := newTransport(bus)
	tr.refresh()

	var states []string
	owner := lifecycle.New()
	tr.BrowsingState().Observe(owner, func(s media.BrowsingState) {
		states = append(states, media.StateName(s))
	})

	bus.removePlayer(name)
	tr.handleSignal(&dbus.Signal{
		Name: signalNameOwnerChanged,
		Body: []any{name, ":1.spotify", ""},
	})

	assert.Equal(t, []string{"connected", "suspended", "none"}, states)
	assert.Nil(t, value(t, tr.PrimaryMediaSource()))
}

func TestSignal_IgnoresOtherNames(t *testing.T) {
	bus := newFakeBus()
	tr := newTransport(bus)

	tr.handleSignal(&dbus.Signal{
		Name: signalNameOwnerChanged,
		Body: []any{"org.gnome.Shell", "", ":1.9"},
	})

	_, set := tr.BrowsingState().Value()
	assert.False(t, set)
}

func TestPlay(t *testing.T) {
	bus := newFakeBus()
	name := bus.addPlayer("spotify", "Spotify", "Playing")
	tr := newTransport(bus)
	tr.refresh()

	require.NoError(t, tr.play("playlist:/pl/1"))
	require.NoError(t, tr.play("track:/t/1"))
	assert.Error(t, tr.play("albums"))

	require.Len(t, bus.calls, 2)
	assert.Equal(t, call{dest: name, method: ifacePlaylists + ".ActivatePlaylist", args: []any{dbus.ObjectPath("/pl/1")}}, bus.calls[0])
	assert.Equal(t, ifaceTrackList+".GoTo", bus.calls[1].method)
}

func TestPlay_NoPlayer(t *testing.T) {
	tr := newTransport(newFakeBus())
	assert.Error(t, tr.play("track:/t/1"))
}

func TestPrepare_PingsOnRunGoroutine(t *testing.T) {
	bus := newFakeBus()
	name := bus.addPlayer("spotify", "Spotify", "Playing")
	tr := newTransport(bus)
	tr.refresh()
	ctrl := value(t, tr.Controller())
	require.NotNil(t, ctrl)

	require.NoError(t, ctrl.Prepare())
	assert.Empty(t, bus.calls)

	fn := <-tr.cmds
	fn()
	require.Len(t, bus.calls, 1)
	assert.Equal(t, name, bus.calls[0].dest)
	assert.Equal(t, "org.freedesktop.DBus.Peer.Ping", bus.calls[0].method)
}

func TestEnqueue_Full(t *testing.T) {
	tr := newTransport(newFakeBus())
	for range cap(tr.cmds) {
		require.NoError(t, tr.enqueue(func() {}))
	}
	assert.ErrorIs(t, tr.enqueue(func() {}), ErrBusy)
}

func TestRun_StopsOnContext(t *testing.T) {
	bus := newFakeBus()
	tr := newTransport(bus)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tr.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, bus.matches)
	assert.NotNil(t, bus.signals)
}

func TestPlayerID(t *testing.T) {
	assert.Equal(t, "vlc", playerID("org.mpris.MediaPlayer2.vlc"))
	assert.Equal(t, "firefox", playerID("org.mpris.MediaPlayer2.firefox.instance_1_23"))
}

func TestFlush_WaitsForQueuedCommands(t *testing.T) {
	bus := newFakeBus()
	name := bus.addPlayer("spotify", "Spotify", "Paused")
	tr := newTransport(bus)
	tr.refresh()
	ctrl := value(t, tr.Controller())
	require.NotNil(t, ctrl)
	require.NoError(t, ctrl.Prepare())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- tr.Run(ctx) }()

	require.NoError(t, tr.Flush(ctx))
	require.NotEmpty(t, bus.calls)
	last := bus.calls[len(bus.calls)-1]
	assert.Equal(t, name, last.dest)
	assert.Equal(t, "org.freedesktop.DBus.Peer.Ping", last.method)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	assert.ErrorIs(t, tr.Flush(context.Background()), ErrStopped)
}

func TestFlush_ContextDone(t *testing.T) {
	tr := newTransport(newFakeBus())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, tr.Flush(ctx), context.Canceled)
}
