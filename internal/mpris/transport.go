package mpris

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/media"
)

// ErrBusy is returned when the transport's command queue is full.
var ErrBusy = errors.New("mpris transport busy")

// ErrBusClosed is returned by Run when the bus connection goes away.
var ErrBusClosed = errors.New("bus connection closed")

// ErrStopped is returned by Flush once Run has returned.
var ErrStopped = errors.New("mpris transport stopped")

// Options configure a Transport.
type Options struct {
	Bus Bus
	// Dispatcher runs observable updates on the UI goroutine.
	Dispatcher host.Dispatcher
	Logger     *zap.Logger
}

// Transport follows the MPRIS players on the bus and exposes one of them
// as the selected media source. A playing player is preferred; the
// selection follows the player that starts playing.
//
// Bus I/O happens on the goroutine that calls Run. The observables are
// only updated on the UI goroutine.
type Transport struct {
	bus    Bus
	d      host.Dispatcher
	logger *zap.Logger

	source     *lifecycle.Observable[*media.Source]
	state      *lifecycle.Observable[media.BrowsingState]
	metadata   *lifecycle.Observable[*media.Item]
	controller *lifecycle.Observable[media.PlaybackController]

	cmds     chan func()
	stopped  chan struct{}
	stopOnce sync.Once

	// Owned by the Run goroutine.
	owners  map[string]string // unique name -> well-known name
	current string
	src     *media.Source
}

var (
	_ media.SourceViewModel   = (*Transport)(nil)
	_ media.ItemsRepository   = (*Transport)(nil)
	_ media.PlaybackViewModel = (*Transport)(nil)
)

// New creates a transport. Nothing happens until Run is called.
func New(opts Options) *Transport {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{
		bus:        opts.Bus,
		d:          opts.Dispatcher,
		logger:     logger,
		source:     lifecycle.NewObservable[*media.Source](),
		state:      lifecycle.NewObservable[media.BrowsingState](),
		metadata:   lifecycle.NewObservable[*media.Item](),
		controller: lifecycle.NewObservable[media.PlaybackController](),
		cmds:       make(chan func(), 16),
		stopped:    make(chan struct{}),
		owners:     make(map[string]string),
	}
}

func (t *Transport) PrimaryMediaSource() *lifecycle.Observable[*media.Source]  { return t.source }
func (t *Transport) BrowsingState() *lifecycle.Observable[media.BrowsingState] { return t.state }
func (t *Transport) Metadata() *lifecycle.Observable[*media.Item]              { return t.metadata }
func (t *Transport) Source() *lifecycle.Observable[*media.Source]              { return t.source }

func (t *Transport) Controller() *lifecycle.Observable[media.PlaybackController] {
	return t.controller
}

// Run watches the bus until ctx is done or the connection closes. It
// must be called at most once.
func (t *Transport) Run(ctx context.Context) error {
	defer t.stopOnce.Do(func() { close(t.stopped) })

	if err := t.bus.AddMatchSignal(
		dbus.WithMatchObjectPath(objectPath),
		dbus.WithMatchInterface(ifaceProps),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		return fmt.Errorf("add match signal: %w", err)
	}
	if err := t.bus.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		t.logger.Warn("player tracking disabled", zap.Error(err))
	}
	if err := t.bus.AddMatchSignal(
		dbus.WithMatchObjectPath(objectPath),
		dbus.WithMatchInterface(ifaceTrackList),
	); err != nil {
		t.logger.Warn("track list signals disabled", zap.Error(err))
	}

	signals := make(chan *dbus.Signal, 16)
	t.bus.Signal(signals)

	t.refresh()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return ErrBusClosed
			}
			if sig != nil {
				t.handleSignal(sig)
			}
		case fn := <-t.cmds:
			fn()
		}
	}
}

// enqueue runs fn on the Run goroutine.
func (t *Transport) enqueue(fn func()) error {
	select {
	case t.cmds <- fn:
		return nil
	default:
		return ErrBusy
	}
}

// Flush waits until the commands queued before it have run on the Run
// goroutine.
func (t *Transport) Flush(ctx context.Context) error {
	flushed := make(chan struct{})
	select {
	case t.cmds <- func() { close(flushed) }:
	case <-t.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-flushed:
		return nil
	case <-t.stopped:
		select {
		case <-flushed:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Play starts a playlist or a track list entry of the selected player.
func (t *Transport) Play(item media.Item) {
	err := t.enqueue(func() {
		if err := t.play(item.ID); err != nil {
			t.logger.Error("play failed", zap.String("id", item.ID), zap.Error(err))
		}
	})
	if err != nil {
		t.logger.Warn("play dropped", zap.Error(err))
	}
}

func (t *Transport) play(id string) error {
	if t.current == "" {
		return errors.New("no player selected")
	}
	kind, value, err := parseItemID(id)
	if err != nil {
		return err
	}
	method := ifaceTrackList + ".GoTo"
	if kind == playlistPrefix {
		method = ifacePlaylists + ".ActivatePlaylist"
	}
	return t.bus.Call(t.current, objectPath, method, dbus.ObjectPath(value)).Err
}

// publish applies fn on the UI goroutine.
func (t *Transport) publish(fn func()) {
	t.d.Post(fn)
}

// refresh rescans the players and selects one.
func (t *Transport) refresh() {
	names, err := t.bus.ListNames()
	if err != nil {
		t.logger.Warn("list bus names failed", zap.Error(err))
		return
	}

	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, namePrefix) {
			players = append(players, name)
		}
	}
	slices.Sort(players)

	t.owners = make(map[string]string, len(players))
	for _, p := range players {
		if owner, err := t.bus.GetNameOwner(p); err == nil {
			t.owners[owner] = p
		}
	}

	next := t.pick(players)
	if next != "" && next == t.current {
		return
	}
	t.selectPlayer(next)
}

// pick keeps the current player if it is still there, else prefers a
// playing one.
func (t *Transport) pick(players []string) string {
	if len(players) == 0 {
		return ""
	}
	if slices.Contains(players, t.current) {
		return t.current
	}
	for _, p := range players {
		if t.playbackStatus(p) == "Playing" {
			return p
		}
	}
	return players[0]
}

func (t *Transport) playbackStatus(name string) string {
	v, err := t.bus.GetProperty(name, objectPath, ifacePlayer+".PlaybackStatus")
	if err != nil {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

func (t *Transport) selectPlayer(name string) {
	t.current = name
	if name == "" {
		t.src = nil
		t.logger.Info("no media player on the bus")
		t.publish(func() {
			t.source.Set(nil)
			t.state.Set(nil)
			t.metadata.Set(nil)
			t.controller.Set(nil)
		})
		return
	}

	src, err := t.describe(name)
	if err != nil {
		t.logger.Warn("player rejected", zap.String("player", name), zap.Error(err))
		src = fallbackSource(name)
		t.src = src
		t.publish(func() {
			t.source.Set(src)
			t.state.Set(media.Rejected{Source: src})
			t.metadata.Set(nil)
			t.controller.Set(nil)
		})
		return
	}

	t.logger.Info("media player selected", zap.String("player", name), zap.String("name", src.DisplayName))
	t.src = src
	t.publish(func() {
		t.source.Set(src)
		t.state.Set(media.Connecting{Source: src})
	})
	t.connect()

	ctrl := &sessionController{t: t, dest: name}
	t.publish(func() { t.controller.Set(ctrl) })
}

// connect loads the browse tree and the playing item of the current
// player.
func (t *Transport) connect() {
	name, src := t.current, t.src
	b := newBrowser(t.loadPlaylists(name), t.loadTracks(name))
	playing := t.nowPlaying(name)
	t.publish(func() {
		t.state.Set(media.Connected{Source: src, Browser: b})
		t.metadata.Set(playing)
	})
}

func (t *Transport) describe(name string) (*media.Source, error) {
	v, err := t.bus.GetProperty(name, objectPath, ifaceRoot+".Identity")
	if err != nil {
		return nil, fmt.Errorf("read identity: %w", err)
	}
	src := fallbackSource(name)
	if identity, ok := v.Value().(string); ok && identity != "" {
		src.DisplayName = identity
		src.RoundIcon = initialIcon(identity)
		src.CroppedIcon = src.RoundIcon
	}
	if v, err := t.bus.GetProperty(name, objectPath, ifaceRoot+".DesktopEntry"); err == nil {
		if entry, ok := v.Value().(string); ok && entry != "" {
			src.PackageName = entry
		}
	}
	return src, nil
}

func (t *Transport) loadPlaylists(name string) []playlist {
	v, err := t.bus.GetProperty(name, objectPath, ifacePlaylists+".PlaylistCount")
	if err != nil {
		return nil
	}
	count, ok := v.Value().(uint32)
	if !ok || count == 0 {
		return nil
	}
	var out []playlist
	call := t.bus.Call(name, objectPath, ifacePlaylists+".GetPlaylists", uint32(0), count, "Alphabetical", false)
	if err := call.Store(&out); err != nil {
		t.logger.Warn("get playlists failed", zap.String("player", name), zap.Error(err))
		return nil
	}
	return out
}

func (t *Transport) loadTracks(name string) []media.Item {
	v, err := t.bus.GetProperty(name, objectPath, ifaceRoot+".HasTrackList")
	if err != nil {
		return nil
	}
	if has, _ := v.Value().(bool); !has {
		return nil
	}
	v, err = t.bus.GetProperty(name, objectPath, ifaceTrackList+".Tracks")
	if err != nil {
		return nil
	}
	ids, _ := v.Value().([]dbus.ObjectPath)
	if len(ids) == 0 {
		return nil
	}

	var metas []map[string]dbus.Variant
	call := t.bus.Call(name, objectPath, ifaceTrackList+".GetTracksMetadata", ids)
	if err := call.Store(&metas); err != nil {
		t.logger.Warn("get tracks metadata failed", zap.String("player", name), zap.Error(err))
		return nil
	}
	items := make([]media.Item, 0, len(metas))
	for _, m := range metas {
		item := ParseMetadata(m)
		if item.ID == "" {
			continue
		}
		item.ID = trackPrefix + item.ID
		items = append(items, item)
	}
	return items
}

func (t *Transport) nowPlaying(name string) *media.Item {
	v, err := t.bus.GetProperty(name, objectPath, ifacePlayer+".Metadata")
	if err != nil {
		return nil
	}
	m, _ := v.Value().(map[string]dbus.Variant)
	return playingItem(m)
}

// playingItem returns nil for empty metadata.
func playingItem(m map[string]dbus.Variant) *media.Item {
	if len(m) == 0 {
		return nil
	}
	item := ParseMetadata(m)
	if item.ID == "" && item.Title == "" {
		return nil
	}
	return &item
}

func (t *Transport) handleSignal(sig *dbus.Signal) {
	switch {
	case sig.Name == signalNameOwnerChanged:
		t.handleNameOwnerChanged(sig)
	case sig.Name == signalPropertiesChanged:
		t.handlePropertiesChanged(sig)
	case strings.HasPrefix(sig.Name, ifaceTrackList+"."):
		if t.owners[sig.Sender] == t.current && t.current != "" {
			t.connect()
		}
	}
}

func (t *Transport) handleNameOwnerChanged(sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}
	name, ok := sig.Body[0].(string)
	if !ok || !strings.HasPrefix(name, namePrefix) {
		return
	}
	newOwner, _ := sig.Body[2].(string)

	if newOwner == "" && name == t.current {
		src := t.src
		t.logger.Info("media player left the bus", zap.String("player", name))
		t.publish(func() {
			t.state.Set(media.Suspended{Source: src})
			t.controller.Set(nil)
		})
		t.current = ""
	}
	t.refresh()
}

func (t *Transport) handlePropertiesChanged(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}
	iface, _ := sig.Body[0].(string)
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}
	name, known := t.owners[sig.Sender]
	if !known {
		return
	}

	if name != t.current {
		if iface != ifacePlayer {
			return
		}
		if status, _ := changed["PlaybackStatus"].Value().(string); status == "Playing" {
			t.selectPlayer(name)
		}
		return
	}

	switch iface {
	case ifacePlayer:
		if v, ok := changed["Metadata"]; ok {
			m, _ := v.Value().(map[string]dbus.Variant)
			playing := playingItem(m)
			t.publish(func() { t.metadata.Set(playing) })
		}
	case ifacePlaylists:
		t.connect()
	case ifaceRoot:
		if _, ok := changed["HasTrackList"]; ok {
			t.connect()
		}
	}
}

// sessionController prepares a player's session.
type sessionController struct {
	t    *Transport
	dest string
}

// Prepare wakes the player up without starting playback.
func (c *sessionController) Prepare() error {
	return c.t.enqueue(func() {
		if err := c.t.bus.Call(c.dest, objectPath, "org.freedesktop.DBus.Peer.Ping").Err; err != nil {
			c.t.logger.Warn("player ping failed", zap.String("player", c.dest), zap.Error(err))
		}
	})
}

// playerID returns the player part of a bus name, without any instance
// suffix.
func playerID(name string) string {
	id := strings.TrimPrefix(name, namePrefix)
	if i := strings.Index(id, ".instance"); i >= 0 {
		id = id[:i]
	}
	return id
}

func fallbackSource(name string) *media.Source {
	id := playerID(name)
	icon := initialIcon(id)
	return &media.Source{DisplayName: id, PackageName: id, RoundIcon: icon, CroppedIcon: icon}
}

func initialIcon(name string) media.Icon {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return media.Icon{}
	}
	return media.Icon{Glyph: string(unicode.ToUpper(r))}
}
