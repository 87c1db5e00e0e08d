package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/config"
	"github.com/llehouerou/mediacenter/internal/connector"
	"github.com/llehouerou/mediacenter/internal/controller"
	"github.com/llehouerou/mediacenter/internal/desktop"
	"github.com/llehouerou/mediacenter/internal/errmsg"
	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/mpris"
	"github.com/llehouerou/mediacenter/internal/notify"
	"github.com/llehouerou/mediacenter/internal/ui/artwork"
	"github.com/llehouerou/mediacenter/internal/ui/minibar"
)

var errSourceRejected = errors.New("connection refused")

const (
	connectorStartID = 1
	selectorLabel    = "Choose source"
)

// Options configure the application model.
type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Bus      mpris.Bus
	Notifier notify.Notifier
	// Packages defaults to the XDG application directories.
	Packages *desktop.PackageManager
	// Launcher defaults to a desktop launcher over Packages.
	Launcher host.Launcher
	// Loader defaults to a file loader with the XDG artwork cache.
	Loader artwork.Loader
}

type transportStoppedMsg struct{ err error }

// Model is the root bubbletea model. It hosts the browse and error
// controllers above the mini playback bar.
type Model struct {
	logger      *zap.Logger
	activity    *Activity
	screen      *screen
	transport   *mpris.Transport
	browse      *controller.BrowseController
	errCtl      *controller.ErrorController
	bar         *minibar.Bar
	connector   *connector.Service
	appSelector *host.Intent

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// New wires the controllers to an MPRIS transport on opts.Bus.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	packages := opts.Packages
	if packages == nil {
		packages = desktop.NewPackageManager(logger)
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = desktop.NewLauncher(desktop.LauncherOptions{
			Packages: packages,
			Commands: commands(cfg),
			Logger:   logger,
		})
	}
	activity := NewActivity(packages, launcher)

	loader := opts.Loader
	if loader == nil {
		cache, err := artwork.NewCache("")
		if err != nil {
			logger.Warn("artwork cache disabled", zap.Error(err))
		}
		loader = artwork.NewFileLoader(activity, cache, logger)
	}

	transport := mpris.New(mpris.Options{
		Bus:        opts.Bus,
		Dispatcher: activity,
		Logger:     logger,
	})

	m := &Model{
		logger:      logger,
		activity:    activity,
		screen:      &screen{},
		transport:   transport,
		appSelector: appSelector(cfg),
	}

	deps := controller.Deps{
		Activity:    activity,
		Repo:        transport,
		Distraction: host.AttributeChecker{},
		Loader:      loader,
		AppSelector: m.appSelector,
		Options:     controller.OptionsFromConfig(cfg),
		Logger:      logger,
	}

	var err error
	m.browse, err = controller.NewBrowseController(deps, m.screen)
	if err != nil {
		return nil, fmt.Errorf("browse controller: %w", err)
	}
	m.browse.SetPlayHandler(transport.Play)

	m.bar = minibar.New(minibar.Options{Loader: loader, Background: true, Logger: logger})
	m.bar.SetModel(transport, activity, deps.Options.ArtSize)

	m.errCtl, err = controller.NewErrorController(deps, m.screen, m.bar.Visible())
	if err != nil {
		return nil, fmt.Errorf("error controller: %w", err)
	}
	m.screen.Show(m.browse.Layout())

	m.connector = connector.New(connector.Options{
		Notifier:  opts.Notifier,
		ViewModel: transport,
		Title:     cfg.GetNotificationTitle(),
		Logger:    logger,
	})

	transport.PrimaryMediaSource().Observe(activity, m.onSourceChanged)
	transport.BrowsingState().Observe(activity, m.onBrowsingState)

	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m, nil
}

func commands(cfg *config.Config) map[string]string {
	return map[string]string{
		host.ActionMediaSourceSelector:            cfg.AppSelector.Command,
		host.ActionDisplayAudioEffectControlPanel: cfg.Equalizer.Command,
	}
}

func appSelector(cfg *config.Config) *host.Intent {
	if !cfg.HasAppSelector() {
		return nil
	}
	return &host.Intent{Action: host.ActionMediaSourceSelector}
}

func (m *Model) onSourceChanged(src *media.Source) {
	m.browse.OnMediaSourceChanged(src)
	m.errCtl.OnMediaSourceChanged(src)
}

func (m *Model) onBrowsingState(state media.BrowsingState) {
	if _, ok := state.(media.Rejected); !ok {
		m.screen.Show(m.browse.Layout())
		return
	}

	var name string
	if src := state.MediaSource(); src != nil {
		name = src.DisplayName
	}
	m.showError(errmsg.FormatWith(errmsg.OpSourceConnect, name, errSourceRejected))
}

func (m *Model) showError(message string) {
	var (
		label  string
		action media.PendingAction
	)
	if m.appSelector != nil {
		label = selectorLabel
		action = host.NewPendingIntent(m.activity, *m.appSelector)
	}
	m.errCtl.SetError(message, label, action, false, true)
	m.screen.Show(m.errCtl.Layout())
}

func (m *Model) onTransportStopped(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	m.logger.Error("mpris transport stopped", zap.Error(err))
	m.showError(errmsg.Format(errmsg.OpSourceList, err))
}

// Init starts the lifecycle, the connector and the transport.
func (m *Model) Init() tea.Cmd {
	m.activity.lc.MoveTo(lifecycle.StateStarted)
	m.resume()
	m.connector.OnStartCommand(connectorStartID)
	return tea.Batch(m.activity.waitForPost(), m.runTransport())
}

func (m *Model) runTransport() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return transportStoppedMsg{err: m.transport.Run(ctx)}
	}
}

func (m *Model) resume() {
	m.activity.lc.MoveTo(lifecycle.StateResumed)
	if m.screen.Current() == m.errCtl.Layout() {
		m.errCtl.OnResume()
	}
}

func (m *Model) quit() tea.Cmd {
	m.cancel()
	m.activity.Finish()
	return tea.Quit
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case postedMsg:
		msg.fn()
		return m, m.activity.waitForPost()
	case transportStoppedMsg:
		m.onTransportStopped(msg.err)
	case tea.FocusMsg:
		m.resume()
	case tea.BlurMsg:
		m.activity.lc.MoveTo(lifecycle.StateStarted)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	layout, _ := m.screen.Current().(*Layout)
	if layout == nil {
		return nil
	}
	if msg.String() == "q" && !layout.Searching() {
		return m.quit()
	}
	if handled, cmd := layout.HandleKey(msg); handled {
		return cmd
	}

	switch m.screen.Current() {
	case m.browse.Layout():
		m.browse.HandleKey(msg)
	case m.errCtl.Layout():
		if msg.String() == "enter" {
			m.errCtl.Pane().ClickButton()
		}
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	bar := m.bar.Render(m.width)
	height := m.height
	if bar != "" {
		height -= minibar.Height
	}

	var body string
	if v := m.screen.Current(); v != nil {
		body = v.Render(m.width, max(height, 0))
	}
	if bar == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, bar)
}
