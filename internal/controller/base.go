// Package controller implements the content controllers of the media
// screen. Each controller owns a content region and the application bar
// installed around it.
package controller

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/config"
	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/appbar"
	"github.com/llehouerou/mediacenter/internal/ui/artwork"
	"github.com/llehouerou/mediacenter/internal/ui/menu"
)

// Options are the resource values the controllers read.
type Options struct {
	MaxTabs                     int
	UseSourceLogoForAppSelector bool
	ShowSoundSettings           bool
	ArtSize                     int
	BottomPadding               int
	DefaultTitle                string
	MenuFile                    string
}

// OptionsFromConfig extracts the controller options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxTabs:                     cfg.GetMaxTabs(),
		UseSourceLogoForAppSelector: cfg.UseSourceLogoForAppSelector,
		ShowSoundSettings:           cfg.ShowSoundSettings,
		ArtSize:                     cfg.GetArtSize(),
		BottomPadding:               cfg.GetBottomPadding(),
		DefaultTitle:                cfg.GetDefaultTitle(),
		MenuFile:                    cfg.MenuFile,
	}
}

// Deps are the collaborators shared by all controllers.
type Deps struct {
	Activity    host.Activity
	Repo        media.ItemsRepository
	Distraction host.DistractionChecker
	Loader      artwork.Loader
	// AppSelector is launched from the app selector menu item, nil for none.
	AppSelector *host.Intent
	Options     Options
	Logger      *zap.Logger
}

// settingsResolution is how the settings item opens the source's settings.
// At most one field is set.
type settingsResolution struct {
	action media.PendingAction
	intent *host.Intent
}

func (r settingsResolution) empty() bool {
	return r.action == nil && r.intent == nil
}

// Base holds what all content controllers share: the content view, the
// base layout around it and the application bar.
type Base struct {
	activity    host.Activity
	repo        media.ItemsRepository
	distraction host.DistractionChecker
	opts        Options
	logger      *zap.Logger

	container host.Container
	content   host.View
	layout    host.BaseLayout
	appBar    *appbar.AppBar

	settings settingsResolution
	stateSub *lifecycle.Subscription
	onState  func(media.BrowsingState)
}

// NewBase installs the base layout around content, builds the application
// bar, adds the layout to container and starts observing the browsing
// state.
func NewBase(deps Deps, container host.Container, content host.View) (*Base, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	distraction := deps.Distraction
	if distraction == nil {
		distraction = host.AttributeChecker{}
	}

	b := &Base{
		activity:    deps.Activity,
		repo:        deps.Repo,
		distraction: distraction,
		opts:        deps.Options,
		logger:      logger,
		container:   container,
		content:     content,
	}

	b.layout = deps.Activity.InstallBaseLayout(content)

	items, err := menu.LoadBrowse(deps.Options.MenuFile)
	if err != nil {
		return nil, err
	}
	b.appBar, err = appbar.New(appbar.Options{
		MaxTabs:                     deps.Options.MaxTabs,
		UseSourceLogoForAppSelector: deps.Options.UseSourceLogoForAppSelector,
		AppSelector:                 deps.AppSelector,
		MaxArtSize:                  deps.Options.ArtSize,
		Loader:                      deps.Loader,
		Logger:                      logger,
	}, b.layout.Toolbar(), deps.Activity, items)
	if err != nil {
		return nil, fmt.Errorf("build app bar: %w", err)
	}
	b.appBar.SetSearchSupported(false)
	b.appBar.SetHasEqualizer(false)
	b.setSettings(settingsResolution{}, false)

	container.AddView(b.layout)

	if deps.Repo != nil {
		b.stateSub = deps.Repo.BrowsingState().Observe(deps.Activity, b.browsingStateChanged)
	}
	return b, nil
}

// Release stops observing, restores the default bar listener and removes
// the layout from the container. The controller is unusable afterwards.
func (b *Base) Release() {
	b.stateSub.Release()
	b.onState = nil
	b.appBar.SetListener(nil)
	b.container.RemoveView(b.layout)
}

// AppBar returns the controller's application bar.
func (b *Base) AppBar() *appbar.AppBar { return b.appBar }

// Layout returns the base layout holding the content.
func (b *Base) Layout() host.BaseLayout { return b.layout }

// Content returns the content view.
func (b *Base) Content() host.View { return b.content }

// AppBarDefaultTitle returns the title shown for src.
func (b *Base) AppBarDefaultTitle(src *media.Source) string {
	if src != nil {
		return src.DisplayName
	}
	return b.opts.DefaultTitle
}

// OnMediaSourceChanged updates the logo, search icon and equalizer for src.
func (b *Base) OnMediaSourceChanged(src *media.Source) {
	var icon media.Icon
	if src != nil {
		icon = src.CroppedIcon
	}
	b.appBar.SetLogo(icon)
	b.appBar.SetSearchIcon(icon)
	b.appBar.SetHasEqualizer(b.opts.ShowSoundSettings)
}

// setStateHook runs fn after the base handling of every browsing state
// and once now with the current state, if any.
func (b *Base) setStateHook(fn func(media.BrowsingState)) {
	b.onState = fn
	if b.repo == nil {
		return
	}
	if state, ok := b.repo.BrowsingState().Value(); ok && !b.stateSub.Released() {
		fn(state)
	}
}

func (b *Base) browsingStateChanged(state media.BrowsingState) {
	b.OnBrowsingStateChanged(state)
	if b.onState != nil {
		b.onState(state)
	}
}

// OnBrowsingStateChanged resolves the source settings when connected and
// clears them otherwise.
func (b *Base) OnBrowsingStateChanged(state media.BrowsingState) {
	if state == nil {
		b.logger.Warn("null browsing state")
		b.setSettings(settingsResolution{}, false)
		return
	}

	connected, ok := state.(media.Connected)
	if !ok {
		b.setSettings(settingsResolution{}, false)
		return
	}
	b.resolveSettings(connected)
}

func (b *Base) resolveSettings(state media.Connected) {
	if state.Browser != nil {
		if action := state.Browser.SettingsAction(); action != nil {
			b.setSettings(settingsResolution{action: action}, true)
			return
		}
	}

	if src := state.Source; src != nil && src.PackageName != "" {
		prefs := host.Intent{Action: host.ActionApplicationPreferences, Package: src.PackageName}
		info := b.activity.PackageManager().ResolveActivity(prefs)
		if info != nil && info.Activity != nil && info.Activity.Exported {
			explicit := host.Intent{
				Action:  prefs.Action,
				Package: info.Activity.Package,
				Class:   info.Activity.Name,
			}
			b.setSettings(settingsResolution{intent: &explicit},
				b.distraction.IsDistractionOptimized(info.Activity))
			return
		}
	}

	b.setSettings(settingsResolution{}, false)
}

// setSettings replaces the resolution and mirrors it on the bar.
func (b *Base) setSettings(res settingsResolution, distractionOptimized bool) {
	b.settings = res
	b.appBar.SetHasSettings(!res.empty())
	if !res.empty() {
		b.appBar.SetSettingsDistractionOptimized(distractionOptimized)
	}
}

// HasSettingsResolution reports whether the settings item can open
// anything.
func (b *Base) HasSettingsResolution() bool { return !b.settings.empty() }

func (b *Base) openSettings() {
	res := b.settings
	var err error
	switch {
	case res.action != nil:
		err = res.action.Send()
	case res.intent != nil:
		err = b.activity.StartActivity(*res.intent)
	default:
		return
	}
	if err != nil {
		b.logger.Error("onSettingsSelection", zap.Error(err))
	}
}

func (b *Base) openEqualizer() {
	intent := host.Intent{Action: host.ActionDisplayAudioEffectControlPanel}
	// For result so the panel can see which package launched it.
	if err := b.activity.StartActivityForResult(intent, 0); err != nil {
		b.logger.Error("onEqualizerSelection", zap.Error(err))
	}
}

// BasicListener opens the source settings and the equalizer.
type BasicListener struct {
	appbar.NopListener
	base *Base
}

// NewBasicListener returns the listener used when a controller has no
// browse behavior.
func (b *Base) NewBasicListener() BasicListener { return BasicListener{base: b} }

func (l BasicListener) OnSettingsSelection()  { l.base.openSettings() }
func (l BasicListener) OnEqualizerSelection() { l.base.openEqualizer() }
