package controller

import (
	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

type fakeLayout struct {
	content host.View
	tb      *toolbar.Toolbar
}

func (l *fakeLayout) Render(width, height int) string { return l.content.Render(width, height) }
func (l *fakeLayout) Toolbar() toolbar.Controller     { return l.tb }

type fakePackageManager map[string]*host.ResolveInfo

func (pm fakePackageManager) ResolveActivity(intent host.Intent) *host.ResolveInfo {
	if intent.Action != host.ActionApplicationPreferences {
		return nil
	}
	return pm[intent.Package]
}

type fakeActivity struct {
	lc        *lifecycle.Lifecycle
	pm        fakePackageManager
	layout    *fakeLayout
	started   []host.Intent
	forResult []host.Intent
	startErr  error
}

func newFakeActivity() *fakeActivity {
	return &fakeActivity{lc: lifecycle.New(), pm: fakePackageManager{}}
}

func (a *fakeActivity) Lifecycle() *lifecycle.Lifecycle     { return a.lc }
func (a *fakeActivity) Post(fn func())                      { fn() }
func (a *fakeActivity) PackageManager() host.PackageManager { return a.pm }

func (a *fakeActivity) StartActivity(intent host.Intent) error {
	a.started = append(a.started, intent)
	return a.startErr
}

func (a *fakeActivity) StartActivityForResult(intent host.Intent, _ int) error {
	a.forResult = append(a.forResult, intent)
	return a.startErr
}

func (a *fakeActivity) InstallBaseLayout(content host.View) host.BaseLayout {
	a.layout = &fakeLayout{content: content, tb: toolbar.New()}
	return a.layout
}

func (a *fakeActivity) tb() *toolbar.Toolbar { return a.layout.tb }

// menuItem returns the installed menu item with id, or nil.
func (a *fakeActivity) menuItem(id string) *toolbar.MenuItem {
	for _, item := range a.layout.tb.MenuItems() {
		if item.ID == id {
			return item
		}
	}
	return nil
}

type fakeContainer struct {
	views []host.View
}

func (c *fakeContainer) AddView(v host.View) { c.views = append(c.views, v) }

func (c *fakeContainer) RemoveView(v host.View) {
	for i, view := range c.views {
		if view == v {
			c.views = append(c.views[:i], c.views[i+1:]...)
			return
		}
	}
}

type fakeRepo struct {
	state *lifecycle.Observable[media.BrowsingState]
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{state: lifecycle.NewObservable[media.BrowsingState]()}
}

func (r *fakeRepo) BrowsingState() *lifecycle.Observable[media.BrowsingState] { return r.state }

type fakeBrowser struct {
	settings media.PendingAction
	search   bool
	root     []media.Item
	children map[string][]media.Item
}

func (b *fakeBrowser) SettingsAction() media.PendingAction { return b.settings }
func (b *fakeBrowser) SearchSupported() bool               { return b.search }
func (b *fakeBrowser) RootItems() []media.Item             { return b.root }
func (b *fakeBrowser) Children(id string) []media.Item     { return b.children[id] }

type countingAction struct {
	sends int
	err   error
}

func (a *countingAction) Send() error {
	a.sends++
	return a.err
}

func (a *countingAction) CreatorPackage() string { return "org.example.player" }
