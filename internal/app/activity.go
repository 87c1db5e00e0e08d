// Package app hosts the media screen in a bubbletea program.
package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/lifecycle"
)

// Activity is the host screen the controllers live in. Posted functions
// run on the bubbletea loop.
type Activity struct {
	lc       *lifecycle.Lifecycle
	packages host.PackageManager
	launcher host.Launcher

	posts    chan func()
	done     chan struct{}
	doneOnce sync.Once
}

var _ host.Activity = (*Activity)(nil)

// NewActivity creates an activity in the Created state.
func NewActivity(packages host.PackageManager, launcher host.Launcher) *Activity {
	lc := lifecycle.New()
	lc.MoveTo(lifecycle.StateCreated)
	return &Activity{
		lc:       lc,
		packages: packages,
		launcher: launcher,
		posts:    make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

func (a *Activity) Lifecycle() *lifecycle.Lifecycle     { return a.lc }
func (a *Activity) PackageManager() host.PackageManager { return a.packages }

func (a *Activity) StartActivity(intent host.Intent) error {
	return a.launcher.StartActivity(intent)
}

func (a *Activity) StartActivityForResult(intent host.Intent, requestCode int) error {
	return a.launcher.StartActivityForResult(intent, requestCode)
}

// InstallBaseLayout wraps content with a toolbar.
func (a *Activity) InstallBaseLayout(content host.View) host.BaseLayout {
	return newLayout(content)
}

// Post queues fn for the UI loop. It blocks while the queue is full and
// drops fn once the activity is finished.
func (a *Activity) Post(fn func()) {
	if a.finished() {
		return
	}
	select {
	case a.posts <- fn:
	case <-a.done:
	}
}

// Finish destroys the lifecycle and stops accepting posts.
func (a *Activity) Finish() {
	a.doneOnce.Do(func() { close(a.done) })
	a.lc.Destroy()
}

func (a *Activity) finished() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

// postedMsg carries a posted function into Update.
type postedMsg struct{ fn func() }

func (a *Activity) waitForPost() tea.Cmd {
	return func() tea.Msg {
		if a.finished() {
			return nil
		}
		select {
		case fn := <-a.posts:
			return postedMsg{fn: fn}
		case <-a.done:
			return nil
		}
	}
}
