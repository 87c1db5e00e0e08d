package host

import (
	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/ui/toolbar"
)

// View is a renderable region of the screen.
type View interface {
	Render(width, height int) string
}

// Container holds the content views of the screen.
type Container interface {
	AddView(v View)
	RemoveView(v View)
}

// BaseLayout wraps a content view with a host-owned toolbar.
type BaseLayout interface {
	View
	Toolbar() toolbar.Controller
}

// Dispatcher runs functions on the UI goroutine.
type Dispatcher interface {
	Post(fn func())
}

// Activity is the host screen the controllers live in.
type Activity interface {
	lifecycle.Owner
	Launcher
	Dispatcher
	PackageManager() PackageManager
	// InstallBaseLayout wraps content with the base layout and returns it.
	InstallBaseLayout(content View) BaseLayout
}
