package toolbar

import "github.com/llehouerou/mediacenter/internal/media"

// UxRestrictions is a bitmask of driving restrictions. A menu item is
// disabled while any of its restrictions is active.
type UxRestrictions int

const (
	// UxRestrictionsBaseline means usable at all times.
	UxRestrictionsBaseline UxRestrictions = 0
	// UxRestrictionsNoSetup blocks setup and settings screens.
	UxRestrictionsNoSetup UxRestrictions = 128
)

// MenuItem is an action shown on the right side of the toolbar.
type MenuItem struct {
	ID    string
	Title string
	// Key is the keyboard shortcut that clicks the item.
	Key string

	icon           media.Icon
	visible        bool
	restrictions   UxRestrictions
	onClick        func(*MenuItem)
	onChange       func()
	showsIconTitle bool
}

// NewMenuItem creates a visible item.
func NewMenuItem(id, title, key string, icon media.Icon) *MenuItem {
	return &MenuItem{ID: id, Title: title, Key: key, icon: icon, visible: true}
}

// SetVisible shows or hides the item.
func (m *MenuItem) SetVisible(visible bool) {
	if m.visible == visible {
		return
	}
	m.visible = visible
	m.changed()
}

// IsVisible reports whether the item is shown.
func (m *MenuItem) IsVisible() bool { return m.visible }

// SetIcon replaces the item's icon.
func (m *MenuItem) SetIcon(icon media.Icon) {
	if m.icon == icon {
		return
	}
	m.icon = icon
	m.changed()
}

// Icon returns the item's icon.
func (m *MenuItem) Icon() media.Icon { return m.icon }

// SetShowIconAndTitle draws the title next to the icon.
func (m *MenuItem) SetShowIconAndTitle(show bool) { m.showsIconTitle = show }

// ShowsIconAndTitle reports whether the title is drawn next to the icon.
func (m *MenuItem) ShowsIconAndTitle() bool { return m.showsIconTitle }

// SetUxRestrictions sets the restrictions under which the item is disabled.
func (m *MenuItem) SetUxRestrictions(r UxRestrictions) {
	if m.restrictions == r {
		return
	}
	m.restrictions = r
	m.changed()
}

// UxRestrictions returns the item's restrictions.
func (m *MenuItem) UxRestrictions() UxRestrictions { return m.restrictions }

// IsRestricted reports whether the item is disabled under active.
func (m *MenuItem) IsRestricted(active UxRestrictions) bool {
	return m.restrictions&active != 0
}

// SetOnClickListener replaces the click handler.
func (m *MenuItem) SetOnClickListener(fn func(*MenuItem)) { m.onClick = fn }

// PerformClick invokes the click handler of a visible item.
func (m *MenuItem) PerformClick() bool {
	if !m.visible || m.onClick == nil {
		return false
	}
	m.onClick(m)
	return true
}

func (m *MenuItem) setChangeListener(fn func()) { m.onChange = fn }

func (m *MenuItem) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}
