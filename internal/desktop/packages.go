package desktop

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/host"
)

// preferenceActions are the desktop action IDs that open an application's
// settings, in order of preference.
var preferenceActions = []string{"Preferences", "Settings"}

// PackageManager resolves intents to desktop entries. A package name is a
// desktop file ID.
type PackageManager struct {
	dirs   []string
	logger *zap.Logger
}

var _ host.PackageManager = (*PackageManager)(nil)

// NewPackageManager searches dirs for desktop entries, or the XDG
// application directories when dirs is empty.
func NewPackageManager(logger *zap.Logger, dirs ...string) *PackageManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(dirs) == 0 {
		dirs = xdg.ApplicationDirs
	}
	return &PackageManager{dirs: dirs, logger: logger}
}

// Entry returns the first entry for pkg found in the search directories.
func (pm *PackageManager) Entry(pkg string) (*Entry, bool) {
	if pkg == "" || strings.ContainsRune(pkg, filepath.Separator) {
		return nil, false
	}
	name := pkg + ".desktop"
	for _, dir := range pm.dirs {
		path := filepath.Join(dir, name)
		entry, err := ParseFile(path)
		if err == nil {
			return entry, true
		}
		if !errors.Is(err, fs.ErrNotExist) {
			pm.logger.Warn("skipping desktop entry",
				zap.String("path", path),
				zap.Error(err))
		}
	}
	return nil, false
}

// ResolveActivity maps an explicit intent to the named desktop action and
// an application preferences intent to the entry's settings action.
func (pm *PackageManager) ResolveActivity(intent host.Intent) *host.ResolveInfo {
	entry, ok := pm.Entry(intent.Package)
	if !ok {
		return nil
	}

	var action Action
	switch {
	case intent.IsExplicit():
		action, ok = entry.Actions[intent.Class]
	case intent.Action == host.ActionApplicationPreferences:
		action, ok = preferencesAction(entry)
	default:
		return nil
	}
	if !ok {
		return nil
	}

	return &host.ResolveInfo{
		Activity: &host.ActivityInfo{
			Package:              entry.ID,
			Name:                 action.ID,
			Exported:             entry.Exported(),
			DistractionOptimized: entry.DistractionOptimized,
		},
	}
}

func preferencesAction(entry *Entry) (Action, bool) {
	ids := make([]string, 0, len(entry.Actions))
	for id := range entry.Actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, want := range preferenceActions {
		for _, id := range ids {
			if strings.EqualFold(id, want) {
				return entry.Actions[id], true
			}
		}
	}
	return Action{}, false
}
