package desktop

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/host"
)

// Runner starts a command line without waiting for it to exit.
type Runner func(args []string) error

// LauncherOptions configures a Launcher.
type LauncherOptions struct {
	Packages *PackageManager
	// Commands maps implicit intent actions to command lines, such as the
	// media source selector or the equalizer.
	Commands map[string]string
	Runner   Runner
	Logger   *zap.Logger
}

// Launcher starts activities by running the programs of desktop actions or
// configured commands.
type Launcher struct {
	packages *PackageManager
	commands map[string]string
	run      Runner
	logger   *zap.Logger
}

var _ host.Launcher = (*Launcher)(nil)

// NewLauncher creates a launcher.
func NewLauncher(opts LauncherOptions) *Launcher {
	l := &Launcher{
		packages: opts.Packages,
		commands: opts.Commands,
		run:      opts.Runner,
		logger:   opts.Logger,
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	if l.run == nil {
		l.run = startDetached
	}
	return l
}

// StartActivity runs the program that handles intent.
func (l *Launcher) StartActivity(intent host.Intent) error {
	args, err := l.commandFor(intent)
	if err != nil {
		return err
	}
	l.logger.Info("starting activity",
		zap.Stringer("intent", intent),
		zap.Strings("args", args))
	if err := l.run(args); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}
	return nil
}

// StartActivityForResult runs the program that handles intent. Results are
// not delivered back; the request code is only logged.
func (l *Launcher) StartActivityForResult(intent host.Intent, requestCode int) error {
	l.logger.Debug("activity for result",
		zap.Stringer("intent", intent),
		zap.Int("request_code", requestCode))
	return l.StartActivity(intent)
}

func (l *Launcher) commandFor(intent host.Intent) ([]string, error) {
	var line string
	switch {
	case intent.IsExplicit():
		line = l.actionExec(intent.Package, intent.Class)
	case l.commands[intent.Action] != "":
		line = l.commands[intent.Action]
	default:
		if info := l.resolve(intent); info != nil {
			line = l.actionExec(info.Activity.Package, info.Activity.Name)
		}
	}

	args := CommandLine(line)
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: %w", intent, host.ErrActivityNotFound)
	}
	return args, nil
}

func (l *Launcher) resolve(intent host.Intent) *host.ResolveInfo {
	if l.packages == nil {
		return nil
	}
	return l.packages.ResolveActivity(intent)
}

func (l *Launcher) actionExec(pkg, actionID string) string {
	if l.packages == nil {
		return ""
	}
	entry, ok := l.packages.Entry(pkg)
	if !ok {
		return ""
	}
	return entry.Actions[actionID].Exec
}

func startDetached(args []string) error {
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
