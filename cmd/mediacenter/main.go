package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/app"
	"github.com/llehouerou/mediacenter/internal/config"
	"github.com/llehouerou/mediacenter/internal/connector"
	"github.com/llehouerou/mediacenter/internal/errmsg"
	"github.com/llehouerou/mediacenter/internal/host"
	"github.com/llehouerou/mediacenter/internal/icons"
	"github.com/llehouerou/mediacenter/internal/logging"
	"github.com/llehouerou/mediacenter/internal/mpris"
	"github.com/llehouerou/mediacenter/internal/notify"
)

// Version is set at build time via -ldflags
var Version = "dev"

const prepareStartID = 1

func main() {
	var (
		showVersion bool
		prepareOnly bool
	)
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&prepareOnly, "prepare", false, "prepare the selected player for playback and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("mediacenter %s\n", Version)
		return
	}

	if err := run(prepareOnly); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(prepareOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	icons.Init(cfg.Icons)

	bus, err := mpris.NewSessionBus()
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	defer bus.Close()

	notifier, err := notify.New()
	if err != nil {
		logger.Warn("notifications disabled", zap.Error(err))
		notifier = notify.Nop{}
	}

	if prepareOnly {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return prepare(ctx, cfg, logger, bus, notifier)
	}

	m, err := app.New(app.Options{
		Config:   cfg,
		Logger:   logger,
		Bus:      bus,
		Notifier: notifier,
	})
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// prepare runs the connector without a screen: it waits for the selected
// player's controller, prepares it and returns once the player calls have
// gone out on the bus.
func prepare(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	bus mpris.Bus,
	notifier notify.Notifier,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := host.NewLoop()
	transport := mpris.New(mpris.Options{Bus: bus, Dispatcher: loop, Logger: logger})
	svc := connector.New(connector.Options{
		Notifier:  notifier,
		ViewModel: transport,
		Title:     cfg.GetNotificationTitle(),
		Logger:    logger,
	})

	errc := make(chan error, 1)
	go func() {
		errc <- transport.Run(ctx)
		loop.Quit()
	}()
	go func() {
		select {
		case <-svc.Done():
		case <-ctx.Done():
		}
		loop.Quit()
	}()

	loop.Post(func() { svc.OnStartCommand(prepareStartID) })
	runErr := loop.Run(ctx)

	prepared := svc.Stopped()
	if prepared {
		if err := transport.Flush(ctx); err != nil {
			logger.Warn("player calls not flushed", zap.Error(err))
		}
	}
	cancel()
	transportErr := <-errc

	if prepared {
		logger.Info("playback prepared")
		return nil
	}
	if transportErr != nil && !errors.Is(transportErr, context.Canceled) {
		return errmsg.Wrap(errmsg.OpPrepare, transportErr)
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
