// Package connector readies the playback session of the selected source
// when a user session starts, then stops.
package connector

import (
	"go.uber.org/zap"

	"github.com/llehouerou/mediacenter/internal/lifecycle"
	"github.com/llehouerou/mediacenter/internal/media"
	"github.com/llehouerou/mediacenter/internal/notify"
)

// musicIcon is the freedesktop icon name of the foreground notification.
const musicIcon = "audio-x-generic"

// Options configure a Service.
type Options struct {
	Notifier  notify.Notifier
	ViewModel media.PlaybackViewModel
	// Title of the foreground notification.
	Title  string
	Logger *zap.Logger
}

// Service is a one-shot worker. Every start observes the playback
// controller; the first controller that shows up is prepared and the
// service stops. A stopped service ignores further starts.
type Service struct {
	lc       *lifecycle.Lifecycle
	notifier notify.Notifier
	vm       media.PlaybackViewModel
	title    string
	logger   *zap.Logger

	notificationID uint32
	lastStartID    int
	prepared       media.PlaybackController
	done           chan struct{}
}

// New creates a service that has not been started.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	lc := lifecycle.New()
	lc.MoveTo(lifecycle.StateCreated)
	return &Service{
		lc:       lc,
		notifier: opts.Notifier,
		vm:       opts.ViewModel,
		title:    opts.Title,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Lifecycle makes the service the owner of its observations.
func (s *Service) Lifecycle() *lifecycle.Lifecycle { return s.lc }

// Done is closed once the service has stopped.
func (s *Service) Done() <-chan struct{} { return s.done }

// Stopped reports whether the service has stopped.
func (s *Service) Stopped() bool { return s.lc.IsDestroyed() }

// OnStartCommand handles one start request.
func (s *Service) OnStartCommand(startID int) {
	if s.Stopped() {
		s.logger.Debug("start ignored, service stopped", zap.Int("start_id", startID))
		return
	}
	s.lastStartID = startID
	s.lc.MoveTo(lifecycle.StateStarted)

	s.startForeground()

	s.vm.Controller().Observe(s, func(c media.PlaybackController) {
		if c == nil {
			return
		}
		s.prepare(c)
		s.StopSelf(startID)
	})
}

func (s *Service) startForeground() {
	if s.notifier == nil {
		return
	}
	id, err := s.notifier.Notify(notify.Notification{
		Title:      s.title,
		Icon:       musicIcon,
		Timeout:    0,
		ReplacesID: s.notificationID,
		Urgency:    notify.UrgencyLow,
		Category:   notify.CategoryService,
		Resident:   true,
	})
	if err != nil {
		s.logger.Warn("foreground notification failed", zap.Error(err))
		return
	}
	if id != 0 {
		s.notificationID = id
	}
}

// prepare calls Prepare once per controller.
func (s *Service) prepare(c media.PlaybackController) {
	if s.prepared == c {
		return
	}
	s.prepared = c
	if err := c.Prepare(); err != nil {
		s.logger.Error("prepare failed", zap.Error(err))
		return
	}
	s.logger.Info("playback session prepared")
}

// StopSelf stops the service if startID is the most recent start. It
// reports whether the service stopped.
func (s *Service) StopSelf(startID int) bool {
	if s.Stopped() || startID != s.lastStartID {
		return false
	}
	if s.notifier != nil && s.notificationID != 0 {
		if err := s.notifier.Close(s.notificationID); err != nil {
			s.logger.Warn("close notification failed", zap.Error(err))
		}
	}
	s.notificationID = 0
	s.lc.Destroy()
	close(s.done)
	return true
}
