// Package schedule drives the daily reminder notification.
//
// A cron entry ticks once per minute. On each tick the current JST
// hour and minute are compared against the configured notice time; on a
// match the event list is read, the payload is built, and the dispatcher
// is invoked at most once for that calendar minute. Dispatch failures
// are logged and the loop keeps running; the next attempt happens at the
// next matching minute.
package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"remindd/internal/digest"
	"remindd/internal/event"
	"remindd/internal/notify"
)

// DefaultSendTimeout bounds a single dispatch so a hung transport
// cannot stall the next tick.
const DefaultSendTimeout = 30 * time.Second

// minuteMarker is the granularity of the fired-once guard.
const minuteMarker = "2006-01-02T15:04"

// Options configures a Scheduler. Hour and Minute come from the
// validated config; construction does not re-parse the notice time.
type Options struct {
	Store            *event.Store
	Dispatcher       notify.Dispatcher
	ChannelID        string
	SuppressEveryone bool
	Hour             int
	Minute           int
	SendTimeout      time.Duration
	Now              func() time.Time
	Logger           *zap.Logger
}

// Scheduler owns the tick loop. It is immutable after construction
// except for the last-fired marker, which is guarded by mu.
type Scheduler struct {
	store            *event.Store
	dispatcher       notify.Dispatcher
	channelID        string
	suppressEveryone bool
	hour             int
	minute           int
	sendTimeout      time.Duration
	now              func() time.Time
	baseLog          *zap.Logger
	log              *zap.Logger

	cron *cron.Cron

	mu        sync.Mutex
	lastFired string
}

// New creates a Scheduler from opts.
func New(opts Options) *Scheduler {
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = DefaultSendTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Scheduler{
		store:            opts.Store,
		dispatcher:       opts.Dispatcher,
		channelID:        opts.ChannelID,
		suppressEveryone: opts.SuppressEveryone,
		hour:             opts.Hour,
		minute:           opts.Minute,
		sendTimeout:      opts.SendTimeout,
		now:              opts.Now,
		baseLog:          opts.Logger,
		log:              opts.Logger.Named("schedule"),
	}
}

// Start begins the minute tick in the background.
func (s *Scheduler) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("* * * * *", s.tick); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler started",
		zap.Int("hour", s.hour),
		zap.Int("minute", s.minute))
	return nil
}

// Stop halts the tick loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) tick() {
	s.runAt(s.now())
}

// runAt performs one tick at the given instant. It reports whether the
// notification fired (the dispatch was attempted). Within one calendar
// minute matching the notice time it fires exactly once: the comparison
// is edge-triggered on the tick, and the lastFired marker suppresses
// duplicates even if ticks ever arrive more often than once a minute.
func (s *Scheduler) runAt(now time.Time) bool {
	now = now.In(event.JST)
	if now.Hour() != s.hour || now.Minute() != s.minute {
		return false
	}

	marker := now.Format(minuteMarker)
	s.mu.Lock()
	if s.lastFired == marker {
		s.mu.Unlock()
		return false
	}
	s.lastFired = marker
	s.mu.Unlock()

	s.log.Info("notice time reached", zap.String("minute", marker))

	events, err := s.store.Read()
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			s.log.Warn("events file missing, nothing to announce", zap.Error(err))
		} else {
			s.log.Error("failed to read events", zap.Error(err))
		}
		return true
	}

	payload := digest.Build(events, event.DateOf(now), s.baseLog)
	if len(payload.Fields) == 0 {
		s.log.Info("no upcoming events, skipping notification")
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	if err := s.dispatcher.Send(ctx, s.channelID, payload, s.suppressEveryone); err != nil {
		s.log.Error("dispatch failed, will retry at next notice time", zap.Error(err))
	}
	return true
}
