// Package monitoring holds the background jobs of the server. The only one
// today is the session reaper, which enforces token expiry at the storage
// layer.
package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/taskboard/taskboard-be/internal/storage"
)

const eventRetention = 30 * 24 * time.Hour

// Reaper periodically purges expired session rows and stale activity
// events on a cron-expression schedule.
type Reaper struct {
	store    storage.Store
	schedule cron.Schedule
	done     chan bool
}

// NewReaper creates a reaper from a standard cron expression.
func NewReaper(store storage.Store, cronExpr string) (*Reaper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Reaper{
		store:    store,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the reaper loop. It purges once immediately, then sleeps
// until each next cron activation.
func (r *Reaper) Run() {
	log.Info().Msg("Starting session reaper...")
	r.reap()

	for {
		next := r.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-r.done:
			timer.Stop()
			log.Info().Msg("Stopping session reaper.")
			return
		case <-timer.C:
			r.reap()
		}
	}
}

// Stop halts the reaper.
func (r *Reaper) Stop() {
	r.done <- true
}

// reap performs one purge pass.
func (r *Reaper) reap() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()

	sessions, err := r.store.DeleteExpiredSessions(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("Reaper: failed to purge expired sessions")
	}

	events, err := r.store.DeleteEventsBefore(ctx, now.Add(-eventRetention))
	if err != nil {
		log.Error().Err(err).Msg("Reaper: failed to purge stale events")
	}

	if sessions > 0 || events > 0 {
		log.Info().Int64("sessions", sessions).Int64("events", events).Msg("Reaper purge complete")
	}
}
