package usecase

import (
	"context"
	"errors"
	"time"

	"venue-scheduler/internal/data/entity"
	"venue-scheduler/internal/data/repository"
	"venue-scheduler/pkg/events"
	"venue-scheduler/pkg/lock"
	"venue-scheduler/pkg/scheduling"
	"venue-scheduler/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Hall     HallService
	Movie    MovieService
	Schedule ScheduleService
	Booking  BookingService
}

// Deps carries the collaborators shared by every service.
type Deps struct {
	Repo      *repository.Repository
	Config    *utils.Config
	Locker    lock.Locker
	Publisher events.Publisher
	Log       *zap.Logger
	Now       func() time.Time
}

func NewService(repo *repository.Repository, config *utils.Config, locker lock.Locker, publisher events.Publisher, log *zap.Logger) *Service {
	return newService(Deps{
		Repo:      repo,
		Config:    config,
		Locker:    locker,
		Publisher: publisher,
		Log:       log,
		Now:       time.Now,
	})
}

func newService(d Deps) *Service {
	if d.Locker == nil {
		d.Locker = lock.NopLocker{}
	}
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	return &Service{
		Hall:     NewHallService(d),
		Movie:    NewMovieService(d),
		Schedule: NewScheduleService(d),
		Booking:  NewBookingService(d),
	}
}

// clock resolves "now" and "today" in the venue's timezone.
type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(d Deps) clock {
	return clock{now: d.Now, loc: d.Config.App.Location()}
}

func (c clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is the venue-local calendar date as a UTC midnight value,
// comparable with DATE columns.
func (c clock) Today() time.Time {
	return scheduling.Date(c.Now())
}

// OccurrenceOpen reports whether the screening's occurrence on day has
// not ended yet. Past days are closed and future days open.
func (c clock) OccurrenceOpen(d *entity.ScheduleDetail, day time.Time) bool {
	now := c.Now()
	today := scheduling.Date(now)
	switch {
	case day.After(today):
		return true
	case day.Before(today):
		return false
	}
	return now.Before(d.Screening().OccurrenceOn(day, c.loc).End)
}

// publish runs after the write has committed. Broker failures are
// logged and dropped.
func publish(ctx context.Context, p events.Publisher, log *zap.Logger, routingKey string, payload any) {
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
		)
	}
}

// acquire takes the distributed lock so contention surfaces as ErrBusy.
// A lock backend outage does not block writes: the row lock taken inside
// the transaction still serializes them.
func acquire(ctx context.Context, l lock.Locker, log *zap.Logger, key string, ttl time.Duration) func() {
	release, err := l.Acquire(ctx, key, ttl)
	if err == nil {
		return release
	}
	if errors.Is(err, lock.ErrHeld) {
		return nil
	}
	log.Warn("Lock backend unavailable, relying on row lock",
		zap.Error(err),
		zap.String("key", key),
	)
	return func() {}
}

func busy() error {
	return &Error{Kind: ErrBusy, Message: "another request is updating this resource, try again", Cause: lock.ErrHeld}
}
