package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-scheduler/internal/data/entity"
	"venue-scheduler/internal/data/repository"
	"venue-scheduler/internal/dto/request"
	"venue-scheduler/internal/dto/response"
	"venue-scheduler/pkg/events"
	"venue-scheduler/pkg/lock"
	"venue-scheduler/pkg/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	GetScheduleByID(ctx context.Context, scheduleID string) (*response.ScheduleResponse, error)
	// GetShowSelection groups the screenings on date by title. An empty
	// date means tomorrow.
	GetShowSelection(ctx context.Context, date string) ([]response.ShowSelection, error)

	CreateSchedule(ctx context.Context, req *request.ScheduleRequest) (*response.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, scheduleID string, req *request.ScheduleUpdateRequest) (*response.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

type scheduleService struct {
	repo       *repository.Repository
	locker     lock.Locker
	publisher  events.Publisher
	checker    *scheduling.Checker
	clock      clock
	lockTTL    time.Duration
	windowDays int
	log        *zap.Logger
}

func NewScheduleService(d Deps) ScheduleService {
	loc := d.Config.App.Location()
	return &scheduleService{
		repo:      d.Repo,
		locker:    d.Locker,
		publisher: d.Publisher,
		checker: scheduling.NewChecker(
			scheduling.WithLocation(loc),
			scheduling.WithMidnightRollover(d.Config.Schedule.StrictMidnight),
		),
		clock:      newClock(d),
		lockTTL:    d.Config.Redis.LockTTL,
		windowDays: d.Config.Schedule.BookingWindowDays,
		log:        d.Log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) GetScheduleByID(ctx context.Context, scheduleID string) (*response.ScheduleResponse, error) {
	id, err := parseID("schedule", scheduleID)
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.Schedule.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule %s: %w", scheduleID, err)
	}
	if detail == nil {
		return nil, notFound("schedule %s not found", scheduleID)
	}

	resp := response.ScheduleToResponse(detail)
	return &resp, nil
}

func (s *scheduleService) GetShowSelection(ctx context.Context, date string) ([]response.ShowSelection, error) {
	today := s.clock.Today()
	day := today.AddDate(0, 0, 1)
	if date != "" {
		d, err := parseDate("date", date)
		if err != nil {
			return nil, err
		}
		day = d
	}

	last := today.AddDate(0, 0, s.windowDays)
	if day.Before(today) || day.After(last) {
		return nil, invalid("date must be between %s and %s", scheduling.FormatDate(today), scheduling.FormatDate(last))
	}

	details, err := s.repo.Schedule.FindDetailsByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("get schedules on %s: %w", scheduling.FormatDate(day), err)
	}

	selection := make([]response.ShowSelection, 0)
	index := make(map[uuid.UUID]int)
	for _, d := range details {
		if !s.clock.OccurrenceOpen(d, day) {
			continue
		}
		i, ok := index[d.MovieID]
		if !ok {
			i = len(selection)
			index[d.MovieID] = i
			selection = append(selection, response.ShowSelection{
				MovieID:    d.MovieID.String(),
				MovieTitle: d.MovieTitle,
				Date:       scheduling.FormatDate(day),
			})
		}
		selection[i].Shows = append(selection[i].Shows, response.ScheduleToResponse(d))
	}

	return selection, nil
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *request.ScheduleRequest) (*response.ScheduleResponse, error) {
	schedule, err := s.scheduleFromRequest(req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	schedule.ID = uuid.New()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	detail, err := s.admit(ctx, schedule, false)
	if err != nil {
		return nil, err
	}

	s.log.Info("Schedule admitted",
		zap.String("schedule_id", detail.ID.String()),
		zap.String("hall", detail.HallName),
		zap.String("movie", detail.MovieTitle),
		zap.Stringer("show_time", detail.ShowTime),
	)
	publish(ctx, s.publisher, s.log, events.ScheduleAdmitted, scheduleEvent(detail, now))

	resp := response.ScheduleToResponse(detail)
	return &resp, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, scheduleID string, req *request.ScheduleUpdateRequest) (*response.ScheduleResponse, error) {
	id, err := parseID("schedule", scheduleID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.scheduleFromRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule %s: %w", scheduleID, err)
	}
	if existing == nil {
		return nil, notFound("schedule %s not found", scheduleID)
	}

	now := s.clock.Now().UTC()
	schedule.ID = existing.ID
	schedule.CreatedAt = existing.CreatedAt
	schedule.UpdatedAt = now

	detail, err := s.admit(ctx, schedule, true)
	if err != nil {
		return nil, err
	}

	s.log.Info("Schedule updated", zap.String("schedule_id", scheduleID))
	publish(ctx, s.publisher, s.log, events.ScheduleUpdated, scheduleEvent(detail, now))

	resp := response.ScheduleToResponse(detail)
	return &resp, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	id, err := parseID("schedule", scheduleID)
	if err != nil {
		return err
	}

	existing, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get schedule %s: %w", scheduleID, err)
	}
	if existing == nil {
		return notFound("schedule %s not found", scheduleID)
	}

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete schedule %s: %w", scheduleID, err)
	}

	return nil
}

func (s *scheduleService) scheduleFromRequest(req *request.ScheduleRequest) (*entity.Schedule, error) {
	movieID, err := parseID("movie", req.MovieID)
	if err != nil {
		return nil, err
	}
	hallID, err := parseID("hall", req.HallID)
	if err != nil {
		return nil, err
	}
	showTime, err := scheduling.ParseTimeOfDay(req.ShowTime)
	if err != nil {
		return nil, invalid("show_time must be a time in HH:MM format")
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, rejected(ErrValidation, scheduling.ErrInvalidRange)
	}
	if req.Price < 0 {
		return nil, invalid("price cannot be negative")
	}

	return &entity.Schedule{
		MovieID:   movieID,
		HallID:    hallID,
		ShowTime:  showTime,
		StartDate: start,
		EndDate:   end,
		Price:     req.Price,
	}, nil
}

// admit runs the conflict check and the write as one unit per hall: the
// hall row stays locked from the snapshot read until commit, so two
// admissions into the same hall can never both pass against a stale
// snapshot. The movie row is share-locked for the same span so its
// duration cannot be extended underneath the check.
func (s *scheduleService) admit(ctx context.Context, schedule *entity.Schedule, update bool) (*entity.ScheduleDetail, error) {
	release := acquire(ctx, s.locker, s.log, lock.HallKey(schedule.HallID), s.lockTTL)
	if release == nil {
		return nil, busy()
	}
	defer release()

	var detail *entity.ScheduleDetail
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		hall, err := tx.Hall.LockByID(ctx, schedule.HallID)
		if err != nil {
			return fmt.Errorf("lock hall %s: %w", schedule.HallID, err)
		}
		if hall == nil {
			return notFound("hall %s not found", schedule.HallID)
		}

		movie, err := tx.Movie.ShareByID(ctx, schedule.MovieID)
		if err != nil {
			return fmt.Errorf("lock movie %s: %w", schedule.MovieID, err)
		}
		if movie == nil {
			return notFound("movie %s not found", schedule.MovieID)
		}

		// One extra day each side so occurrences crossing midnight are
		// in the snapshot when rollover checking is on.
		rows, err := tx.Schedule.FindDetailsByHallInRange(ctx, hall.ID,
			schedule.StartDate.AddDate(0, 0, -1),
			schedule.EndDate.AddDate(0, 0, 1),
		)
		if err != nil {
			return fmt.Errorf("read hall snapshot: %w", err)
		}

		existing := make([]scheduling.Screening, len(rows))
		for i, r := range rows {
			existing[i] = r.Screening()
		}

		candidate := scheduling.Screening{
			ID:              schedule.ID,
			Title:           movie.Title,
			DurationMinutes: movie.DurationInMinutes,
			TimeOfDay:       schedule.ShowTime,
			StartDate:       schedule.StartDate,
			EndDate:         schedule.EndDate,
		}

		if err := s.checker.Check(candidate, existing); err != nil {
			var ce *scheduling.ConflictError
			if errors.As(err, &ce) {
				s.log.Warn("Schedule rejected",
					zap.String("hall", hall.Name),
					zap.String("movie", movie.Title),
					zap.Error(err),
				)
				return &ScheduleConflictError{Conflict: ce, HallName: hall.Name}
			}
			return rejected(ErrValidation, err)
		}

		if update {
			err = tx.Schedule.Update(ctx, schedule)
		} else {
			err = tx.Schedule.Create(ctx, schedule)
		}
		if err != nil {
			return err
		}

		detail = &entity.ScheduleDetail{
			Schedule:          *schedule,
			MovieTitle:        movie.Title,
			DurationInMinutes: movie.DurationInMinutes,
			HallName:          hall.Name,
			HallCapacity:      hall.Capacity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func scheduleEvent(d *entity.ScheduleDetail, at time.Time) events.ScheduleEvent {
	return events.ScheduleEvent{
		ScheduleID: d.ID.String(),
		MovieID:    d.MovieID.String(),
		MovieTitle: d.MovieTitle,
		HallID:     d.HallID.String(),
		HallName:   d.HallName,
		ShowTime:   d.ShowTime.String(),
		StartDate:  scheduling.FormatDate(d.StartDate),
		EndDate:    scheduling.FormatDate(d.EndDate),
		Price:      d.Price,
		OccurredAt: at.Format(time.RFC3339),
	}
}
