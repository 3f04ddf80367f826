package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-scheduler/internal/data/entity"
	"venue-scheduler/pkg/database"
	"venue-scheduler/pkg/scheduling"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	Update(ctx context.Context, schedule *entity.Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error

	// LockByID takes a row lock on the schedule for the rest of the
	// transaction. Bookings for one schedule queue behind it.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleDetail, error)

	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleDetail, error)
	// FindDetailsByHallInRange returns the hall's screenings whose date
	// range shares at least one day with [start, end].
	FindDetailsByHallInRange(ctx context.Context, hallID uuid.UUID, start, end time.Time) ([]*entity.ScheduleDetail, error)
	FindDetailsByDate(ctx context.Context, date time.Time) ([]*entity.ScheduleDetail, error)
	FindDetailsByMovie(ctx context.Context, movieID uuid.UUID, date time.Time) ([]*entity.ScheduleDetail, error)
	CountByHallID(ctx context.Context, hallID uuid.UUID) (int64, error)
	// CountUpcomingByMovieID counts the movie's schedules still running on
	// or after from.
	CountUpcomingByMovieID(ctx context.Context, movieID uuid.UUID, from time.Time) (int64, error)
}

type scheduleRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewScheduleRepository(db database.Querier, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

// Postgres TIME travels as microseconds since midnight.
func toPgTime(t scheduling.TimeOfDay) pgtype.Time {
	micros := (int64(t.Hour)*60 + int64(t.Minute)) * int64(time.Minute/time.Microsecond)
	return pgtype.Time{Microseconds: micros, Valid: true}
}

func fromPgTime(t pgtype.Time) scheduling.TimeOfDay {
	minutes := t.Microseconds / int64(time.Minute/time.Microsecond)
	return scheduling.TimeOfDay{Hour: int(minutes / 60), Minute: int(minutes % 60)}
}

const scheduleDetailSelect = `
	SELECT s.id, s.movie_id, s.hall_id, s.show_time, s.start_date, s.end_date, s.price,
	       s.created_at, s.updated_at,
	       m.title, m.duration_in_minutes, h.name, h.capacity
	FROM schedules s
	JOIN movies m ON m.id = s.movie_id
	JOIN halls h ON h.id = s.hall_id
`

func scanScheduleDetail(row pgx.Row, d *entity.ScheduleDetail) error {
	var showTime pgtype.Time
	err := row.Scan(
		&d.ID,
		&d.MovieID,
		&d.HallID,
		&showTime,
		&d.StartDate,
		&d.EndDate,
		&d.Price,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.MovieTitle,
		&d.DurationInMinutes,
		&d.HallName,
		&d.HallCapacity,
	)
	if err != nil {
		return err
	}
	d.ShowTime = fromPgTime(showTime)
	return nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, movie_id, hall_id, show_time, start_date, end_date, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.MovieID,
		schedule.HallID,
		toPgTime(schedule.ShowTime),
		schedule.StartDate,
		schedule.EndDate,
		schedule.Price,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create schedule",
			zap.Error(err),
			zap.String("movie_id", schedule.MovieID.String()),
			zap.String("hall_id", schedule.HallID.String()),
			zap.Stringer("show_time", schedule.ShowTime),
		)
		return fmt.Errorf("create schedule: %w", err)
	}

	return nil
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	query := `
		SELECT id, movie_id, hall_id, show_time, start_date, end_date, price, created_at, updated_at
		FROM schedules
		WHERE id = $1 AND deleted_at IS NULL
	`

	var schedule entity.Schedule
	var showTime pgtype.Time
	err := r.db.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.MovieID,
		&schedule.HallID,
		&showTime,
		&schedule.StartDate,
		&schedule.EndDate,
		&schedule.Price,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule by ID",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return nil, fmt.Errorf("find schedule by ID %s: %w", id.String(), err)
	}

	schedule.ShowTime = fromPgTime(showTime)
	return &schedule, nil
}

func (r *scheduleRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleDetail, error) {
	query := scheduleDetailSelect + `WHERE s.id = $1 AND s.deleted_at IS NULL`
	return r.findDetail(ctx, query, id)
}

func (r *scheduleRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleDetail, error) {
	query := scheduleDetailSelect + `WHERE s.id = $1 AND s.deleted_at IS NULL FOR UPDATE OF s`
	return r.findDetail(ctx, query, id)
}

func (r *scheduleRepository) findDetail(ctx context.Context, query string, id uuid.UUID) (*entity.ScheduleDetail, error) {
	var detail entity.ScheduleDetail
	err := scanScheduleDetail(r.db.QueryRow(ctx, query, id), &detail)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule detail",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return nil, fmt.Errorf("find schedule detail %s: %w", id.String(), err)
	}

	return &detail, nil
}

func (r *scheduleRepository) FindDetailsByHallInRange(ctx context.Context, hallID uuid.UUID, start, end time.Time) ([]*entity.ScheduleDetail, error) {
	query := scheduleDetailSelect + `
		WHERE s.hall_id = $1
		  AND s.deleted_at IS NULL
		  AND s.start_date <= $3
		  AND s.end_date >= $2
		ORDER BY s.start_date, s.show_time, s.id
	`

	rows, err := r.db.Query(ctx, query, hallID, start, end)
	if err != nil {
		r.log.Error("Failed to find hall schedules in range",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return nil, fmt.Errorf("find schedules for hall %s: %w", hallID.String(), err)
	}

	return r.collectDetails(rows)
}

func (r *scheduleRepository) FindDetailsByDate(ctx context.Context, date time.Time) ([]*entity.ScheduleDetail, error) {
	query := scheduleDetailSelect + `
		WHERE s.deleted_at IS NULL
		  AND m.deleted_at IS NULL
		  AND s.start_date <= $1
		  AND s.end_date >= $1
		ORDER BY m.title, s.show_time, h.name
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find schedules by date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find schedules on %s: %w", scheduling.FormatDate(date), err)
	}

	return r.collectDetails(rows)
}

func (r *scheduleRepository) FindDetailsByMovie(ctx context.Context, movieID uuid.UUID, date time.Time) ([]*entity.ScheduleDetail, error) {
	query := scheduleDetailSelect + `
		WHERE s.movie_id = $1
		  AND s.deleted_at IS NULL
		  AND s.start_date <= $2
		  AND s.end_date >= $2
		ORDER BY s.show_time, h.name
	`

	rows, err := r.db.Query(ctx, query, movieID, date)
	if err != nil {
		r.log.Error("Failed to find schedules by movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find schedules for movie %s: %w", movieID.String(), err)
	}

	return r.collectDetails(rows)
}

func (r *scheduleRepository) collectDetails(rows pgx.Rows) ([]*entity.ScheduleDetail, error) {
	defer rows.Close()

	var details []*entity.ScheduleDetail
	for rows.Next() {
		var detail entity.ScheduleDetail
		if err := scanScheduleDetail(rows, &detail); err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		details = append(details, &detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule rows: %w", err)
	}

	return details, nil
}

func (r *scheduleRepository) CountByHallID(ctx context.Context, hallID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM schedules WHERE hall_id = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, hallID).Scan(&count); err != nil {
		r.log.Error("Failed to count hall schedules", zap.Error(err))
		return 0, fmt.Errorf("count schedules for hall %s: %w", hallID.String(), err)
	}

	return count, nil
}

func (r *scheduleRepository) CountUpcomingByMovieID(ctx context.Context, movieID uuid.UUID, from time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM schedules WHERE movie_id = $1 AND end_date >= $2 AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, movieID, from).Scan(&count); err != nil {
		r.log.Error("Failed to count movie schedules", zap.Error(err))
		return 0, fmt.Errorf("count schedules for movie %s: %w", movieID.String(), err)
	}

	return count, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		UPDATE schedules
		SET movie_id = $2, hall_id = $3, show_time = $4, start_date = $5,
		    end_date = $6, price = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.MovieID,
		schedule.HallID,
		toPgTime(schedule.ShowTime),
		schedule.StartDate,
		schedule.EndDate,
		schedule.Price,
		schedule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update schedule",
			zap.Error(err),
			zap.String("schedule_id", schedule.ID.String()),
		)
		return fmt.Errorf("update schedule %s: %w", schedule.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule %s not found", schedule.ID.String())
	}

	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE schedules SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete schedule",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return fmt.Errorf("delete schedule %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("schedule %s not found", id.String())
	}

	r.log.Info("Schedule deleted", zap.String("schedule_id", id.String()))
	return nil
}
