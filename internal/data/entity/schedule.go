package entity

import (
	"time"

	"venue-scheduler/pkg/scheduling"

	"github.com/google/uuid"
)

// Schedule is a screening: one occurrence per day from StartDate to
// EndDate inclusive, each starting at ShowTime.
type Schedule struct {
	Base
	MovieID   uuid.UUID            `db:"movie_id"`
	HallID    uuid.UUID            `db:"hall_id"`
	ShowTime  scheduling.TimeOfDay `db:"show_time"`
	StartDate time.Time            `db:"start_date"`
	EndDate   time.Time            `db:"end_date"`
	Price     float64              `db:"price"`
}

// ScheduleDetail is a schedule joined with its movie and hall.
type ScheduleDetail struct {
	Schedule
	MovieTitle        string `db:"movie_title"`
	DurationInMinutes int    `db:"duration_in_minutes"`
	HallName          string `db:"hall_name"`
	HallCapacity      int    `db:"hall_capacity"`
}

// Screening converts the row into the value the conflict checker reads.
func (d *ScheduleDetail) Screening() scheduling.Screening {
	return scheduling.Screening{
		ID:              d.ID,
		Title:           d.MovieTitle,
		DurationMinutes: d.DurationInMinutes,
		TimeOfDay:       d.ShowTime,
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
	}
}
