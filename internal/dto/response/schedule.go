package response

import (
	"venue-scheduler/internal/data/entity"
	"venue-scheduler/pkg/scheduling"
)

type ScheduleResponse struct {
	ID                string  `json:"id"`
	MovieID           string  `json:"movie_id"`
	MovieTitle        string  `json:"movie_title"`
	DurationInMinutes int     `json:"duration_in_minutes"`
	HallID            string  `json:"hall_id"`
	HallName          string  `json:"hall_name"`
	HallCapacity      int     `json:"hall_capacity"`
	ShowTime          string  `json:"show_time"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Price             float64 `json:"price"`
}

// ShowSelection groups the screenings of one title on one date.
type ShowSelection struct {
	MovieID    string             `json:"movie_id"`
	MovieTitle string             `json:"movie_title"`
	Date       string             `json:"date"`
	Shows      []ScheduleResponse `json:"shows"`
}

// ConflictDetail is the errors payload of a rejected admission.
type ConflictDetail struct {
	ConflictingScheduleID string `json:"conflicting_schedule_id"`
	ConflictingTitle      string `json:"conflicting_title"`
	Date                  string `json:"date"`
	ExistingStart         string `json:"existing_start"`
	ExistingEnd           string `json:"existing_end"`
	CandidateStart        string `json:"candidate_start"`
	CandidateEnd          string `json:"candidate_end"`
}

func ScheduleToResponse(d *entity.ScheduleDetail) ScheduleResponse {
	return ScheduleResponse{
		ID:                d.ID.String(),
		MovieID:           d.MovieID.String(),
		MovieTitle:        d.MovieTitle,
		DurationInMinutes: d.DurationInMinutes,
		HallID:            d.HallID.String(),
		HallName:          d.HallName,
		HallCapacity:      d.HallCapacity,
		ShowTime:          d.ShowTime.String(),
		StartDate:         scheduling.FormatDate(d.StartDate),
		EndDate:           scheduling.FormatDate(d.EndDate),
		Price:             d.Price,
	}
}

func ConflictToDetail(c *scheduling.ConflictError) ConflictDetail {
	const clock = "2006-01-02 15:04"
	return ConflictDetail{
		ConflictingScheduleID: c.Existing.ID.String(),
		ConflictingTitle:      c.Existing.Title,
		Date:                  scheduling.FormatDate(c.Date),
		ExistingStart:         c.ExistingWindow.Start.Format(clock),
		ExistingEnd:           c.ExistingWindow.End.Format(clock),
		CandidateStart:        c.CandidateWindow.Start.Format(clock),
		CandidateEnd:          c.CandidateWindow.End.Format(clock),
	}
}
