package request

type ScheduleRequest struct {
	MovieID   string  `json:"movie_id" validate:"required,uuid"`
	HallID    string  `json:"hall_id" validate:"required,uuid"`
	ShowTime  string  `json:"show_time" validate:"required,timeofday"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// ScheduleUpdateRequest replaces every field of the screening, so the
// conflict check always sees the complete candidate.
type ScheduleUpdateRequest = ScheduleRequest
