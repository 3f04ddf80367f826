package request

type CreateBookingRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	ScheduleID string `json:"schedule_id" validate:"required,uuid"`
	ShowDate   string `json:"show_date" validate:"required,datetime=2006-01-02"`
	Seats      string `json:"seats" validate:"required"`
}
