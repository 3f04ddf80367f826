package events

// ScheduleEvent is published when a screening is admitted into a hall
// or rescheduled.
type ScheduleEvent struct {
	ScheduleID string  `json:"schedule_id"`
	MovieID    string  `json:"movie_id"`
	MovieTitle string  `json:"movie_title"`
	HallID     string  `json:"hall_id"`
	HallName   string  `json:"hall_name"`
	ShowTime   string  `json:"show_time"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Price      float64 `json:"price"`
	OccurredAt string  `json:"occurred_at"`
}

// BookingEvent carries enough for downstream consumers (receipts,
// analytics) to act without reading the primary database.
type BookingEvent struct {
	BookingID  string   `json:"booking_id"`
	OrderID    string   `json:"order_id"`
	UserID     string   `json:"user_id"`
	ScheduleID string   `json:"schedule_id"`
	ShowDate   string   `json:"show_date"`
	Seats      []string `json:"seats"`
	TotalPrice float64  `json:"total_price"`
	OccurredAt string   `json:"occurred_at"`
}
