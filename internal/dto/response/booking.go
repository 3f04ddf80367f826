package response

import (
	"strings"
	"time"

	"venue-scheduler/internal/data/entity"
	"venue-scheduler/pkg/scheduling"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	OrderID     string               `json:"order_id"`
	UserID      string               `json:"user_id"`
	ScheduleID  string               `json:"schedule_id"`
	ShowDate    string               `json:"show_date"`
	SeatNumbers []string             `json:"seat_numbers"`
	TotalSeats  int                  `json:"total_seats"`
	TotalPrice  float64              `json:"total_price"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

type BookedSeatsResponse struct {
	ScheduleID string   `json:"schedule_id"`
	ShowDate   string   `json:"show_date"`
	Seats      []string `json:"seats"`
}

// Helper converter
func BookingToResponse(b *entity.Booking) BookingResponse {
	var seats []string
	if b.SeatNumber != "" {
		seats = strings.Split(b.SeatNumber, ",")
	}
	return BookingResponse{
		ID:          b.ID.String(),
		OrderID:     b.OrderID,
		UserID:      b.UserID.String(),
		ScheduleID:  b.ScheduleID.String(),
		ShowDate:    scheduling.FormatDate(b.ShowDate),
		SeatNumbers: seats,
		TotalSeats:  b.TotalSeats,
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}
