package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base
	OrderID    string        `db:"order_id"`
	UserID     uuid.UUID     `db:"user_id"`
	ScheduleID uuid.UUID     `db:"schedule_id"`
	ShowDate   time.Time     `db:"show_date"`
	SeatNumber string        `db:"seat_num"` // "A1,A2"
	TotalSeats int           `db:"total_seats"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
}
