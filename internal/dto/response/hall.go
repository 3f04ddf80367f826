package response

import (
	"time"

	"venue-scheduler/internal/data/entity"
)

type HallResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeatMapResponse lists every seat of the hall in row-major order.
type SeatMapResponse struct {
	HallID      string   `json:"hall_id"`
	Capacity    int      `json:"capacity"`
	SeatsPerRow int      `json:"seats_per_row"`
	Rows        int      `json:"rows"`
	Seats       []string `json:"seats"`
}

type SeatValidationResponse struct {
	Seats []string `json:"seats"`
	Valid bool     `json:"valid"`
}

func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:        hall.ID.String(),
		Name:      hall.Name,
		Capacity:  hall.Capacity,
		CreatedAt: hall.CreatedAt,
		UpdatedAt: hall.UpdatedAt,
	}
}
