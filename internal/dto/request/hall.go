package request

type HallRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=208"`
}

type HallUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=208"`
}

// SeatValidationRequest carries raw comma-separated labels, e.g. "A1, A2".
type SeatValidationRequest struct {
	Seats string `json:"seats" validate:"required"`
}
