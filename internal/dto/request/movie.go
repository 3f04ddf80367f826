package request

type MovieRequest struct {
	Title             string  `json:"title" validate:"required,min=1,max=200"`
	Language          *string `json:"language,omitempty" validate:"omitempty,max=50"`
	Genre             *string `json:"genre,omitempty" validate:"omitempty,max=50"`
	Plot              *string `json:"plot,omitempty"`
	PosterURL         *string `json:"poster_url,omitempty" validate:"omitempty,url"`
	DurationInMinutes *int    `json:"duration_in_minutes,omitempty" validate:"omitempty,min=60,max=999"`
}

type MovieUpdateRequest struct {
	Title             *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Language          *string `json:"language,omitempty" validate:"omitempty,max=50"`
	Genre             *string `json:"genre,omitempty" validate:"omitempty,max=50"`
	Plot              *string `json:"plot,omitempty"`
	PosterURL         *string `json:"poster_url,omitempty" validate:"omitempty,url"`
	DurationInMinutes *int    `json:"duration_in_minutes,omitempty" validate:"omitempty,min=60,max=999"`
}
