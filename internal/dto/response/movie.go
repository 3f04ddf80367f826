package response

import (
	"time"

	"venue-scheduler/internal/data/entity"
)

type MovieResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Language          *string   `json:"language,omitempty"`
	Genre             *string   `json:"genre,omitempty"`
	Plot              *string   `json:"plot,omitempty"`
	PosterURL         *string   `json:"poster_url,omitempty"`
	DurationInMinutes int       `json:"duration_in_minutes"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Language:          movie.Language,
		Genre:             movie.Genre,
		Plot:              movie.Plot,
		PosterURL:         movie.PosterURL,
		DurationInMinutes: movie.DurationInMinutes,
		CreatedAt:         movie.CreatedAt,
		UpdatedAt:         movie.UpdatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	resp := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, MovieToResponse(m))
	}
	return resp
}
