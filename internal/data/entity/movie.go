package entity

const (
	DefaultDurationInMinutes = 120
	MinDurationInMinutes     = 60
)

type Movie struct {
	Base
	Title             string  `db:"title"`
	Language          *string `db:"language"`
	Genre             *string `db:"genre"`
	Plot              *string `db:"plot"`
	PosterURL         *string `db:"poster_url"`
	DurationInMinutes int     `db:"duration_in_minutes"`
}
