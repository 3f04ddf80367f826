package wire

import (
	"venue-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", movieHandler.GetMovies)
		r.Post("/", movieHandler.CreateMovie)

		// GET /api/movies/now-showing?date=YYYY-MM-DD
		r.Get("/now-showing", movieHandler.GetNowShowing)

		r.Get("/{id}", movieHandler.GetMovieByID)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
		r.Get("/{id}/showtimes", movieHandler.GetShowtimes)
	})
}
