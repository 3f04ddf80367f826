package wire

import (
	"venue-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHall(r chi.Router, hallHandler *adaptor.HallHandler) {
	r.Route("/halls", func(r chi.Router) {
		r.Get("/", hallHandler.GetHalls)
		r.Post("/", hallHandler.CreateHall)
		r.Get("/{id}", hallHandler.GetHallByID)
		r.Put("/{id}", hallHandler.UpdateHall)
		r.Delete("/{id}", hallHandler.DeleteHall)

		// Seat layout and label checks against the hall capacity
		r.Get("/{id}/seats", hallHandler.GetSeatMap)
		r.Post("/{id}/seats/validate", hallHandler.ValidateSeats)
	})
}
