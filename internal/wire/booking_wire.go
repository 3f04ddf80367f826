package wire

import (
	"venue-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		// GET /api/bookings?user_id=...&page=&per_page=
		r.Get("/", bookingHandler.GetUserBookings)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		// DELETE /api/bookings/{id}?user_id=...
		r.Delete("/{id}", bookingHandler.CancelBooking)
	})
}
