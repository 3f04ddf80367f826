package wire

import (
	"venue-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSchedule(r chi.Router, scheduleHandler *adaptor.ScheduleHandler, bookingHandler *adaptor.BookingHandler) {
	r.Route("/schedules", func(r chi.Router) {
		// GET /api/schedules?date=YYYY-MM-DD (tomorrow by default)
		r.Get("/", scheduleHandler.GetShowSelection)
		r.Post("/", scheduleHandler.CreateSchedule)

		r.Get("/{id}", scheduleHandler.GetScheduleByID)
		r.Put("/{id}", scheduleHandler.UpdateSchedule)
		r.Delete("/{id}", scheduleHandler.DeleteSchedule)

		r.Get("/{id}/booked-seats", bookingHandler.GetBookedSeats)
	})
}
