package adaptor

import (
	"net/http"

	"venue-scheduler/internal/dto/request"
	"venue-scheduler/internal/usecase"
	"venue-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

// GetHalls handles GET /api/halls
func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.GetHalls(r.Context(), paginationFromQuery(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get halls")
		return
	}

	utils.ResponseSuccess(w, "Halls retrieved successfully", halls)
}

// GetHallByID handles GET /api/halls/{id}
func (h *HallHandler) GetHallByID(w http.ResponseWriter, r *http.Request) {
	hall, err := h.service.GetHallByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get hall by ID")
		return
	}

	utils.ResponseSuccess(w, "Hall retrieved successfully", hall)
}

// CreateHall handles POST /api/halls
func (h *HallHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRequest
	if !bindJSON(w, r, &req) {
		return
	}

	hall, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "Hall created successfully", hall)
}

// UpdateHall handles PUT /api/halls/{id}
func (h *HallHandler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallUpdateRequest
	if !bindJSON(w, r, &req) {
		return
	}

	hall, err := h.service.UpdateHall(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update hall")
		return
	}

	utils.ResponseSuccess(w, "Hall updated successfully", hall)
}

// DeleteHall handles DELETE /api/halls/{id}
func (h *HallHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHall(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete hall")
		return
	}

	utils.ResponseSuccess(w, "Hall deleted successfully", nil)
}

// GetSeatMap handles GET /api/halls/{id}/seats
func (h *HallHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.GetSeatMap(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "Seat map retrieved successfully", seats)
}

// ValidateSeats handles POST /api/halls/{id}/seats/validate
func (h *HallHandler) ValidateSeats(w http.ResponseWriter, r *http.Request) {
	var req request.SeatValidationRequest
	if !bindJSON(w, r, &req) {
		return
	}

	result, err := h.service.ValidateSeats(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "validate seats")
		return
	}

	utils.ResponseSuccess(w, "Seats are valid", result)
}
