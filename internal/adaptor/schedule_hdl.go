package adaptor

import (
	"net/http"

	"venue-scheduler/internal/dto/request"
	"venue-scheduler/internal/usecase"
	"venue-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// GetShowSelection handles GET /api/schedules?date=YYYY-MM-DD
func (h *ScheduleHandler) GetShowSelection(w http.ResponseWriter, r *http.Request) {
	shows, err := h.service.GetShowSelection(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, h.log, err, "get show selection")
		return
	}

	utils.ResponseSuccess(w, "Shows retrieved successfully", shows)
}

// GetScheduleByID handles GET /api/schedules/{id}
func (h *ScheduleHandler) GetScheduleByID(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetScheduleByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get schedule by ID")
		return
	}

	utils.ResponseSuccess(w, "Schedule retrieved successfully", schedule)
}

// CreateSchedule handles POST /api/schedules. A clash with an existing
// screening in the hall answers 409 with the clash in "errors".
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleRequest
	if !bindJSON(w, r, &req) {
		return
	}

	schedule, err := h.service.CreateSchedule(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create schedule")
		return
	}

	utils.ResponseCreated(w, "Schedule created successfully", schedule)
}

// UpdateSchedule handles PUT /api/schedules/{id}
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleUpdateRequest
	if !bindJSON(w, r, &req) {
		return
	}

	schedule, err := h.service.UpdateSchedule(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule updated successfully", schedule)
}

// DeleteSchedule handles DELETE /api/schedules/{id}
func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSchedule(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule deleted successfully", nil)
}
