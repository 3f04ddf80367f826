package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"venue-scheduler/internal/dto/request"
	"venue-scheduler/internal/dto/response"
	"venue-scheduler/internal/usecase"
	"venue-scheduler/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Hall     *HallHandler
	Movie    *MovieHandler
	Schedule *ScheduleHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Hall:     NewHallHandler(service.Hall, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Schedule: NewScheduleHandler(service.Schedule, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}

// bindJSON decodes the body into dst and runs the struct validator. It
// writes the 400 itself and reports false when the request is unusable.
func bindJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// writeServiceError maps the usecase error kinds onto status codes.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var sce *usecase.ScheduleConflictError

	switch {
	case errors.As(err, &sce):
		log.Warn(operation+" failed - schedule conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), response.ConflictToDetail(sce.Conflict))

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrInvalidState),
		errors.Is(err, usecase.ErrBusy):
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
