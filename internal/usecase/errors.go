package usecase

import (
	"errors"
	"fmt"
	"time"

	"venue-scheduler/pkg/scheduling"

	"github.com/google/uuid"
)

// Handlers classify service errors with errors.Is against these.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrBusy         = errors.New("resource is busy, try again")
)

// Error is a classified business error. Message is safe to show to the
// client; Kind is one of the sentinels above. Cause, when set, is the
// lower level error (e.g. a *seating.LabelError) and stays reachable
// through errors.Is/As.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...any) error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func rejected(kind, cause error) error {
	return &Error{Kind: kind, Message: cause.Error(), Cause: cause}
}

// ScheduleConflictError is a rejected admission. It matches both
// ErrConflict and *scheduling.ConflictError.
type ScheduleConflictError struct {
	Conflict *scheduling.ConflictError
	HallName string
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("Show conflicts with '%s' on %s from %s to %s in %s.",
		e.Conflict.Existing.Title,
		scheduling.FormatDate(e.Conflict.Date),
		e.Conflict.ExistingWindow.Start.Format("03:04 PM"),
		e.Conflict.ExistingWindow.End.Format("03:04 PM"),
		e.HallName,
	)
}

func (e *ScheduleConflictError) Unwrap() []error {
	return []error{ErrConflict, e.Conflict}
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("invalid %s ID format: %s", kind, raw)
	}
	return id, nil
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := scheduling.ParseDate(raw)
	if err != nil {
		return time.Time{}, invalid("%s must be a date in YYYY-MM-DD format", field)
	}
	return d, nil
}
