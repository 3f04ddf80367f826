package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"venue-scheduler/internal/data/entity"
	"venue-scheduler/internal/data/repository"
	"venue-scheduler/internal/dto/request"
	"venue-scheduler/internal/dto/response"
	"venue-scheduler/pkg/events"
	"venue-scheduler/pkg/lock"
	"venue-scheduler/pkg/scheduling"
	"venue-scheduler/pkg/seating"
	"venue-scheduler/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookedSeats(ctx context.Context, scheduleID, date string) (*response.BookedSeatsResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID string) error
}

type bookingService struct {
	repo       *repository.Repository
	locker     lock.Locker
	publisher  events.Publisher
	clock      clock
	lockTTL    time.Duration
	windowDays int
	log        *zap.Logger
}

func NewBookingService(d Deps) BookingService {
	return &bookingService{
		repo:       d.Repo,
		locker:     d.Locker,
		publisher:  d.Publisher,
		clock:      newClock(d),
		lockTTL:    d.Config.Redis.LockTTL,
		windowDays: d.Config.Schedule.BookingWindowDays,
		log:        d.Log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	userID, err := parseID("user", req.UserID)
	if err != nil {
		return nil, err
	}
	scheduleID, err := parseID("schedule", req.ScheduleID)
	if err != nil {
		return nil, err
	}
	showDate, err := parseDate("show_date", req.ShowDate)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	if showDate.Before(today) {
		return nil, invalid("cannot book a show in the past")
	}
	if last := today.AddDate(0, 0, s.windowDays); showDate.After(last) {
		return nil, invalid("show date must be on or before %s", scheduling.FormatDate(last))
	}

	detail, err := s.repo.Schedule.FindDetailByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule %s: %w", req.ScheduleID, err)
	}
	if detail == nil {
		return nil, notFound("schedule %s not found", req.ScheduleID)
	}
	if !detail.Screening().Covers(showDate) {
		return nil, invalid("show date %s is outside the schedule's run (%s to %s)",
			scheduling.FormatDate(showDate),
			scheduling.FormatDate(detail.StartDate),
			scheduling.FormatDate(detail.EndDate),
		)
	}
	if !s.clock.OccurrenceOpen(detail, showDate) {
		return nil, invalidState("the show on %s has already ended", scheduling.FormatDate(showDate))
	}

	labels := seating.ParseLabels(req.Seats)
	if err := seating.Validate(detail.HallCapacity, labels); err != nil {
		s.log.Warn("Seat labels rejected",
			zap.String("schedule_id", req.ScheduleID),
			zap.String("seats", req.Seats),
			zap.Error(err),
		)
		return nil, rejected(ErrValidation, err)
	}
	if dup := firstDuplicate(labels); dup != "" {
		return nil, invalid("seat '%s' is listed more than once", dup)
	}

	release := acquire(ctx, s.locker, s.log, lock.ScheduleKey(scheduleID, scheduling.FormatDate(showDate)), s.lockTTL)
	if release == nil {
		return nil, busy()
	}
	defer release()

	now := s.clock.Now()
	var booking *entity.Booking
	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		locked, err := tx.Schedule.LockByID(ctx, scheduleID)
		if err != nil {
			return fmt.Errorf("lock schedule %s: %w", scheduleID, err)
		}
		if locked == nil {
			return notFound("schedule %s not found", req.ScheduleID)
		}

		booked, err := tx.Booking.FindSeatNumbers(ctx, scheduleID, showDate)
		if err != nil {
			return fmt.Errorf("read booked seats: %w", err)
		}
		if taken := alreadyBooked(labels, booked); len(taken) > 0 {
			return conflict("seat(s) %s already booked for this show", strings.Join(taken, ", "))
		}

		booking = &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now.UTC(),
				UpdatedAt: now.UTC(),
			},
			OrderID:    utils.GenerateOrderID(now),
			UserID:     userID,
			ScheduleID: scheduleID,
			ShowDate:   showDate,
			SeatNumber: strings.Join(labels, ","),
			TotalSeats: len(labels),
			TotalPrice: float64(len(labels)) * locked.Price,
			Status:     entity.BookingStatusConfirmed,
		}
		return tx.Booking.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("schedule_id", req.ScheduleID),
		zap.Strings("seats", labels),
		zap.Float64("total_price", booking.TotalPrice),
	)
	publish(ctx, s.publisher, s.log, events.BookingCreated, bookingEvent(booking, labels, now))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, notFound("booking %s not found", bookingID)
	}

	return booking, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	uid, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, uid, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get bookings for user %s: %w", userID, err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("count bookings for user %s: %w", userID, err)
	}

	resp := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(resp, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookedSeats(ctx context.Context, scheduleID, date string) (*response.BookedSeatsResponse, error) {
	id, err := parseID("schedule", scheduleID)
	if err != nil {
		return nil, err
	}
	showDate, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule %s: %w", scheduleID, err)
	}
	if schedule == nil {
		return nil, notFound("schedule %s not found", scheduleID)
	}

	rows, err := s.repo.Booking.FindSeatNumbers(ctx, id, showDate)
	if err != nil {
		return nil, fmt.Errorf("get booked seats for schedule %s: %w", scheduleID, err)
	}

	seats := make([]string, 0)
	for _, row := range rows {
		seats = append(seats, seating.ParseLabels(row)...)
	}

	return &response.BookedSeatsResponse{
		ScheduleID: schedule.ID.String(),
		ShowDate:   scheduling.FormatDate(showDate),
		Seats:      seats,
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID string) error {
	uid, err := parseID("user", userID)
	if err != nil {
		return err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != uid {
		return notFound("booking %s not found", bookingID)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return invalidState("booking %s is already cancelled", booking.OrderID)
	}
	if booking.ShowDate.Before(s.clock.Today()) {
		return invalidState("cannot cancel a booking for a past show")
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	booking.Status = entity.BookingStatusCancelled

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
	)
	publish(ctx, s.publisher, s.log, events.BookingCancelled,
		bookingEvent(booking, seating.ParseLabels(booking.SeatNumber), s.clock.Now()))

	return nil
}

// firstDuplicate returns the first label that appears twice, or "".
func firstDuplicate(labels []string) string {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			return l
		}
		seen[l] = struct{}{}
	}
	return ""
}

// alreadyBooked lists the requested labels present in any of the booked
// seat_num rows, in request order.
func alreadyBooked(requested, bookedRows []string) []string {
	booked := make(map[string]struct{})
	for _, row := range bookedRows {
		for _, l := range seating.ParseLabels(row) {
			booked[l] = struct{}{}
		}
	}

	var taken []string
	for _, l := range requested {
		if _, ok := booked[l]; ok {
			taken = append(taken, l)
		}
	}
	return taken
}

func bookingEvent(b *entity.Booking, seats []string, at time.Time) events.BookingEvent {
	return events.BookingEvent{
		BookingID:  b.ID.String(),
		OrderID:    b.OrderID,
		UserID:     b.UserID.String(),
		ScheduleID: b.ScheduleID.String(),
		ShowDate:   scheduling.FormatDate(b.ShowDate),
		Seats:      seats,
		TotalPrice: b.TotalPrice,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
