package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"venue-scheduler/internal/data/entity"
	"venue-scheduler/internal/data/repository"
	"venue-scheduler/internal/dto/request"
	"venue-scheduler/internal/dto/response"
	"venue-scheduler/pkg/seating"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HallService interface {
	GetHalls(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.HallResponse], error)
	GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error)
	CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error)
	UpdateHall(ctx context.Context, hallID string, req *request.HallUpdateRequest) (*response.HallResponse, error)
	DeleteHall(ctx context.Context, hallID string) error

	GetSeatMap(ctx context.Context, hallID string) (*response.SeatMapResponse, error)
	ValidateSeats(ctx context.Context, hallID string, req *request.SeatValidationRequest) (*response.SeatValidationResponse, error)
}

type hallService struct {
	repo  *repository.Repository
	clock clock
	log   *zap.Logger
}

func NewHallService(d Deps) HallService {
	return &hallService{
		repo:  d.Repo,
		clock: newClock(d),
		log:   d.Log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) GetHalls(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.HallResponse], error) {
	halls, err := s.repo.Hall.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get halls: %w", err)
	}

	total, err := s.repo.Hall.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count halls: %w", err)
	}

	resp := make([]response.HallResponse, len(halls))
	for i, hall := range halls {
		resp[i] = response.HallToResponse(hall)
	}

	return response.NewPaginatedResponse(resp, req.Page, req.Limit(), total), nil
}

func (s *hallService) GetHallByID(ctx context.Context, hallID string) (*response.HallResponse, error) {
	hall, err := s.findHall(ctx, hallID)
	if err != nil {
		return nil, err
	}

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) findHall(ctx context.Context, hallID string) (*entity.Hall, error) {
	id, err := parseID("hall", hallID)
	if err != nil {
		return nil, err
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get hall %s: %w", hallID, err)
	}
	if hall == nil {
		return nil, notFound("hall %s not found", hallID)
	}

	return hall, nil
}

func (s *hallService) CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("hall name cannot be blank")
	}
	if req.Capacity <= 0 {
		return nil, rejected(ErrValidation, seating.ErrInvalidCapacity)
	}

	now := s.clock.Now().UTC()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     name,
		Capacity: req.Capacity,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("hall with name '%s' already exists", name)
		}
		return nil, fmt.Errorf("create hall: %w", err)
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("name", hall.Name),
		zap.Int("capacity", hall.Capacity),
	)

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *hallService) UpdateHall(ctx context.Context, hallID string, req *request.HallUpdateRequest) (*response.HallResponse, error) {
	hall, err := s.findHall(ctx, hallID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("hall name cannot be blank")
		}
		hall.Name = name
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, rejected(ErrValidation, seating.ErrInvalidCapacity)
		}
		hall.Capacity = *req.Capacity
	}
	hall.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Hall.Update(ctx, hall); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("hall with name '%s' already exists", hall.Name)
		}
		return nil, fmt.Errorf("update hall %s: %w", hallID, err)
	}

	s.log.Info("Hall updated", zap.String("hall_id", hallID))

	resp := response.HallToResponse(hall)
	return &resp, nil
}

// DeleteHall holds the hall row FOR UPDATE across the schedule count and
// the delete, the same lock admissions take before writing.
func (s *hallService) DeleteHall(ctx context.Context, hallID string) error {
	id, err := parseID("hall", hallID)
	if err != nil {
		return err
	}

	return s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		hall, err := tx.Hall.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock hall %s: %w", hallID, err)
		}
		if hall == nil {
			return notFound("hall %s not found", hallID)
		}

		scheduled, err := tx.Schedule.CountByHallID(ctx, hall.ID)
		if err != nil {
			return fmt.Errorf("count schedules for hall %s: %w", hallID, err)
		}
		if scheduled > 0 {
			return invalidState("hall '%s' still has %d schedule(s)", hall.Name, scheduled)
		}

		if err := tx.Hall.Delete(ctx, hall.ID); err != nil {
			return fmt.Errorf("delete hall %s: %w", hallID, err)
		}
		return nil
	})
}

func (s *hallService) GetSeatMap(ctx context.Context, hallID string) (*response.SeatMapResponse, error) {
	hall, err := s.findHall(ctx, hallID)
	if err != nil {
		return nil, err
	}

	rows := seating.MaxRows(hall.Capacity)
	if rows > seating.MaxRowCount {
		rows = seating.MaxRowCount
	}

	return &response.SeatMapResponse{
		HallID:      hall.ID.String(),
		Capacity:    hall.Capacity,
		SeatsPerRow: seating.MaxSeatsPerRow,
		Rows:        rows,
		Seats:       seating.Layout(hall.Capacity),
	}, nil
}

func (s *hallService) ValidateSeats(ctx context.Context, hallID string, req *request.SeatValidationRequest) (*response.SeatValidationResponse, error) {
	hall, err := s.findHall(ctx, hallID)
	if err != nil {
		return nil, err
	}

	labels := seating.ParseLabels(req.Seats)
	if err := seating.Validate(hall.Capacity, labels); err != nil {
		s.log.Warn("Seat labels rejected",
			zap.String("hall_id", hallID),
			zap.String("seats", req.Seats),
			zap.Error(err),
		)
		return nil, rejected(ErrValidation, err)
	}

	return &response.SeatValidationResponse{Seats: labels, Valid: true}, nil
}
