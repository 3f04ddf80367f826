package usecase

import (
	"context"
	"fmt"
	"strings"

	"venue-scheduler/internal/data/entity"
	"venue-scheduler/internal/data/repository"
	"venue-scheduler/internal/dto/request"
	"venue-scheduler/internal/dto/response"
	"venue-scheduler/pkg/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error

	// GetNowShowing lists titles with a screening covering date
	// (YYYY-MM-DD, today when empty).
	GetNowShowing(ctx context.Context, date string) ([]response.MovieResponse, error)
	// GetShowtimes lists the title's screenings today whose occurrence
	// has not ended yet.
	GetShowtimes(ctx context.Context, movieID string) ([]response.ScheduleResponse, error)
}

type movieService struct {
	repo  *repository.Repository
	clock clock
	log   *zap.Logger
}

func NewMovieService(d Deps) MovieService {
	return &movieService{
		repo:  d.Repo,
		clock: newClock(d),
		log:   d.Log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	return response.NewPaginatedResponse(response.MoviesToResponse(movies), req.Page, req.Limit(), total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, notFound("movie %s not found", movieID)
	}

	return movie, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("movie title cannot be blank")
	}

	duration := entity.DefaultDurationInMinutes
	if req.DurationInMinutes != nil {
		duration = *req.DurationInMinutes
	}
	if duration < entity.MinDurationInMinutes {
		return nil, invalid("movie duration must be at least %d minutes", entity.MinDurationInMinutes)
	}

	now := s.clock.Now().UTC()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:             title,
		Language:          req.Language,
		Genre:             req.Genre,
		Plot:              req.Plot,
		PosterURL:         req.PosterURL,
		DurationInMinutes: duration,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.Int("duration", movie.DurationInMinutes),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// UpdateMovie and DeleteMovie hold the movie row FOR UPDATE across the
// upcoming-schedule count and the write, so an admission that
// share-locked the movie either commits first and is counted, or waits
// and sees the new duration.
func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	id, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	var movie *entity.Movie
	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		movie, err = tx.Movie.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock movie %s: %w", movieID, err)
		}
		if movie == nil {
			return notFound("movie %s not found", movieID)
		}

		if err := s.applyUpdate(ctx, tx, movie, req); err != nil {
			return err
		}

		if err := tx.Movie.Update(ctx, movie); err != nil {
			return fmt.Errorf("update movie %s: %w", movieID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) applyUpdate(ctx context.Context, tx *repository.Repository, movie *entity.Movie, req *request.MovieUpdateRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return invalid("movie title cannot be blank")
		}
		movie.Title = title
	}
	if req.Language != nil {
		movie.Language = req.Language
	}
	if req.Genre != nil {
		movie.Genre = req.Genre
	}
	if req.Plot != nil {
		movie.Plot = req.Plot
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}
	if req.DurationInMinutes != nil {
		if *req.DurationInMinutes < entity.MinDurationInMinutes {
			return invalid("movie duration must be at least %d minutes", entity.MinDurationInMinutes)
		}
		// Upcoming screenings were admitted against the old runtime.
		if *req.DurationInMinutes > movie.DurationInMinutes {
			upcoming, err := tx.Schedule.CountUpcomingByMovieID(ctx, movie.ID, s.clock.Today())
			if err != nil {
				return fmt.Errorf("count schedules for movie %s: %w", movie.ID, err)
			}
			if upcoming > 0 {
				return invalidState("cannot extend duration of '%s' while it has %d upcoming schedule(s)", movie.Title, upcoming)
			}
		}
		movie.DurationInMinutes = *req.DurationInMinutes
	}
	movie.UpdatedAt = s.clock.Now().UTC()
	return nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := parseID("movie", movieID)
	if err != nil {
		return err
	}

	return s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		movie, err := tx.Movie.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock movie %s: %w", movieID, err)
		}
		if movie == nil {
			return notFound("movie %s not found", movieID)
		}

		upcoming, err := tx.Schedule.CountUpcomingByMovieID(ctx, movie.ID, s.clock.Today())
		if err != nil {
			return fmt.Errorf("count schedules for movie %s: %w", movieID, err)
		}
		if upcoming > 0 {
			return invalidState("movie '%s' still has %d upcoming schedule(s)", movie.Title, upcoming)
		}

		if err := tx.Movie.Delete(ctx, movie.ID); err != nil {
			return fmt.Errorf("delete movie %s: %w", movieID, err)
		}
		return nil
	})
}

func (s *movieService) GetNowShowing(ctx context.Context, date string) ([]response.MovieResponse, error) {
	day := s.clock.Today()
	if date != "" {
		d, err := parseDate("date", date)
		if err != nil {
			return nil, err
		}
		day = d
	}

	movies, err := s.repo.Movie.FindShowingOn(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("get movies showing on %s: %w", scheduling.FormatDate(day), err)
	}

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetShowtimes(ctx context.Context, movieID string) ([]response.ScheduleResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	details, err := s.repo.Schedule.FindDetailsByMovie(ctx, movie.ID, today)
	if err != nil {
		return nil, fmt.Errorf("get showtimes for movie %s: %w", movieID, err)
	}

	resp := make([]response.ScheduleResponse, 0, len(details))
	for _, d := range details {
		if !s.clock.OccurrenceOpen(d, today) {
			continue
		}
		resp = append(resp, response.ScheduleToResponse(d))
	}

	return resp, nil
}
