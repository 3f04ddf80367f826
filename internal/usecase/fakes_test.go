package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"venue-scheduler/internal/data/entity"
	"venue-scheduler/internal/data/repository"
	"venue-scheduler/pkg/lock"
	"venue-scheduler/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// store backs every fake repository. mu guards the maps; txMu plays the
// role of the row locks and serializes WithinTx callers.
type store struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	halls     map[uuid.UUID]*entity.Hall
	movies    map[uuid.UUID]*entity.Movie
	schedules map[uuid.UUID]*entity.Schedule
	bookings  []*entity.Booking

	// Called while an admission holds its transaction, after the movie
	// share lock and the hall snapshot read respectively.
	onMovieShared  func()
	onHallSnapshot func()
}

func newStore() *store {
	return &store{
		halls:     make(map[uuid.UUID]*entity.Hall),
		movies:    make(map[uuid.UUID]*entity.Movie),
		schedules: make(map[uuid.UUID]*entity.Schedule),
	}
}

func (st *store) repository() *repository.Repository {
	repo := &repository.Repository{
		Hall:     &fakeHallRepo{st},
		Movie:    &fakeMovieRepo{st},
		Schedule: &fakeScheduleRepo{st},
		Booking:  &fakeBookingRepo{st},
	}
	repo.Tx = &fakeTx{st: st, repo: repo}
	return repo
}

func (st *store) addHall(name string, capacity int) *entity.Hall {
	st.mu.Lock()
	defer st.mu.Unlock()
	h := &entity.Hall{Base: entity.Base{ID: uuid.New()}, Name: name, Capacity: capacity}
	st.halls[h.ID] = h
	return h
}

func (st *store) addMovie(title string, minutes int) *entity.Movie {
	st.mu.Lock()
	defer st.mu.Unlock()
	m := &entity.Movie{Base: entity.Base{ID: uuid.New()}, Title: title, DurationInMinutes: minutes}
	st.movies[m.ID] = m
	return m
}

func (st *store) scheduleCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.schedules)
}

type fakeTx struct {
	st   *store
	repo *repository.Repository
}

func (t *fakeTx) WithinTx(_ context.Context, fn repository.TxFunc) error {
	t.st.txMu.Lock()
	defer t.st.txMu.Unlock()
	return fn(t.repo)
}

type fakeHallRepo struct{ st *store }

func (r *fakeHallRepo) Create(_ context.Context, hall *entity.Hall) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, h := range r.st.halls {
		if h.Name == hall.Name {
			return repository.ErrDuplicate
		}
	}
	cp := *hall
	r.st.halls[hall.ID] = &cp
	return nil
}

func (r *fakeHallRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	h, ok := r.st.halls[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (r *fakeHallRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeHallRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Hall, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var all []*entity.Hall
	for _, h := range r.st.halls {
		all = append(all, h)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *fakeHallRepo) CountAll(context.Context) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return int64(len(r.st.halls)), nil
}

func (r *fakeHallRepo) Update(_ context.Context, hall *entity.Hall) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, h := range r.st.halls {
		if h.ID != hall.ID && h.Name == hall.Name {
			return repository.ErrDuplicate
		}
	}
	cp := *hall
	r.st.halls[hall.ID] = &cp
	return nil
}

func (r *fakeHallRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	delete(r.st.halls, id)
	return nil
}

type fakeMovieRepo struct{ st *store }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cp := *movie
	r.st.movies[movie.ID] = &cp
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	m, ok := r.st.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovieRepo) ShareByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	m, err := r.FindByID(ctx, id)
	if r.st.onMovieShared != nil {
		r.st.onMovieShared()
	}
	return m, err
}

func (r *fakeMovieRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var all []*entity.Movie
	for _, m := range r.st.movies {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return page(all, limit, offset), nil
}

func (r *fakeMovieRepo) CountAll(context.Context) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return int64(len(r.st.movies)), nil
}

func (r *fakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	return r.Create(ctx, movie)
}

func (r *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	delete(r.st.movies, id)
	return nil
}

func (r *fakeMovieRepo) FindShowingOn(_ context.Context, date time.Time) ([]*entity.Movie, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []*entity.Movie
	for _, s := range r.st.schedules {
		if covers(s, date) && !seen[s.MovieID] {
			seen[s.MovieID] = true
			out = append(out, r.st.movies[s.MovieID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type fakeScheduleRepo struct{ st *store }

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *entity.Schedule) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cp := *schedule
	r.st.schedules[schedule.ID] = &cp
	return nil
}

func (r *fakeScheduleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Schedule, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s, ok := r.st.schedules[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeScheduleRepo) Update(ctx context.Context, schedule *entity.Schedule) error {
	return r.Create(ctx, schedule)
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	delete(r.st.schedules, id)
	return nil
}

func (r *fakeScheduleRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.ScheduleDetail, error) {
	return r.FindDetailByID(ctx, id)
}

func (r *fakeScheduleRepo) FindDetailByID(_ context.Context, id uuid.UUID) (*entity.ScheduleDetail, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s, ok := r.st.schedules[id]
	if !ok {
		return nil, nil
	}
	return r.detail(s), nil
}

func (r *fakeScheduleRepo) detail(s *entity.Schedule) *entity.ScheduleDetail {
	d := &entity.ScheduleDetail{Schedule: *s}
	if m, ok := r.st.movies[s.MovieID]; ok {
		d.MovieTitle = m.Title
		d.DurationInMinutes = m.DurationInMinutes
	}
	if h, ok := r.st.halls[s.HallID]; ok {
		d.HallName = h.Name
		d.HallCapacity = h.Capacity
	}
	return d
}

func (r *fakeScheduleRepo) filter(keep func(*entity.Schedule) bool) []*entity.ScheduleDetail {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []*entity.ScheduleDetail
	for _, s := range r.st.schedules {
		if keep(s) {
			out = append(out, r.detail(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ShowTime.String() < out[j].ShowTime.String()
	})
	return out
}

func (r *fakeScheduleRepo) FindDetailsByHallInRange(_ context.Context, hallID uuid.UUID, start, end time.Time) ([]*entity.ScheduleDetail, error) {
	out := r.filter(func(s *entity.Schedule) bool {
		return s.HallID == hallID && !s.StartDate.After(end) && !s.EndDate.Before(start)
	})
	if r.st.onHallSnapshot != nil {
		r.st.onHallSnapshot()
	}
	return out, nil
}

func (r *fakeScheduleRepo) FindDetailsByDate(_ context.Context, date time.Time) ([]*entity.ScheduleDetail, error) {
	out := r.filter(func(s *entity.Schedule) bool { return covers(s, date) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].MovieTitle < out[j].MovieTitle })
	return out, nil
}

func (r *fakeScheduleRepo) FindDetailsByMovie(_ context.Context, movieID uuid.UUID, date time.Time) ([]*entity.ScheduleDetail, error) {
	return r.filter(func(s *entity.Schedule) bool {
		return s.MovieID == movieID && covers(s, date)
	}), nil
}

func (r *fakeScheduleRepo) CountByHallID(_ context.Context, hallID uuid.UUID) (int64, error) {
	return int64(len(r.filter(func(s *entity.Schedule) bool { return s.HallID == hallID }))), nil
}

func (r *fakeScheduleRepo) CountUpcomingByMovieID(_ context.Context, movieID uuid.UUID, from time.Time) (int64, error) {
	return int64(len(r.filter(func(s *entity.Schedule) bool {
		return s.MovieID == movieID && !s.EndDate.Before(from)
	}))), nil
}

type fakeBookingRepo struct{ st *store }

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cp := *booking
	r.st.bookings = append(r.st.bookings, &cp)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, b := range r.st.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.st.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ShowDate.After(out[j].ShowDate) })
	return page(out, limit, offset), nil
}

func (r *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int64
	for _, b := range r.st.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, b := range r.st.bookings {
		if b.ID == id {
			b.Status = status
		}
	}
	return nil
}

func (r *fakeBookingRepo) FindSeatNumbers(_ context.Context, scheduleID uuid.UUID, date time.Time) ([]string, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []string
	for _, b := range r.st.bookings {
		if b.ScheduleID == scheduleID && b.ShowDate.Equal(date) && b.Status == entity.BookingStatusConfirmed {
			out = append(out, b.SeatNumber)
		}
	}
	return out, nil
}

func covers(s *entity.Schedule, date time.Time) bool {
	return !date.Before(s.StartDate) && !date.After(s.EndDate)
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// recordingPublisher keeps every published routing key.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// heldLocker refuses every key, as if another instance held it.
type heldLocker struct{}

func (heldLocker) Acquire(context.Context, string, time.Duration) (func(), error) {
	return nil, lock.ErrHeld
}

// fixedNow is 2025-03-01 10:00 UTC.
var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	st        *store
	cfg       *utils.Config
	svc       *Service
	publisher *recordingPublisher
}

func newFixture(t *testing.T, opts ...func(*Deps)) *fixture {
	t.Helper()
	st := newStore()
	pub := &recordingPublisher{}
	d := Deps{
		Repo: st.repository(),
		Config: &utils.Config{
			App:      utils.AppConfig{Timezone: "UTC"},
			Redis:    utils.RedisConfig{LockTTL: time.Second},
			Schedule: utils.ScheduleConfig{BookingWindowDays: 30},
		},
		Locker:    lock.NopLocker{},
		Publisher: pub,
		Log:       zap.NewNop(),
		Now:       func() time.Time { return fixedNow },
	}
	for _, opt := range opts {
		opt(&d)
	}
	return &fixture{st: st, cfg: d.Config, svc: newService(d), publisher: pub}
}
