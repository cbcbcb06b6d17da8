package handler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"safaruz/internal/auth"
	"safaruz/internal/model"
	"safaruz/internal/repository"
)

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[int]*model.User
}

func (r *fakeUserRepository) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.users {
		if strings.EqualFold(other.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.ID = len(r.users) + 1
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepository) GetByID(_ context.Context, id int) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepository) List(context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepository) UpdateProfile(_ context.Context, id int, username, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Username, u.Email = username, email
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, id int, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].Password = hash
	return nil
}

func (r *fakeUserRepository) SetProfileImage(_ context.Context, id int, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].ProfileImage = &path
	return nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeBookingRepository struct {
	mu       sync.Mutex
	tours    map[int]*model.Tour
	bookings map[int]*model.Booking
}

func (r *fakeBookingRepository) Create(_ context.Context, userID, tourID int) (*model.Booking, *model.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tours[tourID]
	if !ok {
		return nil, nil, repository.ErrNotFound
	}
	if t.AvailableSpots == 0 {
		return nil, nil, repository.ErrNoSpots
	}
	t.AvailableSpots--
	b := &model.Booking{ID: len(r.bookings) + 100, UserID: userID, TourID: tourID, CreatedAt: time.Now()}
	r.bookings[b.ID] = b
	bc, tc := *b, *t
	return &bc, &tc, nil
}

func (r *fakeBookingRepository) Cancel(_ context.Context, id, userID int) (*model.Booking, *model.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID {
		return nil, nil, repository.ErrNotFound
	}
	delete(r.bookings, id)
	t := r.tours[b.TourID]
	t.AvailableSpots++
	bc, tc := *b, *t
	return &bc, &tc, nil
}

func (r *fakeBookingRepository) ListByUser(context.Context, int) ([]model.BookingDetails, error) {
	return []model.BookingDetails{}, nil
}

func (r *fakeBookingRepository) ListAll(context.Context) ([]model.AdminBooking, error) {
	return []model.AdminBooking{}, nil
}

func (r *fakeBookingRepository) ListRecent(context.Context, int) ([]model.AdminBooking, error) {
	return []model.AdminBooking{}, nil
}

// fakeTourRepository запоминает фильтры последнего запроса списка.
type fakeTourRepository struct {
	lastParams map[string]string
	tours      map[int]model.Tour
}

func (r *fakeTourRepository) List(_ context.Context, params map[string]string) ([]model.Tour, error) {
	r.lastParams = params
	if _, _, err := repository.ToursTable.Where(params); err != nil {
		return nil, err
	}
	return []model.Tour{}, nil
}

func (r *fakeTourRepository) GetByID(_ context.Context, id int) (*model.Tour, error) {
	t, ok := r.tours[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTourRepository) Create(_ context.Context, t *model.Tour) (*model.Tour, error) {
	t.ID = len(r.tours) + 1
	r.tours[t.ID] = *t
	return t, nil
}

func (r *fakeTourRepository) Update(_ context.Context, id int, t *model.Tour) (*model.Tour, error) {
	if _, ok := r.tours[id]; !ok {
		return nil, repository.ErrNotFound
	}
	t.ID = id
	r.tours[id] = *t
	return t, nil
}

func (r *fakeTourRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.tours[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tours, id)
	return nil
}

type fakeReviewRepository struct {
	users   *fakeUserRepository
	reviews []model.Review
}

func (r *fakeReviewRepository) TargetExists(_ context.Context, _ model.ReviewTarget, id int) (bool, error) {
	return id == 1, nil
}

func (r *fakeReviewRepository) Create(_ context.Context, review *model.Review) error {
	review.ID = len(r.reviews) + 1
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepository) ListByTarget(ctx context.Context, target model.ReviewTarget, id int) ([]model.ReviewWithAuthor, error) {
	out := []model.ReviewWithAuthor{}
	for _, rv := range r.reviews {
		if rv.Type == target && rv.TargetID == id {
			u, _ := r.users.GetByID(ctx, rv.UserID)
			out = append(out, model.ReviewWithAuthor{Review: rv, Username: u.Username})
		}
	}
	return out, nil
}

type fakeStatsRepository struct {
	pingErr error
}

func (r *fakeStatsRepository) Counts(context.Context) (*model.Stats, error) {
	return &model.Stats{Users: 2, Tours: 1}, nil
}

func (r *fakeStatsRepository) Ping(context.Context) error {
	return r.pingErr
}

// switchRevoker хранит отзывы в памяти, но по флагу отказывает в Revoke.
type switchRevoker struct {
	*auth.MemoryRevoker
	mu         sync.Mutex
	failRevoke bool
}

func (r *switchRevoker) setFailRevoke(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failRevoke = fail
}

func (r *switchRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	fail := r.failRevoke
	r.mu.Unlock()
	if fail {
		return errors.New("revocation store unavailable")
	}
	return r.MemoryRevoker.Revoke(ctx, tokenID, expiresAt)
}
