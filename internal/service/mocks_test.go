package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"safaruz/internal/model"
	"safaruz/internal/repository"
)

// MockUserRepository - пользователи в памяти с уникальным email.
type MockUserRepository struct {
	mu     sync.Mutex
	users  map[int]*model.User
	nextID int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: map[int]*model.User{}}
}

func (m *MockUserRepository) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByID(_ context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) List(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := []model.User{}
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *MockUserRepository) UpdateProfile(_ context.Context, id int, username, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, other := range m.users {
		if other.ID != id && strings.EqualFold(other.Email, email) {
			return nil, repository.ErrDuplicate
		}
	}
	u.Username, u.Email = username, email
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) UpdatePassword(_ context.Context, id int, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (m *MockUserRepository) SetProfileImage(_ context.Context, id int, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ProfileImage = &path
	return nil
}

func (m *MockUserRepository) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// MemoryBookingRepository повторяет условное списание мест под одной блокировкой.
type MemoryBookingRepository struct {
	mu       sync.Mutex
	tours    map[int]*model.Tour
	bookings map[int]*model.Booking
	nextID   int
}

func NewMemoryBookingRepository(tours ...model.Tour) *MemoryBookingRepository {
	r := &MemoryBookingRepository{tours: map[int]*model.Tour{}, bookings: map[int]*model.Booking{}}
	for i := range tours {
		t := tours[i]
		r.tours[t.ID] = &t
	}
	return r
}

func (r *MemoryBookingRepository) Create(_ context.Context, userID, tourID int) (*model.Booking, *model.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tour, ok := r.tours[tourID]
	if !ok {
		return nil, nil, repository.ErrNotFound
	}
	if tour.AvailableSpots <= 0 {
		return nil, nil, repository.ErrNoSpots
	}
	tour.AvailableSpots--
	r.nextID++
	b := &model.Booking{ID: r.nextID, UserID: userID, TourID: tourID, CreatedAt: time.Now()}
	r.bookings[b.ID] = b
	bc, tc := *b, *tour
	return &bc, &tc, nil
}

func (r *MemoryBookingRepository) Cancel(_ context.Context, id, userID int) (*model.Booking, *model.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID {
		return nil, nil, repository.ErrNotFound
	}
	delete(r.bookings, id)
	tour := r.tours[b.TourID]
	tour.AvailableSpots++
	bc, tc := *b, *tour
	return &bc, &tc, nil
}

func (r *MemoryBookingRepository) ListByUser(_ context.Context, userID int) ([]model.BookingDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []model.BookingDetails{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			t := r.tours[b.TourID]
			items = append(items, model.BookingDetails{Booking: *b, TourName: t.Name, TourLocation: t.Location, TourPrice: t.Price})
		}
	}
	return items, nil
}

func (r *MemoryBookingRepository) ListAll(context.Context) ([]model.AdminBooking, error) {
	return []model.AdminBooking{}, nil
}

func (r *MemoryBookingRepository) ListRecent(context.Context, int) ([]model.AdminBooking, error) {
	return []model.AdminBooking{}, nil
}

func (r *MemoryBookingRepository) spots(tourID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tours[tourID].AvailableSpots
}

// MockNotifier передаёт события в канал.
type MockNotifier struct {
	events chan model.BookingEvent
	err    error
}

func (m *MockNotifier) Notify(_ context.Context, event model.BookingEvent) error {
	m.events <- event
	return m.err
}

type MockReviewRepository struct {
	existing map[model.ReviewTarget]map[int]bool
	reviews  []model.Review
}

func (m *MockReviewRepository) TargetExists(_ context.Context, target model.ReviewTarget, id int) (bool, error) {
	return m.existing[target][id], nil
}

func (m *MockReviewRepository) Create(_ context.Context, review *model.Review) error {
	review.ID = len(m.reviews) + 1
	review.CreatedAt = time.Now()
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *MockReviewRepository) ListByTarget(_ context.Context, target model.ReviewTarget, id int) ([]model.ReviewWithAuthor, error) {
	out := []model.ReviewWithAuthor{}
	for _, r := range m.reviews {
		if r.Type == target && r.TargetID == id {
			out = append(out, model.ReviewWithAuthor{Review: r, Username: "user"})
		}
	}
	return out, nil
}

// MockCatalogRepository - каталог одной сущности в памяти.
type MockCatalogRepository[T any] struct {
	items   map[int]T
	listErr error
}

func (m *MockCatalogRepository[T]) List(context.Context, map[string]string) ([]T, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []T{}
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *MockCatalogRepository[T]) GetByID(_ context.Context, id int) (*T, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &it, nil
}

func (m *MockCatalogRepository[T]) Create(_ context.Context, item *T) (*T, error) {
	return item, nil
}

func (m *MockCatalogRepository[T]) Update(_ context.Context, id int, item *T) (*T, error) {
	if _, ok := m.items[id]; !ok {
		return nil, repository.ErrNotFound
	}
	m.items[id] = *item
	return item, nil
}

func (m *MockCatalogRepository[T]) Delete(_ context.Context, id int) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type MockHotelBookingRepository struct {
	created []model.HotelBooking
}

func (m *MockHotelBookingRepository) Create(_ context.Context, b *model.HotelBooking) error {
	b.ID = len(m.created) + 1
	m.created = append(m.created, *b)
	return nil
}

func (m *MockHotelBookingRepository) ListByUser(context.Context, int) ([]model.HotelBookingDetails, error) {
	return []model.HotelBookingDetails{}, nil
}

func (m *MockHotelBookingRepository) Delete(_ context.Context, id, userID int) error {
	for _, b := range m.created {
		if b.ID == id && b.UserID == userID {
			return nil
		}
	}
	return repository.ErrNotFound
}
