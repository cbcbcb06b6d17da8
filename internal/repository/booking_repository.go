package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"safaruz/internal/model"
)

// BookingRepository обеспечивает доступ к броням туров. Учёт мест ведётся условными
// обновлениями внутри транзакций, поэтому available_spots не уходит в минус при гонке.
type BookingRepository interface {
	Create(ctx context.Context, userID, tourID int) (*model.Booking, *model.Tour, error)
	Cancel(ctx context.Context, id, userID int) (*model.Booking, *model.Tour, error)
	ListByUser(ctx context.Context, userID int) ([]model.BookingDetails, error)
	ListAll(ctx context.Context) ([]model.AdminBooking, error)
	ListRecent(ctx context.Context, limit int) ([]model.AdminBooking, error)
}

type BookingRepositoryImpl struct {
	db *DB
}

// NewBookingRepository создает новый репозиторий для бронирований.
func NewBookingRepository(db *DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{db: db}
}

// Create занимает одно место в туре и создаёт бронь. Возвращает бронь и тур после списания места.
// Отсутствующий тур даёт ErrNotFound, тур без мест - ErrNoSpots.
func (r *BookingRepositoryImpl) Create(ctx context.Context, userID, tourID int) (_ *model.Booking, _ *model.Tour, err error) {
	ctx, done := trace(ctx, "BookingRepository.Create")
	defer func() { done(err) }()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	var tour model.Tour
	err = tx.GetContext(ctx, &tour, `UPDATE tours SET available_spots = available_spots - 1
		WHERE id=$1 AND available_spots > 0 RETURNING *`, tourID)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err = tx.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM tours WHERE id=$1)", tourID); err != nil {
			return nil, nil, fmt.Errorf("не удалось проверить тур: %w", err)
		}
		if !exists {
			return nil, nil, ErrNotFound
		}
		return nil, nil, ErrNoSpots
	}
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось занять место в туре: %w", err)
	}

	var booking model.Booking
	err = tx.GetContext(ctx, &booking,
		"INSERT INTO bookings (user_id, tour_id) VALUES ($1, $2) RETURNING *", userID, tourID)
	if err != nil {
		if err = translate(err); err == ErrNotFound {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("не удалось создать бронирование: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("не удалось зафиксировать бронирование: %w", err)
	}
	return &booking, &tour, nil
}

// Cancel удаляет бронь пользователя и возвращает место туру. Чужая или несуществующая бронь - ErrNotFound.
func (r *BookingRepositoryImpl) Cancel(ctx context.Context, id, userID int) (_ *model.Booking, _ *model.Tour, err error) {
	ctx, done := trace(ctx, "BookingRepository.Cancel")
	defer func() { done(err) }()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	var booking model.Booking
	err = tx.GetContext(ctx, &booking, "DELETE FROM bookings WHERE id=$1 AND user_id=$2 RETURNING *", id, userID)
	if err != nil {
		if err = translate(err); err == ErrNotFound {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("не удалось отменить бронирование: %w", err)
	}

	var tour model.Tour
	err = tx.GetContext(ctx, &tour,
		"UPDATE tours SET available_spots = available_spots + 1 WHERE id=$1 RETURNING *", booking.TourID)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось вернуть место в тур: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("не удалось зафиксировать отмену: %w", err)
	}
	return &booking, &tour, nil
}

// ListByUser возвращает брони пользователя с данными туров, новые первыми.
func (r *BookingRepositoryImpl) ListByUser(ctx context.Context, userID int) ([]model.BookingDetails, error) {
	ctx, done := trace(ctx, "BookingRepository.ListByUser")
	items := []model.BookingDetails{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT b.id, b.user_id, b.tour_id, b.created_at,
		       t.name AS tour_name, t.location AS tour_location, t.price AS tour_price
		FROM bookings b
		JOIN tours t ON t.id = b.tour_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC`, userID)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении бронирований: %w", err)
	}
	return items, nil
}

func (r *BookingRepositoryImpl) ListAll(ctx context.Context) ([]model.AdminBooking, error) {
	return r.listAdmin(ctx, "BookingRepository.ListAll", "")
}

// ListRecent возвращает последние limit броней для бота администратора.
func (r *BookingRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]model.AdminBooking, error) {
	return r.listAdmin(ctx, "BookingRepository.ListRecent", fmt.Sprintf(" LIMIT %d", limit))
}

func (r *BookingRepositoryImpl) listAdmin(ctx context.Context, name, suffix string) ([]model.AdminBooking, error) {
	ctx, done := trace(ctx, name)
	items := []model.AdminBooking{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT b.id, b.user_id, b.tour_id, b.created_at,
		       u.username, u.email, t.name AS tour_name
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN tours t ON t.id = b.tour_id
		ORDER BY b.created_at DESC, b.id DESC`+suffix)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка бронирований: %w", err)
	}
	return items, nil
}
