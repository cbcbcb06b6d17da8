package repository

import (
	"context"
	"fmt"

	"safaruz/internal/model"
)

type HotelBookingRepository interface {
	Create(ctx context.Context, booking *model.HotelBooking) error
	ListByUser(ctx context.Context, userID int) ([]model.HotelBookingDetails, error)
	Delete(ctx context.Context, id, userID int) error
}

type HotelBookingRepositoryImpl struct {
	db *DB
}

func NewHotelBookingRepository(db *DB) *HotelBookingRepositoryImpl {
	return &HotelBookingRepositoryImpl{db: db}
}

// Create сохраняет бронь гостиницы. Несуществующая гостиница даёт ErrNotFound.
func (r *HotelBookingRepositoryImpl) Create(ctx context.Context, b *model.HotelBooking) (err error) {
	ctx, done := trace(ctx, "HotelBookingRepository.Create")
	defer func() { done(err) }()

	query := `INSERT INTO hotel_bookings (user_id, hotel_id, check_in, check_out, guests)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err = r.db.QueryRowxContext(ctx, query, b.UserID, b.HotelID, b.CheckIn, b.CheckOut, b.Guests).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if err = translate(err); err == ErrNotFound {
			return err
		}
		return fmt.Errorf("не удалось забронировать гостиницу: %w", err)
	}
	return nil
}

func (r *HotelBookingRepositoryImpl) ListByUser(ctx context.Context, userID int) ([]model.HotelBookingDetails, error) {
	ctx, done := trace(ctx, "HotelBookingRepository.ListByUser")
	items := []model.HotelBookingDetails{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT hb.id, hb.user_id, hb.hotel_id, hb.check_in, hb.check_out, hb.guests, hb.created_at,
		       h.name AS hotel_name, h.city AS hotel_city
		FROM hotel_bookings hb
		JOIN hotels h ON h.id = hb.hotel_id
		WHERE hb.user_id = $1
		ORDER BY hb.check_in DESC, hb.id DESC`, userID)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении броней гостиниц: %w", err)
	}
	return items, nil
}

// Delete удаляет бронь гостиницы, принадлежащую пользователю.
func (r *HotelBookingRepositoryImpl) Delete(ctx context.Context, id, userID int) (err error) {
	ctx, done := trace(ctx, "HotelBookingRepository.Delete")
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, "DELETE FROM hotel_bookings WHERE id=$1 AND user_id=$2", id, userID)
	if err != nil {
		return fmt.Errorf("не удалось отменить бронь гостиницы: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
