package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"safaruz/internal/model"
	"safaruz/internal/notify"
	"safaruz/internal/repository"
)

const notifyTimeout = 10 * time.Second

// BookingService содержит бизнес-логику, связанную с бронированиями туров.
type BookingService struct {
	bookingRepo repository.BookingRepository
	notifier    notify.Notifier
	logger      *zap.Logger
}

// NewBookingService создает новый сервис бронирований. notifier может быть nil.
func NewBookingService(bookingRepo repository.BookingRepository, notifier notify.Notifier, logger *zap.Logger) *BookingService {
	return &BookingService{bookingRepo: bookingRepo, notifier: notifier, logger: logger}
}

// Book бронирует одно место в туре.
func (s *BookingService) Book(ctx context.Context, userID, tourID int) (*model.Booking, error) {
	if tourID <= 0 {
		return nil, invalid("укажите tour_id")
	}
	booking, tour, err := s.bookingRepo.Create(ctx, userID, tourID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, model.EventBookingCreated, booking, tour)
	return booking, nil
}

// Cancel отменяет бронь пользователя и возвращает место туру.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID int) error {
	booking, tour, err := s.bookingRepo.Cancel(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	s.publish(ctx, model.EventBookingCancelled, booking, tour)
	return nil
}

func (s *BookingService) ListMine(ctx context.Context, userID int) ([]model.BookingDetails, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]model.AdminBooking, error) {
	return s.bookingRepo.ListAll(ctx)
}

func (s *BookingService) ListRecent(ctx context.Context, limit int) ([]model.AdminBooking, error) {
	return s.bookingRepo.ListRecent(ctx, limit)
}

// publish отправляет событие в фоне. Отмена запроса не прерывает доставку.
func (s *BookingService) publish(ctx context.Context, typ model.EventType, booking *model.Booking, tour *model.Tour) {
	if s.notifier == nil {
		return
	}
	event := model.BookingEvent{
		Type:           typ,
		BookingID:      booking.ID,
		UserID:         booking.UserID,
		TourID:         booking.TourID,
		TourName:       tour.Name,
		AvailableSpots: tour.AvailableSpots,
		OccurredAt:     time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, event); err != nil {
			s.logger.Warn("booking notification failed",
				zap.String("type", string(typ)),
				zap.Int("booking_id", booking.ID),
				zap.Error(err))
		}
	}()
}
