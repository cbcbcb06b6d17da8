// Package notify рассылает события бронирований во внешние каналы. Доставка best effort:
// ошибки возвращаются вызывающему для логирования и не влияют на бронь.
package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"safaruz/internal/model"
)

type Notifier interface {
	Notify(ctx context.Context, event model.BookingEvent) error
}

// Multi доставляет событие во все каналы и собирает их ошибки.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event model.BookingEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier пишет события в журнал.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event model.BookingEvent) error {
	n.logger.Info("booking event",
		zap.String("type", string(event.Type)),
		zap.Int("booking_id", event.BookingID),
		zap.Int("user_id", event.UserID),
		zap.Int("tour_id", event.TourID),
		zap.Int("available_spots", event.AvailableSpots),
	)
	return nil
}
