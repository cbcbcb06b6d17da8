package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"safaruz/internal/model"
)

// Sender - часть *tgbotapi.BotAPI, нужная для отправки сообщений.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier отправляет события в чат администраторов.
type TelegramNotifier struct {
	sender Sender
	chatID int64
}

func NewTelegramNotifier(sender Sender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chatID: chatID}
}

func (n *TelegramNotifier) Notify(_ context.Context, event model.BookingEvent) error {
	if _, err := n.sender.Send(tgbotapi.NewMessage(n.chatID, FormatEvent(event))); err != nil {
		return fmt.Errorf("не удалось отправить уведомление в Telegram: %w", err)
	}
	return nil
}

// FormatEvent возвращает текст уведомления о событии.
func FormatEvent(event model.BookingEvent) string {
	tour := event.TourName
	if tour == "" {
		tour = fmt.Sprintf("#%d", event.TourID)
	}
	switch event.Type {
	case model.EventBookingCreated:
		return fmt.Sprintf("Новая бронь #%d: тур %s, пользователь #%d. Осталось мест: %d",
			event.BookingID, tour, event.UserID, event.AvailableSpots)
	case model.EventBookingCancelled:
		return fmt.Sprintf("Бронь #%d отменена: тур %s, пользователь #%d. Свободных мест: %d",
			event.BookingID, tour, event.UserID, event.AvailableSpots)
	default:
		return fmt.Sprintf("Событие %s по брони #%d", event.Type, event.BookingID)
	}
}
