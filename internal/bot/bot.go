// Package bot - Telegram-бот администраторов: туры с остатком мест, последние брони, сводка.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"safaruz/internal/model"
)

const recentBookingsLimit = 10

// API - часть *tgbotapi.BotAPI, которой пользуется бот.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type TourLister interface {
	List(ctx context.Context, params map[string]string) ([]model.Tour, error)
	Get(ctx context.Context, id int) (*model.Tour, error)
}

type BookingLister interface {
	ListRecent(ctx context.Context, limit int) ([]model.AdminBooking, error)
}

type StatsProvider interface {
	Stats(ctx context.Context) (*model.Stats, error)
}

// Bot отвечает только в чате администраторов.
type Bot struct {
	api         API
	tours       TourLister
	bookings    BookingLister
	stats       StatsProvider
	adminChatID int64
	logger      *zap.Logger
}

func New(api API, tours TourLister, bookings BookingLister, stats StatsProvider, adminChatID int64, logger *zap.Logger) *Bot {
	return &Bot{api: api, tours: tours, bookings: bookings, stats: stats, adminChatID: adminChatID, logger: logger}
}

// Run обрабатывает обновления, пока не закроется канал или не отменится ctx.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	// --- CallbackQuery (inline-кнопки) ---
	if cq := update.CallbackQuery; cq != nil {
		b.api.Request(tgbotapi.NewCallback(cq.ID, ""))
		if cq.Message == nil || cq.Message.Chat.ID != b.adminChatID {
			return
		}
		if idStr, ok := strings.CutPrefix(cq.Data, "TOUR_"); ok {
			id, err := strconv.Atoi(idStr)
			if err != nil {
				return
			}
			b.tourDetails(ctx, cq.Message.Chat.ID, id)
		}
		return
	}

	// --- Обычные сообщения ---
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID
	if chatID != b.adminChatID {
		b.send(chatID, "Бот доступен только администраторам SafarUz.")
		return
	}

	switch msg.Command() {
	case "start", "help":
		b.send(chatID, "Команды:\n/tours - туры и свободные места\n/bookings - последние брони\n/stats - сводка")
	case "tours":
		b.listTours(ctx, chatID)
	case "bookings":
		b.listBookings(ctx, chatID)
	case "stats":
		b.showStats(ctx, chatID)
	default:
		b.send(chatID, "Неизвестная команда. Введите /help.")
	}
}

func (b *Bot) listTours(ctx context.Context, chatID int64) {
	tours, err := b.tours.List(ctx, nil)
	if err != nil {
		b.logger.Error("bot: list tours", zap.Error(err))
		b.send(chatID, "Ошибка получения туров.")
		return
	}
	if len(tours) == 0 {
		b.send(chatID, "Туров пока нет.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tours))
	for _, t := range tours {
		name := t.Name
		if len([]rune(name)) > 30 {
			name = string([]rune(name)[:30]) + "..."
		}
		label := fmt.Sprintf("%s (%d)", name, t.AvailableSpots)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("TOUR_%d", t.ID)),
		))
	}
	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf("Туров: %d", len(tours)))
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.api.Send(reply)
}

func (b *Bot) tourDetails(ctx context.Context, chatID int64, id int) {
	t, err := b.tours.Get(ctx, id)
	if err != nil {
		b.send(chatID, "Тур не найден.")
		return
	}
	b.send(chatID, fmt.Sprintf("%s\n%s\nЦена: %.2f\nСвободных мест: %d\n\n%s",
		t.Name, t.Location, t.Price, t.AvailableSpots, t.Description))
}

func (b *Bot) listBookings(ctx context.Context, chatID int64) {
	items, err := b.bookings.ListRecent(ctx, recentBookingsLimit)
	if err != nil {
		b.logger.Error("bot: list bookings", zap.Error(err))
		b.send(chatID, "Ошибка получения броней.")
		return
	}
	if len(items) == 0 {
		b.send(chatID, "Броней пока нет.")
		return
	}
	var sb strings.Builder
	sb.WriteString("Последние брони:\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "#%d %s - %s (%s), %s\n",
			it.ID, it.CreatedAt.Format("02.01 15:04"), it.TourName, it.Username, it.Email)
	}
	b.send(chatID, sb.String())
}

func (b *Bot) showStats(ctx context.Context, chatID int64) {
	s, err := b.stats.Stats(ctx)
	if err != nil {
		b.logger.Error("bot: stats", zap.Error(err))
		b.send(chatID, "Ошибка получения сводки.")
		return
	}
	b.send(chatID, fmt.Sprintf("Пользователей: %d\nТуров: %d\nБроней туров: %d\nБроней гостиниц: %d\nОтзывов: %d",
		s.Users, s.Tours, s.Bookings, s.HotelBookings, s.Reviews))
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("bot: send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
