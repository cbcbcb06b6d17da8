package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"safaruz/internal/bot"
	"safaruz/internal/config"
	"safaruz/internal/logging"
	"safaruz/internal/model"
	"safaruz/internal/repository"
	"safaruz/internal/service"
)

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		os.Stderr.WriteString("Ошибка конфигурации: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Env)
	if err != nil {
		os.Stderr.WriteString("Не удалось создать логгер: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	db, err := repository.NewDB(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	defer db.Close()

	// Инициализация репозиториев и сервисов
	tours := service.NewCatalogService[model.Tour](repository.NewCatalogRepository[model.Tour](db, repository.ToursTable))
	bookings := service.NewBookingService(repository.NewBookingRepository(db), nil, logger)
	admin := service.NewAdminService(repository.NewStatsRepository(db))

	// Инициализация Telegram Bot API
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Fatal("Ошибка инициализации бота", zap.Error(err))
	}
	logger.Info("bot started", zap.String("username", api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	bot.New(api, tours, bookings, admin, cfg.Telegram.AdminChatID, logger).Run(ctx, updates)
	api.StopReceivingUpdates()
	logger.Info("bot stopped")
}
