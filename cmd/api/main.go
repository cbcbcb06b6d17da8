package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"safaruz/internal/auth"
	"safaruz/internal/config"
	"safaruz/internal/handler"
	"safaruz/internal/logging"
	"safaruz/internal/model"
	"safaruz/internal/notify"
	"safaruz/internal/repository"
	"safaruz/internal/service"
)

const (
	serviceName     = "safaruz-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// логгер ещё не создан
		os.Stderr.WriteString("Ошибка конфигурации: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Env)
	if err != nil {
		os.Stderr.WriteString("Не удалось создать логгер: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if len(cfg.Defaulted) > 0 {
		logger.Info("using defaults", zap.Strings("keys", cfg.Defaulted))
	}

	if cfg.EnableTracing {
		if err := xray.Configure(xray.Config{ServiceVersion: "1.0.0"}); err != nil {
			logger.Warn("failed to configure X-Ray", zap.Error(err))
		}
		os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := db.ApplyMigrations(ctx, cfg.DB.MigrationsDir)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", zap.Strings("files", applied))

	revoker, closeRevoker := newRevoker(ctx, cfg.Redis, logger)
	defer closeRevoker()

	// Репозитории
	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	hotelRepo := repository.NewCatalogRepository[model.Hotel](db, repository.HotelsTable)

	// Сервисы
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	h := handler.NewHandler(handler.Services{
		Auth:          service.NewAuthService(userRepo, tokens, revoker, logger),
		Users:         service.NewUserService(userRepo, logger),
		Bookings:      service.NewBookingService(bookingRepo, newNotifier(ctx, cfg, logger), logger),
		HotelBookings: service.NewHotelBookingService(repository.NewHotelBookingRepository(db), hotelRepo),
		Reviews:       service.NewReviewService(repository.NewReviewRepository(db)),
		Assistant:     service.NewAssistantService(newChatCompleter(cfg.OpenAI), cfg.OpenAI.Model, logger),
		Uploads:       service.NewUploadService(cfg.HTTP.UploadDir, userRepo, logger),
		Admin:         service.NewAdminService(repository.NewStatsRepository(db)),

		Tours:       service.NewCatalogService[model.Tour](repository.NewCatalogRepository[model.Tour](db, repository.ToursTable)),
		Hotels:      service.NewCatalogService[model.Hotel](hotelRepo),
		Restaurants: service.NewCatalogService[model.Restaurant](repository.NewCatalogRepository[model.Restaurant](db, repository.RestaurantsTable)),
		Historical:  service.NewCatalogService[model.HistoricalPlace](repository.NewCatalogRepository[model.HistoricalPlace](db, repository.HistoricalPlacesTable)),
		Recreations: service.NewCatalogService[model.RecreationalPlace](repository.NewCatalogRepository[model.RecreationalPlace](db, repository.RecreationalPlacesTable)),
		Transport:   service.NewCatalogService[model.TransportOption](repository.NewCatalogRepository[model.TransportOption](db, repository.TransportTable)),
		Cities:      service.NewCatalogService[model.City](repository.NewCatalogRepository[model.City](db, repository.CitiesTable)),
	}, logger)

	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	h.Routes(router, handler.Options{
		CORSAllowOrigins: cfg.HTTP.AllowOrigins(),
		UploadDir:        cfg.HTTP.UploadDir,
	})

	var httpHandler http.Handler = router
	if cfg.EnableTracing {
		httpHandler = xray.Handler(xray.NewFixedSegmentNamer(serviceName), router)
	}
	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRevoker выбирает Redis, если он настроен и доступен, иначе хранилище в памяти.
func newRevoker(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (auth.Revoker, func()) {
	if cfg.Addr == "" {
		return auth.NewMemoryRevoker(), func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, token revocation kept in memory", zap.String("addr", cfg.Addr), zap.Error(err))
		client.Close()
		return auth.NewMemoryRevoker(), func() {}
	}
	return auth.NewRedisRevoker(client), func() { client.Close() }
}

// newNotifier собирает каналы уведомлений о бронях из настроенных интеграций.
func newNotifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) notify.Notifier {
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}

	if cfg.Telegram.BotToken != "" && cfg.Telegram.AdminChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			logger.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, notify.NewTelegramNotifier(bot, cfg.Telegram.AdminChatID))
		}
	}

	if cfg.SFN.StateMachineARN != "" && !cfg.IsLocal() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			logger.Warn("step functions notifications disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, notify.NewStepFunctionsNotifier(sfn.NewFromConfig(awsCfg), cfg.SFN.StateMachineARN))
		}
	}
	return notifiers
}

func newChatCompleter(cfg config.OpenAIConfig) service.ChatCompleter {
	if cfg.APIKey == "" {
		return nil
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}
