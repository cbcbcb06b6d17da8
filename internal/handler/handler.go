package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safaruz/internal/model"
	"safaruz/internal/service"
)

// Services - зависимости обработчиков.
type Services struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Bookings      *service.BookingService
	HotelBookings *service.HotelBookingService
	Reviews       *service.ReviewService
	Assistant     *service.AssistantService
	Uploads       *service.UploadService
	Admin         *service.AdminService

	Tours       *service.CatalogService[model.Tour]
	Hotels      *service.CatalogService[model.Hotel]
	Restaurants *service.CatalogService[model.Restaurant]
	Historical  *service.CatalogService[model.HistoricalPlace]
	Recreations *service.CatalogService[model.RecreationalPlace]
	Transport   *service.CatalogService[model.TransportOption]
	Cities      *service.CatalogService[model.City]
}

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	Services
	logger *zap.Logger
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(s Services, logger *zap.Logger) *Handler {
	return &Handler{Services: s, logger: logger}
}

// Options - параметры HTTP-слоя, не относящиеся к сервисам.
type Options struct {
	CORSAllowOrigins []string
	UploadDir        string
}

// Routes регистрирует все маршруты API на r.
func (h *Handler) Routes(r *gin.Engine, opts Options) {
	r.Use(RequestID(), Logger(h.logger), gin.Recovery(), CORS(opts.CORSAllowOrigins))

	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	r.GET("/health", h.Health)
	r.POST("/signup", h.Signup)
	r.POST("/register", h.Signup)
	r.POST("/login", h.Login)
	r.GET("/reviews", h.ListReviews)

	authed := AuthRequired(h.Auth)
	admin := RequireRole(model.RoleAdmin)

	registerCatalog(r, "/tours", h.Tours, authed, admin)
	registerCatalog(r, "/hotels", h.Hotels, authed, admin)
	registerCatalog(r, "/restaurants", h.Restaurants, authed, admin)
	registerCatalog(r, "/historical-places", h.Historical, authed, admin)
	registerCatalog(r, "/recreations", h.Recreations, authed, admin)
	registerCatalog(r, "/transport", h.Transport, authed, admin)
	registerCatalog(r, "/cities", h.Cities, authed, admin)

	user := r.Group("/", authed)
	{
		user.POST("/logout", h.Logout)

		user.GET("/profile", h.GetProfile)
		user.POST("/profile", h.UpdateProfile)
		user.PATCH("/profile", h.ChangePassword)
		user.DELETE("/profile", h.DeleteProfile)
		user.POST("/upload-profile", h.UploadProfileImage)

		user.POST("/bookings", h.CreateBooking)
		user.DELETE("/bookings/:id", h.CancelBooking)
		user.GET("/my-bookings", h.MyBookings)

		user.POST("/hotel-bookings", h.CreateHotelBooking)
		user.GET("/my-hotel-bookings", h.MyHotelBookings)
		user.DELETE("/hotel-bookings/:id", h.CancelHotelBooking)

		user.POST("/reviews", h.CreateReview)
		user.POST("/ai-assistant", h.AskAssistant)
	}

	adm := r.Group("/", authed, admin)
	{
		adm.GET("/users", h.ListUsers)
		adm.GET("/admin", h.AdminStats)
		adm.GET("/admin/bookings", h.AdminBookings)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Маршрут не найден"})
	})
}
