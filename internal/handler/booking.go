package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safaruz/internal/service"
)

type bookingRequest struct {
	TourID int `json:"tour_id" binding:"required"`
}

// CreateBooking обработчик для POST /bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Укажите tour_id")
		return
	}
	booking, err := h.Bookings.Book(c.Request.Context(), principal(c).ID, req.TourID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Тур забронирован", "booking": booking})
}

// CancelBooking обработчик для DELETE /bookings/:id.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Bookings.Cancel(c.Request.Context(), principal(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Бронирование отменено"})
}

func (h *Handler) MyBookings(c *gin.Context) {
	items, err := h.Bookings.ListMine(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type hotelBookingRequest struct {
	HotelID  int    `json:"hotel_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests"`
}

// CreateHotelBooking обработчик для POST /hotel-bookings.
func (h *Handler) CreateHotelBooking(c *gin.Context) {
	var req hotelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Укажите hotel_id, check_in и check_out")
		return
	}
	booking, err := h.HotelBookings.Book(c.Request.Context(), principal(c).ID, service.HotelBookingInput{
		HotelID:  req.HotelID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Гостиница забронирована", "booking": booking})
}

func (h *Handler) MyHotelBookings(c *gin.Context) {
	items, err := h.HotelBookings.ListMine(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CancelHotelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.HotelBookings.Cancel(c.Request.Context(), principal(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Бронь гостиницы отменена"})
}
