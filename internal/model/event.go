package model

import "time"

type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
)

// BookingEvent публикуется после фиксации изменения брони.
type BookingEvent struct {
	Type           EventType `json:"type"`
	BookingID      int       `json:"booking_id"`
	UserID         int       `json:"user_id"`
	TourID         int       `json:"tour_id"`
	TourName       string    `json:"tour_name,omitempty"`
	AvailableSpots int       `json:"available_spots"`
	OccurredAt     time.Time `json:"occurred_at"`
}
