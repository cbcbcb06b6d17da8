package model

import "time"

// Booking - бронь одного места в туре. Удаление брони возвращает место туру.
type Booking struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	TourID    int       `db:"tour_id" json:"tour_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BookingDetails - бронь пользователя вместе с данными тура.
type BookingDetails struct {
	Booking
	TourName     string  `db:"tour_name" json:"tour_name"`
	TourLocation string  `db:"tour_location" json:"tour_location"`
	TourPrice    float64 `db:"tour_price" json:"tour_price"`
}

// AdminBooking - бронь в списке администратора.
type AdminBooking struct {
	Booking
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	TourName string `db:"tour_name" json:"tour_name"`
}

// HotelBooking - бронирование номера в гостинице на интервал дат.
type HotelBooking struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	HotelID   int       `db:"hotel_id" json:"hotel_id"`
	CheckIn   time.Time `db:"check_in" json:"check_in"`
	CheckOut  time.Time `db:"check_out" json:"check_out"`
	Guests    int       `db:"guests" json:"guests"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type HotelBookingDetails struct {
	HotelBooking
	HotelName string `db:"hotel_name" json:"hotel_name"`
	HotelCity string `db:"hotel_city" json:"hotel_city"`
}
