package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя. Пароль хранится только в виде bcrypt-хеша
// и никогда не сериализуется в JSON.
type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	Password     string    `db:"password" json:"-"`
	Role         string    `db:"role" json:"role"`
	ProfileImage *string   `db:"profile_image" json:"profile_image"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Stats - сводные счётчики для панели администратора.
type Stats struct {
	Users         int `db:"users" json:"users"`
	Tours         int `db:"tours" json:"tours"`
	Bookings      int `db:"bookings" json:"bookings"`
	HotelBookings int `db:"hotel_bookings" json:"hotel_bookings"`
	Reviews       int `db:"reviews" json:"reviews"`
}
