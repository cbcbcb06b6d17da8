package model

import "time"

// Tour представляет тур с ограниченным числом мест.
type Tour struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name" binding:"required"`
	Description    string    `db:"description" json:"description"`
	Price          float64   `db:"price" json:"price" binding:"gte=0"`
	Location       string    `db:"location" json:"location" binding:"required"`
	AvailableSpots int       `db:"available_spots" json:"available_spots" binding:"gte=0"`
	ImageURL       string    `db:"image_url" json:"image_url"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// City - город-направление.
type City struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name" binding:"required"`
	Description string `db:"description" json:"description"`
	ImageURL    string `db:"image_url" json:"image_url"`
}
