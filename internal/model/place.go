package model

// Hotel - гостиница из каталога.
type Hotel struct {
	ID            int     `db:"id" json:"id"`
	Name          string  `db:"name" json:"name" binding:"required"`
	City          string  `db:"city" json:"city" binding:"required"`
	Description   string  `db:"description" json:"description"`
	Rating        float64 `db:"rating" json:"rating" binding:"gte=0,lte=5"`
	PricePerNight float64 `db:"price_per_night" json:"price_per_night" binding:"gte=0"`
	Address       string  `db:"address" json:"address"`
	Phone         string  `db:"phone" json:"phone"`
	ImageURL      string  `db:"image_url" json:"image_url"`
}

type Restaurant struct {
	ID           int     `db:"id" json:"id"`
	Name         string  `db:"name" json:"name" binding:"required"`
	City         string  `db:"city" json:"city" binding:"required"`
	Description  string  `db:"description" json:"description"`
	Cuisine      string  `db:"cuisine" json:"cuisine"`
	Rating       float64 `db:"rating" json:"rating" binding:"gte=0,lte=5"`
	AveragePrice float64 `db:"average_price" json:"average_price" binding:"gte=0"`
	Address      string  `db:"address" json:"address"`
	Phone        string  `db:"phone" json:"phone"`
	ImageURL     string  `db:"image_url" json:"image_url"`
}

// HistoricalPlace - памятник или историческое место.
type HistoricalPlace struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name" binding:"required"`
	City        string  `db:"city" json:"city" binding:"required"`
	Description string  `db:"description" json:"description"`
	Era         string  `db:"era" json:"era"`
	EntryFee    float64 `db:"entry_fee" json:"entry_fee" binding:"gte=0"`
	Rating      float64 `db:"rating" json:"rating" binding:"gte=0,lte=5"`
	ImageURL    string  `db:"image_url" json:"image_url"`
}

// RecreationalPlace - место отдыха (парк, курорт, аквапарк и т.п.).
type RecreationalPlace struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name" binding:"required"`
	City        string  `db:"city" json:"city" binding:"required"`
	Description string  `db:"description" json:"description"`
	Category    string  `db:"category" json:"category"`
	EntryFee    float64 `db:"entry_fee" json:"entry_fee" binding:"gte=0"`
	Rating      float64 `db:"rating" json:"rating" binding:"gte=0,lte=5"`
	ImageURL    string  `db:"image_url" json:"image_url"`
}

// TransportOption - вариант транспорта в городе (поезд, автобус, такси и т.п.).
type TransportOption struct {
	ID          int     `db:"id" json:"id"`
	Type        string  `db:"type" json:"type" binding:"required"`
	Name        string  `db:"name" json:"name"`
	City        string  `db:"city" json:"city" binding:"required"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price" binding:"gte=0"`
	Schedule    string  `db:"schedule" json:"schedule"`
	Contact     string  `db:"contact" json:"contact"`
	ImageURL    string  `db:"image_url" json:"image_url"`
}
