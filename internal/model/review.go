package model

import "time"

// ReviewTarget - вид объекта, к которому относится отзыв.
type ReviewTarget string

const (
	ReviewTargetTour       ReviewTarget = "tour"
	ReviewTargetHotel      ReviewTarget = "hotel"
	ReviewTargetRestaurant ReviewTarget = "restaurant"
	ReviewTargetHistorical ReviewTarget = "historical"
	ReviewTargetRecreation ReviewTarget = "recreation"
)

var reviewTargetTables = map[ReviewTarget]string{
	ReviewTargetTour:       "tours",
	ReviewTargetHotel:      "hotels",
	ReviewTargetRestaurant: "restaurants",
	ReviewTargetHistorical: "historical_places",
	ReviewTargetRecreation: "recreational_places",
}

// Table возвращает таблицу, в которой хранятся объекты данного вида.
func (t ReviewTarget) Table() (string, bool) {
	table, ok := reviewTargetTables[t]
	return table, ok
}

func (t ReviewTarget) Valid() bool {
	_, ok := reviewTargetTables[t]
	return ok
}

// Review - отзыв пользователя. Пара (Type, TargetID) ссылается на объект каталога.
type Review struct {
	ID        int          `db:"id" json:"id"`
	UserID    int          `db:"user_id" json:"user_id"`
	Rating    int          `db:"rating" json:"rating"`
	Comment   string       `db:"comment" json:"comment"`
	Type      ReviewTarget `db:"type" json:"type"`
	TargetID  int          `db:"target_id" json:"target_id"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// ReviewWithAuthor - отзыв с именем автора для публичного списка.
type ReviewWithAuthor struct {
	Review
	Username string `db:"username" json:"username"`
}
