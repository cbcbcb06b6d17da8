package repository

import (
	"context"
	"fmt"

	"safaruz/internal/model"
)

type StatsRepository interface {
	Counts(ctx context.Context) (*model.Stats, error)
	Ping(ctx context.Context) error
}

type StatsRepositoryImpl struct {
	db *DB
}

func NewStatsRepository(db *DB) *StatsRepositoryImpl {
	return &StatsRepositoryImpl{db: db}
}

// Counts возвращает счётчики для панели администратора одним запросом.
func (r *StatsRepositoryImpl) Counts(ctx context.Context) (*model.Stats, error) {
	ctx, done := trace(ctx, "StatsRepository.Counts")
	var stats model.Stats
	err := r.db.GetContext(ctx, &stats, `
		SELECT (SELECT COUNT(*) FROM users)          AS users,
		       (SELECT COUNT(*) FROM tours)          AS tours,
		       (SELECT COUNT(*) FROM bookings)       AS bookings,
		       (SELECT COUNT(*) FROM hotel_bookings) AS hotel_bookings,
		       (SELECT COUNT(*) FROM reviews)        AS reviews`)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте статистики: %w", err)
	}
	return &stats, nil
}

func (r *StatsRepositoryImpl) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
