package service

import (
	"context"

	"safaruz/internal/model"
	"safaruz/internal/repository"
)

// AdminService отдаёт сводку для панели администратора и проверяет доступность БД.
type AdminService struct {
	stats repository.StatsRepository
}

func NewAdminService(stats repository.StatsRepository) *AdminService {
	return &AdminService{stats: stats}
}

func (s *AdminService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.stats.Counts(ctx)
}

func (s *AdminService) Ping(ctx context.Context) error {
	return s.stats.Ping(ctx)
}
