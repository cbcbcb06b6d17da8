package service

import (
	"context"
	"errors"
	"strings"

	"safaruz/internal/repository"
)

// CatalogService - операции над одной сущностью каталога (туры, гостиницы, города и т.д.).
type CatalogService[T any] struct {
	repo repository.CatalogRepository[T]
}

func NewCatalogService[T any](repo repository.CatalogRepository[T]) *CatalogService[T] {
	return &CatalogService[T]{repo: repo}
}

// List возвращает записи, отфильтрованные по параметрам запроса.
func (s *CatalogService[T]) List(ctx context.Context, params map[string]string) ([]T, error) {
	items, err := s.repo.List(ctx, params)
	if errors.Is(err, repository.ErrInvalidFilter) {
		return nil, &ValidationError{Message: strings.TrimPrefix(err.Error(), repository.ErrInvalidFilter.Error()+": ")}
	}
	return items, err
}

func (s *CatalogService[T]) Get(ctx context.Context, id int) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService[T]) Create(ctx context.Context, item *T) (*T, error) {
	return s.repo.Create(ctx, item)
}

func (s *CatalogService[T]) Update(ctx context.Context, id int, item *T) (*T, error) {
	return s.repo.Update(ctx, id, item)
}

func (s *CatalogService[T]) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
