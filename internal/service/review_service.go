package service

import (
	"context"
	"strings"

	"safaruz/internal/model"
	"safaruz/internal/repository"
)

type ReviewInput struct {
	Rating   int
	Comment  string
	Type     model.ReviewTarget
	TargetID int
}

// ReviewService принимает и отдаёт отзывы.
type ReviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// Create сохраняет отзыв, если объект отзыва существует.
func (s *ReviewService) Create(ctx context.Context, userID int, in ReviewInput) (*model.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("оценка должна быть от 1 до 5")
	}
	if !in.Type.Valid() {
		return nil, invalid("неизвестный тип отзыва %q", in.Type)
	}
	if in.TargetID <= 0 {
		return nil, invalid("укажите target_id")
	}
	exists, err := s.repo.TargetExists(ctx, in.Type, in.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	review := &model.Review{
		UserID:   userID,
		Rating:   in.Rating,
		Comment:  strings.TrimSpace(in.Comment),
		Type:     in.Type,
		TargetID: in.TargetID,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) List(ctx context.Context, target model.ReviewTarget, id int) ([]model.ReviewWithAuthor, error) {
	if !target.Valid() {
		return nil, invalid("неизвестный тип отзыва %q", target)
	}
	return s.repo.ListByTarget(ctx, target, id)
}
