package repository

import (
	"context"
	"fmt"

	"safaruz/internal/model"
)

// ReviewRepository хранит отзывы о турах и объектах каталога.
type ReviewRepository interface {
	TargetExists(ctx context.Context, target model.ReviewTarget, id int) (bool, error)
	Create(ctx context.Context, review *model.Review) error
	ListByTarget(ctx context.Context, target model.ReviewTarget, id int) ([]model.ReviewWithAuthor, error)
}

type ReviewRepositoryImpl struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepositoryImpl {
	return &ReviewRepositoryImpl{db: db}
}

// TargetExists проверяет, что объект отзыва существует в своей таблице.
func (r *ReviewRepositoryImpl) TargetExists(ctx context.Context, target model.ReviewTarget, id int) (bool, error) {
	table, ok := target.Table()
	if !ok {
		return false, fmt.Errorf("неизвестный тип отзыва %q", target)
	}
	ctx, done := trace(ctx, "ReviewRepository.TargetExists")
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE id=$1)", id)
	done(err)
	if err != nil {
		return false, fmt.Errorf("не удалось проверить объект отзыва: %w", err)
	}
	return exists, nil
}

// Create сохраняет отзыв и заполняет ID и дату создания.
func (r *ReviewRepositoryImpl) Create(ctx context.Context, review *model.Review) (err error) {
	ctx, done := trace(ctx, "ReviewRepository.Create")
	defer func() { done(err) }()

	query := `INSERT INTO reviews (user_id, rating, comment, type, target_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err = r.db.QueryRowxContext(ctx, query, review.UserID, review.Rating, review.Comment, review.Type, review.TargetID).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении отзыва: %w", err)
	}
	return nil
}

// ListByTarget возвращает отзывы об объекте с именами авторов, новые первыми.
func (r *ReviewRepositoryImpl) ListByTarget(ctx context.Context, target model.ReviewTarget, id int) ([]model.ReviewWithAuthor, error) {
	ctx, done := trace(ctx, "ReviewRepository.ListByTarget")
	reviews := []model.ReviewWithAuthor{}
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT r.id, r.user_id, r.rating, r.comment, r.type, r.target_id, r.created_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.type = $1 AND r.target_id = $2
		ORDER BY r.created_at DESC, r.id DESC`, target, id)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении отзывов: %w", err)
	}
	return reviews, nil
}
