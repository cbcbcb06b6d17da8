package repository

import (
	"context"
	"fmt"

	"safaruz/internal/model"
)

// UserRepository обеспечивает доступ к данным пользователей в базе данных.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id int, username, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int, hash string) error
	SetProfileImage(ctx context.Context, id int, path string) error
	Delete(ctx context.Context, id int) error
}

type UserRepositoryImpl struct {
	db *DB
}

// NewUserRepository создаёт новый репозиторий пользователей.
func NewUserRepository(db *DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// Create добавляет пользователя и заполняет ID, роль и дату создания. Занятый email даёт ErrDuplicate.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (err error) {
	ctx, done := trace(ctx, "UserRepository.Create")
	defer func() { done(err) }()

	query := `INSERT INTO users (username, email, password, role)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err = r.db.QueryRowxContext(ctx, query, user.Username, user.Email, user.Password, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if err = translate(err); err == ErrDuplicate {
			return err
		}
		return fmt.Errorf("не удалось создать пользователя: %w", err)
	}
	return nil
}

// GetByEmail ищет пользователя по email без учёта регистра.
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, done := trace(ctx, "UserRepository.GetByEmail")
	var user model.User
	err := translate(r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE LOWER(email)=LOWER($1)", email))
	done(err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID возвращает пользователя по внутреннему идентификатору.
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id int) (*model.User, error) {
	ctx, done := trace(ctx, "UserRepository.GetByID")
	var user model.User
	err := translate(r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id=$1", id))
	done(err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]model.User, error) {
	ctx, done := trace(ctx, "UserRepository.List")
	users := []model.User{}
	err := r.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id")
	done(err)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}
	return users, nil
}

// UpdateProfile меняет имя и email пользователя.
func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, id int, username, email string) (*model.User, error) {
	ctx, done := trace(ctx, "UserRepository.UpdateProfile")
	var user model.User
	err := translate(r.db.GetContext(ctx, &user,
		"UPDATE users SET username=$1, email=$2 WHERE id=$3 RETURNING *", username, email, id))
	done(err)
	switch {
	case err == nil:
		return &user, nil
	case err == ErrNotFound || err == ErrDuplicate:
		return nil, err
	default:
		return nil, fmt.Errorf("не удалось обновить профиль: %w", err)
	}
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id int, hash string) error {
	return r.execOne(ctx, "UserRepository.UpdatePassword", "UPDATE users SET password=$1 WHERE id=$2", hash, id)
}

func (r *UserRepositoryImpl) SetProfileImage(ctx context.Context, id int, path string) error {
	return r.execOne(ctx, "UserRepository.SetProfileImage", "UPDATE users SET profile_image=$1 WHERE id=$2", path, id)
}

// Delete удаляет пользователя. Места по его броням туров возвращаются в той же транзакции.
func (r *UserRepositoryImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, done := trace(ctx, "UserRepository.Delete")
	defer func() { done(err) }()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	// Блокировка строки пользователя не даёт создать новую бронь (проверка FK ждёт) до конца удаления.
	var locked int
	if err = tx.QueryRowxContext(ctx, "SELECT 1 FROM users WHERE id=$1 FOR UPDATE", id).Scan(&locked); err != nil {
		if err = translate(err); err == ErrNotFound {
			return err
		}
		return fmt.Errorf("не удалось заблокировать пользователя: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE tours t SET available_spots = t.available_spots + b.cnt
		FROM (SELECT tour_id, COUNT(*) AS cnt FROM bookings WHERE user_id=$1 GROUP BY tour_id) b
		WHERE t.id = b.tour_id`, id)
	if err != nil {
		return fmt.Errorf("не удалось вернуть места туров: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("не удалось удалить пользователя: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать удаление пользователя: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) execOne(ctx context.Context, name, query string, args ...interface{}) (err error) {
	ctx, done := trace(ctx, name)
	defer func() { done(err) }()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
