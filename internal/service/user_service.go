package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"safaruz/internal/auth"
	"safaruz/internal/model"
	"safaruz/internal/repository"
)

// UserService - операции с профилем пользователя.
type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateProfile меняет имя и email. Занятый email даёт ErrConflict.
func (s *UserService) UpdateProfile(ctx context.Context, id int, username, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return nil, invalid("укажите имя пользователя и email")
	}
	return s.userRepo.UpdateProfile(ctx, id, username, email)
}

// ChangePassword меняет пароль после проверки текущего.
func (s *UserService) ChangePassword(ctx context.Context, id int, current, next string) error {
	if err := validatePassword(next); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, current) {
		return ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, id, hash)
}

// DeleteAccount удаляет пользователя вместе с его бронями, места туров возвращаются.
func (s *UserService) DeleteAccount(ctx context.Context, id int) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int("user_id", id))
	return nil
}
