package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"safaruz/internal/auth"
	"safaruz/internal/model"
	"safaruz/internal/repository"
)

const (
	minPasswordLength = 6
	// bcrypt не принимает пароли длиннее 72 байт.
	maxPasswordLength = 72
)

// RegisterInput - данные формы регистрации. Name принимается как синоним Username.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// AuthService отвечает за регистрацию, вход и выход пользователей.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	revoker  auth.Revoker
	logger   *zap.Logger
}

// NewAuthService создает новый сервис аутентификации.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, revoker auth.Revoker, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, revoker: revoker, logger: logger}
}

// Register создаёт пользователя с ролью user. Роль из запроса не принимается.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = strings.TrimSpace(in.Name)
	}
	if username == "" {
		return nil, invalid("укажите имя пользователя")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, invalid("укажите email")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("не удалось захешировать пароль: %w", err)
	}
	user := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.Int("user_id", user.ID))
	return user, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("пароль должен содержать не менее %d символов", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return invalid("пароль не должен превышать %d байт", maxPasswordLength)
	}
	return nil
}

// Login проверяет email и пароль и выпускает токен.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate проверяет токен и его отзыв.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	p, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revoker.IsRevoked(ctx, p.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, auth.ErrTokenRevoked
	}
	return p, nil
}

// Logout отзывает токен до окончания его срока действия.
func (s *AuthService) Logout(ctx context.Context, p *auth.Principal) error {
	return s.revoker.Revoke(ctx, p.TokenID, p.ExpiresAt)
}
