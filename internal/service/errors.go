package service

import (
	"errors"
	"fmt"

	"safaruz/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrConflict           = repository.ErrDuplicate
	ErrNoSpots            = repository.ErrNoSpots
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUpstream - внешний сервис (AI) не ответил или ответил ошибкой.
	ErrUpstream = errors.New("upstream failure")
)

// ValidationError - некорректные входные данные запроса.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
