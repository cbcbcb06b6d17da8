package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound - запрошенная строка отсутствует (или принадлежит другому пользователю).
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate - нарушено ограничение уникальности.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNoSpots - в туре не осталось свободных мест.
	ErrNoSpots = errors.New("no available spots")
	// ErrInvalidFilter - параметр фильтра не удалось разобрать.
	ErrInvalidFilter = errors.New("invalid filter")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate приводит ошибки драйвера к ошибкам пакета.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}
