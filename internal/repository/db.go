package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер

	"safaruz/internal/config"
)

// DB - пул соединений с PostgreSQL. Открывается при старте процесса и закрывается при остановке.
type DB struct {
	*sqlx.DB
}

// NewDB открывает пул через X-Ray-обёртку драйвера и проверяет соединение.
func NewDB(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	sqlDB, err := xray.SQLContext("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу данных: %w", err)
	}

	conn := sqlx.NewDb(sqlDB, "postgres")
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("база данных недоступна: %w", err)
	}
	return &DB{conn}, nil
}

// ApplyMigrations выполняет все *.sql из dir в лексикографическом порядке, каждый файл в своей транзакции.
// Возвращает имена применённых файлов.
func (db *DB) ApplyMigrations(ctx context.Context, dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список миграций: %w", err)
	}
	sort.Strings(files)

	var applied []string
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return applied, fmt.Errorf("не удалось прочитать миграцию %s: %w", file, err)
		}
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("не удалось начать транзакцию миграции %s: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("ошибка выполнения миграции %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("не удалось зафиксировать миграцию %s: %w", file, err)
		}
		applied = append(applied, filepath.Base(file))
	}
	return applied, nil
}

// trace открывает подсегмент X-Ray. Без родительского сегмента (или с выключенным SDK)
// возвращает no-op завершение.
func trace(ctx context.Context, name string) (context.Context, func(error)) {
	ctx, seg := xray.BeginSubsegment(ctx, name)
	if seg == nil {
		return ctx, func(error) {}
	}
	return ctx, func(err error) { seg.Close(err) }
}
