package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"safaruz/internal/repository"
)

// MaxUploadSize - предельный размер изображения профиля.
const MaxUploadSize = 5 << 20

// PublicUploadPrefix - URL-префикс, по которому раздаются загруженные файлы.
const PublicUploadPrefix = "/uploads/"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var errTooLarge = errors.New("file too large")

// UploadService сохраняет изображения профиля на диск как есть.
type UploadService struct {
	dir      string
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUploadService(dir string, userRepo repository.UserRepository, logger *zap.Logger) *UploadService {
	return &UploadService{dir: dir, userRepo: userRepo, logger: logger}
}

// SaveProfileImage сохраняет изображение под случайным именем и записывает путь в профиль.
// Тип определяется по содержимому, а не по имени файла. Возвращает публичный путь.
func (s *UploadService) SaveProfileImage(ctx context.Context, userID int, r io.Reader) (string, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("не удалось прочитать файл: %w", err)
	}
	if len(head) == 0 {
		return "", invalid("файл изображения пуст")
	}
	ext, ok := imageExtensions[http.DetectContentType(head)]
	if !ok {
		return "", invalid("допустимы только изображения jpeg, png и webp")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("не удалось создать каталог загрузок: %w", err)
	}
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := writeLimited(path, br, MaxUploadSize); err != nil {
		if errors.Is(err, errTooLarge) {
			return "", invalid("размер изображения не должен превышать %d МБ", MaxUploadSize>>20)
		}
		return "", err
	}

	public := PublicUploadPrefix + name
	if err := s.userRepo.SetProfileImage(ctx, userID, public); err != nil {
		os.Remove(path)
		return "", err
	}
	s.logger.Info("profile image uploaded", zap.Int("user_id", userID), zap.String("path", public))
	return public, nil
}

func writeLimited(path string, r io.Reader, limit int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("не удалось создать файл: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > limit {
		err = errTooLarge
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, errTooLarge) {
			return err
		}
		return fmt.Errorf("не удалось сохранить файл: %w", err)
	}
	return nil
}
