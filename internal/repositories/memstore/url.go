package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/db/memory"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/sirupsen/logrus"
)

// URLRepo представляет собой репозиторий для работы с URL в памяти.
// Записи хранятся по ключу short_code.
type URLRepo struct {
	s      *db.MemoryStorage
	logger *logrus.Entry
}

// NewURLRepo создает новый экземпляр репозитория URL.
func NewURLRepo(store *db.MemoryStorage, logger *logrus.Logger) *URLRepo {
	return &URLRepo{
		s:      store,
		logger: logger.WithField("module", "repository/memstore/url"),
	}
}

// FindByCode получает запись по короткому коду.
func (u *URLRepo) FindByCode(ctx context.Context, code string) (*models.URL, error) {
	url, err := memory.Get[models.URL](ctx, code, u.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get record by short code %s: %w",
			code, convertErrorType(err),
		)
	}
	return url, nil
}

// FindByOwner получает все записи владельца, свежие первыми.
func (u *URLRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.URL, error) {
	data, err := memory.FilterAll[models.URL](ctx, u.s.MStorage, func(val models.URL) bool {
		if val.OwnerID == "" {
			return false
		}
		return val.OwnerID == ownerID
	})
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get records by owner %s: %w",
			ownerID, convertErrorType(err),
		)
	}
	sort.Slice(data, func(i, j int) bool {
		return data[i].CreatedAt.After(data[j].CreatedAt)
	})
	return data, nil
}

// CreateUnique создает новую запись. Существующий ключ не перезаписывается,
// вместо этого возвращается repositories.ErrDuplicateKey.
func (u *URLRepo) CreateUnique(ctx context.Context, sURL *models.URL) error {
	if err := memory.Set[models.URL](ctx, sURL.ShortCode, sURL, u.s.MStorage); err != nil {
		return fmt.Errorf(
			"failed to create record: %w",
			convertErrorType(err),
		)
	}
	return nil
}

// RecordClick атомарно инкрементирует счетчик кликов и дописывает событие в лог.
// Мутация выполняется под write блокировкой хранилища, конкурентные клики
// по одному коду не теряются.
func (u *URLRepo) RecordClick(ctx context.Context, code string, event models.ClickEvent) (*models.URL, error) {
	updated, err := memory.Update[models.URL](ctx, code, u.s.MStorage, func(val *models.URL) error {
		return val.AppendClick(event)
	})
	if err != nil {
		return nil, fmt.Errorf(
			"failed to record click for %s: %w",
			code, convertErrorType(err),
		)
	}
	return updated, nil
}

// MarkExpired выставляет терминальный флаг expired.
func (u *URLRepo) MarkExpired(ctx context.Context, code string) error {
	_, err := memory.Update[models.URL](ctx, code, u.s.MStorage, func(val *models.URL) error {
		val.Expired = true
		return nil
	})
	if err != nil {
		return fmt.Errorf(
			"failed to mark record %s expired: %w",
			code, convertErrorType(err),
		)
	}
	return nil
}

// Delete удаляет запись по короткому коду.
func (u *URLRepo) Delete(ctx context.Context, code string) error {
	if err := memory.Delete(ctx, code, u.s.MStorage); err != nil {
		return fmt.Errorf(
			"failed to delete record %s: %w",
			code, convertErrorType(err),
		)
	}
	return nil
}
