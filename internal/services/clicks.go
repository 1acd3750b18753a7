package services

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RegisterClick фиксирует посещение короткой ссылки: атомарный инкремент
// счетчика плюс append события в лог на стороне хранилища.
//
// Отсутствие записи возвращается как ErrNotFound даже если предшествующий
// резолв успел пройти: узкая гонка с удалением — промах, не сбой.
// Кеш освежается обновленной записью; монотонность по счетчику гарантирует
// Put, так что переупорядоченные завершения конкурентных кликов не затирают
// более свежее значение.
func (u *URLService) RegisterClick(ctx context.Context, code string, event models.ClickEvent) (*models.URL, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = u.clock.Now().UTC()
	}

	record, err := u.urlRepo.RecordClick(ctx, code, event)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "code %s", code)
		}
		return nil, errors.Wrap(ErrStoreWrite, err.Error())
	}

	u.cache.Put(code, *record)
	return record, nil
}
