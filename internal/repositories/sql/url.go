package sql

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type URLRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewURLRepo(db *gorm.DB, logger *logrus.Logger) *URLRepo {
	return &URLRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/url"),
	}
}

func (u *URLRepo) FindByCode(ctx context.Context, code string) (*models.URL, error) {
	var url models.URL
	if err := u.db.WithContext(ctx).Where("short_code = ?", code).First(&url).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			u.logger.WithError(err).Errorf("failed to get record by short code %s", code)
		}
		return nil, convertErrorType(err)
	}
	return &url, nil
}

func (u *URLRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.URL, error) {
	var urls []models.URL
	err := u.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&urls).Error
	if err != nil {
		u.logger.WithError(err).Errorf("failed to get records by owner %s", ownerID)
		return nil, convertErrorType(err)
	}
	return urls, nil
}

// CreateUnique вставляет запись. При нарушении уникального индекса short_code
// возвращает repositories.ErrDuplicateKey, не перезаписывая существующую запись.
func (u *URLRepo) CreateUnique(ctx context.Context, sURL *models.URL) error {
	if err := u.db.WithContext(ctx).Create(sURL).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			u.logger.WithError(err).Errorf("failed to create record %+v", *sURL)
		}
		return convertErrorType(err)
	}
	return nil
}

// RecordClick атомарно инкрементирует счетчик и дописывает событие в лог
// одним UPDATE. Раздельные read-then-write здесь недопустимы: конкурентные
// клики по одному коду теряли бы обновления.
func (u *URLRepo) RecordClick(ctx context.Context, code string, event models.ClickEvent) (*models.URL, error) {
	payload, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		return nil, errors.Wrapf(repositories.ErrUnknown, "marshal click event: %s", marshalErr.Error())
	}

	res := u.db.WithContext(ctx).Model(&models.URL{}).
		Where("short_code = ?", code).
		Updates(map[string]any{
			"click_count": gorm.Expr("click_count + 1"),
			"click_log":   gorm.Expr("json_insert(click_log, '$[#]', json(?))", string(payload)),
		})
	if res.Error != nil {
		u.logger.WithError(res.Error).Errorf("failed to record click for %s", code)
		return nil, convertErrorType(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return u.FindByCode(ctx, code)
}

// MarkExpired выставляет терминальный флаг expired.
func (u *URLRepo) MarkExpired(ctx context.Context, code string) error {
	res := u.db.WithContext(ctx).Model(&models.URL{}).
		Where("short_code = ?", code).
		Update("expired", true)
	if res.Error != nil {
		u.logger.WithError(res.Error).Errorf("failed to mark record %s expired", code)
		return convertErrorType(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (u *URLRepo) Delete(ctx context.Context, code string) error {
	res := u.db.WithContext(ctx).Where("short_code = ?", code).Delete(&models.URL{})
	if res.Error != nil {
		u.logger.WithError(res.Error).Errorf("failed to delete record %s", code)
		return convertErrorType(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
