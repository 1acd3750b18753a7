package services

import (
	"context"
	"net/url"

	"github.com/fsdevblog/shortlinks/internal/cache"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/fsdevblog/shortlinks/internal/shortcode"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// URLService управляет жизненным циклом коротких ссылок: создание,
// резолв, удаление, статистика. Потребляется транспортным слоем.
type URLService struct {
	urlRepo URLRepository
	cache   *cache.Cache
	codec   ImageCodec
	clock   Clock
	baseURL *url.URL
	logger  *logrus.Entry
}

// URLServiceParams зависимости URLService.
type URLServiceParams struct {
	URLRepo URLRepository
	Cache   *cache.Cache
	Codec   ImageCodec
	Clock   Clock
	BaseURL *url.URL
	Logger  *logrus.Logger
}

func NewURLService(params URLServiceParams) *URLService {
	return &URLService{
		urlRepo: params.URLRepo,
		cache:   params.Cache,
		codec:   params.Codec,
		clock:   params.Clock,
		baseURL: params.BaseURL,
		logger:  params.Logger.WithField("module", "services/url"),
	}
}

// Create создает короткую ссылку и прогревает кеш.
//
// При любой ошибке запись не остается ни в хранилище, ни в кеше.
// Нарушение уникальности при вставке (гонка между проверкой алиаса и
// вставкой, либо коллизия генератора) возвращается как ErrCodeConflict,
// отличимый от ошибки валидации ErrAliasTaken.
func (u *URLService) Create(ctx context.Context, params CreateParams) (*models.URL, error) {
	code, codeErr := u.generateCode(ctx, params.CustomAlias)
	if codeErr != nil {
		return nil, codeErr
	}

	shortURL := u.baseURL.JoinPath(code).String()

	qr, qrErr := u.codec.EncodeAsImage(shortURL)
	if qrErr != nil {
		u.logger.WithError(qrErr).Errorf("failed to encode qr payload for %s", shortURL)
		return nil, errors.Wrap(ErrUnknown, "encode qr payload")
	}

	record := models.URL{
		CreatedAt: u.clock.Now().UTC(),
		ShortCode: code,
		LongURL:   params.LongURL,
		ShortURL:  shortURL,
		OwnerID:   params.OwnerID,
		ClickLog:  models.EmptyClickLog(),
		QRCode:    qr,
		ExpiresAt: params.ExpiresAt,
	}

	if createErr := u.urlRepo.CreateUnique(ctx, &record); createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, errors.Wrapf(ErrCodeConflict, "code %s", code)
		}
		return nil, errors.Wrap(ErrStoreWrite, createErr.Error())
	}

	u.cache.Put(code, record)
	return &record, nil
}

// CreateBulk создает пакет ссылок, каждую независимо и строго в порядке
// входа. Ошибка элемента фиксируется в его результате и не прерывает
// обработку остальных.
func (u *URLService) CreateBulk(ctx context.Context, ownerID string, items []CreateParams) *BatchCreateResult {
	response := NewBatchExecResponse[models.URL](len(items))
	for i, item := range items {
		item.OwnerID = ownerID
		record, err := u.Create(ctx, item)
		if err != nil {
			response.Set(BatchResponseItem[models.URL]{
				Item: models.URL{LongURL: item.LongURL, OwnerID: ownerID},
				Err:  err,
			}, i)
			continue
		}
		response.Set(BatchResponseItem[models.URL]{Item: *record}, i)
	}
	return NewBatchCreateResult(response)
}

// Resolve находит рабочую запись по коду: сперва кеш, затем хранилище.
//
// Истекшая запись не резолвится никогда. Если истечение обнаружено до того
// как флаг expired попал в хранилище, флаг дописывается тут же; неудача этой
// записи не маскирует результат, т.к. истечение — чистая функция (record, now).
func (u *URLService) Resolve(ctx context.Context, code string) (*models.URL, error) {
	if record, ok := u.cache.Get(code); ok {
		return record, nil
	}

	record, findErr := u.urlRepo.FindByCode(ctx, code)
	if findErr != nil {
		if errors.Is(findErr, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "code %s", code)
		}
		return nil, errors.Wrap(ErrStoreRead, findErr.Error())
	}

	if record.IsExpired(u.clock.Now()) {
		if !record.Expired {
			if markErr := u.urlRepo.MarkExpired(ctx, code); markErr != nil {
				u.logger.WithError(markErr).Errorf("failed to persist expired flag for %s", code)
			}
		}
		u.cache.Invalidate(code)
		return nil, errors.Wrapf(ErrExpired, "code %s", code)
	}

	u.cache.Put(code, *record)
	return record, nil
}

// ListForOwner возвращает записи владельца, свежие первыми.
func (u *URLService) ListForOwner(ctx context.Context, ownerID string) ([]models.URL, error) {
	records, err := u.urlRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(ErrStoreRead, err.Error())
	}
	return records, nil
}

// Delete удаляет запись владельца и вытесняет ее из кеша.
// Сравнение владельцев строковое: идентификаторы могут приходить из разных
// представлений одного и того же principal.
func (u *URLService) Delete(ctx context.Context, code string, requesterID string) error {
	record, findErr := u.urlRepo.FindByCode(ctx, code)
	if findErr != nil {
		if errors.Is(findErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "code %s", code)
		}
		return errors.Wrap(ErrStoreRead, findErr.Error())
	}

	if record.OwnerID != requesterID {
		return errors.Wrapf(ErrNotAuthorized, "code %s", code)
	}

	if delErr := u.urlRepo.Delete(ctx, code); delErr != nil {
		if errors.Is(delErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "code %s", code)
		}
		return errors.Wrap(ErrStoreWrite, delErr.Error())
	}

	u.cache.Invalidate(code)
	return nil
}

// generateCode возвращает пользовательский алиас после валидации либо
// случайный код. Для алиаса выполняется вежливая проверка занятости;
// авторитетной остается уникальность вставки.
func (u *URLService) generateCode(ctx context.Context, customAlias string) (string, error) {
	if customAlias == "" {
		code, err := shortcode.Random(models.ShortCodeLength)
		if err != nil {
			return "", errors.Wrap(ErrUnknown, err.Error())
		}
		return code, nil
	}

	alias := customAlias
	if !shortcode.IsValidAlias(alias) {
		return "", errors.Wrapf(ErrInvalidAlias, "alias %q", customAlias)
	}

	_, findErr := u.urlRepo.FindByCode(ctx, alias)
	if findErr == nil {
		return "", errors.Wrapf(ErrAliasTaken, "alias %s", alias)
	}
	if !errors.Is(findErr, repositories.ErrNotFound) {
		return "", errors.Wrap(ErrStoreRead, findErr.Error())
	}
	return alias, nil
}
