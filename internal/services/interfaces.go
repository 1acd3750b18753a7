package services

import (
	"context"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
)

// URLRepository описывает хранилище записей URL. Хранилище обязано
// гарантировать уникальность short_code и атомарность RecordClick.
type URLRepository interface {
	// FindByCode находит запись по короткому коду.
	FindByCode(ctx context.Context, code string) (*models.URL, error)
	// FindByOwner находит записи владельца, свежие первыми.
	FindByOwner(ctx context.Context, ownerID string) ([]models.URL, error)
	// CreateUnique вставляет запись, завершаясь ErrDuplicateKey при занятом коде.
	CreateUnique(ctx context.Context, sURL *models.URL) error
	// RecordClick атомарно инкрементирует счетчик и дописывает событие в лог,
	// возвращая обновленную запись.
	RecordClick(ctx context.Context, code string, event models.ClickEvent) (*models.URL, error)
	// MarkExpired выставляет терминальный флаг expired.
	MarkExpired(ctx context.Context, code string) error
	// Delete удаляет запись.
	Delete(ctx context.Context, code string) error
}

// ImageCodec внешний кодек изображений. Используется один раз при создании
// ссылки для генерации QR полезной нагрузки.
type ImageCodec interface {
	EncodeAsImage(text string) ([]byte, error)
}

// Clock источник времени, инъекция для тестируемости истечения и агрегации.
type Clock interface {
	Now() time.Time
}

// CreateParams параметры создания короткой ссылки.
type CreateParams struct {
	LongURL     string
	CustomAlias string
	ExpiresAt   *time.Time
	OwnerID     string
}

// URLShortener контракт сервиса, потребляемый транспортным слоем.
type URLShortener interface {
	Create(ctx context.Context, params CreateParams) (*models.URL, error)
	CreateBulk(ctx context.Context, ownerID string, items []CreateParams) *BatchCreateResult
	Resolve(ctx context.Context, code string) (*models.URL, error)
	RegisterClick(ctx context.Context, code string, event models.ClickEvent) (*models.URL, error)
	Stats(ctx context.Context, code string) (*models.Stats, error)
	ListForOwner(ctx context.Context, ownerID string) ([]models.URL, error)
	Delete(ctx context.Context, code string, requesterID string) error
}
