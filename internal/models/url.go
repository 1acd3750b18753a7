package models

import (
	"time"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// ShortCodeLength длина генерируемого короткого кода.
const ShortCodeLength = 8

// URL структура модели хранения короткой ссылки.
//
// ShortCode уникален и неизменяем после создания. ClickCount и ClickLog
// изменяются только при регистрации клика, причем строго вместе:
// ClickCount всегда равен длине ClickLog.
type URL struct {
	ID         uint           `json:"ID"`
	CreatedAt  time.Time      `json:"createdAt"`
	ShortCode  string         `json:"shortCode" gorm:"uniqueIndex;size:64"`
	LongURL    string         `json:"longUrl" gorm:"size:2048"`
	ShortURL   string         `json:"shortUrl" gorm:"size:2048"`
	OwnerID    string         `json:"ownerId" gorm:"index;size:64"`
	ClickCount int64          `json:"clickCount"`
	ClickLog   datatypes.JSON `json:"clickLog"`
	QRCode     []byte         `json:"qrCode"`
	ExpiresAt  *time.Time     `json:"expiresAt"`
	Expired    bool           `json:"expired"`
}

// ClickEvent одно зафиксированное посещение короткой ссылки.
// Записи неизменяемы, порядок в логе хронологический.
type ClickEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	SourceIP  string    `json:"sourceIp"`
	UserAgent string    `json:"userAgent"`
	Referer   string    `json:"referer"`
}

// EmptyClickLog пустой лог кликов. Важно чтобы в хранилище попадал именно
// json массив, а не NULL, иначе атомарный append на стороне SQL не сработает.
func EmptyClickLog() datatypes.JSON {
	return datatypes.JSON("[]")
}

// Clicks декодирует лог кликов.
func (u *URL) Clicks() ([]ClickEvent, error) {
	if len(u.ClickLog) == 0 {
		return []ClickEvent{}, nil
	}
	var events []ClickEvent
	if err := json.Unmarshal(u.ClickLog, &events); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return events, nil
}

// AppendClick добавляет событие в лог и инкрементирует счетчик.
// Используется in-memory хранилищем; SQL бэкенд делает то же самое
// одним атомарным UPDATE.
func (u *URL) AppendClick(event ClickEvent) error {
	events, err := u.Clicks()
	if err != nil {
		return err
	}
	events = append(events, event)
	raw, marshalErr := json.Marshal(events)
	if marshalErr != nil {
		return marshalErr //nolint:wrapcheck
	}
	u.ClickLog = datatypes.JSON(raw)
	u.ClickCount++
	return nil
}

// IsExpired отвечает на вопрос истекла ли ссылка на момент now.
// Выставленный флаг Expired терминален: однажды истекшая ссылка
// не может снова стать рабочей.
func (u *URL) IsExpired(now time.Time) bool {
	if u.Expired {
		return true
	}
	return u.ExpiresAt != nil && now.After(*u.ExpiresAt)
}
