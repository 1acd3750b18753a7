package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/fsdevblog/shortlinks/internal/cache"
	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/repositories/memstore"
	"github.com/fsdevblog/shortlinks/internal/repositories/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypeInMemory ServiceType = "inMemory"
)

type Services struct {
	URLService URLShortener
}

// FactoryParams параметры сборки сервисного слоя.
type FactoryParams struct {
	Conn          any
	Type          ServiceType
	BaseURL       *url.URL
	CacheCapacity int
	Codec         ImageCodec
	Clock         Clock
	Logger        *logrus.Logger
}

// Factory собирает сервисы поверх выбранного бэкенда хранения.
// Nil Clock заменяется системными часами.
func Factory(params FactoryParams) (*Services, error) {
	if params.Clock == nil {
		params.Clock = SystemClock()
	}

	var urlRepo URLRepository
	switch params.Type {
	case ServiceTypeSQLite:
		gormDB, ok := params.Conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		urlRepo = sql.NewURLRepo(gormDB, params.Logger)
	case ServiceTypeInMemory:
		store, ok := params.Conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		urlRepo = memstore.NewURLRepo(store, params.Logger)
	default:
		return nil, fmt.Errorf("unknown service type: %s", params.Type)
	}

	resolutionCache := cache.New(params.CacheCapacity, params.Clock)

	return &Services{
		URLService: NewURLService(URLServiceParams{
			URLRepo: urlRepo,
			Cache:   resolutionCache,
			Codec:   params.Codec,
			Clock:   params.Clock,
			BaseURL: params.BaseURL,
			Logger:  params.Logger,
		}),
	}, nil
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock часы на базе time.Now.
func SystemClock() Clock {
	return systemClock{}
}
