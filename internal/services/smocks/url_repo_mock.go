package smocks

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/stretchr/testify/mock"
)

// URLRepoMock ручной мок репозитория URL для тестов сервисного слоя.
type URLRepoMock struct {
	mock.Mock
}

func (u *URLRepoMock) FindByCode(ctx context.Context, code string) (*models.URL, error) {
	args := u.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.URL), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *URLRepoMock) FindByOwner(ctx context.Context, ownerID string) ([]models.URL, error) {
	args := u.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.URL), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *URLRepoMock) CreateUnique(ctx context.Context, sURL *models.URL) error {
	args := u.Called(ctx, sURL)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (u *URLRepoMock) RecordClick(ctx context.Context, code string, event models.ClickEvent) (*models.URL, error) {
	args := u.Called(ctx, code, event)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.URL), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *URLRepoMock) MarkExpired(ctx context.Context, code string) error {
	args := u.Called(ctx, code)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (u *URLRepoMock) Delete(ctx context.Context, code string) error {
	args := u.Called(ctx, code)
	return args.Error(0) //nolint:wrapcheck,errcheck
}
