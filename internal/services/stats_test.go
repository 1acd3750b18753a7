package services

import (
	"testing"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func recordWithClicks(t *testing.T, events []models.ClickEvent) *models.URL {
	t.Helper()
	raw, err := json.Marshal(events)
	require.NoError(t, err)
	return &models.URL{
		ShortCode:  "abc12345",
		ClickCount: int64(len(events)),
		ClickLog:   datatypes.JSON(raw),
	}
}

func TestAggregate_EmptyLog(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	stats, err := Aggregate(&models.URL{ClickLog: models.EmptyClickLog()}, now)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalClicks)
	assert.Empty(t, stats.BrowserStats)
	assert.Empty(t, stats.ReferrerStats)
	assert.Empty(t, stats.ClicksByDate)
	assert.Nil(t, stats.LastClicked)
	assert.Zero(t, stats.AverageClicksPerDay)
}

// TestAggregate_Histograms браузеры считаются по приоритетному классификатору,
// пустой referer попадает в Direct, даты выводятся по возрастанию.
func TestAggregate_Histograms(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	record := recordWithClicks(t, []models.ClickEvent{
		{Timestamp: day1, UserAgent: "Mozilla/5.0 Chrome/120.0 Safari/537.36", Referer: "google.com"},
		{Timestamp: day1.Add(time.Hour), UserAgent: "Mozilla/5.0 Firefox/126.0", Referer: ""},
		{Timestamp: day2, UserAgent: "Mozilla/5.0 Chrome/120.0 Safari/537.36", Referer: "github.com"},
	})

	stats, err := Aggregate(record, day2.Add(time.Hour))
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalClicks)
	assert.Equal(t, map[string]int64{"Chrome": 2, "Firefox": 1}, stats.BrowserStats)
	assert.Equal(t, map[string]int64{"google.com": 1, "Direct": 1, "github.com": 1}, stats.ReferrerStats)
	assert.Equal(t, []models.DateCount{
		{Date: "2025-06-01", Count: 2},
		{Date: "2025-06-02", Count: 1},
	}, stats.ClicksByDate)

	require.NotNil(t, stats.LastClicked)
	assert.True(t, stats.LastClicked.Equal(day2))
}

func TestAggregate_AveragePerDay(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		clicks     int
		firstClick time.Time
		want       float64
	}{
		{
			// окно меньше суток схлопывается в один день
			name:       "same day",
			clicks:     10,
			firstClick: now.Add(-2 * time.Hour),
			want:       10,
		}, {
			// 36 часов -> ceil до 2 дней
			name:       "partial day rounds up",
			clicks:     10,
			firstClick: now.Add(-36 * time.Hour),
			want:       5,
		}, {
			name:       "two decimal rounding",
			clicks:     1,
			firstClick: now.Add(-72 * time.Hour),
			want:       0.33,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]models.ClickEvent, tt.clicks)
			for i := range events {
				events[i] = models.ClickEvent{
					Timestamp: tt.firstClick.Add(time.Duration(i) * time.Minute),
					UserAgent: gofakeit.UserAgent(),
				}
			}
			stats, err := Aggregate(recordWithClicks(t, events), now)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, stats.AverageClicksPerDay, 0.001)
		})
	}
}

func TestClassifyBrowser(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      string
	}{
		{name: "chrome", userAgent: "Mozilla/5.0 Chrome/120.0 Safari/537.36", want: "Chrome"},
		{name: "firefox", userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:126.0) Gecko/20100101 Firefox/126.0", want: "Firefox"},
		{name: "safari", userAgent: "Mozilla/5.0 Version/17.4 Safari/605.1.15", want: "Safari"},
		{name: "legacy edge", userAgent: "Mozilla/5.0 Edge/18.18363", want: "Edge"},
		{name: "curl", userAgent: "curl/8.5.0", want: "Other"},
		{name: "empty", userAgent: "", want: "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyBrowser(tt.userAgent))
		})
	}
}

// TestURLService_Stats статистика доступна и для истекших записей:
// это исторические данные, а не резолв.
func TestURLService_Stats(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(now)
	svc, _ := newTestService(clock)

	expiresAt := now.Add(time.Minute)
	record, err := svc.Create(t.Context(), CreateParams{
		LongURL:   gofakeit.URL(),
		ExpiresAt: &expiresAt,
		OwnerID:   "owner-1",
	})
	require.NoError(t, err)

	_, clickErr := svc.RegisterClick(t.Context(), record.ShortCode, models.ClickEvent{
		UserAgent: "Mozilla/5.0 Chrome/120.0",
		Referer:   "google.com",
	})
	require.NoError(t, clickErr)

	clock.Advance(2 * time.Minute)

	_, resolveErr := svc.Resolve(t.Context(), record.ShortCode)
	require.ErrorIs(t, resolveErr, ErrExpired)

	stats, statsErr := svc.Stats(t.Context(), record.ShortCode)
	require.NoError(t, statsErr)
	assert.EqualValues(t, 1, stats.TotalClicks)
	assert.Equal(t, map[string]int64{"Chrome": 1}, stats.BrowserStats)
}

func TestURLService_Stats_NotFound(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clock)

	_, err := svc.Stats(t.Context(), "missing1")
	require.ErrorIs(t, err, ErrNotFound)
}
