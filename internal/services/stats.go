package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"

	"github.com/pkg/errors"
)

// browserPriority порядок классификации user agent, первое совпадение
// выигрывает. Все несовпавшие попадают в browserOther.
var browserPriority = []string{"Chrome", "Firefox", "Safari", "Edge"}

const (
	browserOther   = "Other"
	referrerDirect = "Direct"
	dateLayout     = "2006-01-02"
)

// Stats возвращает агрегированную статистику по коду.
//
// В отличие от Resolve, истекшая запись здесь не ошибка: статистика по
// протухшим ссылкам остается доступной как исторические данные.
func (u *URLService) Stats(ctx context.Context, code string) (*models.Stats, error) {
	record, findErr := u.urlRepo.FindByCode(ctx, code)
	if findErr != nil {
		if errors.Is(findErr, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "code %s", code)
		}
		return nil, errors.Wrap(ErrStoreRead, findErr.Error())
	}
	return Aggregate(record, u.clock.Now())
}

// Aggregate вычисляет статистику одной записи на момент now.
func Aggregate(record *models.URL, now time.Time) (*models.Stats, error) {
	events, err := record.Clicks()
	if err != nil {
		return nil, errors.Wrap(ErrUnknown, err.Error())
	}

	stats := models.Stats{
		TotalClicks:   record.ClickCount,
		BrowserStats:  make(map[string]int64),
		ReferrerStats: make(map[string]int64),
		ClicksByDate:  []models.DateCount{},
	}

	if len(events) == 0 {
		return &stats, nil
	}

	byDate := make(map[string]int64)
	for _, event := range events {
		stats.BrowserStats[classifyBrowser(event.UserAgent)]++

		referrer := event.Referer
		if referrer == "" {
			referrer = referrerDirect
		}
		stats.ReferrerStats[referrer]++

		byDate[event.Timestamp.UTC().Format(dateLayout)]++
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		stats.ClicksByDate = append(stats.ClicksByDate, models.DateCount{Date: date, Count: byDate[date]})
	}

	// Лог append-only, последний элемент — самый свежий.
	last := events[len(events)-1].Timestamp
	stats.LastClicked = &last

	// Окно усреднения считается от первого клика, а не от создания записи:
	// ссылка могла долго жить без единого перехода.
	stats.AverageClicksPerDay = averagePerDay(record.ClickCount, events[0].Timestamp, now)

	return &stats, nil
}

func classifyBrowser(userAgent string) string {
	for _, name := range browserPriority {
		if strings.Contains(strings.ToLower(userAgent), strings.ToLower(name)) {
			return name
		}
	}
	return browserOther
}

func averagePerDay(total int64, firstClick, now time.Time) float64 {
	days := int64(math.Ceil(now.Sub(firstClick).Hours() / 24)) //nolint:mnd
	if days < 1 {
		days = 1
	}
	avg := float64(total) / float64(days)
	return math.Round(avg*100) / 100 //nolint:mnd
}
