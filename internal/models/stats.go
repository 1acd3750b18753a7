package models

import "time"

// DateCount количество кликов за одну календарную дату (UTC, YYYY-MM-DD).
type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Stats агрегированная статистика по одной короткой ссылке.
type Stats struct {
	TotalClicks         int64            `json:"totalClicks"`
	BrowserStats        map[string]int64 `json:"browserStats"`
	ReferrerStats       map[string]int64 `json:"referrerStats"`
	ClicksByDate        []DateCount      `json:"clicksByDate"`
	LastClicked         *time.Time       `json:"lastClicked"`
	AverageClicksPerDay float64          `json:"averageClicksPerDay"`
}
