package model

import (
	"fmt"
	"time"
)

// DateLayout формат даты в API
const DateLayout = "2006-01-02"

// DateOf обрезает момент до календарной даты в его часовом поясе
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate разбирает "YYYY-MM-DD". ISO timestamp обрезается до даты.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate форматирует дату для API
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDate сравнивает только календарные даты
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
