package service

import (
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
)

const (
	// ModifyLeadDays слоты ближе этого срока не трогаются при изменении расписания
	ModifyLeadDays = 14
	// HorizonMonths длина окна генерации
	HorizonMonths = 2
	// MaxOccurrences максимум дат на один день недели
	MaxOccurrences = 12
)

// NewHorizon окно генерации: с сегодняшнего дня для нового расписания,
// с сегодня+14 дней при изменении существующего; длина два месяца.
func NewHorizon(today time.Time, existing bool) model.Horizon {
	start := model.DateOf(today)
	if existing {
		start = start.AddDate(0, 0, ModifyLeadDays)
	}
	return model.Horizon{
		Start: start,
		End:   start.AddDate(0, HorizonMonths, 0),
	}
}

// DeletionCutoff слоты строго позже этой даты могут удаляться синхронизацией
func DeletionCutoff(today time.Time) time.Time {
	return model.DateOf(today).AddDate(0, 0, ModifyLeadDays)
}

// GenerateTimeSlots режет [start, end) на подряд идущие интервалы по duration минут.
// Хвост короче duration отбрасывается.
func GenerateTimeSlots(start, end model.Clock, durationMinutes int) []model.Interval {
	if durationMinutes <= 0 || start >= end {
		return nil
	}

	var out []model.Interval
	for cur := start; cur.Add(durationMinutes) <= end; cur = cur.Add(durationMinutes) {
		out = append(out, model.Interval{Start: cur, End: cur.Add(durationMinutes)})
	}
	return out
}

// NextDatesForDay даты дня недели day от начала окна до его конца, не больше
// MaxOccurrences. Для нового расписания, если сегодня и есть day, первая дата
// переносится на неделю вперёд.
func NextDatesForDay(day model.Weekday, horizon model.Horizon, today time.Time, existing bool) []time.Time {
	if !day.Valid() {
		return nil
	}

	first := horizon.Start
	delta := (day.Index() - model.WeekdayOf(first).Index() + 7) % 7
	d := first.AddDate(0, 0, delta)
	if !existing && model.SameDate(d, today) {
		d = d.AddDate(0, 0, 7)
	}

	var dates []time.Time
	for ; horizon.Contains(d) && len(dates) < MaxOccurrences; d = d.AddDate(0, 0, 7) {
		// Дата обязана попасть на нужный день, иначе пропускаем
		if d.Weekday() != day.Time() {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}
