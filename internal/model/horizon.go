package model

import "time"

// Horizon окно дат, на которое генерируются и сверяются слоты
type Horizon struct {
	Start time.Time
	End   time.Time
}

// Contains попадает ли дата в окно включительно
func (h Horizon) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(h.Start) && !d.After(h.End)
}
