package model

// WeeklyTemplateEntry часы работы поля в один день недели
type WeeklyTemplateEntry struct {
	Day    Weekday
	Start  *Clock // nil - не задано
	End    *Clock
	Closed bool
}

// Complete заданы ли оба времени
func (e WeeklyTemplateEntry) Complete() bool {
	return e.Start != nil && e.End != nil
}

// WeeklyTemplate шаблон на 7 дней, понедельник первый
type WeeklyTemplate [7]WeeklyTemplateEntry

// NewWeeklyTemplate создаёт шаблон с пустыми открытыми днями
func NewWeeklyTemplate() WeeklyTemplate {
	var t WeeklyTemplate
	for _, d := range Weekdays {
		t[d.Index()] = WeeklyTemplateEntry{Day: d}
	}
	return t
}

// Entry возвращает запись дня
func (t *WeeklyTemplate) Entry(d Weekday) *WeeklyTemplateEntry {
	return &t[d.Index()]
}

// Set задаёт часы работы дня
func (t *WeeklyTemplate) Set(d Weekday, start, end Clock) {
	e := t.Entry(d)
	e.Start = &start
	e.End = &end
	e.Closed = false
}

// Close помечает день закрытым
func (t *WeeklyTemplate) Close(d Weekday) {
	t.Entry(d).Closed = true
}

// ClockPtr вспомогательная функция для шаблонов
func ClockPtr(c Clock) *Clock {
	return &c
}
