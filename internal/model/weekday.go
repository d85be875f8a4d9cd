package model

import (
	"fmt"
	"strings"
	"time"
)

// Weekday день недели клуба. Понедельник - первый день сетки.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays все дни недели в порядке сетки
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var weekdayLabels = [...]string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье"}

// единственная таблица соответствия названий дням недели
var weekdayByName = map[string]Weekday{
	"monday":      Monday,
	"mon":         Monday,
	"lunes":       Monday,
	"пн":          Monday,
	"понедельник": Monday,
	"tuesday":     Tuesday,
	"tue":         Tuesday,
	"martes":      Tuesday,
	"вт":          Tuesday,
	"вторник":     Tuesday,
	"wednesday":   Wednesday,
	"wed":         Wednesday,
	"miercoles":   Wednesday,
	"miércoles":   Wednesday,
	"ср":          Wednesday,
	"среда":       Wednesday,
	"thursday":    Thursday,
	"thu":         Thursday,
	"jueves":      Thursday,
	"чт":          Thursday,
	"четверг":     Thursday,
	"friday":      Friday,
	"fri":         Friday,
	"viernes":     Friday,
	"пт":          Friday,
	"пятница":     Friday,
	"saturday":    Saturday,
	"sat":         Saturday,
	"sabado":      Saturday,
	"sábado":      Saturday,
	"сб":          Saturday,
	"суббота":     Saturday,
	"sunday":      Sunday,
	"sun":         Sunday,
	"domingo":     Sunday,
	"вс":          Sunday,
	"воскресенье": Sunday,
}

// ParseWeekday разбирает название дня (английское, испанское или русское, без учёта регистра)
func ParseWeekday(name string) (Weekday, error) {
	d, ok := weekdayByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return d, nil
}

// WeekdayOf возвращает день недели даты
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// Time переводит в time.Weekday
func (d Weekday) Time() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// Index позиция дня в недельной сетке (0 = понедельник)
func (d Weekday) Index() int {
	return int(d)
}

// Valid проверяет что значение входит в перечисление
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Label название дня для отображения
func (d Weekday) Label() string {
	if !d.Valid() {
		return "?"
	}
	return weekdayLabels[d]
}
