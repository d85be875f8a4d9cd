package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock время суток в минутах от полуночи
type Clock int

const minutesPerDay = 24 * 60

// ParseClock разбирает "HH:mm" или "HH:mm:ss". Секунды отбрасываются.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}

	c := Clock(hour*60 + minute)
	if c > minutesPerDay {
		return 0, fmt.Errorf("time %q is past midnight", s)
	}
	return c, nil
}

// MustClock как ParseClock, но паникует
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Add сдвигает время на d минут
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// String формат "HH:mm"
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// WireString формат "HH:mm:ss" как его ждёт API
func (c Clock) WireString() string {
	return c.String() + ":00"
}

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start Clock
	End   Clock
}

// Label формат "HH:mm - HH:mm"
func (i Interval) Label() string {
	return i.Start.String() + " - " + i.End.String()
}
