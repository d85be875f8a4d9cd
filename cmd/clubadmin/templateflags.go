package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
)

func parseFieldID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid field id %q", arg)
	}
	return id, nil
}

// applyDaySettings применяет к шаблону "день=HH:mm-HH:mm", "день=closed" или "день=open"
func applyDaySettings(tpl *model.WeeklyTemplate, rules []string) error {
	for _, rule := range rules {
		name, value, ok := strings.Cut(rule, "=")
		if !ok {
			return fmt.Errorf("invalid day rule %q, want day=HH:mm-HH:mm", rule)
		}
		day, err := model.ParseWeekday(name)
		if err != nil {
			return err
		}

		switch value = strings.ToLower(strings.TrimSpace(value)); value {
		case "closed", "cerrado", "закрыто":
			tpl.Close(day)
		case "open", "открыто":
			e := tpl.Entry(day)
			e.Closed = false
			e.Start, e.End = nil, nil
		default:
			rawStart, rawEnd, ok := strings.Cut(value, "-")
			if !ok {
				return fmt.Errorf("invalid hours %q for %s", value, day)
			}
			start, err := model.ParseClock(rawStart)
			if err != nil {
				return fmt.Errorf("%s start: %w", day, err)
			}
			end, err := model.ParseClock(rawEnd)
			if err != nil {
				return fmt.Errorf("%s end: %w", day, err)
			}
			tpl.Set(day, start, end)
		}
	}
	return nil
}

// applyCopies применяет "день:день,день" через CopySchedule
func applyCopies(tpl *model.WeeklyTemplate, rules []string) error {
	for _, rule := range rules {
		rawFrom, rawTo, ok := strings.Cut(rule, ":")
		if !ok {
			return fmt.Errorf("invalid copy rule %q, want from:to[,to...]", rule)
		}
		from, err := model.ParseWeekday(rawFrom)
		if err != nil {
			return err
		}
		to, err := parseWeekdays(rawTo)
		if err != nil {
			return err
		}
		service.CopySchedule(tpl, from, to...)
	}
	return nil
}

func parseWeekdays(list string) ([]model.Weekday, error) {
	var days []model.Weekday
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		day, err := model.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no target days in %q", list)
	}
	return days, nil
}
