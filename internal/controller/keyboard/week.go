package keyboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"
)

// WeekPrefix префикс callback data навигации по неделям: week:<поле>:<сдвиг>
const WeekPrefix = "week:"

// WeekData callback data для недели поля
func WeekData(fieldID int64, offset int) string {
	return fmt.Sprintf("%s%d:%d", WeekPrefix, fieldID, offset)
}

// ParseWeekData разбирает callback data навигации
func ParseWeekData(data string) (fieldID int64, offset int, err error) {
	parts := strings.Split(strings.TrimPrefix(data, WeekPrefix), ":")
	if !strings.HasPrefix(data, WeekPrefix) || len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid week callback %q", data)
	}
	if fieldID, err = strconv.ParseInt(parts[0], 10, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid week callback %q", data)
	}
	if offset, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid week callback %q", data)
	}
	return fieldID, offset, nil
}

// WeekNavigation кнопки предыдущей, текущей и следующей недели
func WeekNavigation(fieldID int64, offset int) *models.InlineKeyboardMarkup {
	row := []models.InlineKeyboardButton{
		Button("◀️", WeekData(fieldID, offset-1)),
	}
	if offset != 0 {
		row = append(row, Button("📅 Сегодня", WeekData(fieldID, 0)))
	}
	row = append(row, Button("▶️", WeekData(fieldID, offset+1)))

	return NewBuilder().Row(row...).Build()
}
