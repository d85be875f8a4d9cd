package formatting

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid() *service.Grid {
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	slot := model.TimeSlot{
		ID: model.Int64Ptr(1), Date: monday,
		Start: model.MustClock("08:00"), End: model.MustClock("09:00"),
		Status: model.SlotStatusBooked,
	}

	grid := &service.Grid{
		Field:     model.Field{ID: 1, Name: "Pista <1>", SlotDuration: 60},
		WeekStart: monday,
		Columns: []model.Interval{
			{Start: model.MustClock("08:00"), End: model.MustClock("09:00")},
			{Start: model.MustClock("09:00"), End: model.MustClock("10:00")},
		},
	}
	for _, d := range model.Weekdays {
		date := monday.AddDate(0, 0, d.Index())
		row := service.GridDay{Day: d, Date: date}
		for _, col := range grid.Columns {
			row.Cells = append(row.Cells, model.EmptyCell{Date: date, Start: col.Start, End: col.End})
		}
		grid.Days[d.Index()] = row
	}
	grid.Days[0].Cells[0] = model.SlotCell{Slot: slot}
	return grid
}

func TestWriteGrid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, testGrid()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "неделя с 06.05.2024")
	assert.Contains(t, lines[2], "08:00 - 09:00")
	assert.Contains(t, lines[2], "09:00 - 10:00")
	assert.True(t, strings.HasPrefix(lines[3], "Понедельник 06.05"))
	assert.Contains(t, lines[3], "Reservado")
	assert.Contains(t, lines[3], "No disponible")
	assert.True(t, strings.HasPrefix(lines[9], "Воскресенье 12.05"))
}

func TestWriteGridEmpty(t *testing.T) {
	grid := &service.Grid{Field: model.Field{Name: "Pista 2", SlotDuration: 90}}

	var buf bytes.Buffer
	require.NoError(t, WriteGrid(&buf, grid))
	assert.Contains(t, buf.String(), EmptyWeekText)
	assert.Contains(t, buf.String(), "1 ч 30 мин")

	assert.Contains(t, FormatWeekCompact(grid), EmptyWeekText)
}

func TestFormatWeekCompact(t *testing.T) {
	text := FormatWeekCompact(testGrid())
	assert.Contains(t, text, "Pista &lt;1&gt;")
	assert.Contains(t, text, "<b>Понедельник 06.05</b>\n🔴 08:00\n⚫️ 09:00")
}

func TestFormatTemplate(t *testing.T) {
	tpl := model.NewWeeklyTemplate()
	tpl.Set(model.Monday, model.MustClock("08:00"), model.MustClock("22:00"))
	tpl.Close(model.Sunday)

	text := FormatTemplate(tpl)
	assert.Contains(t, text, "Понедельник: 08:00 - 22:00\n")
	assert.Contains(t, text, "Вторник: часы не заданы\n")
	assert.Contains(t, text, "Воскресенье: закрыто\n")
}

func TestFormatRun(t *testing.T) {
	ok := &model.SyncRun{ID: uuid.New(), FieldID: 3, Created: 21, Deleted: 2}
	text := FormatRun(ok)
	assert.Contains(t, text, "✅")
	assert.Contains(t, text, "Создано: 21 слот, удалено: 2 слота")
	assert.NotContains(t, text, "retry")

	failed := &model.SyncRun{ID: uuid.New(), FieldID: 3, Created: 1}
	for i := 0; i < 12; i++ {
		failed.Failed = append(failed.Failed, model.FailedOperation{
			Kind:  model.OperationCreate,
			Slot:  model.TimeSlot{Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), Start: model.MustClock("08:00"), End: model.MustClock("09:00")},
			Error: errors.New("boom").Error(),
		})
	}
	text = FormatRun(failed)
	assert.Contains(t, text, "12 ошибок")
	assert.Equal(t, 10, strings.Count(text, "• создание 2024-05-20 08:00-09:00: boom"))
	assert.Contains(t, text, "…и ещё 2")
	assert.Contains(t, text, "clubadmin sync retry "+failed.ID.String())
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "слот", PluralizeSlots(1))
	assert.Equal(t, "слота", PluralizeSlots(3))
	assert.Equal(t, "слотов", PluralizeSlots(11))
	assert.Equal(t, "слот", PluralizeSlots(21))
	assert.Equal(t, "ошибки", PluralizeErrors(2))
	assert.Equal(t, "ошибок", PluralizeErrors(0))
}
