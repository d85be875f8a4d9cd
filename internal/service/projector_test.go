package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/club_admin/internal/apitest"
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		today  string
		offset int
		want   string
	}{
		{today: "2024-05-08", offset: 0, want: "2024-05-06"},
		{today: "2024-05-06", offset: 0, want: "2024-05-06"},
		{today: "2024-05-12", offset: 0, want: "2024-05-06"},
		{today: "2024-05-08", offset: 1, want: "2024-05-13"},
		{today: "2024-05-08", offset: -2, want: "2024-04-22"},
	}

	for _, tt := range tests {
		got := WeekStart(date(tt.today).Add(15*time.Hour), tt.offset)
		assert.Equal(t, tt.want, model.FormatDate(got), "today %s offset %d", tt.today, tt.offset)
	}
}

func TestColumns(t *testing.T) {
	assert.Empty(t, Columns(nil, 60))

	slots := []model.TimeSlot{
		{Date: date("2024-05-06"), Start: clock("10:00"), End: clock("11:30")},
		{Date: date("2024-05-08"), Start: clock("08:30"), End: clock("10:00")},
		{Date: date("2024-05-09"), Start: clock("11:30"), End: clock("13:00")},
	}

	var labels []string
	for _, col := range Columns(slots, 90) {
		labels = append(labels, col.Label())
	}
	assert.Equal(t, []string{"08:30 - 10:00", "10:00 - 11:30", "11:30 - 13:00"}, labels)
}

func TestCellAtAndLabel(t *testing.T) {
	week := date("2024-05-06")
	slots := []model.TimeSlot{
		{ID: model.Int64Ptr(1), Date: date("2024-05-06"), Start: clock("08:00"), End: clock("09:00"), Status: model.SlotStatusAvailable},
		{ID: model.Int64Ptr(2), Date: date("2024-05-07"), Start: clock("08:00"), End: clock("09:00"), Status: model.SlotStatusBooked},
		{ID: model.Int64Ptr(3), Date: date("2024-05-08"), Start: clock("08:00"), End: clock("09:00"), Status: model.SlotStatusMaintenance},
	}

	tests := []struct {
		name  string
		day   model.Weekday
		hour  string
		label string
		slot  int64
	}{
		{name: "available", day: model.Monday, hour: "08:00", label: LabelAvailable, slot: 1},
		{name: "seconds accepted", day: model.Monday, hour: "08:30:00", label: LabelAvailable, slot: 1},
		{name: "booked", day: model.Tuesday, hour: "08:00", label: LabelBooked, slot: 2},
		{name: "maintenance", day: model.Wednesday, hour: "08:00", label: LabelUnavailable, slot: 3},
		{name: "end exclusive", day: model.Monday, hour: "09:00", label: LabelUnavailable},
		{name: "no slot", day: model.Sunday, hour: "08:00", label: LabelUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, err := CellAt(slots, week, tt.day, tt.hour, 60)
			require.NoError(t, err)
			assert.Equal(t, tt.label, Label(cell))

			if tt.slot == 0 {
				empty, ok := cell.(model.EmptyCell)
				require.True(t, ok)
				assert.Equal(t, model.FormatDate(week.AddDate(0, 0, tt.day.Index())), model.FormatDate(empty.Date))
				assert.Equal(t, empty.Start.Add(60), empty.End)
				return
			}
			sc, ok := cell.(model.SlotCell)
			require.True(t, ok)
			assert.Equal(t, tt.slot, *sc.Slot.ID)
		})
	}

	_, err := CellAt(slots, week, model.Monday, "8h", 60)
	assert.Error(t, err)
	_, err = CellAt(slots, week, model.Weekday(7), "08:00", 60)
	assert.Error(t, err)
}

func TestBuildWeek(t *testing.T) {
	env := newTestEnv(t)
	env.srv.AddField(apitest.Field{ID: 1, Name: "Pista 1", SlotDuration: 60})
	env.srv.AddSlot(1, apitest.Slot{AvailabilityDate: "2024-05-06", StartTime: "08:00:00", EndTime: "09:00:00", SlotStatus: "available"})
	env.srv.AddSlot(1, apitest.Slot{AvailabilityDate: "2024-05-12", StartTime: "09:00:00", EndTime: "10:00:00", SlotStatus: "booked"})
	env.srv.AddSlot(1, apitest.Slot{AvailabilityDate: "2024-05-13", StartTime: "07:00:00", EndTime: "08:00:00", SlotStatus: "available"})

	cache := &memoryFieldCache{}
	p := NewAvailabilityProjector(env.slots, env.fields, cache, time.UTC, zaptest.NewLogger(t))
	p.now = func() time.Time { return date("2024-05-08").Add(12 * time.Hour) }
	ctx := context.Background()

	grid, err := p.BuildWeek(ctx, 1, 0)
	require.NoError(t, err)
	assert.False(t, grid.Empty())
	assert.Equal(t, "Pista 1", grid.Field.Name)
	assert.Equal(t, "2024-05-06", model.FormatDate(grid.WeekStart))
	require.Len(t, grid.Columns, 2)
	assert.Len(t, grid.Slots, 2)

	cell, err := grid.Cell(model.Monday, 0)
	require.NoError(t, err)
	assert.Equal(t, LabelAvailable, Label(cell))

	cell, err = grid.Cell(model.Sunday, 1)
	require.NoError(t, err)
	assert.Equal(t, LabelBooked, Label(cell))
	assert.Equal(t, "2024-05-12", model.FormatDate(grid.Days[model.Sunday.Index()].Date))

	cell, err = grid.Cell(model.Thursday, 1)
	require.NoError(t, err)
	assert.IsType(t, model.EmptyCell{}, cell)

	_, err = grid.Cell(model.Monday, 5)
	assert.Error(t, err)

	// метаданные поля берутся из кеша
	_, err = p.BuildWeek(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	empty, err := p.BuildWeek(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, empty.Empty())

	_, err = p.BuildWeek(ctx, 42, 0)
	assert.ErrorIs(t, err, ErrFieldNotFound)
}
