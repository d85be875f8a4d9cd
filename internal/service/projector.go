package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"go.uber.org/zap"
)

const (
	LabelAvailable   = "Disponible"
	LabelBooked      = "Reservado"
	LabelUnavailable = "No disponible"
)

// WeekStart понедельник текущей недели со сдвигом на offset недель
func WeekStart(today time.Time, offset int) time.Time {
	d := model.DateOf(today)
	monday := d.AddDate(0, 0, -model.WeekdayOf(d).Index())
	return monday.AddDate(0, 0, 7*offset)
}

// Columns колонки сетки от самого раннего начала до самого позднего конца с шагом
// slotDuration. Без слотов колонок нет.
func Columns(slots []model.TimeSlot, slotDuration int) []model.Interval {
	if len(slots) == 0 || slotDuration <= 0 {
		return nil
	}

	earliest, latest := slots[0].Start, slots[0].End
	for _, s := range slots[1:] {
		earliest = min(earliest, s.Start)
		latest = max(latest, s.End)
	}

	var cols []model.Interval
	for cur := earliest; cur < latest; cur = cur.Add(slotDuration) {
		cols = append(cols, model.Interval{Start: cur, End: cur.Add(slotDuration)})
	}
	return cols
}

// CellAt ячейка сетки для дня недели и часа. hour в формате "HH:mm" или "HH:mm:ss".
func CellAt(slots []model.TimeSlot, weekStart time.Time, day model.Weekday, hour string, slotDuration int) (model.Cell, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", day)
	}
	at, err := model.ParseClock(hour)
	if err != nil {
		return nil, err
	}
	return cellAt(slots, weekStart.AddDate(0, 0, day.Index()), at, slotDuration), nil
}

func cellAt(slots []model.TimeSlot, date time.Time, at model.Clock, slotDuration int) model.Cell {
	for _, s := range slots {
		if model.SameDate(s.Date, date) && s.Contains(at) {
			return model.SlotCell{Slot: s}
		}
	}
	return model.EmptyCell{Date: date, Start: at, End: at.Add(slotDuration)}
}

// Label текст ячейки для оператора
func Label(cell model.Cell) string {
	c, ok := cell.(model.SlotCell)
	if !ok {
		return LabelUnavailable
	}
	switch c.Slot.Status {
	case model.SlotStatusAvailable:
		return LabelAvailable
	case model.SlotStatusBooked:
		return LabelBooked
	default:
		return LabelUnavailable
	}
}

// GridDay строка сетки
type GridDay struct {
	Day   model.Weekday
	Date  time.Time
	Cells []model.Cell
}

// Grid недельная сетка поля: дни × колонки
type Grid struct {
	Field     model.Field
	WeekStart time.Time
	Columns   []model.Interval
	Days      [7]GridDay
	Slots     []model.TimeSlot
}

// Empty на неделе нет ни одного слота
func (g *Grid) Empty() bool {
	return len(g.Columns) == 0
}

// Cell ячейка по дню и индексу колонки
func (g *Grid) Cell(day model.Weekday, column int) (model.Cell, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", day)
	}
	if column < 0 || column >= len(g.Columns) {
		return nil, fmt.Errorf("column %d out of range", column)
	}
	return g.Days[day.Index()].Cells[column], nil
}

// AvailabilityProjector строит недельную сетку по слотам поля
type AvailabilityProjector struct {
	slots    SlotStore
	fields   FieldStore
	cache    FieldCache
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewAvailabilityProjector(slots SlotStore, fields FieldStore, cache FieldCache, loc *time.Location, logger *zap.Logger) *AvailabilityProjector {
	if loc == nil {
		loc = time.Local
	}
	return &AvailabilityProjector{
		slots:    slots,
		fields:   fields,
		cache:    cache,
		location: loc,
		now:      time.Now,
		logger:   logger,
	}
}

// BuildWeek сетка недели со сдвигом offset относительно текущей
func (p *AvailabilityProjector) BuildWeek(ctx context.Context, fieldID int64, offset int) (*Grid, error) {
	field, err := p.Field(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	start := WeekStart(p.now().In(p.location), offset)
	end := start.AddDate(0, 0, 6)

	slots, err := p.slots.List(ctx, fieldID, &start, &end)
	if err != nil {
		p.logger.Error("Failed to fetch week slots",
			zap.Int64("field_id", fieldID),
			zap.Int("offset", offset),
			zap.Error(err))
		return nil, fmt.Errorf("fetch week slots: %w", err)
	}

	grid := &Grid{
		Field:     *field,
		WeekStart: start,
		Columns:   Columns(slots, field.SlotDuration),
		Slots:     slots,
	}
	for _, day := range model.Weekdays {
		date := start.AddDate(0, 0, day.Index())
		row := GridDay{Day: day, Date: date, Cells: make([]model.Cell, 0, len(grid.Columns))}
		for _, col := range grid.Columns {
			row.Cells = append(row.Cells, cellAt(slots, date, col.Start, field.SlotDuration))
		}
		grid.Days[day.Index()] = row
	}

	p.logger.Debug("Week grid built",
		zap.Int64("field_id", fieldID),
		zap.String("week_start", model.FormatDate(start)),
		zap.Int("slots", len(slots)),
		zap.Int("columns", len(grid.Columns)))

	return grid, nil
}

// Field метаданные поля, сначала из кеша
func (p *AvailabilityProjector) Field(ctx context.Context, fieldID int64) (*model.Field, error) {
	if p.cache != nil {
		field, err := p.cache.GetField(ctx, fieldID)
		if err != nil {
			p.logger.Warn("Field cache read failed",
				zap.Int64("field_id", fieldID),
				zap.Error(err))
		} else if field != nil {
			return field, nil
		}
	}

	field, err := p.fields.GetByID(ctx, fieldID)
	if err != nil {
		p.logger.Error("Failed to get field",
			zap.Int64("field_id", fieldID),
			zap.Error(err))
		return nil, fmt.Errorf("get field: %w", err)
	}
	if field == nil {
		return nil, ErrFieldNotFound
	}

	if p.cache != nil {
		if err := p.cache.SaveField(ctx, field); err != nil {
			p.logger.Warn("Field cache write failed",
				zap.Int64("field_id", fieldID),
				zap.Error(err))
		}
	}
	return field, nil
}
