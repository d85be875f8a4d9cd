package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidTemplate = errors.New("invalid weekly template")
	ErrFieldNotFound   = errors.New("field not found")
	ErrJournalDisabled = errors.New("sync journal is not configured")
	ErrRunNotFound     = errors.New("sync run not found")
)

// EmptyDayPolicy чем считать день без слотов при загрузке шаблона
type EmptyDayPolicy string

const (
	// EmptyDayOpen день открыт с пустыми часами, их нужно заполнить до синхронизации
	EmptyDayOpen EmptyDayPolicy = "open"
	// EmptyDayClosed день закрыт
	EmptyDayClosed EmptyDayPolicy = "closed"
)

// DayProblem ошибка в одном дне шаблона
type DayProblem struct {
	Day     model.Weekday
	Problem string
}

// ValidationError все проблемы шаблона разом
type ValidationError struct {
	Problems []DayProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Day, p.Problem))
	}
	return "invalid weekly template: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTemplate
}

// ComposerOptions необязательные зависимости компоновщика
type ComposerOptions struct {
	Location       *time.Location
	EmptyDayPolicy EmptyDayPolicy
	Journal        RunJournal
	Notifier       SyncNotifier
	Now            func() time.Time
}

// ScheduleComposer превращает недельный шаблон в слоты и сверяет их с сервером
type ScheduleComposer struct {
	slots    SlotStore
	fields   FieldStore
	journal  RunJournal
	notifier SyncNotifier
	location *time.Location
	policy   EmptyDayPolicy
	now      func() time.Time
	logger   *zap.Logger
}

func NewScheduleComposer(slots SlotStore, fields FieldStore, logger *zap.Logger, opts ComposerOptions) *ScheduleComposer {
	c := &ScheduleComposer{
		slots:    slots,
		fields:   fields,
		journal:  opts.Journal,
		notifier: opts.Notifier,
		location: opts.Location,
		policy:   opts.EmptyDayPolicy,
		now:      opts.Now,
		logger:   logger,
	}
	if c.location == nil {
		c.location = time.Local
	}
	if c.policy == "" {
		c.policy = EmptyDayOpen
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Today сегодняшняя дата в часовом поясе клуба
func (c *ScheduleComposer) Today() time.Time {
	return model.DateOf(c.now().In(c.location))
}

// LoadExistingTemplate восстанавливает шаблон по слотам поля. Второе значение -
// было ли у поля расписание.
func (c *ScheduleComposer) LoadExistingTemplate(ctx context.Context, fieldID int64) (model.WeeklyTemplate, bool, error) {
	return c.LoadTemplate(ctx, fieldID, c.policy)
}

// LoadTemplate как LoadExistingTemplate, но с явной политикой пустых дней
func (c *ScheduleComposer) LoadTemplate(ctx context.Context, fieldID int64, policy EmptyDayPolicy) (model.WeeklyTemplate, bool, error) {
	slots, err := c.slots.List(ctx, fieldID, nil, nil)
	if err != nil {
		c.logger.Error("Failed to load field slots",
			zap.Int64("field_id", fieldID),
			zap.Error(err))
		return model.WeeklyTemplate{}, false, fmt.Errorf("load template: %w", err)
	}

	tpl := TemplateFromSlots(slots, policy)

	c.logger.Debug("Template loaded",
		zap.Int64("field_id", fieldID),
		zap.Int("slots", len(slots)))

	return tpl, len(slots) > 0, nil
}

// TemplateFromSlots группирует слоты по дню недели и берёт самое раннее начало
// и самый поздний конец дня
func TemplateFromSlots(slots []model.TimeSlot, policy EmptyDayPolicy) model.WeeklyTemplate {
	tpl := model.NewWeeklyTemplate()

	byDay := make(map[model.Weekday][]model.TimeSlot)
	for _, s := range slots {
		day := model.WeekdayOf(s.Date)
		byDay[day] = append(byDay[day], s)
	}

	for _, day := range model.Weekdays {
		daySlots := byDay[day]
		if len(daySlots) == 0 {
			if policy == EmptyDayClosed {
				tpl.Close(day)
			}
			continue
		}

		start, end := daySlots[0].Start, daySlots[0].End
		for _, s := range daySlots[1:] {
			start = min(start, s.Start)
			end = max(end, s.End)
		}
		tpl.Set(day, start, end)
	}

	return tpl
}

// CopySchedule копирует часы и флаг закрытия дня from в дни to. Только в памяти.
func CopySchedule(tpl *model.WeeklyTemplate, from model.Weekday, to ...model.Weekday) {
	src := *tpl.Entry(from)
	for _, day := range to {
		if day == from || !day.Valid() {
			continue
		}
		dst := tpl.Entry(day)
		dst.Closed = src.Closed
		dst.Start, dst.End = nil, nil
		if src.Start != nil {
			dst.Start = model.ClockPtr(*src.Start)
		}
		if src.End != nil {
			dst.End = model.ClockPtr(*src.End)
		}
	}
}

// Validate собирает все незаполненные и некорректные открытые дни
func Validate(tpl model.WeeklyTemplate) error {
	var problems []DayProblem
	for _, e := range tpl {
		if e.Closed {
			continue
		}
		switch {
		case !e.Complete():
			problems = append(problems, DayProblem{Day: e.Day, Problem: "не указано время начала или конца"})
		case *e.Start >= *e.End:
			problems = append(problems, DayProblem{Day: e.Day, Problem: "начало должно быть раньше конца"})
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Expand разворачивает шаблон в конкретные слоты окна. Закрытые дни не дают слотов.
func Expand(tpl model.WeeklyTemplate, horizon model.Horizon, today time.Time, existing bool, durationMinutes int) []model.TimeSlot {
	var out []model.TimeSlot
	for _, e := range tpl {
		if e.Closed || !e.Complete() {
			continue
		}
		intervals := GenerateTimeSlots(*e.Start, *e.End, durationMinutes)
		if len(intervals) == 0 {
			continue
		}
		for _, date := range NextDatesForDay(e.Day, horizon, today, existing) {
			for _, iv := range intervals {
				out = append(out, model.TimeSlot{
					Date:   date,
					Start:  iv.Start,
					End:    iv.End,
					Status: model.SlotStatusAvailable,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// SyncPlan операции, которые нужно выполнить на сервере
type SyncPlan struct {
	Horizon  model.Horizon
	Existing bool
	Deletes  []model.TimeSlot
	Creates  []model.TimeSlot
}

// Plan сверяет текущие слоты с шаблоном. Удаляются только слоты позже
// сегодня+14 дней, которых нет в шаблоне; создаются только недостающие.
func Plan(current []model.TimeSlot, tpl model.WeeklyTemplate, today time.Time, durationMinutes int) SyncPlan {
	existing := len(current) > 0
	horizon := NewHorizon(today, existing)
	desired := Expand(tpl, horizon, today, existing, durationMinutes)

	desiredSet := make(map[model.SlotKey]struct{}, len(desired))
	for i := range desired {
		desiredSet[desired[i].Key()] = struct{}{}
	}
	currentSet := make(map[model.SlotKey]struct{}, len(current))
	for i := range current {
		currentSet[current[i].Key()] = struct{}{}
	}

	plan := SyncPlan{Horizon: horizon, Existing: existing}
	cutoff := DeletionCutoff(today)
	for _, s := range current {
		if !s.Persisted() || !model.DateOf(s.Date).After(cutoff) {
			continue
		}
		if _, keep := desiredSet[s.Key()]; keep {
			continue
		}
		plan.Deletes = append(plan.Deletes, s)
	}
	for _, s := range desired {
		if _, exists := currentSet[s.Key()]; exists {
			continue
		}
		plan.Creates = append(plan.Creates, s)
	}

	return plan
}

// Extension оставляет от плана только создание слотов позже последней даты
// current. Пропуски внутри уже созданного расписания не заполняются, удалений нет.
func (p SyncPlan) Extension(current []model.TimeSlot) SyncPlan {
	p.Deletes = nil

	last, ok := LastSlotDate(current)
	if !ok {
		return p
	}
	var creates []model.TimeSlot
	for _, s := range p.Creates {
		if model.DateOf(s.Date).After(last) {
			creates = append(creates, s)
		}
	}
	p.Creates = creates
	return p
}

// LastSlotDate самая поздняя дата среди слотов
func LastSlotDate(slots []model.TimeSlot) (time.Time, bool) {
	var last time.Time
	for _, s := range slots {
		if d := model.DateOf(s.Date); d.After(last) {
			last = d
		}
	}
	return last, len(slots) > 0
}

// SyncOptions параметры синхронизации
type SyncOptions struct {
	// SlotDuration 0 - берётся из поля
	SlotDuration int
	// ExtendOnly только продлить расписание за его последнюю дату. Слоты, удалённые
	// оператором внутри расписания, не возвращаются.
	ExtendOnly bool
}

// Preview считает операции синхронизации, ничего не меняя на сервере
func (c *ScheduleComposer) Preview(ctx context.Context, fieldID int64, tpl model.WeeklyTemplate, opts SyncOptions) (*SyncPlan, error) {
	if err := Validate(tpl); err != nil {
		return nil, err
	}

	duration := opts.SlotDuration
	if duration <= 0 {
		var err error
		if duration, err = c.slotDuration(ctx, fieldID); err != nil {
			return nil, err
		}
	}

	current, err := c.slots.List(ctx, fieldID, nil, nil)
	if err != nil {
		c.logger.Error("Failed to fetch existing slots",
			zap.Int64("field_id", fieldID),
			zap.Error(err))
		return nil, fmt.Errorf("fetch existing slots: %w", err)
	}

	plan := Plan(current, tpl, c.Today(), duration)
	if opts.ExtendOnly {
		plan = plan.Extension(current)
	}
	return &plan, nil
}

// Sync сверяет слоты поля с шаблоном. Ошибка возвращается только при неверном
// шаблоне или если не удалось получить текущие слоты; сбои отдельных операций
// перечислены в отчёте.
func (c *ScheduleComposer) Sync(ctx context.Context, fieldID int64, tpl model.WeeklyTemplate, opts SyncOptions) (*model.SyncRun, error) {
	startedAt := c.now()

	plan, err := c.Preview(ctx, fieldID, tpl, opts)
	if err != nil {
		return nil, err
	}

	run := &model.SyncRun{
		ID:        uuid.New(),
		FieldID:   fieldID,
		StartedAt: startedAt,
	}

	c.logger.Info("Sync planned",
		zap.String("run_id", run.ID.String()),
		zap.Int64("field_id", fieldID),
		zap.Bool("existing", plan.Existing),
		zap.Bool("extend_only", opts.ExtendOnly),
		zap.String("horizon_start", model.FormatDate(plan.Horizon.Start)),
		zap.String("horizon_end", model.FormatDate(plan.Horizon.End)),
		zap.Int("deletes", len(plan.Deletes)),
		zap.Int("creates", len(plan.Creates)))

	c.apply(ctx, run, plan.Deletes, plan.Creates)
	c.finish(ctx, run)

	return run, nil
}

// RetryFailed повторяет неудачные операции запуска из журнала. Результат - новый запуск.
func (c *ScheduleComposer) RetryFailed(ctx context.Context, runID uuid.UUID) (*model.SyncRun, error) {
	if c.journal == nil {
		return nil, ErrJournalDisabled
	}

	prev, err := c.journal.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("get sync run: %w", err)
	}
	if prev == nil {
		return nil, ErrRunNotFound
	}

	var deletes, creates []model.TimeSlot
	for _, f := range prev.Failed {
		switch f.Kind {
		case model.OperationDelete:
			if f.Slot.Persisted() {
				deletes = append(deletes, f.Slot)
			}
		case model.OperationCreate:
			slot := f.Slot
			slot.ID = nil
			creates = append(creates, slot)
		}
	}

	run := &model.SyncRun{
		ID:        uuid.New(),
		FieldID:   prev.FieldID,
		StartedAt: c.now(),
	}

	c.logger.Info("Retrying failed sync operations",
		zap.String("run_id", run.ID.String()),
		zap.String("previous_run_id", runID.String()),
		zap.Int("deletes", len(deletes)),
		zap.Int("creates", len(creates)))

	c.apply(ctx, run, deletes, creates)
	c.finish(ctx, run)

	return run, nil
}

func (c *ScheduleComposer) apply(ctx context.Context, run *model.SyncRun, deletes, creates []model.TimeSlot) {
	for _, s := range deletes {
		if s.Status == model.SlotStatusBooked {
			c.logger.Warn("Deleting booked slot outside the new template",
				zap.Int64("field_id", run.FieldID),
				zap.Int64("slot_id", *s.ID),
				zap.String("date", model.FormatDate(s.Date)))
		}
	}

	failedDeletes := RunBatches(ctx, deletes, BatchSize, func(ctx context.Context, s model.TimeSlot) error {
		return c.slots.Delete(ctx, run.FieldID, *s.ID)
	})
	run.Deleted = len(deletes) - len(failedDeletes)
	for _, f := range failedDeletes {
		run.Failed = append(run.Failed, model.FailedOperation{Kind: model.OperationDelete, Slot: f.Item, Error: f.Err.Error()})
	}

	failedCreates := RunBatches(ctx, creates, BatchSize, func(ctx context.Context, s model.TimeSlot) error {
		return c.slots.Create(ctx, run.FieldID, &s)
	})
	run.Created = len(creates) - len(failedCreates)
	for _, f := range failedCreates {
		run.Failed = append(run.Failed, model.FailedOperation{Kind: model.OperationCreate, Slot: f.Item, Error: f.Err.Error()})
	}
}

func (c *ScheduleComposer) finish(ctx context.Context, run *model.SyncRun) {
	run.FinishedAt = c.now()

	if run.OK() {
		c.logger.Info("Sync completed",
			zap.String("run_id", run.ID.String()),
			zap.Int64("field_id", run.FieldID),
			zap.Int("created", run.Created),
			zap.Int("deleted", run.Deleted))
	} else {
		c.logger.Warn("Sync completed with failures",
			zap.String("run_id", run.ID.String()),
			zap.Int64("field_id", run.FieldID),
			zap.Int("created", run.Created),
			zap.Int("deleted", run.Deleted),
			zap.Int("failed", len(run.Failed)))
	}

	// Журнал и уведомления не влияют на результат синхронизации
	if c.journal != nil {
		if err := c.journal.Save(context.WithoutCancel(ctx), run); err != nil {
			c.logger.Error("Failed to journal sync run",
				zap.String("run_id", run.ID.String()),
				zap.Error(err))
		}
	}
	if c.notifier != nil {
		if err := c.notifier.NotifySync(context.WithoutCancel(ctx), run); err != nil {
			c.logger.Error("Failed to send sync report",
				zap.String("run_id", run.ID.String()),
				zap.Error(err))
		}
	}
}

func (c *ScheduleComposer) slotDuration(ctx context.Context, fieldID int64) (int, error) {
	field, err := c.fields.GetByID(ctx, fieldID)
	if err != nil {
		return 0, fmt.Errorf("get field: %w", err)
	}
	if field == nil {
		return 0, ErrFieldNotFound
	}
	if field.SlotDuration <= 0 {
		return 0, fmt.Errorf("field %d has no slot duration", fieldID)
	}
	return field.SlotDuration, nil
}
