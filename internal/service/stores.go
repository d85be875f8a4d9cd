package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/google/uuid"
)

// SlotStore слоты поля на сервере
type SlotStore interface {
	List(ctx context.Context, fieldID int64, from, to *time.Time) ([]model.TimeSlot, error)
	Create(ctx context.Context, fieldID int64, slot *model.TimeSlot) error
	UpdateStatus(ctx context.Context, fieldID, slotID int64, status model.SlotStatus) error
	Delete(ctx context.Context, fieldID, slotID int64) error
}

// FieldStore метаданные полей
type FieldStore interface {
	GetByID(ctx context.Context, id int64) (*model.Field, error)
}

// ReservationStore статусы бронирований
type ReservationStore interface {
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
}

// FieldCache кеш метаданных полей
type FieldCache interface {
	GetField(ctx context.Context, id int64) (*model.Field, error)
	SaveField(ctx context.Context, field *model.Field) error
}

// RunJournal журнал синхронизаций
type RunJournal interface {
	Save(ctx context.Context, run *model.SyncRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SyncRun, error)
}

// SyncNotifier получает отчёт после каждой синхронизации
type SyncNotifier interface {
	NotifySync(ctx context.Context, run *model.SyncRun) error
}
