package model

import (
	"time"

	"github.com/google/uuid"
)

type OperationKind string

const (
	OperationCreate OperationKind = "create"
	OperationDelete OperationKind = "delete"
)

// FailedOperation операция синхронизации, которая не прошла
type FailedOperation struct {
	Kind  OperationKind
	Slot  TimeSlot
	Error string
}

// SyncRun итог одной синхронизации расписания поля
type SyncRun struct {
	ID         uuid.UUID
	FieldID    int64
	StartedAt  time.Time
	FinishedAt time.Time
	Created    int
	Deleted    int
	Failed     []FailedOperation
}

// OK прошли ли все операции
func (r *SyncRun) OK() bool {
	return len(r.Failed) == 0
}
