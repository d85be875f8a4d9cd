package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/club_admin/internal/model"
	"go.uber.org/zap"
)

type slotAction int

const (
	actionNone slotAction = iota
	actionCancelAndRelease
	actionCancelAndDelete
	actionDelete
	actionPatch
	actionCreate
)

// transition действие для пары (ячейка, запрошенный статус)
func transition(cell model.Cell, requested model.SlotStatus) slotAction {
	switch c := cell.(type) {
	case model.EmptyCell:
		if requested == model.SlotStatusAvailable || requested == model.SlotStatusBooked {
			return actionCreate
		}
	case model.SlotCell:
		slot := c.Slot
		if !slot.Persisted() {
			return actionNone
		}
		switch slot.Status {
		case model.SlotStatusBooked:
			switch {
			case slot.HasReservation() && requested == model.SlotStatusAvailable:
				return actionCancelAndRelease
			case slot.HasReservation() && requested == model.SlotStatusMaintenance:
				return actionCancelAndDelete
			case requested == model.SlotStatusMaintenance:
				return actionDelete
			}
		case model.SlotStatusAvailable:
			switch requested {
			case model.SlotStatusMaintenance:
				return actionDelete
			case model.SlotStatusBooked:
				return actionPatch
			}
		case model.SlotStatusMaintenance:
			if requested == model.SlotStatusAvailable || requested == model.SlotStatusBooked {
				return actionPatch
			}
		}
	}
	return actionNone
}

// Allowed меняет ли запрос что-нибудь для ячейки
func Allowed(cell model.Cell, requested model.SlotStatus) bool {
	return transition(cell, requested) != actionNone
}

// SlotActions ручное изменение статуса ячейки оператором
type SlotActions struct {
	slots        SlotStore
	reservations *ReservationService
	logger       *zap.Logger
}

func NewSlotActions(slots SlotStore, reservations *ReservationService, logger *zap.Logger) *SlotActions {
	return &SlotActions{
		slots:        slots,
		reservations: reservations,
		logger:       logger,
	}
}

// UpdateSlotStatus применяет таблицу переходов и возвращает новое локальное
// состояние ячейки. Запросы вне таблицы ничего не делают.
func (a *SlotActions) UpdateSlotStatus(ctx context.Context, fieldID int64, cell model.Cell, requested model.SlotStatus) (model.Cell, error) {
	action := transition(cell, requested)
	if action == actionNone {
		a.logger.Debug("Slot status change ignored",
			zap.Int64("field_id", fieldID),
			zap.String("requested", string(requested)))
		return cell, nil
	}

	if action == actionCreate {
		empty := cell.(model.EmptyCell)
		slot := model.TimeSlot{
			Date:   empty.Date,
			Start:  empty.Start,
			End:    empty.End,
			Status: requested,
		}
		if err := a.slots.Create(ctx, fieldID, &slot); err != nil {
			a.logger.Error("Failed to create slot",
				zap.Int64("field_id", fieldID),
				zap.String("slot", slot.String()),
				zap.Error(err))
			return cell, fmt.Errorf("create slot: %w", err)
		}
		a.logger.Info("Slot created",
			zap.Int64("field_id", fieldID),
			zap.String("slot", slot.String()))
		return model.SlotCell{Slot: slot}, nil
	}

	slot := cell.(model.SlotCell).Slot
	slotID := *slot.ID

	if action == actionCancelAndRelease || action == actionCancelAndDelete {
		released, err := a.reservations.Cancel(ctx, *slot.ReservationID, []model.TimeSlot{slot})
		if err != nil {
			return cell, err
		}
		slot = released[0]
	}

	switch action {
	case actionCancelAndDelete, actionDelete:
		if err := a.slots.Delete(ctx, fieldID, slotID); err != nil {
			a.logger.Error("Failed to delete slot",
				zap.Int64("field_id", fieldID),
				zap.Int64("slot_id", slotID),
				zap.Error(err))
			return model.SlotCell{Slot: slot}, fmt.Errorf("delete slot: %w", err)
		}
		a.logger.Info("Slot deleted",
			zap.Int64("field_id", fieldID),
			zap.Int64("slot_id", slotID))
		return model.EmptyCell{Date: slot.Date, Start: slot.Start, End: slot.End}, nil

	default:
		if err := a.slots.UpdateStatus(ctx, fieldID, slotID, requested); err != nil {
			a.logger.Error("Failed to update slot status",
				zap.Int64("field_id", fieldID),
				zap.Int64("slot_id", slotID),
				zap.String("status", string(requested)),
				zap.Error(err))
			return model.SlotCell{Slot: slot}, fmt.Errorf("update slot status: %w", err)
		}
		slot.Status = requested
		if requested == model.SlotStatusAvailable {
			slot.ReservationID = nil
			slot.EventID = nil
		}
		a.logger.Info("Slot status updated",
			zap.Int64("field_id", fieldID),
			zap.Int64("slot_id", slotID),
			zap.String("status", string(requested)))
		return model.SlotCell{Slot: slot}, nil
	}
}
