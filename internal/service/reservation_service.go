package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/club_admin/internal/model"
	"go.uber.org/zap"
)

type ReservationService struct {
	reservations ReservationStore
	logger       *zap.Logger
}

func NewReservationService(reservations ReservationStore, logger *zap.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		logger:       logger,
	}
}

// Cancel отменяет бронирование на сервере и возвращает копию slots, в которой
// связанный слот снова доступен и отвязан от брони и события
func (s *ReservationService) Cancel(ctx context.Context, reservationID int64, slots []model.TimeSlot) ([]model.TimeSlot, error) {
	if err := s.setStatus(ctx, reservationID, model.ReservationStatusCancelled); err != nil {
		return nil, err
	}

	out := make([]model.TimeSlot, len(slots))
	copy(out, slots)
	for i := range out {
		if out[i].ReservationID != nil && *out[i].ReservationID == reservationID {
			out[i].Status = model.SlotStatusAvailable
			out[i].ReservationID = nil
			out[i].EventID = nil
		}
	}
	return out, nil
}

// Confirm подтверждает бронирование
func (s *ReservationService) Confirm(ctx context.Context, reservationID int64) error {
	return s.setStatus(ctx, reservationID, model.ReservationStatusConfirmed)
}

func (s *ReservationService) setStatus(ctx context.Context, reservationID int64, status model.ReservationStatus) error {
	if err := s.reservations.UpdateStatus(ctx, reservationID, status); err != nil {
		s.logger.Error("Failed to update reservation status",
			zap.Int64("reservation_id", reservationID),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("update reservation %d: %w", reservationID, err)
	}

	s.logger.Info("Reservation status updated",
		zap.Int64("reservation_id", reservationID),
		zap.String("status", string(status)))
	return nil
}
