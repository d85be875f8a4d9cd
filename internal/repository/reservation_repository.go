package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/repository/base"
)

type ReservationRepository struct {
	base *base.Repository
}

func NewReservationRepository(b *base.Repository) *ReservationRepository {
	return &ReservationRepository{base: b}
}

// UpdateStatus обновляет статус бронирования
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	path := fmt.Sprintf("/reservations/%d/status", id)
	if err := r.base.Do(ctx, http.MethodPatch, path, nil, statusDTO{Status: string(status)}, nil); err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	return nil
}
