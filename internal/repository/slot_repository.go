package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/repository/base"
)

// timeSlotDTO слот в формате API (snake_case)
type timeSlotDTO struct {
	ID               *int64 `json:"id,omitempty"`
	AvailabilityDate string `json:"availability_date,omitempty"`
	Date             string `json:"date,omitempty"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	SlotStatus       string `json:"slot_status"`
	ReservationID    *int64 `json:"reservation_id,omitempty"`
	EventID          *int64 `json:"event_id,omitempty"`
}

type statusDTO struct {
	Status string `json:"status"`
}

type SlotRepository struct {
	base     *base.Repository
	location *time.Location
}

func NewSlotRepository(b *base.Repository, loc *time.Location) *SlotRepository {
	if loc == nil {
		loc = time.Local
	}
	return &SlotRepository{base: b, location: loc}
}

// List получает слоты поля. from/to - необязательные фильтры по дате.
func (r *SlotRepository) List(ctx context.Context, fieldID int64, from, to *time.Time) ([]model.TimeSlot, error) {
	query := url.Values{}
	if from != nil {
		query.Set("startDate", model.FormatDate(*from))
	}
	if to != nil {
		query.Set("endDate", model.FormatDate(*to))
	}

	var raw json.RawMessage
	if err := r.base.Do(ctx, http.MethodGet, availabilityPath(fieldID), query, nil, &raw); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	dtos, err := decodeSlotList(raw)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	slots := make([]model.TimeSlot, 0, len(dtos))
	for _, dto := range dtos {
		slot, err := r.fromDTO(dto)
		if err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// Create создаёт слот и проставляет ему ID из ответа
func (r *SlotRepository) Create(ctx context.Context, fieldID int64, slot *model.TimeSlot) error {
	payload := timeSlotDTO{
		AvailabilityDate: model.FormatDate(slot.Date),
		StartTime:        slot.Start.WireString(),
		EndTime:          slot.End.WireString(),
		SlotStatus:       string(slot.Status),
	}

	var created timeSlotDTO
	if err := r.base.Do(ctx, http.MethodPost, availabilityPath(fieldID), nil, payload, &created); err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	if created.ID != nil {
		slot.ID = created.ID
	}

	return nil
}

// UpdateStatus обновляет статус слота
func (r *SlotRepository) UpdateStatus(ctx context.Context, fieldID, slotID int64, status model.SlotStatus) error {
	path := fmt.Sprintf("%s/%d/status", availabilityPath(fieldID), slotID)
	if err := r.base.Do(ctx, http.MethodPatch, path, nil, statusDTO{Status: string(status)}, nil); err != nil {
		return fmt.Errorf("update slot status: %w", err)
	}
	return nil
}

// Delete удаляет слот
func (r *SlotRepository) Delete(ctx context.Context, fieldID, slotID int64) error {
	path := fmt.Sprintf("%s/%d", availabilityPath(fieldID), slotID)
	if err := r.base.Do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

func (r *SlotRepository) fromDTO(dto timeSlotDTO) (model.TimeSlot, error) {
	rawDate := dto.AvailabilityDate
	if rawDate == "" {
		rawDate = dto.Date
	}
	date, err := model.ParseDate(rawDate, r.location)
	if err != nil {
		return model.TimeSlot{}, err
	}
	start, err := model.ParseClock(dto.StartTime)
	if err != nil {
		return model.TimeSlot{}, fmt.Errorf("slot start: %w", err)
	}
	end, err := model.ParseClock(dto.EndTime)
	if err != nil {
		return model.TimeSlot{}, fmt.Errorf("slot end: %w", err)
	}

	status := model.SlotStatus(dto.SlotStatus)
	if status == "" {
		status = model.SlotStatusAvailable
	}

	return model.TimeSlot{
		ID:            dto.ID,
		Date:          date,
		Start:         start,
		End:           end,
		Status:        status,
		ReservationID: dto.ReservationID,
		EventID:       dto.EventID,
	}, nil
}

// decodeSlotList принимает как голый массив, так и {"data": [...]}
func decodeSlotList(raw json.RawMessage) ([]timeSlotDTO, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var dtos []timeSlotDTO
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &dtos); err != nil {
			return nil, fmt.Errorf("decode slots: %w", err)
		}
		return dtos, nil
	}

	var wrapped struct {
		Data []timeSlotDTO `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	return wrapped.Data, nil
}

func availabilityPath(fieldID int64) string {
	return fmt.Sprintf("/fields/%d/availability", fieldID)
}
