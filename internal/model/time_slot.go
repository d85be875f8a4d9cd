package model

import (
	"fmt"
	"time"
)

type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusBooked      SlotStatus = "booked"
	SlotStatusMaintenance SlotStatus = "maintenance"
)

// ParseSlotStatus проверяет статус, пришедший от оператора или API
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch SlotStatus(s) {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusMaintenance:
		return SlotStatus(s), nil
	}
	return "", fmt.Errorf("unknown slot status %q", s)
}

// TimeSlot конкретный слот поля на дату
type TimeSlot struct {
	ID            *int64 // nil пока слот не создан на сервере
	Date          time.Time
	Start         Clock
	End           Clock
	Status        SlotStatus
	ReservationID *int64
	EventID       *int64
}

// SlotKey окно слота: дата, начало и конец. По нему сверяются слоты, ещё не
// созданные на сервере, с существующими.
type SlotKey struct {
	Date  string
	Start Clock
	End   Clock
}

// Key возвращает окно слота
func (s *TimeSlot) Key() SlotKey {
	return SlotKey{Date: FormatDate(s.Date), Start: s.Start, End: s.End}
}

// Persisted создан ли слот на сервере
func (s *TimeSlot) Persisted() bool {
	return s.ID != nil
}

// Contains попадает ли время в окно слота [Start, End)
func (s *TimeSlot) Contains(c Clock) bool {
	return s.Start <= c && c < s.End
}

// HasReservation связан ли слот с бронированием
func (s *TimeSlot) HasReservation() bool {
	return s.ReservationID != nil
}

func (s *TimeSlot) String() string {
	id := "new"
	if s.ID != nil {
		id = fmt.Sprintf("#%d", *s.ID)
	}
	return fmt.Sprintf("%s %s %s-%s %s", id, FormatDate(s.Date), s.Start, s.End, s.Status)
}

// Int64Ptr вспомогательная функция для опциональных идентификаторов
func Int64Ptr(v int64) *int64 {
	return &v
}
