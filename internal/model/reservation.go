package model

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID     int64             `json:"id"`
	SlotID *int64            `json:"slot_id,omitempty"`
	Status ReservationStatus `json:"status"`
}
