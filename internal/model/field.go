package model

// Field корт или поле клуба
type Field struct {
	ID           int64  `json:"id"`
	ClubID       int64  `json:"club_id,omitempty"`
	Name         string `json:"name"`
	SlotDuration int    `json:"slot_duration"` // в минутах
}
