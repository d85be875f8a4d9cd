package formatting

import (
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
)

// SlotStatusDisplay представляет отображение статуса слота
type SlotStatusDisplay struct {
	Emoji string
	Text  string
}

// GetCellDisplay возвращает emoji и подпись ячейки сетки
func GetCellDisplay(cell model.Cell) SlotStatusDisplay {
	sc, ok := cell.(model.SlotCell)
	if !ok {
		return SlotStatusDisplay{"⚫️", service.Label(cell)}
	}

	emojis := map[model.SlotStatus]string{
		model.SlotStatusAvailable:   "🟢",
		model.SlotStatusBooked:      "🔴",
		model.SlotStatusMaintenance: "🛠",
	}
	emoji, ok := emojis[sc.Slot.Status]
	if !ok {
		emoji = "❓"
	}
	return SlotStatusDisplay{emoji, service.Label(cell)}
}

// GetReservationStatusText подпись статуса бронирования
func GetReservationStatusText(status model.ReservationStatus) string {
	texts := map[model.ReservationStatus]string{
		model.ReservationStatusPending:   "⏳ Pendiente",
		model.ReservationStatusConfirmed: "✅ Confirmada",
		model.ReservationStatusCancelled: "❌ Cancelada",
	}
	if text, ok := texts[status]; ok {
		return text
	}
	return "❓ " + string(status)
}
