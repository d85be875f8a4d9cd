package model

import "time"

// Cell ячейка недельной сетки: либо пустая, либо со слотом
type Cell interface {
	cell()
	CellDate() time.Time
}

// EmptyCell ячейка без слота на сервере
type EmptyCell struct {
	Date  time.Time
	Start Clock
	End   Clock
}

// SlotCell ячейка с существующим слотом
type SlotCell struct {
	Slot TimeSlot
}

func (EmptyCell) cell() {}
func (SlotCell) cell()  {}

func (c EmptyCell) CellDate() time.Time { return c.Date }
func (c SlotCell) CellDate() time.Time  { return c.Slot.Date }
