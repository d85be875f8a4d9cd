// Package apitest поднимает in-memory версию Fields API для тестов.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Slot слот в формате API
type Slot struct {
	ID               int64  `json:"id"`
	AvailabilityDate string `json:"availability_date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	SlotStatus       string `json:"slot_status"`
	ReservationID    *int64 `json:"reservation_id,omitempty"`
	EventID          *int64 `json:"event_id,omitempty"`
}

// Field поле в формате API
type Field struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SlotDuration int    `json:"slot_duration"`
}

// Call запрос, пришедший на сервер
type Call struct {
	Method string
	Path   string
	Status string // тело {"status": ...} для PATCH
}

// Server фейковый Fields API
type Server struct {
	*httptest.Server

	// APIKey ожидаемый ключ, пустой - любой
	APIKey string
	// Delay задержка обработки запросов на изменение
	Delay time.Duration
	// FailCreate и FailDelete позволяют уронить отдельные операции
	FailCreate func(date, start string) bool
	FailDelete func(slotID int64) bool

	mu           sync.Mutex
	fields       map[int64]Field
	slots        map[int64]map[int64]*Slot
	reservations map[int64]string
	nextID       int64
	calls        []Call
	inFlight     int
	maxInFlight  int
}

// New запускает сервер. Останавливается через t.Cleanup вызывающего.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		fields:       make(map[int64]Field),
		slots:        make(map[int64]map[int64]*Slot),
		reservations: make(map[int64]string),
		nextID:       1,
	}

	r := gin.New()
	r.Use(s.track, s.auth)
	r.GET("/fields/:id", s.getField)
	r.GET("/fields/:id/availability", s.listSlots)
	r.POST("/fields/:id/availability", s.createSlot)
	r.PATCH("/fields/:id/availability/:slotId/status", s.updateSlotStatus)
	r.DELETE("/fields/:id/availability/:slotId", s.deleteSlot)
	r.PATCH("/reservations/:id/status", s.updateReservationStatus)

	s.Server = httptest.NewServer(r)
	return s
}

// AddField регистрирует поле
func (s *Server) AddField(f Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[f.ID] = f
}

// AddSlot добавляет слот и возвращает его ID
func (s *Server) AddSlot(fieldID int64, slot Slot) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot.ID = s.nextID
	s.nextID++
	if s.slots[fieldID] == nil {
		s.slots[fieldID] = make(map[int64]*Slot)
	}
	s.slots[fieldID][slot.ID] = &slot
	return slot.ID
}

// AddReservation регистрирует бронирование
func (s *Server) AddReservation(id int64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[id] = status
}

// ReservationStatus текущий статус бронирования
func (s *Server) ReservationStatus(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations[id]
}

// Slots слоты поля, отсортированные по дате и времени
func (s *Server) Slots(fieldID int64) []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Slot, 0, len(s.slots[fieldID]))
	for _, slot := range s.slots[fieldID] {
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvailabilityDate != out[j].AvailabilityDate {
			return out[i].AvailabilityDate < out[j].AvailabilityDate
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// Calls все запросы по порядку поступления
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsOf запросы с указанным методом
func (s *Server) CallsOf(method string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls очищает журнал запросов
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	s.maxInFlight = 0
}

// MaxInFlight максимальное число одновременных запросов
func (s *Server) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}

func (s *Server) track(c *gin.Context) {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if c.Request.Method != http.MethodGet && s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	c.Next()
}

func (s *Server) auth(c *gin.Context) {
	if s.APIKey != "" && c.GetHeader("X-API-Key") != s.APIKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid api key"})
		return
	}
	c.Next()
}

func (s *Server) record(c *gin.Context, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: c.Request.Method, Path: c.Request.URL.Path, Status: status})
}

func (s *Server) getField(c *gin.Context) {
	s.record(c, "")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	f, exists := s.fields[id]
	s.mu.Unlock()

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "field not found"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) listSlots(c *gin.Context) {
	s.record(c, "")
	fieldID, ok := paramID(c, "id")
	if !ok {
		return
	}
	from, to := c.Query("startDate"), c.Query("endDate")

	var out []Slot
	for _, slot := range s.Slots(fieldID) {
		if from != "" && slot.AvailabilityDate < from {
			continue
		}
		if to != "" && slot.AvailabilityDate > to {
			continue
		}
		out = append(out, slot)
	}
	if out == nil {
		out = []Slot{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createSlot(c *gin.Context) {
	s.record(c, "")
	fieldID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req Slot
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if s.FailCreate != nil && s.FailCreate(req.AvailabilityDate, req.StartTime) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "create failed"})
		return
	}

	id := s.AddSlot(fieldID, req)
	req.ID = id
	c.JSON(http.StatusCreated, req)
}

func (s *Server) updateSlotStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.record(c, "")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.record(c, req.Status)

	fieldID, ok := paramID(c, "id")
	if !ok {
		return
	}
	slotID, ok := paramID(c, "slotId")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	slot, exists := s.slots[fieldID][slotID]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "slot not found"})
		return
	}
	slot.SlotStatus = req.Status
	if req.Status == "available" {
		slot.ReservationID = nil
		slot.EventID = nil
	}
	c.JSON(http.StatusOK, slot)
}

func (s *Server) deleteSlot(c *gin.Context) {
	s.record(c, "")
	fieldID, ok := paramID(c, "id")
	if !ok {
		return
	}
	slotID, ok := paramID(c, "slotId")
	if !ok {
		return
	}

	if s.FailDelete != nil && s.FailDelete(slotID) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "delete failed"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.slots[fieldID][slotID]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "slot not found"})
		return
	}
	delete(s.slots[fieldID], slotID)
	c.Status(http.StatusNoContent)
}

func (s *Server) updateReservationStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.record(c, "")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	s.record(c, req.Status)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reservations[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "reservation not found"})
		return
	}
	s.reservations[id] = req.Status
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return id, true
}
