package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/club_admin/internal/apitest"
	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/repository"
	"github.com/Freeeeeet/club_admin/internal/repository/base"
	"github.com/Freeeeeet/club_admin/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

type testEnv struct {
	srv          *apitest.Server
	slots        *repository.SlotRepository
	fields       *repository.FieldRepository
	reservations *repository.ReservationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	srv := apitest.New()
	t.Cleanup(srv.Close)

	b := base.NewRepository(session.New(session.Credentials{APIKey: "test", ClubID: 1}), base.Options{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	})

	return &testEnv{
		srv:          srv,
		slots:        repository.NewSlotRepository(b, time.UTC),
		fields:       repository.NewFieldRepository(b),
		reservations: repository.NewReservationRepository(b),
	}
}

func (e *testEnv) composer(t *testing.T, today time.Time, opts ComposerOptions) *ScheduleComposer {
	t.Helper()
	opts.Location = time.UTC
	opts.Now = func() time.Time { return today.Add(10 * time.Hour) }
	return NewScheduleComposer(e.slots, e.fields, zaptest.NewLogger(t), opts)
}

func date(s string) time.Time {
	t, err := time.ParseInLocation(model.DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func clock(s string) model.Clock {
	return model.MustClock(s)
}

type memoryJournal struct {
	mu   sync.Mutex
	runs map[uuid.UUID]*model.SyncRun
}

func newMemoryJournal() *memoryJournal {
	return &memoryJournal{runs: make(map[uuid.UUID]*model.SyncRun)}
}

func (j *memoryJournal) Save(_ context.Context, run *model.SyncRun) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	cp := *run
	j.runs[run.ID] = &cp
	return nil
}

func (j *memoryJournal) GetByID(_ context.Context, id uuid.UUID) (*model.SyncRun, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs[id], nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	runs []*model.SyncRun
}

func (n *recordingNotifier) NotifySync(_ context.Context, run *model.SyncRun) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.runs = append(n.runs, run)
	return nil
}

type memoryFieldCache struct {
	mu     sync.Mutex
	fields map[int64]model.Field
	hits   int
}

func (c *memoryFieldCache) GetField(_ context.Context, id int64) (*model.Field, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.fields[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return &f, nil
}

func (c *memoryFieldCache) SaveField(_ context.Context, f *model.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fields == nil {
		c.fields = make(map[int64]model.Field)
	}
	c.fields[f.ID] = *f
	return nil
}
