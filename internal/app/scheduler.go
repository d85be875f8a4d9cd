package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
	"go.uber.org/zap"
)

// HorizonSyncer то, что планировщику нужно от компоновщика расписания
type HorizonSyncer interface {
	LoadTemplate(ctx context.Context, fieldID int64, policy service.EmptyDayPolicy) (model.WeeklyTemplate, bool, error)
	Sync(ctx context.Context, fieldID int64, tpl model.WeeklyTemplate, opts service.SyncOptions) (*model.SyncRun, error)
}

// Scheduler периодически продлевает окно слотов для настроенных полей
type Scheduler struct {
	composer HorizonSyncer
	fields   []int64
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(composer HorizonSyncer, fields []int64, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		composer: composer,
		fields:   fields,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Int64s("fields", s.fields),
		zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.runTopUpTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт текущий проход
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) runTopUpTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.TopUp(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.TopUp(ctx)
		case <-s.stopChan:
			s.logger.Info("Horizon top-up task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Horizon top-up task cancelled")
			return
		}
	}
}

// TopUp один проход: для каждого поля восстанавливает шаблон по его слотам и
// продлевает расписание за последнюю дату до конца окна. Пропуски внутри
// расписания (слоты, снятые оператором) не восстанавливаются. Поля без
// расписания пропускаются.
func (s *Scheduler) TopUp(ctx context.Context) []*model.SyncRun {
	s.logger.Info("Starting horizon top-up", zap.Int("fields", len(s.fields)))

	var runs []*model.SyncRun
	for _, fieldID := range s.fields {
		if ctx.Err() != nil {
			break
		}

		tpl, existing, err := s.composer.LoadTemplate(ctx, fieldID, service.EmptyDayClosed)
		if err != nil {
			s.logger.Error("Failed to load template", zap.Int64("field_id", fieldID), zap.Error(err))
			continue
		}
		if !existing {
			s.logger.Info("Field has no schedule, skipping", zap.Int64("field_id", fieldID))
			continue
		}

		run, err := s.composer.Sync(ctx, fieldID, tpl, service.SyncOptions{ExtendOnly: true})
		if err != nil {
			s.logger.Error("Failed to top up field", zap.Int64("field_id", fieldID), zap.Error(err))
			continue
		}
		runs = append(runs, run)
	}

	s.logger.Info("Horizon top-up completed", zap.Int("runs", len(runs)))
	return runs
}
