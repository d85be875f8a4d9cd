package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SyncRunRepository журнал синхронизаций расписания в PostgreSQL
type SyncRunRepository struct {
	pool     *pgxpool.Pool
	location *time.Location
	logger   *zap.Logger
}

// NewSyncRunRepository создаёт новый репозиторий
func NewSyncRunRepository(pool *pgxpool.Pool, loc *time.Location, logger *zap.Logger) *SyncRunRepository {
	if loc == nil {
		loc = time.Local
	}
	return &SyncRunRepository{
		pool:     pool,
		location: loc,
		logger:   logger,
	}
}

// Save сохраняет запуск вместе с неудачными операциями
func (r *SyncRunRepository) Save(ctx context.Context, run *model.SyncRun) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO sync_runs (id, field_id, started_at, finished_at, created_count, deleted_count, failed_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, query,
		run.ID,
		run.FieldID,
		run.StartedAt,
		run.FinishedAt,
		run.Created,
		run.Deleted,
		len(run.Failed),
	)
	if err != nil {
		return fmt.Errorf("insert sync run: %w", err)
	}

	if len(run.Failed) > 0 {
		batch := &pgx.Batch{}
		for _, f := range run.Failed {
			batch.Queue(`
				INSERT INTO sync_failures (run_id, kind, slot_id, availability_date, start_time, end_time, slot_status, error)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`,
				run.ID,
				string(f.Kind),
				f.Slot.ID,
				model.FormatDate(f.Slot.Date),
				f.Slot.Start.WireString(),
				f.Slot.End.WireString(),
				string(f.Slot.Status),
				f.Error,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert sync failures: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.Debug("Sync run journaled",
		zap.String("run_id", run.ID.String()),
		zap.Int("failed", len(run.Failed)),
	)

	return nil
}

// GetByID получает запуск с неудачными операциями
func (r *SyncRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SyncRun, error) {
	query := `
		SELECT id, field_id, started_at, finished_at, created_count, deleted_count
		FROM sync_runs
		WHERE id = $1
	`

	run := &model.SyncRun{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.FieldID,
		&run.StartedAt,
		&run.FinishedAt,
		&run.Created,
		&run.Deleted,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sync run by id: %w", err)
	}

	failures, err := r.getFailures(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Failed = failures

	return run, nil
}

// GetRecentByFieldID последние запуски поля без списка ошибок
func (r *SyncRunRepository) GetRecentByFieldID(ctx context.Context, fieldID int64, limit int) ([]*model.SyncRun, error) {
	query := `
		SELECT id, field_id, started_at, finished_at, created_count, deleted_count, failed_count
		FROM sync_runs
		WHERE field_id = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, fieldID, limit)
	if err != nil {
		return nil, fmt.Errorf("get sync runs by field: %w", err)
	}
	defer rows.Close()

	var runs []*model.SyncRun
	for rows.Next() {
		run := &model.SyncRun{}
		var failed int
		if err := rows.Scan(
			&run.ID,
			&run.FieldID,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Created,
			&run.Deleted,
			&failed,
		); err != nil {
			return nil, fmt.Errorf("scan sync run: %w", err)
		}
		// Детали ошибок не грузим, только их количество
		run.Failed = make([]model.FailedOperation, failed)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *SyncRunRepository) getFailures(ctx context.Context, runID uuid.UUID) ([]model.FailedOperation, error) {
	query := `
		SELECT kind, slot_id, availability_date, start_time, end_time, slot_status, error
		FROM sync_failures
		WHERE run_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("get sync failures: %w", err)
	}
	defer rows.Close()

	var failures []model.FailedOperation
	for rows.Next() {
		var (
			kind, date, start, end, status, msg string
			slotID                             *int64
		)
		if err := rows.Scan(&kind, &slotID, &date, &start, &end, &status, &msg); err != nil {
			return nil, fmt.Errorf("scan sync failure: %w", err)
		}

		slot, err := r.slotFromRow(slotID, date, start, end, status)
		if err != nil {
			return nil, err
		}
		failures = append(failures, model.FailedOperation{
			Kind:  model.OperationKind(kind),
			Slot:  slot,
			Error: msg,
		})
	}

	return failures, rows.Err()
}

func (r *SyncRunRepository) slotFromRow(id *int64, date, start, end, status string) (model.TimeSlot, error) {
	d, err := model.ParseDate(date, r.location)
	if err != nil {
		return model.TimeSlot{}, fmt.Errorf("scan sync failure: %w", err)
	}
	s, err := model.ParseClock(start)
	if err != nil {
		return model.TimeSlot{}, fmt.Errorf("scan sync failure: %w", err)
	}
	e, err := model.ParseClock(end)
	if err != nil {
		return model.TimeSlot{}, fmt.Errorf("scan sync failure: %w", err)
	}
	return model.TimeSlot{ID: id, Date: d, Start: s, End: e, Status: model.SlotStatus(status)}, nil
}
