package main

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/club_admin/internal/app"
	"github.com/Freeeeeet/club_admin/internal/cache"
	"github.com/Freeeeeet/club_admin/internal/config"
	"github.com/Freeeeeet/club_admin/internal/notify"
	"github.com/Freeeeeet/club_admin/internal/repository"
	"github.com/Freeeeeet/club_admin/internal/repository/base"
	"github.com/Freeeeeet/club_admin/internal/service"
	"github.com/Freeeeeet/club_admin/internal/session"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// deps все собранные компоненты приложения
type deps struct {
	session      *session.Session
	slots        *repository.SlotRepository
	fields       *repository.FieldRepository
	journal      *repository.SyncRunRepository
	pool         *pgxpool.Pool
	cache        *cache.FieldCache
	bot          *bot.Bot
	composer     *service.ScheduleComposer
	projector    *service.AvailabilityProjector
	actions      *service.SlotActions
	reservations *service.ReservationService

	closers []func()
}

func newDeps(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*deps, error) {
	d := &deps{}

	sess, err := session.Open(cfg.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	if cfg.APIKey != "" {
		sess.Override(cfg.APIKey, cfg.ClubID)
	}
	d.session = sess

	client := base.NewRepository(sess, base.Options{
		BaseURL:   cfg.APIBaseURL,
		KeyHeader: cfg.APIKeyHeader,
		Timeout:   cfg.HTTPTimeout,
		RateLimit: cfg.APIRateLimit,
		Burst:     service.BatchSize,
	})
	d.slots = repository.NewSlotRepository(client, cfg.Location)
	d.fields = repository.NewFieldRepository(client)
	reservationRepo := repository.NewReservationRepository(client)

	var fieldCache service.FieldCache
	if cfg.CacheEnabled() {
		fc := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := fc.Ping(ctx); err != nil {
			logger.Warn("Redis is unavailable, field cache disabled", zap.Error(err))
			_ = fc.Close()
		} else {
			d.cache = fc
			fieldCache = fc
			d.closers = append(d.closers, func() { _ = fc.Close() })
			logger.Debug("Field cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	opts := service.ComposerOptions{
		Location:       cfg.Location,
		EmptyDayPolicy: service.EmptyDayPolicy(cfg.EmptyDayPolicy),
	}

	if cfg.JournalEnabled() {
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("connect journal database: %w", err)
		}
		d.pool = pool
		d.closers = append(d.closers, pool.Close)

		if err := migrate(ctx, pool, logger); err != nil {
			d.Close()
			return nil, err
		}

		d.journal = repository.NewSyncRunRepository(pool, cfg.Location, logger)
		opts.Journal = d.journal
	}

	if cfg.TelegramEnabled() {
		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("create telegram bot: %w", err)
		}
		d.bot = b
		if cfg.TelegramAdminChatID != 0 {
			opts.Notifier = notify.NewTelegramNotifier(b, cfg.TelegramAdminChatID, logger)
		}
	}

	d.composer = service.NewScheduleComposer(d.slots, d.fields, logger, opts)
	d.projector = service.NewAvailabilityProjector(d.slots, d.fields, fieldCache, cfg.Location, logger)
	d.reservations = service.NewReservationService(reservationRepo, logger)
	d.actions = service.NewSlotActions(d.slots, d.reservations, logger)

	return d, nil
}

// Close освобождает соединения в обратном порядке
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}
	return nil
}
