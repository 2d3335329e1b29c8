package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"cafefinder/config"
	"cafefinder/internal/domain/lifecycle"
	"cafefinder/internal/errors"
	"cafefinder/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolCheckInterval = 5 * time.Second
	slowPoolWait      = 50 * time.Millisecond
)

// Params defines the required parameters. The database is only opened when
// preferences are configured to live in PostgreSQL.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the preference store. The preferences table is migrated and the
// pool watched once the app starts; both stop with it.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres config is missing")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "open preference store")
	}

	// Preference writes are single upserts.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config.Env.Debug),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "preference store connection pool")
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := prepare(ctx, db, sqlDB); err != nil {
				return err
			}

			go watchPool(watchCtx, params.Logger, sqlDB, poolCheckInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopWatch()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// prepare checks the connection and makes sure the preferences table exists.
func prepare(ctx context.Context, db *gorm.DB, sqlDB *sql.DB) error {
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping preference store")
	}

	if err := db.WithContext(ctx).AutoMigrate(&model.PreferenceModel{}); err != nil {
		return errors.Wrap(err, "migrate preferences table")
	}

	return nil
}

func watchPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if level, attrs, waited := poolWait(prev, cur); waited {
				logger.LogAttrs(ctx, level, "Preference store pool wait", attrs...)
			}
			prev = cur
		}
	}
}

// poolWait reports whether callers waited for a connection between two
// samples. Waits averaging past slowPoolWait are warnings.
func poolWait(prev, cur sql.DBStats) (slog.Level, []slog.Attr, bool) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return slog.LevelDebug, nil, false
	}

	waited := cur.WaitDuration - prev.WaitDuration
	avg := waited / time.Duration(waits)

	level := slog.LevelDebug
	if avg >= slowPoolWait {
		level = slog.LevelWarn
	}

	return level, []slog.Attr{
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", avg),
		slog.Int("inUse", cur.InUse),
		slog.Int("idle", cur.Idle),
		slog.Int("maxOpen", cur.MaxOpenConnections),
	}, true
}
