package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventx/internal/shared/config"
	applog "eventx/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the settlement ledger and image store database plus the Redis
// client shared by the image cache, sign-in nonces and the rate limiter.
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
}

// InitDB connects both stores and migrates the ledger schema.
func InitDB(cfg *config.Config) (*DB, error) {
	pg, err := initPostgreSQL(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	rdb, err := initRedis(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	return &DB{
		PostgreSQL: pg,
		Redis:      rdb,
	}, nil
}

// gormWriter routes gorm's log lines through the application logger.
type gormWriter struct {
	log *applog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info(fmt.Sprintf(format, args...), "component", "gorm")
}

func newGormLogger(cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}
	return logger.New(gormWriter{log: applog.GetDefault()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func initPostgreSQL(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: newGormLogger(cfg),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// ledger writes are one row per settlement; a small pool is enough
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	applog.GetDefault().Info("PostgreSQL connected", "host", cfg.Database.Host, "database", cfg.Database.Name)
	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	applog.GetDefault().Info("Redis connected", "addr", cfg.Redis.Addr)
	return rdb, nil
}

// Close closes both connections and joins their errors.
func (db *DB) Close() error {
	var errs []error

	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close PostgreSQL: %w", err))
			}
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	applog.GetDefault().Info("Database connections closed")
	return nil
}

// Status pings each store and reports "up" or the failure per component.
func (db *DB) Status(ctx context.Context) map[string]string {
	status := map[string]string{}

	if db.PostgreSQL != nil {
		status["postgres"] = "up"
		sqlDB, err := db.PostgreSQL.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status["postgres"] = err.Error()
		}
	}
	if db.Redis != nil {
		status["redis"] = "up"
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
		}
	}
	return status
}

// HealthCheck fails when any store is unreachable.
func (db *DB) HealthCheck(ctx context.Context) error {
	var errs []error
	for component, state := range db.Status(ctx) {
		if state != "up" {
			errs = append(errs, fmt.Errorf("%s: %s", component, state))
		}
	}
	return errors.Join(errs...)
}

func (db *DB) GetRedisClient() *redis.Client {
	return db.Redis
}

func (db *DB) GetPostgreSQL() *gorm.DB {
	return db.PostgreSQL
}
