package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/weddingvenue/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open builds the store selected by cfg.Driver. The returned func releases
// whatever connection the store holds. rdb may be nil unless the driver is redis.
func Open(ctx context.Context, cfg config.StoreConfig, rdb *redis.Client, log zerolog.Logger) (Store, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case config.StoreMemory:
		return NewMemoryStore(), noop, nil

	case config.StoreFile, "":
		kv, err := NewFileKV(cfg.FileDir)
		if err != nil {
			return nil, nil, err
		}
		return NewLocalStore(kv, log), noop, nil

	case config.StoreRedis:
		if rdb == nil {
			return nil, nil, fmt.Errorf("store driver redis needs redis.addr")
		}
		return NewLocalStore(NewRedisKV(rdb, cfg.RedisPrefix), log), noop, nil

	case config.StoreSQLite:
		kv, err := NewSQLiteKV(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return NewLocalStore(kv, log), func() { _ = kv.Close() }, nil

	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := NewPGStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	case config.StoreMySQL:
		return openGormStore(gormmysql.Open(cfg.MySQL.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// openGormStore opens db and migrates the schema. The connection is closed
// again when migration fails.
func openGormStore(dialector gorm.Dialector, gormCfg *gorm.Config) (Store, func(), error) {
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mysql: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	store := NewGormStore(db)
	if err := store.Migrate(); err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}
