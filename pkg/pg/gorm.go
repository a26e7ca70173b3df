package pg

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Gorm opens a gorm session that shares connections with the pgx pool,
// so scoped entity queries and raw pgx queries use the same limits.
func Gorm(pool *pgxpool.Pool, cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), &gorm.Config{
		Logger:                 gormlogger.New(log.New(os.Stderr, "", log.LstdFlags), gormlogger.Config{LogLevel: GormLogLevel(cfg.GormLogLevel), IgnoreRecordNotFoundError: true}),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenGorm, err)
	}
	return db, nil
}

// GormLogLevel maps a config string to a gorm log level, defaulting to Warn.
func GormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
