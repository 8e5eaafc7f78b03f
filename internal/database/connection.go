package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/thereayou/messenger/internal/config"
	"github.com/thereayou/messenger/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ConnectOptions struct {
	Driver   string
	DSN      string
	Attempts int
	Backoff  time.Duration
}

// Open открывает соединение без миграций.
// TranslateError включён: нарушения уникальности приходят как gorm.ErrDuplicatedKey.
func Open(driver, dsn string, log logrus.FieldLogger) (*Database, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger(log),
	})
	if err != nil {
		return nil, err
	}

	return NewDatabase(db), nil
}

// Connect открывает базу и применяет схему, повторяя попытки с фиксированной паузой.
func Connect(ctx context.Context, opts ConnectOptions, log logrus.FieldLogger) (*Database, error) {
	attempts := opts.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := Open(opts.Driver, opts.DSN, log)
		if err == nil {
			if err = db.Migrate(ctx); err == nil {
				return db, nil
			}
			_ = db.Close()
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		log.WithError(err).
			WithField("attempt", attempt).
			WithField("backoff", opts.Backoff).
			Warn("database not ready, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Backoff):
		}
	}

	return nil, fmt.Errorf("connect database after %d attempts: %w", attempts, lastErr)
}

func (d *Database) Migrate(ctx context.Context) error {
	return d.db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Chat{}, &models.Message{})
}

func gormLogger(log logrus.FieldLogger) logger.Interface {
	if log == nil {
		return logger.Discard
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
