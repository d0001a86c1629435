package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/classpress/forumcore/pkg/apperror"
)

// Connect opens the store handle described by url. Supported schemes:
//
//	postgres://...  -> PostgreSQL
//	sqlite://PATH   -> SQLite (pure-Go driver; use ":memory:" for tests)
//
// The returned handle is meant to be shared: the pool is pinned to a single
// connection, matching the one-active-connection access model. Callers own
// the handle and pass it down by injection; there is no package-level state.
func Connect(url string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(url, "postgres://"):
		dialector = postgres.Open(url)
	case strings.HasPrefix(url, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
	default:
		return nil, fmt.Errorf("%w: unsupported database url %q", apperror.ErrInvalidInput, url)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrConnection, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}
