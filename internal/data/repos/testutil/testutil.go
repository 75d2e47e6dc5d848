package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a private in-memory SQLite database with every table migrated.
// A single connection serializes writers the way one Postgres row lock would.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=off", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(domain.Models()...); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	return db
}

// Tx begins a transaction rolled back at test cleanup.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

// SeedUser inserts an identity with the given role.
func SeedUser(tb testing.TB, db *gorm.DB, email string, role domain.Role) *domain.User {
	tb.Helper()
	u := &domain.User{Email: email, Name: email, Role: role}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user %s: %v", email, err)
	}
	return u
}
