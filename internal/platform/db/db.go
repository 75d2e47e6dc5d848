package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Driver string
	// DSN is a postgres URL/keyword string, or a sqlite file path / URI.
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	ConnMaxLife  time.Duration
	LogSQL       bool
}

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects with duplicate-key translation enabled so uniqueness
// violations surface as gorm.ErrDuplicatedKey on both drivers.
func Open(log *logger.Logger, opts Options) (*Service, error) {
	serviceLog := log.With("service", "DBService", "driver", opts.Driver)

	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverPostgres:
		dialector = postgres.Open(opts.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", opts.Driver)
	}

	level := gormLogger.Warn
	if opts.LogSQL {
		level = gormLogger.Info
	}
	serviceLog.Info("Connecting to database...")
	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(level),
	})
	if err != nil {
		serviceLog.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLife > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLife)
	}
	return &Service{db: gdb, log: serviceLog}, nil
}

// Wrap adopts an already opened handle, used by tests.
func Wrap(gdb *gorm.DB, log *logger.Logger) *Service {
	return &Service{db: gdb, log: log.With("service", "DBService")}
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := s.db.AutoMigrate(domain.Models()...); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
