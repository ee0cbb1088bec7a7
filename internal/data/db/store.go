package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/contactdesk/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultSQLitePath = "data_collection.db"
)

type Config struct {
	Driver       string `yaml:"driver"`
	Path         string `yaml:"path"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "", DriverSQLite:
		return nil
	case DriverPostgres:
		if strings.TrimSpace(c.DSN) == "" {
			return fmt.Errorf("postgres driver requires a dsn")
		}
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

type Option func(*gorm.Config)

// WithClock overrides the timestamp source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(gc *gorm.Config) {
		gc.NowFunc = func() time.Time { return now().UTC() }
	}
}

// WithSilentLog drops gorm's own statement logging.
func WithSilentLog() Option {
	return func(gc *gorm.Config) {
		gc.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}
}

// Store is the process-wide handle to the relational store. Work is done
// through Conn, which pins one connection for the duration of an operation.
type Store struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
}

func Open(cfg Config, logg *logger.Logger, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}
	serviceLog := logg.With("service", "Store", "driver", driver)

	gc := &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold:             1 * time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(gc)
	}

	var dialector gorm.Dialector
	memory := false
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = DefaultSQLitePath
		}
		memory = strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory")
		dialector = sqlite.Open(SQLiteDSN(path))
	}

	gdb, err := gorm.Open(dialector, gc)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", driver, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access %s pool: %w", driver, err)
	}
	switch {
	case memory:
		// every pooled connection to :memory: would be a separate database
		sqlDB.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	serviceLog.Info("Store opened")
	return &Store{db: gdb, log: serviceLog, driver: driver}, nil
}

// SQLiteDSN appends the foreign key pragma so ON DELETE CASCADE holds on every
// connection the pool hands out, not only the first one.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Driver() string { return s.driver }

// Conn runs fn on a single dedicated connection and returns it to the pool on
// every exit path, including a panic inside fn.
func (s *Store) Conn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return fn(tx.Session(&gorm.Session{NewDB: true}))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.log.Info("Closing store")
	return sqlDB.Close()
}
