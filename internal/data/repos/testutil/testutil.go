package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/contactdesk/internal/data/db"
	"github.com/yungbote/contactdesk/internal/platform/logger"
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

// Store opens a migrated store private to the test. SQLite in a temp dir by
// default; TEST_POSTGRES_DSN switches to postgres.
func Store(tb testing.TB, opts ...db.Option) *db.Store {
	tb.Helper()
	cfg := db.Config{Driver: db.DriverSQLite, Path: filepath.Join(tb.TempDir(), "contactdesk_test.db")}
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		cfg = db.Config{Driver: db.DriverPostgres, DSN: dsn}
	}
	s, err := db.Open(cfg, Logger(tb), append([]db.Option{db.WithSilentLog()}, opts...)...)
	if err != nil {
		tb.Fatalf("failed to open test store: %v", err)
	}
	tb.Cleanup(func() { _ = s.Close() })
	if err := s.AutoMigrate(); err != nil {
		tb.Fatalf("failed to migrate test store: %v", err)
	}
	if cfg.Driver == db.DriverPostgres {
		if err := s.DB().Exec(`TRUNCATE notes, contacts RESTART IDENTITY CASCADE`).Error; err != nil {
			tb.Fatalf("failed to reset test store: %v", err)
		}
	}
	return s
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// StoreWithClock is Store with created_at/updated_at driven by the returned clock.
func StoreWithClock(tb testing.TB) (*db.Store, *Clock) {
	tb.Helper()
	clock := NewClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	return Store(tb, db.WithClock(clock.Now)), clock
}
