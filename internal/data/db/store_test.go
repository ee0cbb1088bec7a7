package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"
	"gorm.io/gorm"

	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	s, err := Open(Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "store.db")}, log, WithSilentLog())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return s
}

func TestSQLiteDSN(t *testing.T) {
	cases := map[string]string{
		"data.db":                   "data.db?_foreign_keys=on",
		"file:x.db?cache=shared":    "file:x.db?cache=shared&_foreign_keys=on",
		"data.db?_foreign_keys=off": "data.db?_foreign_keys=off",
		"file::memory:?mode=memory": "file::memory:?mode=memory&_foreign_keys=on",
	}
	for in, want := range cases {
		if got := SQLiteDSN(in); got != want {
			t.Fatalf("SQLiteDSN(%q): want=%q got=%q", in, want, got)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("empty config should default to sqlite: %v", err)
	}
	if err := (Config{Driver: "postgres"}).Validate(); err == nil {
		t.Fatalf("postgres without dsn should fail")
	}
	if err := (Config{Driver: "mysql"}).Validate(); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}

func TestConnReleasesConnectionOnEveryPath(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sqlDB, _ := s.DB().DB()

	if err := s.Conn(ctx, func(tx *gorm.DB) error {
		if got := sqlDB.Stats().InUse; got != 1 {
			t.Fatalf("in use during fn: want=1 got=%d", got)
		}
		return nil
	}); err != nil {
		t.Fatalf("Conn: %v", err)
	}
	if got := sqlDB.Stats().InUse; got != 0 {
		t.Fatalf("in use after success: want=0 got=%d", got)
	}

	boom := errors.New("boom")
	if err := s.Conn(ctx, func(tx *gorm.DB) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Conn error: want=%v got=%v", boom, err)
	}
	if got := sqlDB.Stats().InUse; got != 0 {
		t.Fatalf("in use after error: want=0 got=%d", got)
	}

	func() {
		defer func() { _ = recover() }()
		_ = s.Conn(ctx, func(tx *gorm.DB) error { panic("kaboom") })
	}()
	if got := sqlDB.Stats().InUse; got != 0 {
		t.Fatalf("in use after panic: want=0 got=%d", got)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	err := s.Conn(ctx, func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(&types.Note{ContactID: 4242, NoteText: "orphan"}).Error
	})
	if err == nil {
		t.Fatalf("inserting a note for a missing contact should violate the foreign key")
	}
	if !IsForeignKeyViolation(err) {
		t.Fatalf("IsForeignKeyViolation: want true for %v", err)
	}
	if IsForeignKeyViolation(errors.New("database is locked")) || IsForeignKeyViolation(nil) {
		t.Fatalf("IsForeignKeyViolation: unrelated errors must not match")
	}
}

func TestCascadeDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	err := s.Conn(ctx, func(tx *gorm.DB) error {
		c := &types.Contact{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Phone: "1234567890"}
		if err := tx.WithContext(ctx).Create(c).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Create(&types.Note{ContactID: c.ID, NoteText: "one"}).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Delete(&types.Contact{}, c.ID).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.WithContext(ctx).Model(&types.Note{}).Count(&n).Error; err != nil {
			return err
		}
		if n != 0 {
			t.Fatalf("notes after cascade: want=0 got=%d", n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Conn: %v", err)
	}
}

func TestPing(t *testing.T) {
	s := openTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if s.Driver() != DriverSQLite {
		t.Fatalf("Driver: want=%s got=%s", DriverSQLite, s.Driver())
	}
}
