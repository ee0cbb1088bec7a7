package db

import (
	types "github.com/yungbote/contactdesk/internal/domain"
	"gorm.io/gorm"
)

// Models lists every persisted type, parents first. The Contact.Notes
// association carries the ON DELETE CASCADE constraint, so foreign key
// creation must stay enabled while migrating.
func Models() []any {
	return []any{
		&types.Contact{},
		&types.Note{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func (s *Store) AutoMigrate() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
