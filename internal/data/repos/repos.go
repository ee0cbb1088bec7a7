package repos

import (
	"github.com/yungbote/contactdesk/internal/data/repos/contacts"
	"github.com/yungbote/contactdesk/internal/platform/logger"
	"gorm.io/gorm"
)

type ContactRepo = contacts.ContactRepo
type NoteRepo = contacts.NoteRepo
type InspectorRepo = contacts.InspectorRepo

type ColumnInfo = contacts.ColumnInfo
type NoteRow = contacts.NoteRow

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return contacts.NewContactRepo(db, baseLog)
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return contacts.NewNoteRepo(db, baseLog)
}

func NewInspectorRepo(db *gorm.DB, baseLog *logger.Logger) InspectorRepo {
	return contacts.NewInspectorRepo(db, baseLog)
}
