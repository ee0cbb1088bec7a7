package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/contactdesk/internal/data/repos"
	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

// AdminSnapshot is a raw view of both tables for diagnostics.
type AdminSnapshot struct {
	Contacts       []map[string]any
	Notes          []repos.NoteRow
	ContactsSchema []repos.ColumnInfo
	NotesSchema    []repos.ColumnInfo
	ContactsCount  int64
	NotesCount     int64
}

type AdminService interface {
	Snapshot(ctx context.Context) (*AdminSnapshot, error)
}

type adminService struct {
	store       Storage
	log         *logger.Logger
	contactRepo repos.ContactRepo
	noteRepo    repos.NoteRepo
	inspector   repos.InspectorRepo
}

func NewAdminService(store Storage, log *logger.Logger, contactRepo repos.ContactRepo, noteRepo repos.NoteRepo, inspector repos.InspectorRepo) AdminService {
	return &adminService{
		store:       store,
		log:         log.With("service", "AdminService"),
		contactRepo: contactRepo,
		noteRepo:    noteRepo,
		inspector:   inspector,
	}
}

func (s *adminService) Snapshot(ctx context.Context) (*AdminSnapshot, error) {
	snap := &AdminSnapshot{}
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		if snap.Contacts, err = s.inspector.DumpContacts(ctx, tx); err != nil {
			return err
		}
		if snap.Notes, err = s.inspector.DumpNotes(ctx, tx); err != nil {
			return err
		}
		if snap.ContactsSchema, err = s.inspector.Columns(ctx, tx, &types.Contact{}); err != nil {
			return err
		}
		if snap.NotesSchema, err = s.inspector.Columns(ctx, tx, &types.Note{}); err != nil {
			return err
		}
		if snap.ContactsCount, err = s.contactRepo.Count(ctx, tx); err != nil {
			return err
		}
		snap.NotesCount, err = s.noteRepo.Count(ctx, tx)
		return err
	})
	if err != nil {
		s.log.Error("Admin snapshot failed", "error", err)
		return nil, apierr.Storage("admin snapshot", err)
	}
	return snap, nil
}
