package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/contactdesk/internal/data/repos"
	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
	"github.com/yungbote/contactdesk/internal/platform/logger"
	"github.com/yungbote/contactdesk/internal/validation"
)

// NoteService always resolves the owning contact first, so every result comes
// back with the contact it belongs to.
type NoteService interface {
	ListForContact(ctx context.Context, contactID uint) (*types.Contact, []*types.Note, error)
	Add(ctx context.Context, contactID uint, text string) (*types.Contact, *types.Note, error)
	Load(ctx context.Context, contactID, noteID uint) (*types.Contact, *types.Note, error)
	Edit(ctx context.Context, contactID, noteID uint, text string) (*types.Contact, *types.Note, error)
	Delete(ctx context.Context, contactID, noteID uint) error
}

type noteService struct {
	store       Storage
	log         *logger.Logger
	contactRepo repos.ContactRepo
	noteRepo    repos.NoteRepo
}

func NewNoteService(store Storage, log *logger.Logger, contactRepo repos.ContactRepo, noteRepo repos.NoteRepo) NoteService {
	serviceLog := log.With("service", "NoteService")
	return &noteService{
		store:       store,
		log:         serviceLog,
		contactRepo: contactRepo,
		noteRepo:    noteRepo,
	}
}

func (s *noteService) ListForContact(ctx context.Context, contactID uint) (*types.Contact, []*types.Note, error) {
	var (
		contact *types.Contact
		notes   []*types.Note
	)
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		if contact, err = s.contactRepo.Get(ctx, tx, contactID); err != nil {
			return err
		}
		notes, err = s.noteRepo.ListForContact(ctx, tx, contactID)
		return err
	})
	if err != nil {
		return nil, nil, apierr.Storage("list notes", err)
	}
	return contact, notes, nil
}

// Add returns the contact alongside a validation error so the form can be
// shown again for the right person.
func (s *noteService) Add(ctx context.Context, contactID uint, text string) (*types.Contact, *types.Note, error) {
	text = strings.TrimSpace(text)
	var (
		contact *types.Contact
		note    *types.Note
	)
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		if contact, err = s.contactRepo.Get(ctx, tx, contactID); err != nil {
			return err
		}
		if verr := apierr.NewValidation(validation.ValidateNoteText(text)); verr != nil {
			return verr
		}
		note, err = s.noteRepo.Create(ctx, tx, contactID, text)
		return err
	})
	if err != nil {
		if _, ok := apierr.AsValidation(err); ok {
			return contact, nil, err
		}
		if !apierr.IsNotFound(err) {
			s.log.Error("Adding note failed", "contact_id", contactID, "error", err)
		}
		return contact, nil, apierr.Storage("add note", err)
	}
	s.log.Info("Note added", "contact_id", contactID, "note_id", note.ID)
	return contact, note, nil
}

func (s *noteService) Load(ctx context.Context, contactID, noteID uint) (*types.Contact, *types.Note, error) {
	var (
		contact *types.Contact
		note    *types.Note
	)
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		contact, note, err = s.loadPair(ctx, tx, contactID, noteID)
		return err
	})
	if err != nil {
		return nil, nil, apierr.Storage("load note", err)
	}
	return contact, note, nil
}

func (s *noteService) Edit(ctx context.Context, contactID, noteID uint, text string) (*types.Contact, *types.Note, error) {
	text = strings.TrimSpace(text)
	var (
		contact *types.Contact
		note    *types.Note
	)
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		if contact, note, err = s.loadPair(ctx, tx, contactID, noteID); err != nil {
			return err
		}
		if verr := apierr.NewValidation(validation.ValidateNoteText(text)); verr != nil {
			return verr
		}
		updated, err := s.noteRepo.Update(ctx, tx, noteID, text)
		if err != nil {
			return err
		}
		if !updated {
			return fmt.Errorf("note %d: %w", noteID, apierr.ErrNotFound)
		}
		note, err = s.noteRepo.Get(ctx, tx, contactID, noteID)
		return err
	})
	if err != nil {
		if _, ok := apierr.AsValidation(err); ok {
			return contact, note, err
		}
		if !apierr.IsNotFound(err) {
			s.log.Error("Updating note failed", "contact_id", contactID, "note_id", noteID, "error", err)
		}
		return contact, note, apierr.Storage("update note", err)
	}
	s.log.Info("Note updated", "contact_id", contactID, "note_id", noteID)
	return contact, note, nil
}

func (s *noteService) Delete(ctx context.Context, contactID, noteID uint) error {
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		deleted, err := s.noteRepo.Delete(ctx, tx, contactID, noteID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("note %d of contact %d: %w", noteID, contactID, apierr.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if !apierr.IsNotFound(err) {
			s.log.Error("Deleting note failed", "contact_id", contactID, "note_id", noteID, "error", err)
		}
		return apierr.Storage("delete note", err)
	}
	s.log.Info("Note deleted", "contact_id", contactID, "note_id", noteID)
	return nil
}

func (s *noteService) loadPair(ctx context.Context, tx *gorm.DB, contactID, noteID uint) (*types.Contact, *types.Note, error) {
	contact, err := s.contactRepo.Get(ctx, tx, contactID)
	if err != nil {
		return nil, nil, err
	}
	note, err := s.noteRepo.Get(ctx, tx, contactID, noteID)
	if err != nil {
		return contact, nil, err
	}
	return contact, note, nil
}
