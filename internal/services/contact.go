package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/contactdesk/internal/data/repos"
	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/export"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
	"github.com/yungbote/contactdesk/internal/platform/logger"
	"github.com/yungbote/contactdesk/internal/validation"
)

type ContactService interface {
	// Submit validates the whole form before touching storage. Every problem is
	// reported at once through *apierr.ValidationError.
	Submit(ctx context.Context, form validation.ContactForm) (*types.Contact, error)
	List(ctx context.Context) ([]*types.Contact, error)
	Get(ctx context.Context, id uint) (*types.Contact, error)
	Count(ctx context.Context) (int64, error)
	// Delete returns the removed contact so callers can name it.
	Delete(ctx context.Context, id uint) (*types.Contact, error)
	ExportCSV(ctx context.Context) (filename string, body string, err error)
}

type contactService struct {
	store       Storage
	log         *logger.Logger
	contactRepo repos.ContactRepo
	now         func() time.Time
}

func NewContactService(store Storage, log *logger.Logger, contactRepo repos.ContactRepo) ContactService {
	serviceLog := log.With("service", "ContactService")
	return &contactService{
		store:       store,
		log:         serviceLog,
		contactRepo: contactRepo,
		now:         time.Now,
	}
}

func (s *contactService) Submit(ctx context.Context, form validation.ContactForm) (*types.Contact, error) {
	form = form.Normalize()
	if err := apierr.NewValidation(form.Validate()); err != nil {
		return nil, err
	}

	contact := &types.Contact{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
	}
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		contact, err = s.contactRepo.Create(ctx, tx, contact)
		return err
	})
	if err != nil {
		s.log.Error("Saving contact failed", "error", err)
		return nil, apierr.Storage("save contact", err)
	}
	s.log.Info("Contact saved", "contact_id", contact.ID, "email", contact.Email)
	return contact, nil
}

func (s *contactService) List(ctx context.Context) ([]*types.Contact, error) {
	var out []*types.Contact
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		out, err = s.contactRepo.ListAll(ctx, tx)
		return err
	})
	if err != nil {
		return nil, apierr.Storage("list contacts", err)
	}
	return out, nil
}

func (s *contactService) Get(ctx context.Context, id uint) (*types.Contact, error) {
	var out *types.Contact
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		out, err = s.contactRepo.Get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, apierr.Storage("load contact", err)
	}
	return out, nil
}

func (s *contactService) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		n, err = s.contactRepo.Count(ctx, tx)
		return err
	})
	if err != nil {
		return 0, apierr.Storage("count contacts", err)
	}
	return n, nil
}

func (s *contactService) Delete(ctx context.Context, id uint) (*types.Contact, error) {
	var target *types.Contact
	err := s.store.Conn(ctx, func(tx *gorm.DB) error {
		var err error
		target, err = s.contactRepo.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		deleted, err := s.contactRepo.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("contact %d: %w", id, apierr.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if !apierr.IsNotFound(err) {
			s.log.Error("Deleting contact failed", "contact_id", id, "error", err)
		}
		return nil, apierr.Storage("delete contact", err)
	}
	s.log.Info("Contact deleted", "contact_id", id)
	return target, nil
}

func (s *contactService) ExportCSV(ctx context.Context) (string, string, error) {
	contacts, err := s.List(ctx)
	if err != nil {
		return "", "", err
	}
	body, err := export.ContactsCSV(contacts)
	if err != nil {
		return "", "", fmt.Errorf("render csv: %w", err)
	}
	return export.Filename(s.now()), body, nil
}
