package contacts

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

// ContactRepo does not validate fields; callers run validation first.
type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Contact, error)
	Get(ctx context.Context, tx *gorm.DB, id uint) (*types.Contact, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (r *contactRepo) Create(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if contact == nil {
		return nil, fmt.Errorf("create contact: nil contact")
	}

	// identity and created_at always come from the store
	contact.ID = 0
	contact.CreatedAt = transaction.NowFunc()

	if err := transaction.WithContext(ctx).
		Omit(clause.Associations).
		Create(contact).Error; err != nil {
		return nil, err
	}
	r.log.Debug("Contact created", "contact_id", contact.ID)
	return contact, nil
}

func (r *contactRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*types.Contact{}
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contactRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Contact
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("contact %d: %w", id, apierr.ErrNotFound)
	}
	return results[0], nil
}

// Delete removes the contact and, through the foreign key cascade, its notes.
// A missing id is reported as false with nothing touched.
func (r *contactRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Contact{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	r.log.Debug("Contact deleted", "contact_id", id)
	return true, nil
}

func (r *contactRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Contact{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
