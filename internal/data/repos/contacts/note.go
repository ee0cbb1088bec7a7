package contacts

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/contactdesk/internal/data/db"
	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

// NoteRepo expects callers to have checked that the owning contact exists and
// that note text is non-empty.
type NoteRepo interface {
	ListForContact(ctx context.Context, tx *gorm.DB, contactID uint) ([]*types.Note, error)
	Create(ctx context.Context, tx *gorm.DB, contactID uint, text string) (*types.Note, error)
	Get(ctx context.Context, tx *gorm.DB, contactID, noteID uint) (*types.Note, error)
	Update(ctx context.Context, tx *gorm.DB, noteID uint, text string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, contactID, noteID uint) (bool, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	repoLog := baseLog.With("repo", "NoteRepo")
	return &noteRepo{db: db, log: repoLog}
}

func (r *noteRepo) ListForContact(ctx context.Context, tx *gorm.DB, contactID uint) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*types.Note{}
	if err := transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, contactID uint, text string) (*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := transaction.NowFunc()
	note := &types.Note{
		ContactID: contactID,
		NoteText:  text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := transaction.WithContext(ctx).Create(note).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("contact %d: %w", contactID, apierr.ErrNotFound)
		}
		return nil, err
	}
	r.log.Debug("Note created", "contact_id", contactID, "note_id", note.ID)
	return note, nil
}

// Get only finds a note through its owning contact.
func (r *noteRepo) Get(ctx context.Context, tx *gorm.DB, contactID, noteID uint) (*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Note
	if err := transaction.WithContext(ctx).
		Where("id = ? AND contact_id = ?", noteID, contactID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("note %d of contact %d: %w", noteID, contactID, apierr.ErrNotFound)
	}
	return results[0], nil
}

// Update rewrites the text and bumps updated_at; created_at is never touched.
func (r *noteRepo) Update(ctx context.Context, tx *gorm.DB, noteID uint, text string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Note{}).
		Where("id = ?", noteID).
		Updates(map[string]any{
			"note_text":  text,
			"updated_at": transaction.NowFunc(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete requires both ids to match so a note cannot be removed by guessing
// its id under the wrong contact.
func (r *noteRepo) Delete(ctx context.Context, tx *gorm.DB, contactID, noteID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ? AND contact_id = ?", noteID, contactID).
		Delete(&types.Note{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *noteRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Note{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
