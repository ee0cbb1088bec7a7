package contacts

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/contactdesk/internal/platform/logger"
)

// ColumnInfo describes one column of a persisted table.
type ColumnInfo struct {
	Position   int    `json:"position"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	Default    string `json:"default,omitempty"`
	PrimaryKey bool   `json:"primary_key"`
}

// NoteRow is a note joined with the name of its owner. The names are empty when
// the owner no longer exists.
type NoteRow struct {
	ID        uint      `gorm:"column:id" json:"id"`
	ContactID uint      `gorm:"column:contact_id" json:"contact_id"`
	NoteText  string    `gorm:"column:note_text" json:"note_text"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name" json:"last_name"`
}

// InspectorRepo reads raw table contents and structure for the admin page.
type InspectorRepo interface {
	DumpContacts(ctx context.Context, tx *gorm.DB) ([]map[string]any, error)
	DumpNotes(ctx context.Context, tx *gorm.DB) ([]NoteRow, error)
	Columns(ctx context.Context, tx *gorm.DB, model any) ([]ColumnInfo, error)
}

type inspectorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInspectorRepo(db *gorm.DB, baseLog *logger.Logger) InspectorRepo {
	repoLog := baseLog.With("repo", "InspectorRepo")
	return &inspectorRepo{db: db, log: repoLog}
}

// DumpContacts returns every contacts row keyed by column name, ordered by id.
func (r *inspectorRepo) DumpContacts(ctx context.Context, tx *gorm.DB) ([]map[string]any, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	rows := []map[string]any{}
	if err := transaction.WithContext(ctx).
		Table("contacts").
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *inspectorRepo) DumpNotes(ctx context.Context, tx *gorm.DB) ([]NoteRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	rows := []NoteRow{}
	if err := transaction.WithContext(ctx).
		Table("notes AS n").
		Select("n.id, n.contact_id, n.note_text, n.created_at, n.updated_at, " +
			"COALESCE(c.first_name, '') AS first_name, COALESCE(c.last_name, '') AS last_name").
		Joins("LEFT JOIN contacts AS c ON n.contact_id = c.id").
		Order("n.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Columns works the same on every driver by asking the gorm migrator rather
// than issuing engine-specific pragmas.
func (r *inspectorRepo) Columns(ctx context.Context, tx *gorm.DB, model any) ([]ColumnInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	colTypes, err := transaction.WithContext(ctx).Migrator().ColumnTypes(model)
	if err != nil {
		return nil, err
	}
	out := make([]ColumnInfo, 0, len(colTypes))
	for i, ct := range colTypes {
		info := ColumnInfo{Position: i, Name: ct.Name(), Type: ct.DatabaseTypeName()}
		if nullable, ok := ct.Nullable(); ok {
			info.NotNull = !nullable
		}
		if pk, ok := ct.PrimaryKey(); ok {
			info.PrimaryKey = pk
		}
		if def, ok := ct.DefaultValue(); ok {
			info.Default = def
		}
		out = append(out, info)
	}
	return out, nil
}
