package contacts

import "time"

// Note is free text an operator attaches to a contact. It is owned by exactly
// one contact and goes away with it.
type Note struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ContactID uint      `gorm:"not null;index;column:contact_id" json:"contact_id"`
	NoteText  string    `gorm:"not null;column:note_text" json:"note_text"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (Note) TableName() string { return "notes" }

func (n *Note) Edited() bool {
	return n != nil && n.UpdatedAt.After(n.CreatedAt)
}
