package contacts

import "time"

// TimestampLayout is how stored timestamps are shown and exported.
const TimestampLayout = "2006-01-02 15:04:05"

// Contact is a person captured through the submission form. Rows are only ever
// inserted after passing validation and are never updated in place.
type Contact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
	Email     string    `gorm:"not null;column:email" json:"email"`
	Phone     string    `gorm:"not null;column:phone" json:"phone"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at;index" json:"created_at"`

	Notes []Note `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
}

func (Contact) TableName() string { return "contacts" }

func (c *Contact) FullName() string {
	if c == nil {
		return ""
	}
	return c.FirstName + " " + c.LastName
}

// DateAdded renders CreatedAt in TimestampLayout.
func (c *Contact) DateAdded() string {
	if c == nil || c.CreatedAt.IsZero() {
		return ""
	}
	return c.CreatedAt.UTC().Format(TimestampLayout)
}
