package domain

import "github.com/yungbote/contactdesk/internal/domain/contacts"

type (
	Contact = contacts.Contact
	Note    = contacts.Note
)

const TimestampLayout = contacts.TimestampLayout
