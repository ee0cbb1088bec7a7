package app

import (
	"github.com/yungbote/contactdesk/internal/platform/logger"
	"github.com/yungbote/contactdesk/internal/services"
)

type Services struct {
	Contacts services.ContactService
	Notes    services.NoteService
	Admin    services.AdminService
}

func wireServices(store services.Storage, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Contacts: services.NewContactService(store, log, reposet.Contact),
		Notes:    services.NewNoteService(store, log, reposet.Contact, reposet.Note),
		Admin:    services.NewAdminService(store, log, reposet.Contact, reposet.Note, reposet.Inspector),
	}
}
