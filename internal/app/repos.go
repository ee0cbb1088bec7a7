package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/contactdesk/internal/data/repos"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

type Repos struct {
	Contact   repos.ContactRepo
	Note      repos.NoteRepo
	Inspector repos.InspectorRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Contact:   repos.NewContactRepo(db, log),
		Note:      repos.NewNoteRepo(db, log),
		Inspector: repos.NewInspectorRepo(db, log),
	}
}
