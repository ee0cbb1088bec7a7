package app

import (
	"fmt"

	"github.com/yungbote/contactdesk/internal/data/db"
	"github.com/yungbote/contactdesk/internal/http"
	"github.com/yungbote/contactdesk/internal/http/flash"
	httpH "github.com/yungbote/contactdesk/internal/http/handlers"
	"github.com/yungbote/contactdesk/internal/http/views"
	"github.com/yungbote/contactdesk/internal/observability"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Page    *httpH.PageHandler
	Contact *httpH.ContactHandler
	Note    *httpH.NoteHandler
	Admin   *httpH.AdminHandler
	API     *httpH.APIHandler
}

func wireHandlers(log *logger.Logger, store *db.Store, services Services, codec *flash.Codec) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(store),
		Page:    httpH.NewPageHandler(),
		Contact: httpH.NewContactHandler(log, services.Contacts, codec),
		Note:    httpH.NewNoteHandler(log, services.Notes, codec),
		Admin:   httpH.NewAdminHandler(log, services.Admin),
		API:     httpH.NewAPIHandler(log, services.Contacts, services.Notes),
	}
}

func wireServer(cfg Config, log *logger.Logger, handlers Handlers, codec *flash.Codec, metrics *observability.Metrics) (*http.Server, error) {
	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return http.NewServer(cfg.Addr, http.RouterConfig{
		Log:            log.With("component", "http"),
		Templates:      tmpl,
		Flash:          codec,
		CORSOrigins:    cfg.CORSOrigins,
		Tracing:        cfg.Otel.Enabled,
		ServiceName:    cfg.Otel.ServiceName,
		Metrics:        metrics,
		HealthHandler:  handlers.Health,
		PageHandler:    handlers.Page,
		ContactHandler: handlers.Contact,
		NoteHandler:    handlers.Note,
		AdminHandler:   handlers.Admin,
		APIHandler:     handlers.API,
	}), nil
}
