package http

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/contactdesk/internal/http/flash"
	httpH "github.com/yungbote/contactdesk/internal/http/handlers"
	httpMW "github.com/yungbote/contactdesk/internal/http/middleware"
	"github.com/yungbote/contactdesk/internal/observability"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Templates   *template.Template
	Flash       *flash.Codec
	CORSOrigins []string
	Tracing     bool
	ServiceName string
	Metrics     *observability.Metrics

	PageHandler    *httpH.PageHandler
	ContactHandler *httpH.ContactHandler
	NoteHandler    *httpH.NoteHandler
	AdminHandler   *httpH.AdminHandler
	APIHandler     *httpH.APIHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.Templates != nil {
		r.SetHTMLTemplate(cfg.Templates)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	pages := r.Group("/")
	pages.Use(httpMW.AttachRequestContext(cfg.Flash, cfg.Log))
	{
		if cfg.PageHandler != nil {
			pages.GET("/", cfg.PageHandler.Index)
			pages.GET("/success", cfg.PageHandler.Success)
			pages.GET("/help", cfg.PageHandler.Help)
		}

		// Contacts
		if cfg.ContactHandler != nil {
			pages.POST("/submit", cfg.ContactHandler.Submit)
			pages.GET("/view", cfg.ContactHandler.View)
			pages.GET("/export_csv", cfg.ContactHandler.ExportCSV)
			pages.POST("/delete/:contact_id", cfg.ContactHandler.Delete)
		}

		// Notes
		if cfg.NoteHandler != nil {
			pages.GET("/contact/:id/notes", cfg.NoteHandler.List)
			pages.GET("/contact/:id/notes/add", cfg.NoteHandler.AddForm)
			pages.POST("/contact/:id/notes/add", cfg.NoteHandler.Add)
			pages.GET("/contact/:id/notes/:note_id/edit", cfg.NoteHandler.EditForm)
			pages.POST("/contact/:id/notes/:note_id/edit", cfg.NoteHandler.Edit)
			pages.POST("/contact/:id/notes/:note_id/delete", cfg.NoteHandler.Delete)
		}

		if cfg.AdminHandler != nil {
			pages.GET("/admin", cfg.AdminHandler.Show)
		}
	}

	api := r.Group("/api")
	if cfg.APIHandler != nil {
		api.GET("/contacts", cfg.APIHandler.ListContacts)
		api.POST("/contacts", cfg.APIHandler.CreateContact)
		api.GET("/contacts/:id", cfg.APIHandler.GetContact)
		api.DELETE("/contacts/:id", cfg.APIHandler.DeleteContact)
		api.GET("/contacts/:id/notes", cfg.APIHandler.ListNotes)
		api.POST("/contacts/:id/notes", cfg.APIHandler.CreateNote)
		api.PUT("/contacts/:id/notes/:note_id", cfg.APIHandler.UpdateNote)
		api.DELETE("/contacts/:id/notes/:note_id", cfg.APIHandler.DeleteNote)
	}

	return r
}
