package views

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	types "github.com/yungbote/contactdesk/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"cell":      cell,
	"timestamp": timestamp,
}

// Load parses every page together with the shared layout partials.
func Load() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(types.TimestampLayout)
}

// cell renders a raw column value from the admin dump.
func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case time.Time:
		return timestamp(t)
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}
