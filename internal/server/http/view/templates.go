package view

import (
	"embed"
	"html/template"
)

// IndexTemplate is the name of the page template.
const IndexTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
