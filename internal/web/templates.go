package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = []string{
	"login.html",
	"home.html",
	"jobs.html",
	"apply.html",
	"application.html",
	"job_form.html",
	"admin.html",
}

var templateFuncs = template.FuncMap{
	"date":     formatDate("Jan 2, 2006"),
	"datetime": formatDate("January 2, 2006 at 03:04 PM"),
}

func formatDate(layout string) func(*time.Time) string {
	return func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(layout)
	}
}

// parseTemplates builds one template set per page, each holding the shared layout and
// the page's own "content" block.
func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(templateFuncs).
			ParseFS(templateFiles, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, err
		}
		templates[page] = tmpl
	}
	return templates, nil
}
