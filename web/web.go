// Package web holds the embedded templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/url"

	"minitwit/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates static
var content embed.FS

// View names handlers pass to c.HTML.
const (
	TimelineView = "timeline.html"
	RegisterView = "register.html"
)

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FuncMap is shared by every view.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"datetimeformat": utils.FormatDatetime,
		"markdown":       utils.RenderMarkdown,
		"urlpath":        url.PathEscape,
	}
}

// LoadTemplates assembles every view with the shared layouts.
func LoadTemplates() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := fs.Glob(content, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}

	views := map[string]string{
		TimelineView: "templates/views/timeline.html",
		RegisterView: "templates/views/register.html",
	}
	for name, view := range views {
		files := append(append([]string{}, layouts...), view)
		tmpl, err := template.New(name).Funcs(FuncMap()).ParseFS(content, files...)
		if err != nil {
			return nil, err
		}
		r.Add(name, tmpl.Lookup("base"))
	}
	return r, nil
}
