// Package web embeds the HTML templates and static assets served by the
// HTTP transport.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.tmpl
var templates embed.FS

//go:embed static
var static embed.FS

// Templates parses every page template. Pages reference the shared
// "header" and "footer" blocks from layout.tmpl.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templates, "templates/*.tmpl")
}

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
