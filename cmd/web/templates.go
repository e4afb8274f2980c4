// cmd/web/templates.go
// This file contains the template cache and the data context passed to views.
// The renderer itself stays behind the render() helper in helpers.go; handlers
// only ever name a page and hand over a templateData value.
package main

import (
	"html/template"
	"io/fs"
	"path/filepath"

	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/ui"
)

// templateData is the single data context type passed to every view.
// Pages use only the fields relevant to them and ignore the rest.
type templateData struct {
	Title      string       // Page title shown in the <title> tag and heading
	Books      []*data.Book // Listing page: the current page of books
	Query      string       // Listing page: the active free-text filter
	Page       int          // Listing page: current 1-based page number
	TotalPages int          // Listing page: ceil(totalCount / limit)
	Form       *bookForm    // Form pages: field values and validation messages
}

// functions are the helpers available inside every template. The listing page
// uses add to build its previous/next pagination links.
var functions = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

// newTemplateCache parses every page template from the embedded filesystem
// exactly once and returns them keyed by file name (e.g. "index.tmpl").
// Each page is parsed together with the shared base layout.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files, "html/base.tmpl", page)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
