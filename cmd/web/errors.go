// cmd/web/errors.go
// This file contains the error pipeline: classification of failures into
// not-found vs server error, and the rendering of the two error pages.
// Keeping error helpers in a dedicated file makes them easy to find and extend.
package main

import (
	"bytes"
	"log/slog"
	"net/http"
)

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
}

// renderErrorPage renders one of the dedicated error views with the given
// status code. It must never fail the request a second time, so if the view
// itself cannot be rendered it falls back to a bare-text http.Error. This is
// the only render path that does not route through serverErrorResponse.
func (app *applicationDependencies) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, page string, data templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.logError(r, err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// notFoundResponse renders the dedicated "page not found" view with a 404
// status. It serves both unmatched routes (wired up as the router's NotFound
// handler) and handlers that looked up a record and found nothing.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.renderErrorPage(w, r, http.StatusNotFound, "page-not-found.tmpl", templateData{
		Title: "Page Not Found",
	})
}

// serverErrorResponse logs the underlying error and renders the generic error
// view with a 500 status. Internal error details are never exposed to the
// client; the page shows only a generic message.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.renderErrorPage(w, r, http.StatusInternalServerError, "error.tmpl", templateData{
		Title: "Error",
	})
}

// rateLimitExceededResponse sends a plain 429 Too Many Requests error.
// Rate limiting is infrastructure rather than a page flow, so this response
// does not get a rendered view.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
}
