// cmd/web/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic, logRequest, and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → rateLimit → router
//
// Current endpoints:
//
//	GET  /                 – redirect to /books
//	GET  /books            – paginated, searchable book listing
//	GET  /books/new        – empty creation form
//	POST /books/new        – create a new book
//	GET  /books/:id        – edit form for one book
//	POST /books/:id        – update an existing book
//	POST /books/:id/delete – delete a book
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Any unmatched request renders the dedicated "page not found" view.
	// Wrong-method requests on a known path fall through to the same 404
	// handler rather than a 405, matching the rest of the error pipeline.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.HandleMethodNotAllowed = false

	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/books", app.listBooksHandler)

	// httprouter rejects a static /books/new registered alongside the
	// /books/:id wildcard, so both GET and POST go through the wildcard
	// and the literal "new" segment is dispatched inside the handler.
	router.HandlerFunc(http.MethodGet, "/books/:id", app.bookGetDispatchHandler)
	router.HandlerFunc(http.MethodPost, "/books/:id", app.bookPostDispatchHandler)
	router.HandlerFunc(http.MethodPost, "/books/:id/delete", app.deleteBookHandler)

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from the other middlewares and the router alike.
	return app.recoverPanic(app.logRequest(app.rateLimit(router)))
}
