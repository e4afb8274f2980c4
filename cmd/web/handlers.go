// cmd/web/handlers.go
// This file contains all HTTP request handlers for the book catalog pages.
// Each handler is a method on *applicationDependencies so it has access
// to the logger, template cache, and database models.
//
// Every handler is a single linear flow with one branch point: either
// found/not-found or valid/invalid. Validation failures re-render the same
// form with HTTP 200 and the submitted values intact; they never reach the
// error pipeline.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/internal/validator"

	"github.com/julienschmidt/httprouter"
)

// homeHandler handles GET / by redirecting to the book listing.
func (app *applicationDependencies) homeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/books", http.StatusFound)
}

// listBooksHandler handles GET /books.
// It reads the optional query/page/limit parameters, fetches one page of
// matching books, and renders the listing with pagination controls.
// Missing or non-numeric page and limit values silently fall back to 1 and 10.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	query := app.readString(qs, "query", "")
	page := app.readInt(qs, "page", 1)
	limit := app.readInt(qs, "limit", 10)

	// Out-of-range values get the same silent-default treatment as
	// unparseable ones; a page beyond the end simply renders empty.
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	books, metadata, err := app.models.Books.GetAll(query, data.Filters{Page: page, PageSize: limit})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "index.tmpl", templateData{
		Title:      "Books",
		Books:      books,
		Query:      query,
		Page:       page,
		TotalPages: metadata.LastPage,
	})
}

// bookGetDispatchHandler routes GET /books/:id to the creation form when the
// wildcard segment is the literal "new", and to the edit form otherwise.
func (app *applicationDependencies) bookGetDispatchHandler(w http.ResponseWriter, r *http.Request) {
	if httprouter.ParamsFromContext(r.Context()).ByName("id") == "new" {
		app.newBookFormHandler(w, r)
		return
	}
	app.editBookFormHandler(w, r)
}

// bookPostDispatchHandler routes POST /books/:id to the create handler when
// the wildcard segment is the literal "new", and to the update handler otherwise.
func (app *applicationDependencies) bookPostDispatchHandler(w http.ResponseWriter, r *http.Request) {
	if httprouter.ParamsFromContext(r.Context()).ByName("id") == "new" {
		app.createBookHandler(w, r)
		return
	}
	app.updateBookHandler(w, r)
}

// newBookFormHandler handles GET /books/new.
// It renders an empty creation form; no data access happens here.
func (app *applicationDependencies) newBookFormHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "new-book.tmpl", templateData{
		Title: "New Book",
		Form:  newBookForm(),
	})
}

// createBookHandler handles POST /books/new.
// It trims and validates the submitted fields. On validation failure the form
// is re-rendered with the submitted values and per-field messages (HTTP 200);
// on success the new record is inserted and the client is redirected to the
// listing.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	form, err := parseBookForm(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	v := validator.New()
	book := form.toBook(v)

	if !v.Valid() {
		form.Errors = v.Errors
		app.render(w, r, http.StatusOK, "new-book.tmpl", templateData{
			Title: "New Book",
			Form:  form,
		})
		return
	}

	err = app.models.Books.Insert(book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, "/books", http.StatusFound)
}

// editBookFormHandler handles GET /books/:id.
// It looks the book up by id and renders the edit form pre-filled with the
// stored values, or the 404 page if no such record exists.
func (app *applicationDependencies) editBookFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.render(w, r, http.StatusOK, "update-book.tmpl", templateData{
		Title: "Update Book",
		Form:  formFromBook(book),
	})
}

// updateBookHandler handles POST /books/:id.
// It confirms the record exists (404 otherwise), then validates the submitted
// fields. On validation failure the edit form is re-rendered with the
// submitted values, the original id, and per-field messages (HTTP 200); the
// stored record is left untouched. On success every field is replaced and the
// client is redirected to the listing.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	_, err = app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	form, err := parseBookForm(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	form.ID = id

	v := validator.New()
	book := form.toBook(v)
	book.ID = id

	if !v.Valid() {
		form.Errors = v.Errors
		app.render(w, r, http.StatusOK, "update-book.tmpl", templateData{
			Title: "Update Book",
			Form:  form,
		})
		return
	}

	err = app.models.Books.Update(book)
	if err != nil {
		switch {
		// The record can vanish between the lookup and the update if a
		// concurrent delete wins the race; that is still a 404.
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/books", http.StatusFound)
}

// deleteBookHandler handles POST /books/:id/delete.
// It permanently removes the record and redirects to the listing, or renders
// the 404 page if no such record exists. Any confirmation step is a
// client-side concern.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/books", http.StatusFound)
}
