// cmd/web/forms.go
// This file contains the form snapshot type shared by the creation and edit
// views. The snapshot keeps every field as the raw submitted string so a
// failed validation can re-render the form without losing the user's input.
package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/internal/validator"
)

// bookForm carries the submitted (or stored) field values and any per-field
// validation messages into the new-book and update-book templates.
type bookForm struct {
	ID     int64             // Database id; zero for the creation form
	Title  string            // Submitted title, trimmed
	Author string            // Submitted author, trimmed
	Genre  string            // Submitted genre, trimmed
	Year   string            // Submitted year as typed, trimmed
	Errors map[string]string // Field name → validation message
}

// newBookForm returns an empty form for the creation view.
func newBookForm() *bookForm {
	return &bookForm{Errors: map[string]string{}}
}

// parseBookForm decodes and trims the title/author/genre/year fields from a
// POSTed form body.
func parseBookForm(r *http.Request) (*bookForm, error) {
	err := r.ParseForm()
	if err != nil {
		return nil, err
	}

	return &bookForm{
		Title:  strings.TrimSpace(r.PostForm.Get("title")),
		Author: strings.TrimSpace(r.PostForm.Get("author")),
		Genre:  strings.TrimSpace(r.PostForm.Get("genre")),
		Year:   strings.TrimSpace(r.PostForm.Get("year")),
		Errors: map[string]string{},
	}, nil
}

// formFromBook builds a pre-filled form snapshot from a stored record, for
// the edit view.
func formFromBook(book *data.Book) *bookForm {
	form := &bookForm{
		ID:     book.ID,
		Title:  book.Title,
		Author: book.Author,
		Genre:  book.Genre,
		Errors: map[string]string{},
	}
	if book.Year != nil {
		form.Year = strconv.Itoa(*book.Year)
	}
	return form
}

// toBook converts the form snapshot into a Book and runs the full validation
// rule set, recording failures in v. A year that does not parse as an integer
// is a field error; an empty year means "not recorded" and stays nil.
func (f *bookForm) toBook(v *validator.Validator) *data.Book {
	book := &data.Book{
		ID:     f.ID,
		Title:  f.Title,
		Author: f.Author,
		Genre:  f.Genre,
	}

	if f.Year != "" {
		year, err := strconv.Atoi(f.Year)
		if err != nil {
			v.AddError("year", "Year must be an integer")
		} else {
			book.Year = &year
		}
	}

	data.ValidateBook(v, book)
	return book
}
