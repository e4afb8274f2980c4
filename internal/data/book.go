// Package data provides the data models and database interaction logic
// for the book catalog.
package data

import (
	"time"

	"github.com/aoideee/bookcatalog/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID     int64  `db:"id"`     // Unique identifier assigned by the database
	Title  string `db:"title"`  // Title of the book (required)
	Author string `db:"author"` // Author of the book (required)
	Genre  string `db:"genre"`  // Optional genre label
	Year   *int   `db:"year"`   // Optional publication year; nil means not recorded
}

// ValidateBook runs every field-level rule against book, recording failures
// in v. The messages are exactly what the creation and edit forms display
// next to each field, so they must stay user-readable.
//
// Rules: title and author must be non-empty after trimming; year, when
// present, must fall between 1000 and the current calendar year inclusive.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(validator.NotBlank(book.Title), "title", "Title cannot be empty")
	v.Check(validator.NotBlank(book.Author), "author", "Author cannot be empty")

	if book.Year != nil {
		v.Check(*book.Year >= 1000, "year", "Year must be after 1000")
		v.Check(*book.Year <= time.Now().Year(), "year", "Year cannot be in the future")
	}
}
