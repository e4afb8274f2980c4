// internal/data/models.go
package data

import (
	"database/sql"
	"errors"
	"math"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Books BookModel // Handles all database operations for the books table
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sqlx.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// Filters holds the pagination parameters extracted from URL query strings.
// Page is 1-indexed. Callers are expected to have already substituted the
// defaults (page 1, size 10) for missing or unparseable input.
type Filters struct {
	Page     int // Current page number (1-indexed)
	PageSize int // Number of records per page
}

// limit returns the SQL LIMIT value derived from PageSize.
func (f Filters) limit() int { return f.PageSize }

// offset returns the SQL OFFSET value derived from Page and PageSize.
func (f Filters) offset() int { return (f.Page - 1) * f.PageSize }

// Metadata contains pagination information returned alongside list results.
type Metadata struct {
	CurrentPage  int
	PageSize     int
	FirstPage    int
	LastPage     int
	TotalRecords int
}

// calculateMetadata computes page metadata from total record count and filter values.
func calculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     int(math.Ceil(float64(totalRecords) / float64(pageSize))),
		TotalRecords: totalRecords,
	}
}

// BookModel wraps a *sqlx.DB connection pool and provides methods for
// creating, reading, updating, and deleting book records.
//
// All queries are written with ? placeholders and passed through Rebind so
// the same statements run against PostgreSQL in production and SQLite in
// the test suite.
type BookModel struct {
	DB *sqlx.DB // Shared database connection pool
}

// Insert adds a new book record to the database.
// After a successful insert, the database-assigned id is written back into
// the book struct. The caller is responsible for validating book first.
func (m BookModel) Insert(book *Book) error {
	query := m.DB.Rebind(`
		INSERT INTO books (title, author, genre, year)
		VALUES (?, ?, ?, ?)
		RETURNING id`)

	return m.DB.QueryRow(query, book.Title, book.Author, book.Genre, book.Year).Scan(&book.ID)
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := m.DB.Rebind(`
		SELECT id, title, author, genre, year
		FROM books
		WHERE id = ?`)

	var book Book
	err := m.DB.Get(&book, query, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAll retrieves one page of books matching the optional free-text filter.
// The filter is matched case-insensitively as a substring against title,
// author, genre, and the textual form of year, combined with OR; an empty
// filter matches every row. Results are ordered by title, then id.
//
// It uses a COUNT(*) OVER() window function so only one round-trip is needed.
// A page past the end of the result set yields an empty slice, not an error.
func (m BookModel) GetAll(filter string, filters Filters) ([]*Book, Metadata, error) {
	query := m.DB.Rebind(`
		SELECT count(*) OVER() AS total_records, id, title, author, genre, year
		FROM books
		WHERE LOWER(title) LIKE ?
		   OR LOWER(author) LIKE ?
		   OR LOWER(genre) LIKE ?
		   OR CAST(year AS TEXT) LIKE ?
		ORDER BY title ASC, id ASC
		LIMIT ? OFFSET ?`)

	// Lowercasing here rather than in SQL keeps the match case-insensitive
	// on both drivers without relying on ILIKE.
	pattern := "%" + strings.ToLower(strings.TrimSpace(filter)) + "%"

	rows, err := m.DB.Queryx(query, pattern, pattern, pattern, pattern, filters.limit(), filters.offset())
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	books := []*Book{}

	for rows.Next() {
		var row struct {
			TotalRecords int `db:"total_records"` // Same value on every row
			Book
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, Metadata{}, err
		}
		totalRecords = row.TotalRecords
		book := row.Book
		books = append(books, &book)
	}

	if err = rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	metadata := calculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return books, metadata, nil
}

// Update replaces every mutable field of the stored record identified by
// book.ID. The caller re-validates the merged field set with the same rules
// as Insert before calling, so an invalid submission never reaches the
// database and the original row stays untouched.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Update(book *Book) error {
	query := m.DB.Rebind(`
		UPDATE books
		SET title = ?, author = ?, genre = ?, year = ?
		WHERE id = ?`)

	result, err := m.DB.Exec(query, book.Title, book.Author, book.Genre, book.Year, book.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Delete permanently removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(id int64) error {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return ErrRecordNotFound
	}

	query := m.DB.Rebind(`DELETE FROM books WHERE id = ?`)

	result, err := m.DB.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// If no rows were deleted, the book didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
