// cmd/web/handlers_test.go
// End-to-end tests for the HTTP surface. Each test spins up a real router
// with all middleware applied, backed by an in-memory SQLite database, and
// drives it through httptest.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aoideee/bookcatalog/internal/data"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3" // Register the SQLite driver for the test database.
)

// newTestApplication builds an applicationDependencies instance with a fresh
// in-memory database, the real template cache, a discarded logger, and the
// rate limiter disabled so tests can issue requests back-to-back.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Every pooled connection would otherwise get its own empty in-memory
	// database, so pin the pool to a single connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			genre TEXT,
			year INTEGER
		)`)
	require.NoError(t, err)

	templateCache, err := newTemplateCache()
	require.NoError(t, err)

	var settings serverConfig
	settings.environment = "testing"
	settings.limiter.enabled = false

	return &applicationDependencies{
		config:        settings,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		templateCache: templateCache,
		models:        data.NewModels(db),
	}
}

// newTestServer starts an httptest server around the full middleware-wrapped
// router. The client does not follow redirects, so tests can assert on the
// 302 responses directly.
func newTestServer(t *testing.T, app *applicationDependencies) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(app.routes())
	t.Cleanup(ts.Close)
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(t *testing.T, ts *httptest.Server, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := ts.Client().PostForm(ts.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// seedBook inserts a record directly through the model layer.
func seedBook(t *testing.T, app *applicationDependencies, title, author, genre string, year *int) *data.Book {
	t.Helper()
	book := &data.Book{Title: title, Author: author, Genre: genre, Year: year}
	require.NoError(t, app.models.Books.Insert(book))
	return book
}

func intPtr(n int) *int { return &n }

func TestHomeRedirectsToBooks(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, _ := get(t, ts, "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/books", resp.Header.Get("Location"))
}

func TestListBooksEmpty(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, body := get(t, ts, "/books")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No books found.")
}

func TestListBooks(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	seedBook(t, app, "Dune", "Frank Herbert", "Science Fiction", intPtr(1965))
	seedBook(t, app, "Emma", "Jane Austen", "Romance", intPtr(1815))

	resp, body := get(t, ts, "/books")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Dune")
	assert.Contains(t, body, "Frank Herbert")
	assert.Contains(t, body, "Emma")
	assert.Contains(t, body, "1815")
}

func TestListBooksPagination(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	for i := 1; i <= 15; i++ {
		seedBook(t, app, fmt.Sprintf("Book %02d", i), "Author", "", nil)
	}

	resp, body := get(t, ts, "/books?page=2&limit=10")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Page 2 of 2")
	assert.Contains(t, body, "Book 11")
	assert.Contains(t, body, "Book 15")
	assert.NotContains(t, body, "Book 01")
}

func TestListBooksSearch(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	seedBook(t, app, "Dune", "Frank Herbert", "Science Fiction", intPtr(1965))
	seedBook(t, app, "Dune Messiah", "Frank Herbert", "Science Fiction", intPtr(1969))
	seedBook(t, app, "Emma", "Jane Austen", "Romance", intPtr(1815))

	resp, body := get(t, ts, "/books?query=dune")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Dune")
	assert.Contains(t, body, "Dune Messiah")
	assert.NotContains(t, body, "Emma")
}

func TestListBooksBadPageParamsUseDefaults(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	seedBook(t, app, "Dune", "Frank Herbert", "", nil)

	// Non-numeric and out-of-range values fall back to page 1, limit 10
	// without any error response.
	for _, path := range []string{
		"/books?page=abc&limit=xyz",
		"/books?page=-3",
		"/books?limit=0",
	} {
		resp, body := get(t, ts, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "GET %s", path)
		assert.Contains(t, body, "Dune")
	}
}

func TestNewBookForm(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, body := get(t, ts, "/books/new")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/books/new"`)
	assert.Contains(t, body, `name="title"`)
	assert.Contains(t, body, `name="author"`)
	assert.Contains(t, body, `name="genre"`)
	assert.Contains(t, body, `name="year"`)
}

func TestCreateBook(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	form := url.Values{}
	form.Add("title", "Dune")
	form.Add("author", "Frank Herbert")
	form.Add("genre", "Science Fiction")
	form.Add("year", "1965")

	resp, _ := postForm(t, ts, "/books/new", form)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/books", resp.Header.Get("Location"))

	books, metadata, err := app.models.Books.GetAll("", data.Filters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 1, metadata.TotalRecords)
	assert.NotZero(t, books[0].ID)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.Equal(t, "Science Fiction", books[0].Genre)
	require.NotNil(t, books[0].Year)
	assert.Equal(t, 1965, *books[0].Year)
}

func TestCreateBookEmptyTitle(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	form := url.Values{}
	form.Add("title", "")
	form.Add("author", "Frank Herbert")

	resp, body := postForm(t, ts, "/books/new", form)

	// Validation failures re-render the form with HTTP 200, keeping the
	// user's other input intact.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Title cannot be empty")
	assert.Contains(t, body, `value="Frank Herbert"`)

	_, metadata, err := app.models.Books.GetAll("", data.Filters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, metadata.TotalRecords, "nothing may be persisted on a failed create")
}

func TestCreateBookFutureYear(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	form := url.Values{}
	form.Add("title", "Dune")
	form.Add("author", "Frank Herbert")
	form.Add("year", "3000")

	resp, body := postForm(t, ts, "/books/new", form)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Year cannot be in the future")
	assert.Contains(t, body, `value="Dune"`)

	_, metadata, err := app.models.Books.GetAll("", data.Filters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, metadata.TotalRecords)
}

func TestCreateBookNonIntegerYear(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	form := url.Values{}
	form.Add("title", "Dune")
	form.Add("author", "Frank Herbert")
	form.Add("year", "abc")

	resp, body := postForm(t, ts, "/books/new", form)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Year must be an integer")
}

func TestEditBookForm(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "Dune", "Frank Herbert", "Science Fiction", intPtr(1965))

	resp, body := get(t, ts, fmt.Sprintf("/books/%d", book.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="Dune"`)
	assert.Contains(t, body, `value="Frank Herbert"`)
	assert.Contains(t, body, `value="1965"`)
	assert.Contains(t, body, fmt.Sprintf(`action="/books/%d"`, book.ID))
	assert.Contains(t, body, fmt.Sprintf(`action="/books/%d/delete"`, book.ID))
}

func TestEditBookFormNotFound(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	for _, path := range []string{"/books/99999", "/books/abc", "/books/0"} {
		resp, body := get(t, ts, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "GET %s", path)
		assert.Contains(t, body, "Page Not Found")
	}
}

func TestUpdateBook(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "Dune", "F. Herbert", "", nil)

	form := url.Values{}
	form.Add("title", "Dune")
	form.Add("author", "Frank Herbert")
	form.Add("genre", "Science Fiction")
	form.Add("year", "1965")

	resp, _ := postForm(t, ts, fmt.Sprintf("/books/%d", book.ID), form)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/books", resp.Header.Get("Location"))

	found, err := app.models.Books.Get(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", found.Author)
	assert.Equal(t, "Science Fiction", found.Genre)
	require.NotNil(t, found.Year)
	assert.Equal(t, 1965, *found.Year)
}

func TestUpdateBookNotFound(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	form := url.Values{}
	form.Add("title", "Ghost")
	form.Add("author", "Nobody")

	resp, body := postForm(t, ts, "/books/99999", form)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page Not Found")
}

func TestUpdateBookValidationErrors(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "Dune", "Frank Herbert", "Science Fiction", intPtr(1965))

	form := url.Values{}
	form.Add("title", "")
	form.Add("author", "Frank Herbert")

	resp, body := postForm(t, ts, fmt.Sprintf("/books/%d", book.ID), form)

	// The edit view re-renders with the submitted values and the original id.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Title cannot be empty")
	assert.Contains(t, body, fmt.Sprintf(`action="/books/%d"`, book.ID))

	// The stored record is untouched by the failed update.
	found, err := app.models.Books.Get(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, "Science Fiction", found.Genre)
}

func TestDeleteBook(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	book := seedBook(t, app, "Dune", "Frank Herbert", "", nil)

	resp, _ := postForm(t, ts, fmt.Sprintf("/books/%d/delete", book.ID), url.Values{})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/books", resp.Header.Get("Location"))

	_, err := app.models.Books.Get(book.ID)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	// Deleting the same record again renders the 404 page.
	resp, body := postForm(t, ts, fmt.Sprintf("/books/%d/delete", book.ID), url.Values{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page Not Found")
}

func TestUnmatchedRoute(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, body := get(t, ts, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page Not Found")

	// A wrong method on a known path falls through to the same 404 stage.
	resp, err := ts.Client().Post(ts.URL+"/books", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
