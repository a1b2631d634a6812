package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/user"
	"github.com/rs/zerolog"
)

const requestTimeout = 30 * time.Second

// Options carries what the API router needs besides the services
type Options struct {
	Logger zerolog.Logger
	APIKey string
	// Scheme is the identifier shape of the active storage backend
	Scheme ident.Scheme
	Errors ErrorRecorder
}

type api struct {
	books  book.UseCase
	users  user.UseCase
	scheme ident.Scheme
	errors ErrorRecorder
}

func Handlers(ctx context.Context, bookService book.UseCase, userService user.UseCase, opts Options) *chi.Mux {
	a := &api{
		books:  bookService,
		users:  userService,
		scheme: opts.Scheme,
		errors: opts.Errors,
	}
	if a.errors == nil {
		a.errors = nopRecorder{}
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(opts.Logger))
	r.Use(a.requireAPIKey(opts.APIKey))
	r.Use(middleware.Timeout(requestTimeout))

	r.NotFound(a.handle(func(w http.ResponseWriter, r *http.Request) error {
		return apperr.NewNotFound("Route not found")
	}).ServeHTTP)
	r.MethodNotAllowed(a.handle(func(w http.ResponseWriter, r *http.Request) error {
		return apperr.NewMethodNotAllowed("Method not allowed")
	}).ServeHTTP)

	r.Method(http.MethodGet, "/books", a.handle(a.getBooks))
	r.Method(http.MethodGet, "/books/{id}", a.handle(a.getBook))
	r.Method(http.MethodPost, "/books", a.handle(a.postBook))
	r.Method(http.MethodPatch, "/books/{id}", a.handle(a.patchBook))
	r.Method(http.MethodDelete, "/books/{id}", a.handle(a.deleteBook))

	r.Method(http.MethodGet, "/users", a.handle(a.getUsers))
	r.Method(http.MethodGet, "/users/{id}", a.handle(a.getUser))
	r.Method(http.MethodPost, "/users", a.handle(a.postUser))
	r.Method(http.MethodPatch, "/users/{id}", a.handle(a.patchUser))
	r.Method(http.MethodDelete, "/users/{id}", a.handle(a.deleteUser))

	return r
}
