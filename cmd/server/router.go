package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/ali-mahmoud24/bookly-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware. Reads on authors and books are public; writes require an
// administrator. The lending surface only requires authentication.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.Trace)

	requireAdmin := app.authMiddleware.RequireAdmin

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", app.authHandler.Register)
		r.Post("/auth/login", app.authHandler.Login)
		r.Post("/auth/logout", app.authHandler.Logout)

		// Public catalog reads
		r.Get("/authors", app.authorHandler.ListAuthors)
		r.Get("/authors/{id}", app.authorHandler.GetAuthor)
		r.Get("/books", app.bookHandler.ListBooks)
		r.Get("/books/{id}", app.bookHandler.GetBook)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(app.authMiddleware.Authenticate)

			r.Get("/users/me", app.userHandler.GetMe)
			r.Put("/users/me", app.userHandler.UpdateMe)
			r.Get("/users/me/books", app.userHandler.ListMyBooks)
			r.Post("/users/me/borrow/{bookId}", app.userHandler.Borrow)
			r.Post("/users/me/return/{bookId}", app.userHandler.Return)

			// Administrator-only management
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Post("/users", app.userHandler.CreateUser)
				r.Get("/users", app.userHandler.ListUsers)
				r.Get("/users/{id}", app.userHandler.GetUser)
				r.Put("/users/{id}", app.userHandler.UpdateUser)
				r.Delete("/users/{id}", app.userHandler.DeleteUser)

				r.Post("/authors", app.authorHandler.CreateAuthor)
				r.Put("/authors/{id}", app.authorHandler.UpdateAuthor)
				r.Delete("/authors/{id}", app.authorHandler.DeleteAuthor)

				r.Post("/books", app.bookHandler.CreateBook)
				r.Put("/books/{id}", app.bookHandler.UpdateBook)
				r.Delete("/books/{id}", app.bookHandler.DeleteBook)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
