// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in middleware.
//
// Middleware chain (outermost → innermost):
//
//	logRequest → recoverPanic → rateLimit → router
//
// Current endpoints:
//
//	GET    /healthcheck  – service status
//	POST   /books        – create a new book
//	GET    /books        – list books (name, reading, finished filters)
//	GET    /books/:id    – retrieve a single book by id
//	PUT    /books/:id    – replace a book's fields
//	PATCH  /books/:id    – same as PUT
//	DELETE /books/:id    – delete a book by id
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.routeNotFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodPatch, "/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books/:id", app.deleteBookHandler)

	return app.withMiddleware(router)
}

// withMiddleware wraps next in the chain shared by every route. logRequest
// sits outside recoverPanic so a recovered request still gets its log line.
func (app *applicationDependencies) withMiddleware(next http.Handler) http.Handler {
	return app.logRequest(app.recoverPanic(app.rateLimit(next)))
}
