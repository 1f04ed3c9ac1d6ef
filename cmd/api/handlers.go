// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the book store.
package main

import (
	"errors"
	"net/http"

	"github.com/carloabimanyu/bookshelf-api/internal/data"
	"github.com/carloabimanyu/bookshelf-api/internal/validator"
)

// User-facing response messages.
const (
	msgCreated        = "Buku berhasil ditambahkan"
	msgCreateFailed   = "Gagal menambahkan buku"
	msgUpdated        = "Buku berhasil diperbarui"
	msgUpdateFailed   = "Gagal memperbarui buku"
	msgUpdateNotFound = "Gagal memperbarui buku. Id tidak ditemukan"
	msgDeleted        = "Buku berhasil dihapus"
	msgDeleteNotFound = "Buku gagal dihapus. Id tidak ditemukan"
	msgBookNotFound   = "Buku tidak ditemukan"
)

// validationMessages maps a failed field to the message for each operation.
var (
	createValidationMessages = map[string]string{
		"name":     msgCreateFailed + ". Mohon isi nama buku",
		"readPage": msgCreateFailed + ". readPage tidak boleh lebih besar dari pageCount",
	}
	updateValidationMessages = map[string]string{
		"name":     msgUpdateFailed + ". Mohon isi nama buku",
		"readPage": msgUpdateFailed + ". readPage tidak boleh lebih besar dari pageCount",
	}
)

// createBookHandler handles POST /books.
// It validates the payload, stores a new book and responds 201 with the
// generated id.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, msgCreateFailed, err)
		return
	}

	v := validator.New()
	if data.ValidateBook(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v, createValidationMessages)
		return
	}

	book, err := app.models.Books.Insert(input)
	if err != nil {
		app.serverErrorResponse(w, r, err, msgCreateFailed)
		return
	}

	app.logger.Debug("book created", "id", book.ID)

	err = app.writeJSON(w, http.StatusCreated, success(msgCreated, envelope{"bookId": book.ID}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err, msgCreateFailed)
	}
}

// listBooksHandler handles GET /books.
// The optional name, reading and finished query parameters narrow the result;
// each book is projected to its id, name and publisher.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	filters := app.readFilters(r.URL.Query())

	books := app.models.Books.GetAll(filters)

	err := app.writeJSON(w, http.StatusOK, success("", envelope{"books": books}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err, http.StatusText(http.StatusInternalServerError))
	}
}

// showBookHandler handles GET /books/:id.
// Responds 404 if no book with that id exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r, msgBookNotFound)
		default:
			app.serverErrorResponse(w, r, err, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, success("", envelope{"book": book}), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err, http.StatusText(http.StatusInternalServerError))
	}
}

// updateBookHandler handles PUT and PATCH /books/:id.
// The payload replaces every field except id and insertedAt. Payload errors
// are reported before an unknown id.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	var input data.BookInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, msgUpdateFailed, err)
		return
	}

	v := validator.New()
	if data.ValidateBook(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v, updateValidationMessages)
		return
	}

	_, err = app.models.Books.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r, msgUpdateNotFound)
		default:
			app.serverErrorResponse(w, r, err, msgUpdateFailed)
		}
		return
	}

	app.logger.Debug("book updated", "id", id)

	err = app.writeJSON(w, http.StatusOK, success(msgUpdated, nil), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err, msgUpdateFailed)
	}
}

// deleteBookHandler handles DELETE /books/:id.
// Responds 404 if no book with that id exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	err := app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r, msgDeleteNotFound)
		default:
			app.serverErrorResponse(w, r, err, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	app.logger.Debug("book deleted", "id", id)

	err = app.writeJSON(w, http.StatusOK, success(msgDeleted, nil), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err, http.StatusText(http.StatusInternalServerError))
	}
}

// healthcheckHandler handles GET /healthcheck.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	info := envelope{
		"environment": app.config.Env,
		"version":     appVersion,
	}
	err := app.writeJSON(w, http.StatusOK, success("", info), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err, http.StatusText(http.StatusInternalServerError))
	}
}
