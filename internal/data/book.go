// Package data provides the book model and the in-memory store that holds
// every book for the lifetime of the process.
package data

import (
	"time"

	"github.com/carloabimanyu/bookshelf-api/internal/validator"
)

// Book represents a single book record held by the store.
type Book struct {
	ID         string    `json:"id"`         // 16-char random identifier, immutable
	Name       string    `json:"name"`       // Title of the book
	Year       int       `json:"year"`       // Publication year
	Author     string    `json:"author"`     // Author name
	Summary    string    `json:"summary"`    // Short synopsis
	Publisher  string    `json:"publisher"`  // Name of the publishing company
	PageCount  int       `json:"pageCount"`  // Total pages
	ReadPage   int       `json:"readPage"`   // Pages read so far
	Finished   bool      `json:"finished"`   // PageCount == ReadPage at creation
	Reading    bool      `json:"reading"`    // Client-supplied reading flag
	InsertedAt time.Time `json:"insertedAt"` // Set once on creation
	UpdatedAt  time.Time `json:"updatedAt"`  // Set on creation and on every update
}

// BookSummary is the projection returned by the list endpoint.
type BookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// BookInput holds the fields a client supplies when creating or replacing a book.
// The same payload is used for both operations; update replaces every field.
type BookInput struct {
	Name      string `json:"name"`
	Year      int    `json:"year"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Publisher string `json:"publisher"`
	PageCount int    `json:"pageCount"`
	ReadPage  int    `json:"readPage"`
	Reading   bool   `json:"reading"`
}

// Filters holds the optional list filters taken from the query string.
// A nil field means the filter was not supplied.
type Filters struct {
	Name     *string
	Reading  *bool
	Finished *bool
}

// ValidateBook runs the payload checks in the order they must be reported:
// a missing name first, then a read page beyond the page count.
func ValidateBook(v *validator.Validator, input BookInput) {
	v.Check(input.Name != "", "name", "must be provided")
	v.Check(input.ReadPage <= input.PageCount, "readPage", "must not be greater than pageCount")
}

func (b *Book) summary() BookSummary {
	return BookSummary{ID: b.ID, Name: b.Name, Publisher: b.Publisher}
}

// apply copies every client-owned field from input onto b.
func (b *Book) apply(input BookInput) {
	b.Name = input.Name
	b.Year = input.Year
	b.Author = input.Author
	b.Summary = input.Summary
	b.Publisher = input.Publisher
	b.PageCount = input.PageCount
	b.ReadPage = input.ReadPage
	b.Reading = input.Reading
}
