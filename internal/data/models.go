package data

import (
	"errors"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDLength is the number of characters in a generated book id.
const IDLength = 16

var (
	// ErrRecordNotFound is returned when no book matches the requested id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInconsistentState is returned when a freshly inserted book cannot be
	// found again in the store.
	ErrInconsistentState = errors.New("inserted record missing from store")
)

// Models is a top-level container that groups all model types together.
// It is passed around the application via applicationDependencies so every
// handler reaches the same store.
type Models struct {
	Books *BookModel
}

// Options tunes the behaviour of the book store.
type Options struct {
	// RecomputeFinished makes Update derive Finished from the new page counts.
	// When false, Finished keeps the value computed at creation.
	RecomputeFinished bool
}

// NewModels constructs a Models value with an empty book store.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(opts Options) Models {
	return Models{
		Books: NewBookModel(opts),
	}
}

// BookModel is the insertion-ordered collection of books. A single mutex
// guards the slice so an index found by a lookup stays valid until it is used.
type BookModel struct {
	mu    sync.Mutex
	books []*Book
	opts  Options

	// Now and NewID are replaceable for deterministic tests.
	Now   func() time.Time
	NewID func() (string, error)
}

// NewBookModel returns an empty store using the wall clock and nanoid ids.
func NewBookModel(opts Options) *BookModel {
	return &BookModel{
		opts: opts,
		Now: func() time.Time {
			return time.Now().UTC()
		},
		NewID: func() (string, error) {
			return gonanoid.New(IDLength)
		},
	}
}

// Insert adds a new book built from input. The generated id, the derived
// finished flag and both timestamps are set here. The caller is expected to
// have validated input.
func (m *BookModel) Insert(input BookInput) (*Book, error) {
	id, err := m.NewID()
	if err != nil {
		return nil, err
	}
	now := m.Now()

	book := &Book{
		ID:         id,
		Finished:   input.PageCount == input.ReadPage,
		InsertedAt: now,
		UpdatedAt:  now,
	}
	book.apply(input)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.books = append(m.books, book)

	// The record must be reachable by its id before we report success.
	if m.indexOf(id) == -1 {
		return nil, ErrInconsistentState
	}

	copied := *book
	return &copied, nil
}

// Get returns a copy of the first book with the given id.
// Returns ErrRecordNotFound if no book with that id exists.
func (m *BookModel) Get(id string) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return nil, ErrRecordNotFound
	}
	copied := *m.books[i]
	return &copied, nil
}

// GetAll returns the summaries of every book that passes filters, in
// insertion order. Filters apply in sequence: name substring
// (case-insensitive), then reading, then finished.
func (m *BookModel) GetAll(filters Filters) []BookSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	var name string
	if filters.Name != nil {
		name = strings.ToLower(*filters.Name)
	}

	books := []BookSummary{}
	for _, b := range m.books {
		if filters.Name != nil && !strings.Contains(strings.ToLower(b.Name), name) {
			continue
		}
		if filters.Reading != nil && b.Reading != *filters.Reading {
			continue
		}
		if filters.Finished != nil && b.Finished != *filters.Finished {
			continue
		}
		books = append(books, b.summary())
	}
	return books
}

// Update replaces every field of the book except its id and insertedAt, and
// stamps updatedAt. Returns ErrRecordNotFound if no book with that id exists.
func (m *BookModel) Update(id string, input BookInput) (*Book, error) {
	now := m.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return nil, ErrRecordNotFound
	}

	book := m.books[i]
	book.apply(input)
	book.UpdatedAt = now
	if m.opts.RecomputeFinished {
		book.Finished = input.PageCount == input.ReadPage
	}

	copied := *book
	return &copied, nil
}

// Delete removes the book with the given id, keeping the order of the rest.
// Returns ErrRecordNotFound if no matching record exists.
func (m *BookModel) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i == -1 {
		return ErrRecordNotFound
	}

	copy(m.books[i:], m.books[i+1:])
	m.books[len(m.books)-1] = nil
	m.books = m.books[:len(m.books)-1]
	return nil
}

// Len reports how many books are currently stored.
func (m *BookModel) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.books)
}

// indexOf must be called with mu held.
func (m *BookModel) indexOf(id string) int {
	for i, b := range m.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
