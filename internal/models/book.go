package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Reserved field names on a book record
const (
	FieldID     = "id"
	FieldTitle  = "title"
	FieldAuthor = "author"
)

// Book represents a book record in the collection.
// Fields other than id, title and author are kept verbatim in Extra and are
// flattened back next to the named fields when encoded.
type Book struct {
	ID        int64          `json:"id" db:"id"`
	Title     string         `json:"title" db:"title" validate:"required"`
	Author    string         `json:"author" db:"author" validate:"required"`
	Extra     map[string]any `json:"-" db:"extra"`
	CreatedAt time.Time      `json:"-" db:"created_at"`
	UpdatedAt time.Time      `json:"-" db:"updated_at"`
}

// NewBook creates a new unsaved book with timestamps
func NewBook(title, author string) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		Extra:     map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultBooks returns the records the collection is seeded with
func DefaultBooks() []*Book {
	crocodile := NewBook("The Enormous Crocodile", "Roald Dahl")
	crocodile.ID = 1

	potter := NewBook("Harry Potter", "J.K. Rowling")
	potter.ID = 2

	return []*Book{crocodile, potter}
}

// Validate validates the book data
func (b *Book) Validate() error {
	if b.ID <= 0 {
		return fmt.Errorf("book ID must be a positive integer")
	}

	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("book title is required")
	}

	if strings.TrimSpace(b.Author) == "" {
		return fmt.Errorf("book author is required")
	}

	return nil
}

// Clone returns a copy that shares no maps with the receiver
func (b *Book) Clone() *Book {
	clone := *b
	clone.Extra = make(map[string]any, len(b.Extra))
	for k, v := range b.Extra {
		clone.Extra[k] = v
	}
	return &clone
}

// Merge rejects edits that would blank out a required field
var (
	ErrInvalidTitle  = errors.New("book title must be a non-empty string")
	ErrInvalidAuthor = errors.New("book author must be a non-empty string")
)

// Merge shallow-merges client fields over the record and returns the result.
// A client-supplied id is discarded; title and author, when present, must be
// non-empty strings.
func (b *Book) Merge(fields map[string]any) (*Book, error) {
	merged := b.Clone()

	for key, value := range fields {
		switch key {
		case FieldID:
			continue
		case FieldTitle:
			title, ok := value.(string)
			if !ok || strings.TrimSpace(title) == "" {
				return nil, ErrInvalidTitle
			}
			merged.Title = title
		case FieldAuthor:
			author, ok := value.(string)
			if !ok || strings.TrimSpace(author) == "" {
				return nil, ErrInvalidAuthor
			}
			merged.Author = author
		default:
			merged.Extra[key] = value
		}
	}

	merged.UpdateTimestamp()
	return merged, nil
}

// UpdateTimestamp updates the UpdatedAt field to current time
func (b *Book) UpdateTimestamp() {
	b.UpdatedAt = time.Now()
}

// Fields returns the flattened representation used on the wire
func (b *Book) Fields() map[string]any {
	out := make(map[string]any, len(b.Extra)+3)
	for k, v := range b.Extra {
		out[k] = v
	}
	out[FieldID] = b.ID
	out[FieldTitle] = b.Title
	out[FieldAuthor] = b.Author
	return out
}

// MarshalJSON flattens Extra next to the named fields
func (b Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Fields())
}

// ErrNotObject reports a well-formed JSON body whose value is not an object
var ErrNotObject = errors.New("JSON value is not an object")

// DecodeFields decodes a JSON object keeping numbers as json.Number so that
// client values are stored verbatim. A well-formed array, string, number or
// boolean yields ErrNotObject; null and syntax errors are plain failures.
func DecodeFields(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("failed to decode JSON object: %w", err)
	}

	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case nil:
		return nil, fmt.Errorf("failed to decode JSON object: body is null")
	default:
		return nil, ErrNotObject
	}
}
