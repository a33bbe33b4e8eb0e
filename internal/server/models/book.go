// Package models defines server-side data models persisted by the storage layer.
package models

import "time"

// Book is a catalog record. Every content field is optional; ID is nil until
// the storage layer persists the record and never changes afterwards.
type Book struct {
	ID              *int64
	Title           *string
	Price           *float64
	Author          *string
	PublicationDate *time.Time
}

// IsTransient reports whether the record has not been persisted yet.
func (b *Book) IsTransient() bool {
	return b == nil || b.ID == nil
}

// Clone returns a deep copy so callers never share pointers with storage.
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	c := &Book{}
	if b.ID != nil {
		id := *b.ID
		c.ID = &id
	}
	if b.Title != nil {
		v := *b.Title
		c.Title = &v
	}
	if b.Price != nil {
		v := *b.Price
		c.Price = &v
	}
	if b.Author != nil {
		v := *b.Author
		c.Author = &v
	}
	if b.PublicationDate != nil {
		v := *b.PublicationDate
		c.PublicationDate = &v
	}
	return c
}
