// Package bookapi is the canonical mapping between wire values and the book
// domain. Every protocol adapter parses ids and dates and renders records
// through it, so they all agree on formats and error kinds.
package bookapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/server/models"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
)

// DatePolicy decides what an update does with an absent publication date.
type DatePolicy int

const (
	ClearDateWhenAbsent DatePolicy = iota
	KeepDateWhenAbsent
)

// ParseID accepts a base-10 int64, surrounding spaces allowed.
func ParseID(text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", text, common.ErrorInvalidID)
	}
	return id, nil
}

// ParseDate returns nil for "" and rejects anything but a full valid
// YYYY-MM-DD calendar date.
func ParseDate(text string) (*time.Time, error) {
	if text == "" {
		return nil, nil
	}
	d, err := time.Parse(common.DateLayout, text)
	if err != nil {
		return nil, fmt.Errorf("publication date %q: %w", text, common.ErrorValidation)
	}
	return &d, nil
}

// FormatDate renders nil as nil, never as "".
func FormatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(common.DateLayout)
	return &s
}

// Input is the wire shape of the four content fields. PublicationDate is
// still text here.
type Input struct {
	Title           *string
	Price           *float64
	Author          *string
	PublicationDate *string
}

// Fields validates the input and converts it for the book service.
func (in Input) Fields(policy DatePolicy) (services.BookFields, error) {
	f := services.BookFields{
		Title:               in.Title,
		Price:               in.Price,
		Author:              in.Author,
		KeepPublicationDate: policy == KeepDateWhenAbsent,
	}
	if in.PublicationDate != nil {
		d, err := ParseDate(*in.PublicationDate)
		if err != nil {
			return services.BookFields{}, err
		}
		f.PublicationDate = d
	}
	return f, nil
}

// View is a record ready for serialization; absent fields stay nil.
type View struct {
	ID              *int64   `json:"id,omitempty"`
	Title           *string  `json:"title,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Author          *string  `json:"author,omitempty"`
	PublicationDate *string  `json:"publicationDate,omitempty"`
}

func ViewOf(b *models.Book) View {
	if b == nil {
		return View{}
	}
	return View{
		ID:              b.ID,
		Title:           b.Title,
		Price:           b.Price,
		Author:          b.Author,
		PublicationDate: FormatDate(b.PublicationDate),
	}
}

func ViewsOf(list []*models.Book) []View {
	views := make([]View, 0, len(list))
	for _, b := range list {
		views = append(views, ViewOf(b))
	}
	return views
}

// NotFoundMessage is the text clients see for a missing id.
func NotFoundMessage(id int64) string {
	return fmt.Sprintf("Book not found with id: %d", id)
}

// NotFoundError names the missing id and matches common.ErrorNotFound.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string { return NotFoundMessage(e.ID) }
func (e NotFoundError) Unwrap() error { return common.ErrorNotFound }

// Lookup replaces a bare not-found from the service with a NotFoundError
// carrying id; other errors pass through.
func Lookup(id int64, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return NotFoundError{ID: id}
	}
	return err
}

// FoundMessage summarizes a list result.
func FoundMessage(n int) string {
	return fmt.Sprintf("Found %d book(s)", n)
}
