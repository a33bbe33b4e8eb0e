package graphqlapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/bookapi"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/models"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
	"github.com/graph-gophers/graphql-go"
)

// Resolver is the root of both Query and Mutation.
type Resolver struct {
	books   *services.BookService
	logger  logging.Logger
	metrics *metrics.Recorder
}

type bookInput struct {
	Title           *string
	Price           *float64
	Author          *string
	PublicationDate *string
}

func (in bookInput) fields() (services.BookFields, error) {
	return bookapi.Input{
		Title:           in.Title,
		Price:           in.Price,
		Author:          in.Author,
		PublicationDate: in.PublicationDate,
	}.Fields(bookapi.ClearDateWhenAbsent)
}

func (r *Resolver) observe(ctx context.Context, op string, err error) {
	r.metrics.Observe("graphql", op, err)
	if err != nil && metrics.Outcome(err) == metrics.OutcomeError {
		r.logger.Error(ctx, "GraphQL resolver failed", "operation", op, "error", err)
	}
}

// public hides storage details from clients; client-caused errors pass through.
func public(err error) error {
	if metrics.Outcome(err) == metrics.OutcomeError {
		return common.ErrorInternal
	}
	return err
}

// --- queries ---

func (r *Resolver) Books(ctx context.Context) ([]*bookResolver, error) {
	list, err := r.books.List(ctx)
	r.observe(ctx, "books", err)
	if err != nil {
		return nil, public(err)
	}
	return wrap(list), nil
}

// Book degrades to null for an id that is not a number or not stored.
func (r *Resolver) Book(ctx context.Context, args struct{ ID graphql.ID }) (*bookResolver, error) {
	id, err := bookapi.ParseID(string(args.ID))
	if err != nil {
		r.observe(ctx, "book", err)
		return nil, nil
	}

	b, err := r.books.Get(ctx, id)
	r.observe(ctx, "book", err)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, public(err)
	}
	return &bookResolver{b: b}, nil
}

func (r *Resolver) BooksByTitle(ctx context.Context, args struct{ Title string }) ([]*bookResolver, error) {
	list, err := r.books.FindByTitleContains(ctx, args.Title)
	r.observe(ctx, "booksByTitle", err)
	if err != nil {
		return nil, public(err)
	}
	return wrap(list), nil
}

func (r *Resolver) BooksByAuthor(ctx context.Context, args struct{ Author string }) ([]*bookResolver, error) {
	list, err := r.books.FindByAuthorContains(ctx, args.Author)
	r.observe(ctx, "booksByAuthor", err)
	if err != nil {
		return nil, public(err)
	}
	return wrap(list), nil
}

// --- mutations ---

func (r *Resolver) CreateBook(ctx context.Context, args struct{ Input bookInput }) (*bookResolver, error) {
	b, err := r.createBook(ctx, args.Input)
	r.observe(ctx, "createBook", err)
	if err != nil {
		return nil, public(err)
	}
	return &bookResolver{b: b}, nil
}

func (r *Resolver) createBook(ctx context.Context, in bookInput) (*models.Book, error) {
	fields, err := in.fields()
	if err != nil {
		return nil, err
	}
	return r.books.Create(ctx, fields)
}

func (r *Resolver) UpdateBook(ctx context.Context, args struct {
	ID    graphql.ID
	Input bookInput
}) (*bookResolver, error) {
	b, err := r.updateBook(ctx, string(args.ID), args.Input)
	r.observe(ctx, "updateBook", err)
	if err != nil {
		return nil, public(err)
	}
	return &bookResolver{b: b}, nil
}

func (r *Resolver) updateBook(ctx context.Context, rawID string, in bookInput) (*models.Book, error) {
	id, err := bookapi.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	fields, err := in.fields()
	if err != nil {
		return nil, err
	}
	b, err := r.books.Update(ctx, id, fields)
	if err != nil {
		return nil, bookapi.Lookup(id, err)
	}
	return b, nil
}

// DeleteBook is false, not an error, when nothing was stored under the id.
func (r *Resolver) DeleteBook(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	id, err := bookapi.ParseID(string(args.ID))
	if err != nil {
		r.observe(ctx, "deleteBook", err)
		return false, err
	}

	ok, err := r.books.Delete(ctx, id)
	r.observe(ctx, "deleteBook", err)
	if err != nil {
		return false, public(err)
	}
	return ok, nil
}

// --- Book ---

type bookResolver struct {
	b *models.Book
}

func wrap(list []*models.Book) []*bookResolver {
	out := make([]*bookResolver, 0, len(list))
	for _, b := range list {
		out = append(out, &bookResolver{b: b})
	}
	return out
}

func (br *bookResolver) ID() graphql.ID {
	if br.b.ID == nil {
		return ""
	}
	return graphql.ID(fmt.Sprint(*br.b.ID))
}

func (br *bookResolver) Title() *string  { return br.b.Title }
func (br *bookResolver) Price() *float64 { return br.b.Price }
func (br *bookResolver) Author() *string { return br.b.Author }

// PublicationDate formats the stored date, or null when there is none.
func (br *bookResolver) PublicationDate() *string {
	return bookapi.FormatDate(br.b.PublicationDate)
}
