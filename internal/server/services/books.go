// Package services contains server-side business logic shared by every
// protocol adapter: the book catalog service and the client directory.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/server/models"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/repomanager"
)

// BookFields carries the four content fields of a create or update call.
type BookFields struct {
	Title           *string
	Price           *float64
	Author          *string
	PublicationDate *time.Time

	// KeepPublicationDate makes Update leave the stored date alone when
	// PublicationDate is nil instead of clearing it.
	KeepPublicationDate bool
}

// BookService owns create/read/update/delete over catalog records. It adds no
// rules beyond presence checks; every mutation is one unit of work.
type BookService struct {
	store repomanager.Store
}

func NewBookService(store repomanager.Store) *BookService {
	return &BookService{store: store}
}

// Create persists a new record; the id is assigned by storage.
func (s *BookService) Create(ctx context.Context, f BookFields) (*models.Book, error) {
	var created *models.Book
	err := s.store.WithTx(ctx, func(ctx context.Context, repo books.Repository) error {
		b, err := repo.Save(ctx, &models.Book{
			Title:           f.Title,
			Price:           f.Price,
			Author:          f.Author,
			PublicationDate: f.PublicationDate,
		})
		created = b
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating book: %w", err)
	}
	return created, nil
}

// Get returns common.ErrorNotFound when no record has the id.
func (s *BookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	b, err := s.store.Books().FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(id, err)
	}
	return b, nil
}

func (s *BookService) List(ctx context.Context) ([]*models.Book, error) {
	list, err := s.store.Books().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}
	return list, nil
}

// Update replaces the content fields of an existing record. The id is never touched.
func (s *BookService) Update(ctx context.Context, id int64, f BookFields) (*models.Book, error) {
	var updated *models.Book
	err := s.store.WithTx(ctx, func(ctx context.Context, repo books.Repository) error {
		b, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		b.Title = f.Title
		b.Price = f.Price
		b.Author = f.Author
		if f.PublicationDate != nil || !f.KeepPublicationDate {
			b.PublicationDate = f.PublicationDate
		}

		updated, err = repo.Save(ctx, b)
		return err
	})
	if err != nil {
		return nil, wrapLookup(id, err)
	}
	return updated, nil
}

// Delete reports whether a record existed and was removed. A missing id is
// not an error.
func (s *BookService) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.store.WithTx(ctx, func(ctx context.Context, repo books.Repository) error {
		exists, err := repo.ExistsByID(ctx, id)
		if err != nil || !exists {
			return err
		}
		if err := repo.DeleteByID(ctx, id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("error deleting book %d: %w", id, err)
	}
	return deleted, nil
}

// FindByTitleContains matches case-insensitively; "" matches everything.
func (s *BookService) FindByTitleContains(ctx context.Context, fragment string) ([]*models.Book, error) {
	list, err := s.store.Books().FindByTitleContainingIgnoreCase(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("error searching books by title: %w", err)
	}
	return list, nil
}

// FindByAuthorContains matches case-insensitively; "" matches everything.
func (s *BookService) FindByAuthorContains(ctx context.Context, fragment string) ([]*models.Book, error) {
	list, err := s.store.Books().FindByAuthorContainingIgnoreCase(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("error searching books by author: %w", err)
	}
	return list, nil
}

func wrapLookup(id int64, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("book %d: %w", id, common.ErrorNotFound)
	}
	return fmt.Errorf("error loading book %d: %w", id, err)
}
