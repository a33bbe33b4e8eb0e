// Package books provides the storage contract for catalog records together
// with a PostgreSQL and an in-memory implementation.
package books

import (
	"context"

	"github.com/dmitrijs2005/bookhub/internal/server/models"
)

// Repository is the storage contract consumed by the book service.
//
// FindByID and Save (for an existing id) return common.ErrorNotFound when no
// row matches. Listing methods return records ordered by id.
type Repository interface {
	Save(ctx context.Context, book *models.Book) (*models.Book, error)
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	FindAll(ctx context.Context) ([]*models.Book, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	FindByTitleContainingIgnoreCase(ctx context.Context, fragment string) ([]*models.Book, error)
	FindByAuthorContainingIgnoreCase(ctx context.Context, fragment string) ([]*models.Book, error)
}
