package books

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/server/models"
)

// MemoryRepository keeps books in a map guarded by a RWMutex. Ids come from a
// counter starting at 1 and are never reused, so a deleted id stays invalid.
type MemoryRepository struct {
	mu     sync.RWMutex
	lastID int64
	rows   map[int64]*models.Book
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[int64]*models.Book)}
}

func (r *MemoryRepository) Save(_ context.Context, book *models.Book) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := book.Clone()
	if saved.IsTransient() {
		r.lastID++
		id := r.lastID
		saved.ID = &id
	} else if _, ok := r.rows[*saved.ID]; !ok {
		return nil, common.ErrorNotFound
	}

	r.rows[*saved.ID] = saved
	return saved.Clone(), nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return book.Clone(), nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]*models.Book, error) {
	return r.filter(func(*models.Book) bool { return true }), nil
}

func (r *MemoryRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rows[id]
	return ok, nil
}

func (r *MemoryRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, id)
	return nil
}

func (r *MemoryRepository) FindByTitleContainingIgnoreCase(_ context.Context, fragment string) ([]*models.Book, error) {
	return r.filter(func(b *models.Book) bool { return containsFold(b.Title, fragment) }), nil
}

func (r *MemoryRepository) FindByAuthorContainingIgnoreCase(_ context.Context, fragment string) ([]*models.Book, error) {
	return r.filter(func(b *models.Book) bool { return containsFold(b.Author, fragment) }), nil
}

func (r *MemoryRepository) filter(keep func(*models.Book) bool) []*models.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Book, 0, len(r.rows))
	for _, id := range slices.Sorted(maps.Keys(r.rows)) {
		if b := r.rows[id]; keep(b) {
			result = append(result, b.Clone())
		}
	}
	return result
}

func containsFold(value *string, fragment string) bool {
	if fragment == "" {
		return true
	}
	if value == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*value), strings.ToLower(fragment))
}
