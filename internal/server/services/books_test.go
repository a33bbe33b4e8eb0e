package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/server/models"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newMemoryService(t *testing.T) *BookService {
	t.Helper()
	return NewBookService(repomanager.NewMemoryStore())
}

func duneFields() BookFields {
	return BookFields{Title: ptr("Dune"), Price: ptr(19.99), Author: ptr("Herbert"), PublicationDate: date(1965, 6, 1)}
}

func TestCreate_AssignsDistinctIDs(t *testing.T) {
	s := newMemoryService(t)
	ctx := context.Background()

	first, err := s.Create(ctx, duneFields())
	require.NoError(t, err)
	require.NotNil(t, first.ID)
	assert.Equal(t, int64(1), *first.ID)

	second, err := s.Create(ctx, BookFields{})
	require.NoError(t, err)
	require.NotNil(t, second.ID)
	assert.NotEqual(t, *first.ID, *second.ID)
	assert.Nil(t, second.Title, "no field is required")
}

func TestGet_NotFound(t *testing.T) {
	s := newMemoryService(t)

	_, err := s.Get(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_ReplacesFieldsAndKeepsID(t *testing.T) {
	s := newMemoryService(t)
	ctx := context.Background()
	b, err := s.Create(ctx, duneFields())
	require.NoError(t, err)

	got, err := s.Update(ctx, *b.ID, BookFields{Title: ptr("Dune Messiah")})
	require.NoError(t, err)

	assert.Equal(t, *b.ID, *got.ID)
	assert.Equal(t, "Dune Messiah", *got.Title)
	assert.Nil(t, got.Price)
	assert.Nil(t, got.Author)
	assert.Nil(t, got.PublicationDate, "date cleared when absent by default")
}

func TestUpdate_KeepPublicationDate(t *testing.T) {
	s := newMemoryService(t)
	ctx := context.Background()
	b, err := s.Create(ctx, duneFields())
	require.NoError(t, err)

	got, err := s.Update(ctx, *b.ID, BookFields{Title: ptr("Dune"), KeepPublicationDate: true})
	require.NoError(t, err)
	require.NotNil(t, got.PublicationDate)
	assert.True(t, got.PublicationDate.Equal(*date(1965, 6, 1)))

	got, err = s.Update(ctx, *b.ID, BookFields{PublicationDate: date(2000, 1, 2), KeepPublicationDate: true})
	require.NoError(t, err)
	assert.True(t, got.PublicationDate.Equal(*date(2000, 1, 2)), "a supplied date still replaces")
}

func TestUpdate_NotFound(t *testing.T) {
	s := newMemoryService(t)

	_, err := s.Update(context.Background(), 5, duneFields())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_ReportsAbsence(t *testing.T) {
	s := newMemoryService(t)
	ctx := context.Background()
	b, err := s.Create(ctx, duneFields())
	require.NoError(t, err)

	ok, err := s.Delete(ctx, *b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, *b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Get(ctx, *b.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListAndSearch(t *testing.T) {
	s := newMemoryService(t)
	ctx := context.Background()
	for _, f := range []BookFields{
		{Title: ptr("War and Peace"), Author: ptr("Tolstoy")},
		duneFields(),
		{Title: ptr("The Art of War"), Author: ptr("Sun Tzu")},
	} {
		_, err := s.Create(ctx, f)
		require.NoError(t, err)
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, b := range all {
		assert.Equal(t, int64(i+1), *b.ID, "storage order")
	}

	wars, err := s.FindByTitleContains(ctx, "war")
	require.NoError(t, err)
	assert.Len(t, wars, 2)

	everything, err := s.FindByTitleContains(ctx, "")
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	herbert, err := s.FindByAuthorContains(ctx, "HERB")
	require.NoError(t, err)
	require.Len(t, herbert, 1)
	assert.Equal(t, "Dune", *herbert[0].Title)
}

// --- failure paths ---

type failingRepo struct {
	books.Repository
	err error
}

func (f failingRepo) FindAll(context.Context) ([]*models.Book, error) { return nil, f.err }
func (f failingRepo) FindByID(context.Context, int64) (*models.Book, error) {
	return nil, f.err
}
func (f failingRepo) ExistsByID(context.Context, int64) (bool, error) { return false, f.err }
func (f failingRepo) FindByTitleContainingIgnoreCase(context.Context, string) ([]*models.Book, error) {
	return nil, f.err
}
func (f failingRepo) FindByAuthorContainingIgnoreCase(context.Context, string) ([]*models.Book, error) {
	return nil, f.err
}
func (f failingRepo) Save(context.Context, *models.Book) (*models.Book, error) { return nil, f.err }

type failingStore struct{ repo failingRepo }

func (s failingStore) Books() books.Repository { return s.repo }
func (s failingStore) WithTx(ctx context.Context, fn func(context.Context, books.Repository) error) error {
	return fn(ctx, s.repo)
}
func (s failingStore) Close() error { return nil }

func TestStorageFailuresAreWrapped(t *testing.T) {
	boom := errors.New("db down")
	s := NewBookService(failingStore{repo: failingRepo{err: boom}})
	ctx := context.Background()

	_, err := s.Create(ctx, BookFields{})
	assert.ErrorIs(t, err, boom)

	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, common.ErrorNotFound)

	_, err = s.List(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = s.Update(ctx, 1, BookFields{})
	assert.ErrorIs(t, err, boom)

	_, err = s.Delete(ctx, 1)
	assert.ErrorIs(t, err, boom)

	_, err = s.FindByTitleContains(ctx, "x")
	assert.ErrorIs(t, err, boom)

	_, err = s.FindByAuthorContains(ctx, "x")
	assert.ErrorIs(t, err, boom)
}

func TestDelete_RunsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`DELETE FROM books`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewBookService(repomanager.NewPostgresStore(db, repomanager.NewPostgresRepositoryManager()))
	ok, err := s.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_RollsBackWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM books WHERE id`).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "author", "date_pub"}))
	mock.ExpectRollback()

	s := NewBookService(repomanager.NewPostgresStore(db, repomanager.NewPostgresRepositoryManager()))
	_, err = s.Update(context.Background(), 4, BookFields{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
