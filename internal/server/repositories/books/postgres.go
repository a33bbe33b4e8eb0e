package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/dbx"
	"github.com/dmitrijs2005/bookhub/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, title, price, author, date_pub FROM books`

// Save inserts a transient book and returns it with the generated id, or
// overwrites every content column of an existing one.
func (r *PostgresRepository) Save(ctx context.Context, book *models.Book) (*models.Book, error) {
	saved := book.Clone()

	if saved.IsTransient() {
		query :=
			`INSERT INTO books (title, price, author, date_pub)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id
			 `
		var id int64
		err := r.db.QueryRowContext(ctx, query,
			saved.Title, saved.Price, saved.Author, saved.PublicationDate).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		saved.ID = &id
		return saved, nil
	}

	query :=
		`UPDATE books SET title = $1, price = $2, author = $3, date_pub = $4
		 WHERE id = $5
		 `
	res, err := r.db.ExecContext(ctx, query,
		saved.Title, saved.Price, saved.Author, saved.PublicationDate, *saved.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return saved, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Book, error) {
	return r.query(ctx, selectColumns+` ORDER BY id`)
}

func (r *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// An empty fragment matches every row, including rows where the column is NULL.
func (r *PostgresRepository) FindByTitleContainingIgnoreCase(ctx context.Context, fragment string) ([]*models.Book, error) {
	return r.query(ctx, selectColumns+` WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' ESCAPE '\') ORDER BY id`,
		escapeLike(fragment))
}

func (r *PostgresRepository) FindByAuthorContainingIgnoreCase(ctx context.Context, fragment string) ([]*models.Book, error) {
	return r.query(ctx, selectColumns+` WHERE ($1 = '' OR author ILIKE '%' || $1 || '%' ESCAPE '\') ORDER BY id`,
		escapeLike(fragment))
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select books: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (*models.Book, error) {
	var (
		id      int64
		title   sql.NullString
		price   sql.NullFloat64
		author  sql.NullString
		datePub sql.NullTime
	)
	if err := s.Scan(&id, &title, &price, &author, &datePub); err != nil {
		return nil, err
	}

	book := &models.Book{ID: &id}
	if title.Valid {
		book.Title = &title.String
	}
	if price.Valid {
		book.Price = &price.Float64
	}
	if author.Valid {
		book.Author = &author.String
	}
	if datePub.Valid {
		d := time.Date(datePub.Time.Year(), datePub.Time.Month(), datePub.Time.Day(), 0, 0, 0, 0, time.UTC)
		book.PublicationDate = &d
	}
	return book, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
