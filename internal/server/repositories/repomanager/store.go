package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookhub/internal/dbx"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/books"
)

// Store hands out a read repository and runs units of work atomically.
type Store interface {
	Books() books.Repository
	WithTx(ctx context.Context, fn func(ctx context.Context, repo books.Repository) error) error
	Close() error
}

// PostgresStore runs every unit of work in its own database transaction.
type PostgresStore struct {
	db      *sql.DB
	manager RepositoryManager
}

func NewPostgresStore(db *sql.DB, m RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, manager: m}
}

// OpenPostgresStore opens the pool with the pgx driver and migrates the schema.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return NewPostgresStore(db, m), nil
}

func (s *PostgresStore) Books() books.Repository {
	return s.manager.Books(s.db)
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(ctx context.Context, repo books.Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.manager.Books(tx))
	})
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// MemoryStore serializes units of work over a MemoryRepository. It does not
// roll back: a unit of work that fails halfway keeps its earlier writes.
type MemoryStore struct {
	mu   sync.Mutex
	repo *books.MemoryRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{repo: books.NewMemoryRepository()}
}

func (s *MemoryStore) Books() books.Repository {
	return s.repo
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, repo books.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, s.repo)
}

func (s *MemoryStore) Close() error {
	return nil
}
