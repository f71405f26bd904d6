// Package sqlite implementa repository.BillStore sobre SQLite (driver Go puro, sin CGO).
// Pensado para despliegues embebidos y pruebas de integración.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // driver "sqlite"

	"github.com/jhoicas/bill-detail/internal/domain/repository"
)

var (
	_ repository.BillStore = (*Store)(nil)
	_ repository.Seeder    = (*Store)(nil)
)

// Store envuelve la base de datos.
type Store struct {
	db *sql.DB
}

// New abre (o crea) la base en path, activa las claves foráneas y aplica el esquema.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de la base: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// Open reserva una conexión dedicada; Close la devuelve al pool de database/sql.
func (s *Store) Open(ctx context.Context) (repository.BillSession, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("reservar conexión: %w", err)
	}
	return &session{billRepo: billRepo{q: conn}, conn: conn}, nil
}

// Seed ejecuta fn dentro de una transacción.
func (s *Store) Seed(ctx context.Context, fn func(w repository.BillWriter) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&billRepo{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type session struct {
	billRepo
	conn *sql.Conn
}

func (s *session) Close() error {
	return s.conn.Close()
}
