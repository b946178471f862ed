package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/storekeeper/internal/server/storage"
)

var _ storage.DocumentStorage = (*Storage)(nil)

// List возвращает документы коллекции в порядке создания и ревизию,
// прочитанные в одной транзакции
func (s *Storage) List(ctx context.Context, collection string) (docs []*storage.Document, rev int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rev, err = revision(ctx, tx, collection)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT collection, id, body, seq, created_at, updated_at
		FROM documents
		WHERE collection = ?
		ORDER BY seq ASC
	`

	rows, err := tx.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	docs = make([]*storage.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, rev, nil
}

// Get возвращает один документ
func (s *Storage) Get(ctx context.Context, collection, id string) (*storage.Document, error) {
	query := `
		SELECT collection, id, body, seq, created_at, updated_at
		FROM documents
		WHERE collection = ? AND id = ?
	`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Create добавляет документ и возвращает новую ревизию коллекции
func (s *Storage) Create(ctx context.Context, doc *storage.Document) (int64, error) {
	return s.mutate(ctx, doc.Collection, func(tx *sql.Tx, rev int64, now time.Time) error {
		query := `
			INSERT INTO documents (collection, id, body, seq, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, query,
			doc.Collection,
			doc.ID,
			[]byte(doc.Body),
			rev,
			now.UnixMilli(),
			now.UnixMilli(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrEntryExists
			}
			return fmt.Errorf("failed to insert document: %w", err)
		}

		doc.Seq = rev
		doc.CreatedAt = now
		doc.UpdatedAt = now
		return nil
	})
}

// Update заменяет тело документа и возвращает новую ревизию коллекции
func (s *Storage) Update(ctx context.Context, doc *storage.Document) (int64, error) {
	return s.mutate(ctx, doc.Collection, func(tx *sql.Tx, _ int64, now time.Time) error {
		query := `
			UPDATE documents
			SET body = ?, updated_at = ?
			WHERE collection = ? AND id = ?
		`
		result, err := tx.ExecContext(ctx, query, []byte(doc.Body), now.UnixMilli(), doc.Collection, doc.ID)
		if err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		if err := requireAffected(result); err != nil {
			return err
		}

		doc.UpdatedAt = now
		return nil
	})
}

// Delete удаляет документ и возвращает новую ревизию коллекции
func (s *Storage) Delete(ctx context.Context, collection, id string) (int64, error) {
	return s.mutate(ctx, collection, func(tx *sql.Tx, _ int64, _ time.Time) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
		if err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		return requireAffected(result)
	})
}

// Revision текущая ревизия коллекции (0 - коллекция не изменялась)
func (s *Storage) Revision(ctx context.Context, collection string) (int64, error) {
	return revision(ctx, s.db, collection)
}

// mutate выполняет изменение и увеличение ревизии в одной транзакции.
// При ошибке fn ревизия не меняется.
func (s *Storage) mutate(ctx context.Context, collection string, fn func(tx *sql.Tx, rev int64, now time.Time) error) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := s.now()
	var rev int64
	query := `
		INSERT INTO collection_revisions (collection, revision, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT(collection) DO UPDATE
		SET revision = revision + 1, updated_at = excluded.updated_at
		RETURNING revision
	`
	if err := tx.QueryRowContext(ctx, query, collection, now.UnixMilli()).Scan(&rev); err != nil {
		return 0, fmt.Errorf("failed to bump revision: %w", err)
	}

	if err := fn(tx, rev, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rev, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func revision(ctx context.Context, q queryer, collection string) (int64, error) {
	var rev int64
	err := q.QueryRowContext(ctx, `SELECT revision FROM collection_revisions WHERE collection = ?`, collection).Scan(&rev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get revision: %w", err)
	}
	return rev, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*storage.Document, error) {
	doc := &storage.Document{}
	var body []byte
	var createdAt, updatedAt int64

	if err := row.Scan(&doc.Collection, &doc.ID, &body, &doc.Seq, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.Body = body
	doc.CreatedAt = time.UnixMilli(createdAt)
	doc.UpdatedAt = time.UnixMilli(updatedAt)
	return doc, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrEntryNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
