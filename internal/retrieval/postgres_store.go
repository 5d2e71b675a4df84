package retrieval

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS retrieval_records (
  seq BIGSERIAL PRIMARY KEY,
  id TEXT NOT NULL UNIQUE,
  type TEXT NOT NULL,
  document TEXT NOT NULL,
  metadata JSONB NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS idx_retrieval_records_type ON retrieval_records (type);
`

// PostgresStore keeps records in a single table. Search loads candidate rows
// whose document contains at least one query term and ranks them in process.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

// NewPostgresStore opens dsn with the pgx driver and creates the table if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping record store: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		if _, err := s.db.ExecContext(ctx, recordsSchema); err != nil {
			s.schemaErr = fmt.Errorf("create record schema: %w", err)
		}
	})
	return s.schemaErr
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) Put(ctx context.Context, records ...Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range records {
		meta, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata for %s: %w", r.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO retrieval_records (id, type, document, metadata)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET type = EXCLUDED.type, document = EXCLUDED.document, metadata = EXCLUDED.metadata`,
			r.ID, string(r.Type), r.Document, string(meta))
		if err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) ByType(ctx context.Context, t RecordType, limit int) ([]Record, error) {
	q := `SELECT id, type, document, metadata FROM retrieval_records WHERE type = $1 ORDER BY seq DESC`
	args := []any{string(t)}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records by type: %w", err)
	}
	return scanRecords(rows)
}

func (s *PostgresStore) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	qt := terms(query)
	if len(qt) == 0 {
		return []Record{}, nil
	}
	clauses := make([]string, len(qt))
	args := make([]any, len(qt))
	for i, t := range qt {
		clauses[i] = fmt.Sprintf("position($%d in lower(document)) > 0", i+1)
		args[i] = t
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, document, metadata FROM retrieval_records WHERE `+strings.Join(clauses, " OR ")+` ORDER BY seq`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	recs, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return rank(recs, query, limit), nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM retrieval_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM retrieval_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		var (
			r    Record
			typ  string
			meta []byte
		)
		if err := rows.Scan(&r.ID, &typ, &r.Document, &meta); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Type = RecordType(typ)
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &r.Metadata); err != nil {
				return nil, fmt.Errorf("decode metadata for %s: %w", r.ID, err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
