package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lakeshore_hotel/internal/domain"
)

// DefaultPageSize is how many records one Fetch returns at most.
const DefaultPageSize = 1000

// Store is a read-only content store over the collection_items table.
type Store struct {
	db       *sql.DB
	pageSize int
}

func New(db *sql.DB) *Store { return &Store{db: db, pageSize: DefaultPageSize} }

// WithPageSize returns a copy of the store reading at most n records per Fetch.
func (s *Store) WithPageSize(n int) *Store {
	cp := *s
	if n > 0 {
		cp.pageSize = n
	}
	return &cp
}

// Open connects and pings the database.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return New(db), nil
}

func (s *Store) Name() string { return "mysql" }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Fetch(ctx context.Context, col domain.CollectionID) (domain.RawPage, error) {
	var one int
	err := s.db.QueryRowContext(ctx, collectionExistsSQL, string(col)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RawPage{}, domain.NotFound(col)
	}
	if err != nil {
		return domain.RawPage{}, domain.Transient(col, err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countItemsSQL, string(col)).Scan(&total); err != nil {
		return domain.RawPage{}, domain.Transient(col, err)
	}

	rows, err := s.db.QueryContext(ctx, listItemsSQL, string(col), s.pageSize)
	if err != nil {
		return domain.RawPage{}, domain.Transient(col, err)
	}
	defer rows.Close()

	items := make([]map[string]any, 0, min(total, s.pageSize))
	for rows.Next() {
		var (
			id               string
			data             []byte
			created, updated sql.NullTime
		)
		if err := rows.Scan(&id, &data, &created, &updated); err != nil {
			return domain.RawPage{}, domain.Transient(col, err)
		}
		m, err := rowRecord(id, data, created, updated)
		if err != nil {
			return domain.RawPage{}, domain.Malformed(col, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return domain.RawPage{}, domain.Transient(col, err)
	}
	if total < len(items) {
		total = len(items)
	}
	return domain.RawPage{Items: items, TotalCount: total}, nil
}

// rowRecord merges the row's columns into its JSON document. Columns win
// for the id; timestamps only fill in what the document lacks.
func rowRecord(id string, data []byte, created, updated sql.NullTime) (map[string]any, error) {
	m := map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("item %s: %w", id, err)
		}
		if m == nil {
			m = map[string]any{}
		}
	}
	m["_id"] = id
	if _, ok := m["_createdDate"]; !ok && created.Valid {
		m["_createdDate"] = created.Time.UTC().Format(time.RFC3339Nano)
	}
	if _, ok := m["_updatedDate"]; !ok && updated.Valid {
		m["_updatedDate"] = updated.Time.UTC().Format(time.RFC3339Nano)
	}
	return m, nil
}
