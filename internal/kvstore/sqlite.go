package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps a migrated database (see database.OpenSQLite).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_slots WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		err := fmt.Errorf("could not read slot %s: %w", key, err)
		log.Error(err)
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT (key) DO UPDATE SET
					value = excluded.value,
					updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not write slot %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_slots WHERE key = ?", key)
	if err != nil {
		err := fmt.Errorf("could not delete slot %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLite) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv_slots ORDER BY key")
	if err != nil {
		err := fmt.Errorf("could not list slots: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			err := fmt.Errorf("could not scan slot key: %w", err)
			log.Error(err)
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return keys, nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_slots"); err != nil {
		err := fmt.Errorf("could not clear slots: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
