package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.db.QueryRow(ctx, "SELECT value::text FROM kv_slots WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		err := fmt.Errorf("could not read slot %s: %w", key, err)
		log.Error(err)
		return nil, false, err
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2::jsonb, now())
				ON CONFLICT (key) DO UPDATE SET
					value = EXCLUDED.value,
					updated_at = EXCLUDED.updated_at`
	_, err := p.db.Exec(ctx, query, key, string(value))
	if err != nil {
		err := fmt.Errorf("could not write slot %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.db.Exec(ctx, "DELETE FROM kv_slots WHERE key = $1", key)
	if err != nil {
		err := fmt.Errorf("could not delete slot %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (p *Postgres) Keys(ctx context.Context) ([]string, error) {
	rows, err := p.db.Query(ctx, "SELECT key FROM kv_slots ORDER BY key")
	if err != nil {
		err := fmt.Errorf("could not list slots: %w", err)
		log.Error(err)
		return nil, err
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		err := fmt.Errorf("could not collect slot keys: %w", err)
		log.Error(err)
		return nil, err
	}
	return keys, nil
}

func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, "DELETE FROM kv_slots"); err != nil {
		err := fmt.Errorf("could not clear slots: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
