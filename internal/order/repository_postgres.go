package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresHistoryRepository stores each history as one JSON document in
// the kv_store table.
type PostgresHistoryRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHistoryRepository(db *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

func (r *PostgresHistoryRepository) Load(ctx context.Context, key string) ([]Order, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`, key).Scan(&raw)

	if errors.Is(err, pgx.ErrNoRows) {
		return []Order{}, nil
	}
	if err != nil {
		return nil, err
	}

	return decodeHistory(raw)
}

func (r *PostgresHistoryRepository) Save(ctx context.Context, key string, orders []Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, raw)

	return err
}

func (r *PostgresHistoryRepository) LoadAll(ctx context.Context, prefix string) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT value
		FROM kv_store
		WHERE key LIKE $1 || '%'
		ORDER BY key
	`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := []Order{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		orders, err := decodeHistory(raw)
		if err != nil {
			return nil, err
		}
		all = append(all, orders...)
	}
	return all, rows.Err()
}

func decodeHistory(raw []byte) ([]Order, error) {
	orders := []Order{}
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return orders, nil
}
