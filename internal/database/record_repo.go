package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/foxxcyber/fridgelist/internal/storage"
)

var _ storage.Backend = (*DB)(nil)

// GetRecord returns the JSON value stored for owner and key
func (db *DB) GetRecord(ctx context.Context, owner, key string) ([]byte, error) {
	var value []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT value FROM records WHERE owner = $1 AND key = $2
	`, owner, key).Scan(&value)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, err
	}

	return value, nil
}

// PutRecord inserts or replaces the value for owner and key
func (db *DB) PutRecord(ctx context.Context, owner, key string, value []byte) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO records (owner, key, value, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (owner, key) DO UPDATE SET value = $3, updated_at = NOW()
	`, owner, key, value)
	return err
}

// DeleteRecord removes the value for owner and key
func (db *DB) DeleteRecord(ctx context.Context, owner, key string) error {
	_, err := db.Pool.Exec(ctx, `
		DELETE FROM records WHERE owner = $1 AND key = $2
	`, owner, key)
	return err
}
