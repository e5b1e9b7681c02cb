// Package store persists the shop state as JSON records in a SQL table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"printbazar/m/internal/apperr"
)

type Key string

const (
	KeySession    Key = "pm_user"
	KeyCart       Key = "pm_cart"
	KeyOrders     Key = "pm_orders"
	KeyStock      Key = "pm_stock"
	KeyExpenses   Key = "pm_expenses"
	KeyProducts   Key = "pm_products"
	KeyCategories Key = "pm_categories"
)

// Keys lists every record in save order.
var Keys = []Key{KeySession, KeyCart, KeyOrders, KeyStock, KeyExpenses, KeyProducts, KeyCategories}

type Store struct {
	db  *sqlx.DB
	Now func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, Now: time.Now}
}

// Load decodes the record into dst. It reports false when the record does
// not exist, and a CorruptState error when the stored text does not fit dst.
func (s *Store) Load(ctx context.Context, key Key, dst any) (bool, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, s.db.Rebind(`SELECT value FROM kv_records WHERE record_key = ?`), string(key))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, apperr.CorruptStateErr("stored "+string(key)+" is unreadable", err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key Key, v any) error {
	return s.SaveAll(ctx, map[Key]any{key: v})
}

const upsert = `INSERT INTO kv_records (record_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// SaveAll writes the records in one transaction.
func (s *Store) SaveAll(ctx context.Context, records map[Key]any) error {
	encoded := make(map[Key]string, len(records))
	for k, v := range records {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", k, err)
		}
		encoded[k] = string(data)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	stmt, err := tx.PreparexContext(ctx, tx.Rebind(upsert))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare save: %w", err)
	}
	defer stmt.Close()

	now := s.Now().UTC()
	for k, data := range encoded {
		if _, err := stmt.ExecContext(ctx, string(k), data, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (s *Store) Delete(ctx context.Context, keys ...Key) error {
	for _, k := range keys {
		if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM kv_records WHERE record_key = ?`), string(k)); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}

// Empty reports whether no record has been written yet.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM kv_records`); err != nil {
		return false, err
	}
	return n == 0, nil
}
