package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const cartSchema = `CREATE TABLE IF NOT EXISTS carts (
	cart_key   TEXT PRIMARY KEY,
	items      TEXT NOT NULL,
	updated_at BIGINT NOT NULL
)`

type cartRow struct {
	CartKey   string `db:"cart_key"`
	Items     string `db:"items"`
	UpdatedAt int64  `db:"updated_at"`
}

// SQLCartRepositoryImpl works against PostgreSQL and SQLite; queries are written with
// `?` placeholders and rebound for the driver.
type SQLCartRepositoryImpl struct {
	db *sqlx.DB
}

func CreateSQLCartRepository(ctx context.Context, db *sqlx.DB) (CartRepository, error) {
	if _, err := db.ExecContext(ctx, cartSchema); err != nil {
		log.Error().Err(err).Str("component", "CreateSQLCartRepository").Msg("")
		return nil, fmt.Errorf("create carts table: %w", err)
	}

	return &SQLCartRepositoryImpl{db: db}, nil
}

func (r *SQLCartRepositoryImpl) GetCart(ctx context.Context, key string) (items []domain.CartItem, found bool, err error) {
	var row cartRow
	err = r.db.GetContext(ctx, &row, r.db.Rebind("SELECT cart_key, items, updated_at FROM carts WHERE cart_key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Error().Err(err).Str("component", "SQLGetCart").Msg("")
		return nil, false, fmt.Errorf("select cart %s: %w", key, err)
	}

	items, err = decodeCartRecord([]byte(row.Items))
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (r *SQLCartRepositoryImpl) SaveCart(ctx context.Context, key string, items []domain.CartItem) (err error) {
	data, err := encodeCartRecord(items)
	if err != nil {
		return
	}

	row := cartRow{CartKey: key, Items: string(data), UpdatedAt: time.Now().Unix()}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO carts (cart_key, items, updated_at) VALUES (:cart_key, :items, :updated_at)
		ON CONFLICT (cart_key) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at`, row)
	if err != nil {
		log.Error().Err(err).Str("component", "SQLSaveCart").Msg("")
		return fmt.Errorf("upsert cart %s: %w", key, err)
	}
	return nil
}

func (r *SQLCartRepositoryImpl) DeleteCart(ctx context.Context, key string) (err error) {
	_, err = r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM carts WHERE cart_key = ?"), key)
	if err != nil {
		log.Error().Err(err).Str("component", "SQLDeleteCart").Msg("")
		return fmt.Errorf("delete cart %s: %w", key, err)
	}
	return nil
}

func (r *SQLCartRepositoryImpl) Close() error {
	return r.db.Close()
}
