package sqlite

import (
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/alimikegami/pos-microservices/storefront-service/config"
	"github.com/jmoiron/sqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// CreateDBInstance opens the cart database file at conf.Path. ":memory:" gives a
// throwaway database, used by tests.
func CreateDBInstance(conf config.SQLiteConfig) (*sqlx.DB, error) {
	sqlDB, err := otelsql.Open(driverName, conf.Path,
		otelsql.WithAttributes(semconv.DBSystemSqlite),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			DisableQuery: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %q: %w", conf.Path, err)
	}

	db := sqlx.NewDb(sqlDB, driverName)
	// modernc serializes writers; one connection also keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
