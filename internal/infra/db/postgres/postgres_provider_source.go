package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.CatalogSource = (*PostgresProviderSource)(nil)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

const undefinedTable = "42P01"

// PostgresProviderSource reads the catalog from the providers table. Rows
// come back in display order.
type PostgresProviderSource struct {
	db Querier
}

func NewPostgresProviderSource(db Querier) *PostgresProviderSource {
	return &PostgresProviderSource{db: db}
}

func (s *PostgresProviderSource) Locator() string { return "postgres:providers" }

func (s *PostgresProviderSource) Fetch(ctx context.Context) ([]*model.Plan, error) {
	const sql = `
SELECT id, name, domain, logo, COALESCE(description, ''), base, only12
  FROM providers
 WHERE active
 ORDER BY position, id;
`
	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
			return nil, fmt.Errorf("providers table missing, apply deploy/postgres/init.sql: %w", err)
		}
		return nil, fmt.Errorf("query providers: %w", err)
	}
	defer rows.Close()

	var records []model.ProviderRecord
	for rows.Next() {
		var r model.ProviderRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Domain, &r.Logo, &r.Description, &r.Base, &r.Only12); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate providers: %w", err)
	}
	return model.PlansFromRecords(records)
}
