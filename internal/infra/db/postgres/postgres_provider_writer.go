package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/repository"
)

var _ repository.ProviderWriter = (*PostgresProviderWriter)(nil)

type PostgresProviderWriter struct {
	pool *pgxpool.Pool
}

func NewPostgresProviderWriter(pool *pgxpool.Pool) *PostgresProviderWriter {
	return &PostgresProviderWriter{pool: pool}
}

func (w *PostgresProviderWriter) ReplaceAll(ctx context.Context, tx repository.Tx, plans []*model.Plan) (int, error) {
	ex, err := getExecutor(w.pool, tx)
	if err != nil {
		return 0, err
	}

	const upsert = `
INSERT INTO providers (id, name, domain, logo, description, base, only12, position, active)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, TRUE)
ON CONFLICT (id) DO UPDATE
  SET name        = EXCLUDED.name,
      domain      = EXCLUDED.domain,
      logo        = EXCLUDED.logo,
      description = EXCLUDED.description,
      base        = EXCLUDED.base,
      only12      = EXCLUDED.only12,
      position    = EXCLUDED.position,
      active      = TRUE;
`
	ids := make([]string, 0, len(plans))
	for i, p := range plans {
		if _, err := ex.Exec(ctx, upsert,
			p.ID, p.Name, p.DomainLabel, p.LogoURL, p.Description, p.BasePrice, p.Restricted(), i,
		); err != nil {
			return 0, fmt.Errorf("upsert provider %s: %w", p.ID, err)
		}
		ids = append(ids, p.ID)
	}

	const deactivate = `UPDATE providers SET active = FALSE WHERE active AND NOT (id = ANY($1));`
	if _, err := ex.Exec(ctx, deactivate, ids); err != nil {
		return 0, fmt.Errorf("deactivate providers: %w", err)
	}
	return len(ids), nil
}
