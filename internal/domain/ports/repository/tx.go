package repository

import (
	"context"

	"github.com/jackc/pgx/v4"

	"premium-store/internal/domain/model"
)

// Tx is an infra-defined transaction handle (pgx.Tx for Postgres).
type Tx interface{}

// TransactionManager runs fn inside one database transaction. fn's error
// rolls it back.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}

// ProviderWriter replaces the stored catalog. Plans keep their order as
// display position; providers missing from plans are deactivated.
type ProviderWriter interface {
	ReplaceAll(ctx context.Context, tx Tx, plans []*model.Plan) (int, error)
}
