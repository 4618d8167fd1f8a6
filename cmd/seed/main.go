package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4"

	"premium-store/internal/config"
	"premium-store/internal/domain/ports/repository"
	"premium-store/internal/infra/catalog"
	pg "premium-store/internal/infra/db/postgres"
)

// seed loads a catalog JSON document into the providers table so the
// storefront can run with catalog.kind=postgres.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	file := flag.String("file", catalog.DefaultPath, "catalog JSON document to load")
	flag.Parse()

	// ---- Config ----
	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatalf("database.url (or STORE_DATABASE_URL) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	plans, err := catalog.NewFileSource(*file).Fetch(ctx)
	if err != nil {
		log.Fatalf("read catalog: %v", err)
	}

	// Connect Postgres
	pool, err := pg.NewPgxPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	writer := pg.NewPostgresProviderWriter(pool)
	tm := pg.NewTxManager(pool)

	var n int
	err = tm.WithTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(ctx context.Context, tx repository.Tx) error {
		n, err = writer.ReplaceAll(ctx, tx, plans)
		return err
	})
	if err != nil {
		log.Fatalf("seed providers: %v", err)
	}

	for _, p := range plans {
		fmt.Printf("  - %s %s (base=%.0f, only12=%t)\n", p.ID, p.Name, p.BasePrice, p.Restricted())
	}
	fmt.Printf("seeded %d providers\n", n)
}
