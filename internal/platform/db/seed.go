package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"kraeval/internal/platform/config"
)

// Seed ensures the reference rows the engine's foreign keys resolve against.
// It is idempotent and safe to run on every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	orgID, err := ensureOrganization(ctx, pool, cfg.SeedOrgName)
	if err != nil {
		return err
	}
	return ensureResponsibility(ctx, pool, orgID, "General Duties")
}

func ensureOrganization(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO organizations (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureResponsibility(ctx context.Context, pool *pgxpool.Pool, orgID, title string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM responsibilities WHERE organization_id = $1 AND title = $2", orgID, title).Scan(&id)
	if err == nil {
		return nil
	}

	_, err = pool.Exec(ctx, "INSERT INTO responsibilities (organization_id, title) VALUES ($1, $2)", orgID, title)
	return err
}
