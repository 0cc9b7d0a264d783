package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/auth"
	"staffhub/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	for _, locale := range cfg.Locales {
		if err := ensureLocalHorario(ctx, pool, locale); err != nil {
			return err
		}
	}

	if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		if err := ensureUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword, auth.RoleAdmin, auth.LocaleAll); err != nil {
			return err
		}
	}
	if cfg.SeedEncargadoEmail != "" && cfg.SeedEncargadoPassword != "" {
		if err := ensureUser(ctx, pool, cfg.SeedEncargadoEmail, cfg.SeedEncargadoPassword, auth.RoleEncargado, cfg.SeedEncargadoLocale); err != nil {
			return err
		}
	}
	return nil
}

func ensureLocalHorario(ctx context.Context, pool *pgxpool.Pool, locale string) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO local_horarios (locale)
    VALUES ($1)
    ON CONFLICT (locale) DO NOTHING
  `, locale)
	return err
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password, role, locale string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role, locale)
    VALUES ($1, $2, $3, $4)
  `, email, hash, role, locale)
	return err
}
