package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/settings"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type senderConfigRepositoryImpl struct {
	db *database.DB
}

func NewSenderConfigRepository(db *database.DB) settings.SenderConfigRepository {
	return &senderConfigRepositoryImpl{db: db}
}

func (r *senderConfigRepositoryImpl) GetEnabled(ctx context.Context) (settings.SenderConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, from_name, from_email, enabled, created_at, updated_at
		FROM sender_configs
		WHERE enabled = true
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var c settings.SenderConfig
	err := q.QueryRow(ctx, query).Scan(
		&c.ID, &c.FromName, &c.FromEmail, &c.Enabled, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.SenderConfig{}, settings.ErrSenderConfigNotFound
	}
	if err != nil {
		return settings.SenderConfig{}, err
	}
	return c, nil
}

func (r *senderConfigRepositoryImpl) Upsert(ctx context.Context, c settings.SenderConfig) (settings.SenderConfig, error) {
	q := GetQuerier(ctx, r.db)

	// Only one sender may be enabled. Disabling the rest in the same
	// transaction keeps the invariant without a partial unique index.
	if c.Enabled {
		if _, err := q.Exec(ctx, `UPDATE sender_configs SET enabled = false, updated_at = NOW() WHERE enabled = true`); err != nil {
			return settings.SenderConfig{}, err
		}
	}

	query := `
		INSERT INTO sender_configs (id, from_name, from_email, enabled, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		ON CONFLICT (from_email)
		DO UPDATE SET from_name = EXCLUDED.from_name, enabled = EXCLUDED.enabled, updated_at = NOW()
		RETURNING id, from_name, from_email, enabled, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, c.FromName, c.FromEmail, c.Enabled).Scan(
		&c.ID, &c.FromName, &c.FromEmail, &c.Enabled, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return settings.SenderConfig{}, err
	}
	return c, nil
}
