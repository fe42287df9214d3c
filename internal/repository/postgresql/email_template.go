package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/settings"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type emailTemplateRepositoryImpl struct {
	db *database.DB
}

func NewEmailTemplateRepository(db *database.DB) settings.EmailTemplateRepository {
	return &emailTemplateRepositoryImpl{db: db}
}

func (r *emailTemplateRepositoryImpl) Create(ctx context.Context, t settings.EmailTemplate) (settings.EmailTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO email_templates (id, name, subject, body, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, t.Name, t.Subject, t.Body, t.Status).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return settings.EmailTemplate{}, err
	}
	return t, nil
}

func (r *emailTemplateRepositoryImpl) GetActiveByName(ctx context.Context, name string) (settings.EmailTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, subject, body, status, created_at, updated_at
		FROM email_templates
		WHERE name = $1 AND status = 'active'
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var t settings.EmailTemplate
	err := q.QueryRow(ctx, query, name).Scan(
		&t.ID, &t.Name, &t.Subject, &t.Body, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.EmailTemplate{}, settings.ErrTemplateNotFound
	}
	if err != nil {
		return settings.EmailTemplate{}, err
	}
	return t, nil
}

func (r *emailTemplateRepositoryImpl) List(ctx context.Context) ([]settings.EmailTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, subject, body, status, created_at, updated_at
		FROM email_templates
		ORDER BY name, updated_at DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []settings.EmailTemplate
	for rows.Next() {
		var t settings.EmailTemplate
		err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.Status, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *emailTemplateRepositoryImpl) Update(ctx context.Context, t settings.EmailTemplate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE email_templates
		SET subject = $1, body = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, t.Subject, t.Body, t.Status, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return settings.ErrTemplateNotFound
	}
	return nil
}
