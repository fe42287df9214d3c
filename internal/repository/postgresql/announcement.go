package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/settings"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) settings.AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

func scanAnnouncement(row pgx.Row) (settings.Announcement, error) {
	var a settings.Announcement
	err := row.Scan(
		&a.ID, &a.Title, &a.Message, &a.IsActive, &a.StartsAt, &a.EndsAt,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *announcementRepositoryImpl) Create(ctx context.Context, a settings.Announcement) (settings.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO announcements (id, title, message, is_active, starts_at, ends_at, created_by, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, a.Title, a.Message, a.IsActive, a.StartsAt, a.EndsAt, a.CreatedBy).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return settings.Announcement{}, err
	}
	return a, nil
}

func (r *announcementRepositoryImpl) ListActive(ctx context.Context) ([]settings.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, message, is_active, starts_at, ends_at, created_by, created_at, updated_at
		FROM announcements
		WHERE is_active = true
		  AND (starts_at IS NULL OR starts_at <= NOW())
		  AND (ends_at IS NULL OR ends_at >= NOW())
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnnouncements(rows)
}

func (r *announcementRepositoryImpl) List(ctx context.Context) ([]settings.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, message, is_active, starts_at, ends_at, created_by, created_at, updated_at
		FROM announcements
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnnouncements(rows)
}

func (r *announcementRepositoryImpl) Update(ctx context.Context, a settings.Announcement) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE announcements
		SET title = $1, message = $2, is_active = $3, starts_at = $4, ends_at = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query, a.Title, a.Message, a.IsActive, a.StartsAt, a.EndsAt, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return settings.ErrAnnouncementNotFound
	}
	return nil
}

func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return settings.ErrAnnouncementNotFound
	}
	return nil
}

func collectAnnouncements(rows pgx.Rows) ([]settings.Announcement, error) {
	var announcements []settings.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}
