package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) employee.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

func (r *profileRepositoryImpl) Create(ctx context.Context, p employee.Profile) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (user_id, first_name, last_name, email, phone, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, p.UserID, p.FirstName, p.LastName, p.Email, p.Phone, p.AvatarURL).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return employee.Profile{}, err
	}
	return p, nil
}

func (r *profileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, first_name, last_name, email, phone, avatar_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var p employee.Profile
	err := q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Profile{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Profile{}, err
	}
	return p, nil
}

func (r *profileRepositoryImpl) Update(ctx context.Context, p employee.Profile) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, phone = $3, avatar_url = $4, updated_at = NOW()
		WHERE user_id = $5
	`
	tag, err := q.Exec(ctx, query, p.FirstName, p.LastName, p.Phone, p.AvatarURL, p.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
