package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

// RoleRepository - interface for role_assignments table
type RoleRepository interface {
	Assign(ctx context.Context, userID string, role Role) error
	GetRolesByUserID(ctx context.Context, userID string) ([]Role, error)
	IsAdminOrHR(ctx context.Context, userID string) (bool, error)
}
