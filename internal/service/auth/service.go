package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/auth"
	"github.com/thinkforge/hrms-backend-go/internal/domain/employee"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/database"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/jwt"
	"github.com/thinkforge/hrms-backend-go/internal/repository/postgresql"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	employee.EmployeeRepository
	jwt.Service
	postgresql.RefreshTokenRepository
	resolver *identity.ResolverService
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	employeeRepository employee.EmployeeRepository,
	jwtService jwt.Service,
	refreshTokenRepository postgresql.RefreshTokenRepository,
	resolver *identity.ResolverService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		EmployeeRepository:     employeeRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
		resolver:               resolver,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, session)
}

// LoginWithEmployeeCode implements auth.AuthService. The code resolves to the
// linked principal; everything after that is the email/password path.
func (a *AuthServiceImpl) LoginWithEmployeeCode(ctx context.Context, req auth.LoginWithEmployeeCodeRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	emp, err := a.EmployeeRepository.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	if emp.UserID == nil || !emp.IsActive {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	userData, err := a.UserRepository.GetByID(ctx, *emp.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, session)
}

// LoginWithGoogle implements auth.AuthService. Principals are provisioned by
// admin/hr, never created on OAuth login.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, googleID string, emailVerified bool, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if !emailVerified {
		return auth.TokenResponse{}, auth.ErrEmailNotVerified
	}

	userData, err := a.UserRepository.GetByEmail(ctx, googleEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrUserNotProvisioned
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		if _, err := a.UserRepository.LinkGoogleAccount(ctx, googleID, userData.Email); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	return a.issueTokens(ctx, userData, session)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userID, err := a.Service.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.RefreshTokenRepository.IsRevoked(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	principal, err := a.resolvePrincipal(ctx, userData)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	// Rotate: the presented token is revoked and a fresh pair is issued in
	// the same transaction.
	var response auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.RefreshTokenRepository.Revoke(txCtx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		response, err = a.mintTokens(txCtx, userData, principal, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return response, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := a.Service.ParseRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	if err := a.RefreshTokenRepository.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if userData.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// The new password invalidates every live session.
	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.UserRepository.UpdatePassword(txCtx, userID, string(hash)); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := a.RefreshTokenRepository.RevokeAllForUser(txCtx, userID); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return nil
	})
}

// issueTokens resolves the principal's role and employee link and mints an
// access/refresh pair, persisting the refresh side.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	principal, err := a.resolvePrincipal(ctx, userData)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	var response auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		response, err = a.mintTokens(txCtx, userData, principal, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return response, nil
}

func (a *AuthServiceImpl) resolvePrincipal(ctx context.Context, userData user.User) (identity.Principal, error) {
	principal, err := a.resolver.Resolve(ctx, userData.ID)
	if err != nil {
		if errors.Is(err, user.ErrNoRoleAssigned) {
			return identity.Principal{}, auth.ErrUserNotProvisioned
		}
		return identity.Principal{}, err
	}
	return principal, nil
}

// mintTokens assumes ctx already carries the transaction when one is needed.
func (a *AuthServiceImpl) mintTokens(ctx context.Context, userData user.User, principal identity.Principal, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var employeeID *string
	if principal.Employee != nil {
		employeeID = &principal.Employee.ID
	}

	var response auth.TokenResponse
	var err error

	response.AccessToken, response.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, employeeID, principal.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	response.RefreshToken, response.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.RefreshTokenRepository.Store(ctx, userData.ID, response.RefreshToken, response.RefreshTokenExpiresIn, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}
	return response, nil
}
