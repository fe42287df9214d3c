package jwt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
)

// Service signs and parses the HS256 tokens the API issues. Access tokens
// carry identity claims for the middleware; refresh tokens carry only the
// user ID and are tracked server-side for revocation.
type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	ParseRefreshToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt, err = j.expiryFrom(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": optionalClaim(employeeID),
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	})
	return token, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt, err = j.expiryFrom(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "refresh",
		"exp":     expiresAt,
	})
	return token, expiresAt, err
}

func (j *JWTService) expiryFrom(lifetime string) (int64, error) {
	d, err := time.ParseDuration(lifetime)
	if err != nil {
		return 0, fmt.Errorf("invalid token lifetime %q: %w", lifetime, err)
	}
	return time.Now().Add(d).Unix(), nil
}

// ParseRefreshToken validates a refresh token and returns the user ID it was
// issued for.
func (j *JWTService) ParseRefreshToken(tokenString string) (userID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	userID, ok = userIDVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

// RefreshTokenCookie scopes the refresh token to the auth endpoints so it
// never rides along on ordinary API calls.
func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

// optionalClaim keeps absent pointer claims as JSON null instead of "".
func optionalClaim(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
