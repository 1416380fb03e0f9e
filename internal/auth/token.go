package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload. CompanyID is nil for admins.
type Claims struct {
	UserID    string          `json:"sub"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	CompanyID *string         `json:"company_id,omitempty"`
	Name      string          `json:"name"`
	jwt.RegisteredClaims
}

// GenerateToken signs a JWT embedding the principal's identity claims.
func (tm *TokenManager) GenerateToken(p *Principal) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		UserID:    p.ID,
		Email:     p.Email,
		Role:      p.Role,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates the token and returns the embedded principal
// unchanged. Expiry is reported distinctly from a bad signature or shape.
func (tm *TokenManager) ParseToken(tokenStr string) (*Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewTokenExpired()
		}
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.NewUnauthorized("invalid token claims")
	}
	return &Principal{
		ID:        claims.UserID,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      claims.Role,
		CompanyID: claims.CompanyID,
	}, nil
}
