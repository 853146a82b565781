package services

import (
	"errors"
	"streak-pickem-go/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the identity claims carried in a session token. The
// identity provider is external; this service only verifies and reads.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionService verifies session tokens minted by the identity provider
// and issues anonymous fallback tokens for unauthenticated visitors.
type SessionService struct {
	jwtSecret   []byte
	tokenExpiry time.Duration
	issuer      string
}

// NewSessionService creates a new session service
func NewSessionService(jwtSecret string) *SessionService {
	return &SessionService{
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: 24 * 30 * 6 * time.Hour, // Token expires in 6 months
		issuer:      "streak-pickem",
	}
}

// ValidateToken validates a session token and returns its claims
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// GetUserFromToken validates a token and builds the user identity from
// its claims.
func (s *SessionService) GetUserFromToken(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errors.New("token missing user id")
	}

	return &models.User{
		ID:       claims.UserID,
		Email:    claims.Email,
		Name:     claims.Name,
		Username: claims.Username,
	}, nil
}

// MintToken signs a session token for the given identity. Used for the
// anonymous fallback session and in development.
func (s *SessionService) MintToken(user *models.User) (string, error) {
	claims := SessionClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
