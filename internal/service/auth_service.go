package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/prepmind/neetprep-backend/internal/config"
)

// ErrInvalidToken is returned for malformed, forged or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenTypeDevice marks tokens issued to mobile devices. There is no other
// principal kind; the field exists so future token kinds stay distinguishable.
const TokenTypeDevice = "device"

// Claims extends JWT standard claims with the owning user id.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	UserID    string `json:"user_id"`
}

// AuthService issues and validates device JWTs. Devices are anonymous
// principals: the client presents a stable device id and gets a token back.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// GenerateDeviceToken creates a JWT bound to the given device id. An empty
// device id gets a fresh one so the caller can store it.
func (s *AuthService) GenerateDeviceToken(deviceID string) (token, userID string, err error) {
	if deviceID == "" {
		deviceID = uuid.New().String()
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   deviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		TokenType: TokenTypeDevice,
		UserID:    deviceID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return signed, deviceID, nil
}

// ValidateToken parses and verifies a device JWT.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != TokenTypeDevice || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
