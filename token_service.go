package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService signs and verifies the compact JWTs this system exchanges.
// One instance is built per configured secret and reused, the HMAC key is
// never re-derived per call.
type TokenService struct {
	signingKey []byte
	validity   int
	header     string
	logger     Logger
}

// NewTokenService creates a TokenService for the given config. A missing
// secret is a configuration error and is rejected here, never at call time.
func NewTokenService(cfg Config, logger Logger) (*TokenService, error) {
	if cfg == nil || cfg.GetSecret() == "" {
		return nil, errors.New("token service requires a signing secret", errors.CategoryBadInput)
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &TokenService{
		signingKey: []byte(cfg.GetSecret()),
		validity:   cfg.GetValidity(),
		header:     cfg.GetHeader(),
		logger:     logger,
	}, nil
}

// Header returns the configured request header carrying the token.
func (ts *TokenService) Header() string {
	return ts.header
}

// Generate builds a signed token for the user using the configured validity.
func (ts *TokenService) Generate(user *User) (string, error) {
	return ts.GenerateWithValidity(user, ts.validity)
}

// GenerateWithValidity builds a signed token expiring validityMinutes from
// now. Zero or negative values produce an already expired token, which
// callers use to exercise expiry handling.
func (ts *TokenService) GenerateWithValidity(user *User, validityMinutes int) (string, error) {
	if user == nil {
		return "", errors.New("user must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    user.ID.String(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(validityMinutes) * time.Minute)),
		},
		Name:                user.Name,
		Authorities:         user.Authorities,
		BanExpiration:       user.BanExpiration,
		PreferredCategories: user.PreferredCategories,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and verifies a token string, returning the decoded claims.
// Expired tokens map to ErrTokenExpired, every other parse or signature
// failure maps to ErrTokenNotValid.
func (ts *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, expiredError(err)
		}
		return nil, notValidError(err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrTokenNotValid
	}

	return claims, nil
}

var _ TokenValidator = (*TokenService)(nil)

func expiredError(cause error) error {
	clone := ErrTokenExpired.Clone()
	clone.Source = cause
	return clone
}

func notValidError(cause error) error {
	clone := ErrTokenNotValid.Clone()
	clone.Source = cause
	return clone.WithMetadata(map[string]any{
		"cause": cause.Error(),
	})
}
